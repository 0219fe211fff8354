package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// announcementSite fakes the listing/detail/document endpoints on one server.
type announcementSite struct {
	server *httptest.Server
	title  string
}

func newAnnouncementSite(t *testing.T, pdfData []byte) *announcementSite {
	t.Helper()
	site := &announcementSite{title: "Test Circular"}

	mux := http.NewServeMux()
	mux.HandleFunc("/listing", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<html><body><table id="sample_1"><tbody><tr>
			<td>05-Jan-2024</td><td>Circular</td>
			<td><a href="/detail/12345">%s</a></td>
		</tr></tbody></table></body></html>`, site.title)
	})
	mux.HandleFunc("/detail/12345", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<html><body><embed type="application/pdf" src="/viewer?file=%s/doc.pdf"></body></html>`,
			site.server.URL)
	})
	mux.HandleFunc("/doc.pdf", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(pdfData)
	})

	site.server = httptest.NewServer(mux)
	t.Cleanup(site.server.Close)
	return site
}

// newTelegramAPI returns a fake Bot API that counts successful sends.
func newTelegramAPI(t *testing.T, status int) (*httptest.Server, *int) {
	t.Helper()
	sends := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(status)
		if status == http.StatusOK {
			sends++
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	}))
	t.Cleanup(server.Close)
	return server, &sends
}

func endToEndConfig(t *testing.T, site *announcementSite, telegramURL string) *Config {
	t.Helper()
	cfg := testConfig()
	cfg.ListingURL = site.server.URL + "/listing"
	cfg.TelegramToken = "123:abc"
	cfg.TelegramChatID = "42"
	cfg.TelegramAPIBase = telegramURL
	cfg.StateFile = filepath.Join(t.TempDir(), "last_update.txt")
	return cfg
}

func TestRun_EndToEnd_NotifiesOnce(t *testing.T) {
	site := newAnnouncementSite(t, buildPDF("Quarterly disclosure norms revised"))
	telegram, sends := newTelegramAPI(t, http.StatusOK)
	cfg := endToEndConfig(t, site, telegram.URL)

	runner := NewRunner(cfg)

	res := runner.Run(context.Background())
	assert.True(t, res.Notified)
	assert.Equal(t, "Test Circular", res.Title)
	assert.Equal(t, 1, *sends)

	raw, err := os.ReadFile(cfg.StateFile)
	require.NoError(t, err)
	assert.Equal(t, "Test Circular", string(raw))

	// Second run against the unchanged listing: recognized as already
	// processed, no second notification.
	res = runner.Run(context.Background())
	assert.False(t, res.Notified)
	assert.Equal(t, "already processed", res.Reason)
	assert.Equal(t, 1, *sends)
}

func TestRun_MissingTableHaltsBeforeDocumentWork(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/listing", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>down for maintenance</p></body></html>`))
	})
	mux.HandleFunc("/", func(_ http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request after listing failure: %s", r.URL.Path)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testConfig()
	cfg.ListingURL = server.URL + "/listing"
	cfg.StateFile = filepath.Join(t.TempDir(), "last_update.txt")

	res := NewRunner(cfg).Run(context.Background())
	assert.False(t, res.Notified)
	assert.Equal(t, "listing fetch failed", res.Reason)
	assert.NoFileExists(t, cfg.StateFile)
}

func TestRun_FailedNotificationKeepsStateUnsaved(t *testing.T) {
	site := newAnnouncementSite(t, buildPDF("Settlement cycle update"))
	telegram, sends := newTelegramAPI(t, http.StatusBadRequest)
	cfg := endToEndConfig(t, site, telegram.URL)

	res := NewRunner(cfg).Run(context.Background())
	assert.False(t, res.Notified)
	assert.Equal(t, "notification failed", res.Reason)
	assert.Equal(t, 0, *sends)

	// State untouched, so the next scheduled run retries the same entry.
	assert.NoFileExists(t, cfg.StateFile)
}

func TestRun_UnparsablePDFHaltsBeforeNotification(t *testing.T) {
	// Passes the %PDF sniff but cannot be parsed: extraction degrades to ""
	// and the run stops quietly.
	site := newAnnouncementSite(t, []byte("%PDF-1.4 but nothing else"))

	telegram := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no notification expected when extraction yields nothing")
	}))
	defer telegram.Close()

	cfg := endToEndConfig(t, site, telegram.URL)

	res := NewRunner(cfg).Run(context.Background())
	assert.False(t, res.Notified)
	assert.Equal(t, "no text extracted", res.Reason)
	assert.NoFileExists(t, cfg.StateFile)
}

func TestRun_ArchiveFailureDoesNotBlockState(t *testing.T) {
	site := newAnnouncementSite(t, buildPDF("Custodian reporting formats"))
	telegram, sends := newTelegramAPI(t, http.StatusOK)
	cfg := endToEndConfig(t, site, telegram.URL)

	runner := NewRunner(cfg)
	runner.Archive = func(context.Context, *ListingEntry, string, string) error {
		return fmt.Errorf("notion unavailable")
	}

	res := runner.Run(context.Background())
	assert.True(t, res.Notified)
	assert.Equal(t, 1, *sends)
	assert.FileExists(t, cfg.StateFile)
}

func TestRun_MessageContainsAllFields(t *testing.T) {
	site := newAnnouncementSite(t, buildPDF("Margin requirements"))

	var sent string
	telegram := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		sent, _ = payload["text"].(string)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer telegram.Close()

	cfg := endToEndConfig(t, site, telegram.URL)

	res := NewRunner(cfg).Run(context.Background())
	require.True(t, res.Notified)

	assert.Contains(t, sent, "Test Circular")
	assert.Contains(t, sent, "05\\-Jan\\-2024") // escaped for MarkdownV2
	assert.Contains(t, sent, "Circular")
	assert.Contains(t, sent, "doc\\.pdf")
	// Unconfigured summarizer contributes its diagnostic placeholder.
	assert.Contains(t, sent, "No Hugging Face API key set")
}

func TestRun_RSSSourceSelected(t *testing.T) {
	// With -source=rss the listing stage reads the feed; the rest of the
	// chain is exercised unchanged.
	site := newAnnouncementSite(t, buildPDF("Consultation paper"))

	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>
			<item><title>Test Circular</title><link>%s/detail/12345</link>
			<category>Circular</category></item></channel></rss>`, site.server.URL)
	})
	feedServer := httptest.NewServer(mux)
	defer feedServer.Close()

	telegram, sends := newTelegramAPI(t, http.StatusOK)
	cfg := endToEndConfig(t, site, telegram.URL)
	cfg.Source = "rss"
	cfg.RSSURL = feedServer.URL + "/feed"

	res := NewRunner(cfg).Run(context.Background())
	assert.True(t, res.Notified)
	assert.Equal(t, 1, *sends)
}
