// =============================================================================
// listing.go - Announcements listing fetcher
// =============================================================================
//
// Fetches the SEBI announcements index and extracts the newest entry from the
// first data row. The listing is a server-rendered table sorted newest-first:
//
//   <table id="sample_1">          (fallback: <table class="table">)
//     <tbody>
//       <tr>
//         <td>05-Jan-2024</td>     column 0: date
//         <td>Circular</td>        column 1: category
//         <td><a href="...">…</a>  column 2: linked title
//
// Only the first row is ever inspected; one entry per run.
//
// =============================================================================
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// Structural failures the orchestrator branches on.
var (
	// ErrNoListingTable means the expected announcements table (or its first
	// row) is absent from the index page.
	ErrNoListingTable = errors.New("announcements table not found")

	// ErrMalformedRow means the first row does not have the expected
	// date/category/linked-title column layout.
	ErrMalformedRow = errors.New("announcement row malformed")
)

// ListingFetcher retrieves the newest announcement from the index page.
type ListingFetcher struct {
	cfg *Config
}

// NewListingFetcher returns a fetcher bound to the given configuration.
func NewListingFetcher(cfg *Config) *ListingFetcher {
	return &ListingFetcher{cfg: cfg}
}

// LatestEntry fetches the index page and parses its first data row.
func (f *ListingFetcher) LatestEntry(ctx context.Context) (*ListingEntry, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.cfg.ListingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.cfg.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML failed: %w", err)
	}

	return parseFirstListingRow(doc, f.cfg.ListingURL)
}

// parseFirstListingRow extracts a ListingEntry from the first row of the
// announcements table. baseURL anchors relative detail links.
func parseFirstListingRow(doc *goquery.Document, baseURL string) (*ListingEntry, error) {
	table := doc.Find("table#sample_1").First()
	if table.Length() == 0 {
		table = doc.Find("table.table").First()
	}
	if table.Length() == 0 {
		return nil, ErrNoListingTable
	}

	row := table.Find("tbody tr").First()
	if row.Length() == 0 {
		return nil, ErrNoListingTable
	}

	cols := row.Find("td")
	if cols.Length() < 3 {
		return nil, fmt.Errorf("%w: %d columns", ErrMalformedRow, cols.Length())
	}

	titleLink := cols.Eq(2).Find("a").First()
	title := normalizeWhitespace(titleLink.Text())
	if title == "" {
		return nil, fmt.Errorf("%w: title link missing", ErrMalformedRow)
	}

	entry := &ListingEntry{
		Date:     normalizeWhitespace(cols.Eq(0).Text()),
		Category: normalizeWhitespace(cols.Eq(1).Text()),
		Title:    title,
	}
	if href, ok := titleLink.Attr("href"); ok {
		entry.DetailLink = resolveURL(baseURL, href)
	}
	return entry, nil
}
