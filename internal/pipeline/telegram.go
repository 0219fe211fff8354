// =============================================================================
// telegram.go - Telegram notifier
// =============================================================================
//
// Posts the composed announcement message to the Telegram Bot API in
// MarkdownV2 mode. Send reports success as a bool and never propagates an
// error; each failure branch logs a diagnostic instead.
//
// =============================================================================
package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// markdownV2Reserved is the character set the MarkdownV2 dialect requires
// escaping for. Each occurrence gets a single backslash prefix; everything
// else passes through untouched.
const markdownV2Reserved = "_*[]()~`>#+-=|{}.!"

// escapeMarkdownV2 escapes every reserved character in s.
func escapeMarkdownV2(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markdownV2Reserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Notifier sends announcement messages to a Telegram chat.
type Notifier struct {
	cfg *Config
}

// NewNotifier returns a notifier bound to the given configuration.
func NewNotifier(cfg *Config) *Notifier {
	return &Notifier{cfg: cfg}
}

// Send escapes message for MarkdownV2 and posts it to the configured chat.
// Returns true only on an HTTP 200 from the Bot API.
func (n *Notifier) Send(message string) bool {
	if n.cfg.TelegramToken == "" || n.cfg.TelegramChatID == "" {
		warnf("telegram token or chat ID missing, skipping notification")
		return false
	}

	payload, _ := json.Marshal(map[string]any{
		"chat_id":                  n.cfg.TelegramChatID,
		"text":                     escapeMarkdownV2(message),
		"parse_mode":               "MarkdownV2",
		"disable_web_page_preview": false,
	})

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.cfg.TelegramAPIBase, n.cfg.TelegramToken)
	req, err := http.NewRequest("POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		warnf("telegram request creation failed: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: n.cfg.NotifyTimeout}
	resp, err := client.Do(req)
	if err != nil {
		warnf("telegram send error: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		errorf("telegram API error: %d", resp.StatusCode)
		errorf("response: %s", string(body))
		return false
	}

	infof("message sent to Telegram")
	return true
}
