// =============================================================================
// utils.go - Shared helpers
// =============================================================================
//
// Logging helpers, URL resolution and small string utilities used across the
// pipeline. Log output goes to stderr so stdout stays free for data.
//
// =============================================================================
package pipeline

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// -----------------------------------------------------------------------------
// Logging
// -----------------------------------------------------------------------------

// warnf writes a "WARN:" line to stderr.
func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARN: "+format+"\n", args...)
}

// infof writes an "INFO:" line to stderr.
func infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "INFO: "+format+"\n", args...)
}

// errorf writes an "ERROR:" line to stderr. It does not terminate the run.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
}

// -----------------------------------------------------------------------------
// URLs
// -----------------------------------------------------------------------------

// resolveURL resolves href against baseURL. Returns "" when either does not
// parse, so callers can treat the result like a missing link.
func resolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// -----------------------------------------------------------------------------
// Strings
// -----------------------------------------------------------------------------

// normalizeWhitespace collapses runs of whitespace into single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes cuts s to at most max characters. Counts runes, not bytes, so
// multibyte text is not split mid-character.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
