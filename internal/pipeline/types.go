// =============================================================================
// types.go - Data structures
// =============================================================================
//
// Types shared across the SEBI watcher pipeline.
//
// =============================================================================
package pipeline

// ListingEntry is the first data row of the SEBI announcements index.
//
// Title doubles as the deduplication key: the state file records the title of
// the last notified entry and a matching title ends the run early. Two
// distinct announcements sharing a title are therefore treated as one
// (known limitation of the upstream listing, which exposes no stable ID).
type ListingEntry struct {
	Date       string `json:"date"`                 // as printed in the listing, e.g. "05-Jan-2024"
	Category   string `json:"category"`             // e.g. "Circular", "Press Release"
	Title      string `json:"title"`                // dedup key
	DetailLink string `json:"detailLink,omitempty"` // absolute URL of the detail page
}

// RunResult reports what a single pipeline pass did. The CLI logs it and the
// Lambda handler returns it in the invocation response.
type RunResult struct {
	Title    string `json:"title,omitempty"`  // latest listing title, if one was fetched
	Notified bool   `json:"notified"`         // true only after a confirmed Telegram send
	Reason   string `json:"reason,omitempty"` // why the run stopped, when Notified is false
}
