// =============================================================================
// run.go - Pipeline orchestration
// =============================================================================
//
// One invocation, one pass:
//
//   listing -> dedup check -> locate PDF -> download -> extract text
//           -> summarize -> notify -> archive (optional) -> save state
//
// The chain short-circuits at the first absent/empty stage result, logging a
// diagnostic and leaving the persisted state untouched. The title is saved
// only after a confirmed-successful notification, so a failed run is simply
// retried by the next scheduled invocation.
//
// =============================================================================
package pipeline

import (
	"context"
	"fmt"
)

// Runner wires the pipeline stages. The stage fields default to the real
// components in NewRunner; tests swap individual stages the same way.
type Runner struct {
	Config *Config
	State  *StateFile

	Latest    func(ctx context.Context) (*ListingEntry, error)
	Locate    func(ctx context.Context, detailURL string) (string, error)
	Download  func(ctx context.Context, docURL string) ([]byte, error)
	Extract   func(data []byte) string
	Summarize func(text string) string
	Notify    func(message string) bool

	// Archive is nil unless the Notion archive is configured.
	Archive func(ctx context.Context, entry *ListingEntry, summary, docURL string) error
}

// NewRunner builds a Runner with the default components for cfg.
func NewRunner(cfg *Config) *Runner {
	fetcher := NewListingFetcher(cfg)
	resolver := NewDocumentResolver(cfg)
	summarizer := NewSummarizer(cfg)
	notifier := NewNotifier(cfg)

	latest := fetcher.LatestEntry
	if cfg.Source == "rss" {
		latest = fetcher.LatestEntryRSS
	}

	r := &Runner{
		Config:    cfg,
		State:     &StateFile{Path: cfg.StateFile},
		Latest:    latest,
		Locate:    resolver.LocateDocument,
		Download:  resolver.DownloadDocument,
		Extract:   ExtractText,
		Summarize: summarizer.Summarize,
		Notify:    notifier.Send,
	}

	if cfg.NotionToken != "" && cfg.NotionDatabaseID != "" {
		archiver, err := NewArchiver(cfg.NotionToken, cfg.NotionDatabaseID)
		if err != nil {
			warnf("notion archive disabled: %v", err)
		} else {
			r.Archive = archiver.ArchiveAnnouncement
		}
	}

	return r
}

// Run executes one pipeline pass. It never returns an error: every failure
// degrades into a logged diagnostic and a RunResult explaining why the run
// stopped, matching the best-effort, try-again-next-run design.
func (r *Runner) Run(ctx context.Context) RunResult {
	infof("checking SEBI for updates")

	entry, err := r.Latest(ctx)
	if err != nil {
		warnf("fetching latest update: %v", err)
		return RunResult{Reason: "listing fetch failed"}
	}
	infof("latest announcement: %s", entry.Title)

	if last, ok := r.State.Load(); ok && last == entry.Title {
		infof("already processed")
		return RunResult{Title: entry.Title, Reason: "already processed"}
	}

	if entry.DetailLink == "" {
		warnf("no detail link on listing entry")
		return RunResult{Title: entry.Title, Reason: "no detail link"}
	}

	docURL, err := r.Locate(ctx, entry.DetailLink)
	if err != nil {
		warnf("extracting PDF link: %v", err)
		return RunResult{Title: entry.Title, Reason: "no document located"}
	}

	data, err := r.Download(ctx, docURL)
	if err != nil {
		warnf("downloading PDF: %v", err)
		return RunResult{Title: entry.Title, Reason: "document download failed"}
	}

	text := r.Extract(data)
	if text == "" {
		warnf("no text extracted from PDF")
		return RunResult{Title: entry.Title, Reason: "no text extracted"}
	}

	summary := r.Summarize(text)
	message := composeMessage(entry, summary, docURL)

	if !r.Notify(message) {
		return RunResult{Title: entry.Title, Reason: "notification failed"}
	}

	if r.Archive != nil {
		if err := r.Archive(ctx, entry, summary, docURL); err != nil {
			warnf("notion archive failed: %v", err)
		}
	}

	if err := r.State.Save(entry.Title); err != nil {
		warnf("saving state: %v", err)
	}
	return RunResult{Title: entry.Title, Notified: true}
}

// composeMessage formats the notification body. The notifier escapes it for
// MarkdownV2 before sending.
func composeMessage(entry *ListingEntry, summary, docURL string) string {
	return fmt.Sprintf(`SEBI Update: %s

Summary:
%s

Read PDF: %s
Date: %s
Category: %s`, entry.Title, summary, docURL, entry.Date, entry.Category)
}
