// =============================================================================
// config.go - Watcher configuration
// =============================================================================
//
// Configuration is assembled once at process start and passed by reference
// into each component; nothing mutates it afterwards.
//
// Environment variables:
//   SEBI_URL           announcements index page (default: official listing)
//   SEBI_RSS_URL       announcements RSS feed (default: official feed)
//   SEBI_SOURCE        listing source: "html" | "rss" (default: "html")
//   STATE_FILE         last-notified-title record path (default: last_update.txt)
//   HF_API_KEY         Hugging Face Inference API key (empty disables summaries)
//   HF_MODEL           summarization model (default: facebook/bart-large-cnn)
//   TELEGRAM_TOKEN     bot token (empty disables notification)
//   TELEGRAM_CHAT_ID   destination chat
//   NOTION_TOKEN       Notion integration token (optional archive)
//   NOTION_DATABASE_ID Notion database for the archive
//
// =============================================================================
package pipeline

import (
	"flag"
	"net/http"
	"os"
	"time"
)

// DefaultListingURL is the SEBI announcements index ("all listings" view).
const DefaultListingURL = "https://www.sebi.gov.in/sebiweb/home/HomeAction.do?doListingAll=yes"

// DefaultRSSURL is the SEBI announcements RSS feed carrying the same entries.
const DefaultRSSURL = "https://www.sebi.gov.in/sebirss.xml"

// DefaultStateFile records the last notified title, relative to the working
// directory. Single-line UTF-8, no locking; the watcher assumes one instance
// runs at a time.
const DefaultStateFile = "last_update.txt"

// DefaultHFModel is used when HF_MODEL is not set.
const DefaultHFModel = "facebook/bart-large-cnn"

// Config holds everything the pipeline components need. Built once by
// FromEnv (or ParseFlags in the CLI) and immutable afterwards.
type Config struct {
	// Listing
	ListingURL string
	RSSURL     string
	Source     string // "html" | "rss"

	// State
	StateFile string

	// Summarizer (Hugging Face Inference API)
	HFAPIKey   string
	HFModel    string
	HFEndpoint string // base URL up to /models

	// Notifier (Telegram Bot API)
	TelegramToken   string
	TelegramChatID  string
	TelegramAPIBase string

	// Archive (optional)
	NotionToken      string
	NotionDatabaseID string

	// HTTP
	UserAgent      string
	FetchTimeout   time.Duration // index/detail/document fetches
	SummaryTimeout time.Duration // inference call
	NotifyTimeout  time.Duration // Telegram call
	Client         *http.Client  // shared client for fetches (connection pooling)
}

// FromEnv builds a Config from environment variables and defaults.
func FromEnv() *Config {
	fetchTimeout := 15 * time.Second
	cfg := &Config{
		ListingURL:       envOr("SEBI_URL", DefaultListingURL),
		RSSURL:           envOr("SEBI_RSS_URL", DefaultRSSURL),
		Source:           envOr("SEBI_SOURCE", "html"),
		StateFile:        envOr("STATE_FILE", DefaultStateFile),
		HFAPIKey:         os.Getenv("HF_API_KEY"),
		HFModel:          envOr("HF_MODEL", DefaultHFModel),
		HFEndpoint:       "https://api-inference.huggingface.co/models",
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		TelegramAPIBase:  "https://api.telegram.org",
		NotionToken:      os.Getenv("NOTION_TOKEN"),
		NotionDatabaseID: os.Getenv("NOTION_DATABASE_ID"),
		UserAgent:        "Mozilla/5.0 (compatible; sebi-relay/1.0)",
		FetchTimeout:     fetchTimeout,
		SummaryTimeout:   30 * time.Second,
		NotifyTimeout:    10 * time.Second,
		Client: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	return cfg
}

// ParseFlags builds a Config from the environment, then lets optional flags
// override the listing source, index URL and state file path. All flags have
// workable defaults, so the watcher also runs with no arguments.
func ParseFlags() *Config {
	cfg := FromEnv()

	flag.StringVar(&cfg.ListingURL, "listing", cfg.ListingURL, "announcements index page URL")
	flag.StringVar(&cfg.Source, "source", cfg.Source, "listing source: html|rss")
	flag.StringVar(&cfg.StateFile, "stateFile", cfg.StateFile, "path of the last-notified-title record")

	flag.Parse()
	return cfg
}

// envOr returns the environment value for key, or def when unset or empty.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
