// =============================================================================
// main.go - SEBI watcher entrypoint
// =============================================================================
//
// Single-shot watcher for SEBI announcements, meant to be run from cron or a
// scheduler. One invocation checks the listing once, notifies Telegram about
// a new entry, and records it; everything else is a logged no-op. The process
// exits 0 whether or not the pipeline completed, so a flaky upstream never
// breaks the schedule.
//
// Configuration comes from the environment (optionally via .env) plus a few
// override flags; see internal/pipeline/config.go for the full list.
//
// =============================================================================
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"sebi-relay/internal/pipeline"
)

func main() {
	// Missing .env is fine; environment variables alone work too.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "INFO: .env file not loaded: %v (using environment variables only)\n", err)
	}

	cfg := pipeline.ParseFlags()
	runner := pipeline.NewRunner(cfg)

	res := runner.Run(context.Background())
	if res.Notified {
		fmt.Fprintf(os.Stderr, "INFO: notified: %s\n", res.Title)
	} else if res.Reason != "" {
		fmt.Fprintf(os.Stderr, "INFO: run ended: %s\n", res.Reason)
	}
}
