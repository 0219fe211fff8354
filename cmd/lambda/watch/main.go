// =============================================================================
// Lambda: watch-announcements
// =============================================================================
//
// Scheduled Lambda wrapper around the watcher pipeline. Intended to run from
// an EventBridge schedule; one invocation is one pipeline pass.
//
// Environment variables:
//   - TELEGRAM_TOKEN / TELEGRAM_CHAT_ID: notification target
//   - HF_API_KEY / HF_MODEL:             optional summarization
//   - NOTION_TOKEN / NOTION_DATABASE_ID: optional archive
//   - STATE_FILE:                        record path (default: /tmp/last_update.txt;
//                                        point at mounted storage to survive
//                                        cold starts)
//   - SEBI_URL / SEBI_RSS_URL / SEBI_SOURCE: listing overrides
//
// =============================================================================
package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"sebi-relay/internal/pipeline"
)

// Response is the Lambda invocation response.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Title      string `json:"title,omitempty"`
	Notified   bool   `json:"notified"`
}

// Handler runs one watcher pass.
func Handler(ctx context.Context, event interface{}) (Response, error) {
	log.Println("Starting watch-announcements Lambda...")

	cfg := pipeline.FromEnv()
	if os.Getenv("STATE_FILE") == "" {
		// The default relative path is not writable in Lambda.
		cfg.StateFile = "/tmp/last_update.txt"
	}

	runner := pipeline.NewRunner(cfg)
	res := runner.Run(ctx)

	msg := "notification sent"
	if !res.Notified {
		msg = res.Reason
	}
	log.Printf("Run finished: notified=%t title=%q reason=%q", res.Notified, res.Title, res.Reason)

	// Failures are already degraded to diagnostics inside the pipeline; the
	// invocation itself always succeeds so the schedule keeps firing.
	return Response{
		StatusCode: 200,
		Message:    msg,
		Title:      res.Title,
		Notified:   res.Notified,
	}, nil
}

func main() {
	lambda.Start(Handler)
}
