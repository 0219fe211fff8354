// =============================================================================
// summarize.go - Hugging Face summarizer
// =============================================================================
//
// Optional summarization stage calling the Hugging Face Inference API:
//
//   POST https://api-inference.huggingface.co/models/<model>
//   Authorization: Bearer <HF_API_KEY>
//   {"inputs": "<first 2000 characters of the extracted text>"}
//
// The contract is string-in, string-out: whatever goes wrong, Summarize
// returns a displayable diagnostic instead of an error, and the notification
// carries that diagnostic in place of a summary. A missing key short-circuits
// without any network call.
//
// =============================================================================
package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// summaryInputLimit caps the characters submitted to the inference endpoint.
const summaryInputLimit = 2000

// Summarizer produces short summaries of extracted announcement text.
type Summarizer struct {
	cfg *Config
}

// NewSummarizer returns a summarizer bound to the given configuration.
func NewSummarizer(cfg *Config) *Summarizer {
	return &Summarizer{cfg: cfg}
}

// hfSummary is one element of the inference response array.
type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

// Summarize returns a short summary of text, or a diagnostic string when
// summarization is unconfigured or fails. It never returns an error.
func (s *Summarizer) Summarize(text string) string {
	if s.cfg.HFAPIKey == "" {
		return "No Hugging Face API key set."
	}

	payload, _ := json.Marshal(map[string]string{
		"inputs": truncateRunes(text, summaryInputLimit),
	})

	endpoint := fmt.Sprintf("%s/%s", s.cfg.HFEndpoint, s.cfg.HFModel)
	req, err := http.NewRequest("POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Sprintf("Summary error: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.HFAPIKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: s.cfg.SummaryTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Sprintf("Summary error: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Summary failed: %s", string(body))
	}

	var out []hfSummary
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Sprintf("Summary error: %v", err)
	}
	if len(out) == 0 || out[0].SummaryText == "" {
		return "No summary returned."
	}
	return out[0].SummaryText
}
