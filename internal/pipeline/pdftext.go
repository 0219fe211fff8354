// =============================================================================
// pdftext.go - PDF text extraction
// =============================================================================
package pipeline

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText parses a PDF payload and returns the per-page text joined with
// newlines. Pages that yield nothing contribute an empty element. Any
// reader-level failure returns "" rather than an error: downstream, an empty
// string already means "nothing to summarize or send", and the caller checks
// exactly that.
func ExtractText(data []byte) (out string) {
	// The underlying parser signals malformed structures by panicking.
	defer func() {
		if r := recover(); r != nil {
			warnf("PDF parsing panic: %v", r)
			out = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		warnf("PDF parsing error: %v", err)
		return ""
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		text := ""
		if !page.V.IsNull() {
			if t, err := page.GetPlainText(nil); err == nil {
				text = t
			}
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n")
}
