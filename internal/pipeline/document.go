// =============================================================================
// document.go - Document locator and retriever
// =============================================================================
//
// Resolves the downloadable PDF behind an announcement detail page and
// fetches its bytes.
//
// Detail pages embed their document one of two ways:
//
//   <embed type="application/pdf" src="...">    preferred, when src mentions .pdf
//   <iframe src="...">                          fallback
//
// Either reference may itself be a viewer URL carrying the real document
// location in a "file" query parameter; that value is already absolute and is
// returned verbatim rather than re-joined against the page URL.
//
// =============================================================================
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrNoDocument means the detail page has no embed/iframe PDF reference.
	ErrNoDocument = errors.New("no embedded document reference found")

	// ErrNotPDF means the downloaded content does not carry the PDF signature
	// within its first kilobyte. Guards against HTML error pages served with
	// a 200 status.
	ErrNotPDF = errors.New("content is not a PDF document")
)

// pdfSniffWindow bounds how far into the payload the signature may appear.
const pdfSniffWindow = 1024

var pdfSignature = []byte("%PDF")

// DocumentResolver locates and downloads announcement documents.
type DocumentResolver struct {
	cfg *Config
}

// NewDocumentResolver returns a resolver bound to the given configuration.
func NewDocumentResolver(cfg *Config) *DocumentResolver {
	return &DocumentResolver{cfg: cfg}
}

// LocateDocument fetches the detail page and resolves the document URL.
func (r *DocumentResolver) LocateDocument(ctx context.Context, detailURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", detailURL, nil)
	if err != nil {
		return "", fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	resp, err := r.cfg.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse HTML failed: %w", err)
	}

	return resolveDocumentRef(doc, detailURL)
}

// resolveDocumentRef picks the raw viewer reference out of the parsed page
// and turns it into a downloadable URL.
func resolveDocumentRef(doc *goquery.Document, detailURL string) (string, error) {
	raw := ""
	if src, ok := doc.Find(`embed[type="application/pdf"]`).First().Attr("src"); ok && strings.Contains(src, ".pdf") {
		raw = src
	}
	if raw == "" {
		if src, ok := doc.Find("iframe").First().Attr("src"); ok {
			raw = src
		}
	}
	if strings.TrimSpace(raw) == "" {
		return "", ErrNoDocument
	}

	// Viewer URLs carry the real document location in ?file=...; that value
	// is already absolute, return it as-is.
	if u, err := url.Parse(raw); err == nil {
		if file := u.Query().Get("file"); file != "" {
			return file, nil
		}
	}

	resolved := resolveURL(detailURL, raw)
	if resolved == "" {
		return "", fmt.Errorf("%w: unresolvable reference %q", ErrNoDocument, raw)
	}
	return resolved, nil
}

// DownloadDocument fetches the document and validates the PDF signature.
// The status code is deliberately ignored; the byte sniff is the arbiter.
func (r *DocumentResolver) DownloadDocument(ctx context.Context, docURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", docURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	resp, err := r.cfg.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}

	head := data
	if len(head) > pdfSniffWindow {
		head = head[:pdfSniffWindow]
	}
	if !bytes.Contains(head, pdfSignature) {
		return nil, ErrNotPDF
	}
	return data, nil
}
