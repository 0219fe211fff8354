// =============================================================================
// listing_rss.go - RSS listing source
// =============================================================================
//
// Alternative listing stage reading the SEBI RSS feed instead of scraping the
// index table. The feed carries the same announcements; -source=rss selects
// it. Entries map onto the same ListingEntry shape so the rest of the
// pipeline is unchanged.
//
// =============================================================================
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// listingDateFormat matches the date column of the HTML index, so both
// sources produce interchangeable entries.
const listingDateFormat = "02-Jan-2006"

// LatestEntryRSS fetches the announcements feed and returns its newest item.
func (f *ListingFetcher) LatestEntryRSS(ctx context.Context) (*ListingEntry, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.cfg.RSSURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.cfg.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	fp := gofeed.NewParser()
	feed, err := fp.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("RSS parse failed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("no items in announcements feed")
	}

	item := feed.Items[0]
	title := normalizeWhitespace(item.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: empty feed title", ErrMalformedRow)
	}

	date := ""
	if item.PublishedParsed != nil {
		date = item.PublishedParsed.Format(listingDateFormat)
	} else if item.Published != "" {
		if t, err := time.Parse(time.RFC1123Z, item.Published); err == nil {
			date = t.Format(listingDateFormat)
		} else {
			date = strings.TrimSpace(item.Published)
		}
	}

	category := "Announcement"
	if len(item.Categories) > 0 && strings.TrimSpace(item.Categories[0]) != "" {
		category = strings.TrimSpace(item.Categories[0])
	}

	return &ListingEntry{
		Date:       date,
		Category:   category,
		Title:      title,
		DetailLink: resolveURL(f.cfg.RSSURL, item.Link),
	}, nil
}
