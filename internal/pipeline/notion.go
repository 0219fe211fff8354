// =============================================================================
// notion.go - Notion archive
// =============================================================================
//
// Optional side channel: when NOTION_TOKEN and NOTION_DATABASE_ID are set,
// every successfully notified announcement is also clipped to a Notion
// database (title, document URL, date, category, summary). Archive failures
// are logged by the orchestrator and never affect notification or state.
//
// =============================================================================
package pipeline

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
)

// notionTextLimit is Notion's rich-text property size cap.
const notionTextLimit = 2000

// Archiver clips processed announcements into a Notion database.
type Archiver struct {
	client *notionapi.Client
	dbID   notionapi.DatabaseID
}

// NewArchiver creates an archiver. Both the token and the database ID are
// required; the watcher only constructs one when they are configured.
func NewArchiver(token, databaseID string) (*Archiver, error) {
	if token == "" {
		return nil, fmt.Errorf("NOTION_TOKEN is required")
	}
	if databaseID == "" {
		return nil, fmt.Errorf("NOTION_DATABASE_ID is required")
	}
	return &Archiver{
		client: notionapi.NewClient(notionapi.Token(token)),
		dbID:   notionapi.DatabaseID(databaseID),
	}, nil
}

// ArchiveAnnouncement creates one database page for a notified announcement.
func (a *Archiver) ArchiveAnnouncement(ctx context.Context, entry *ListingEntry, summary, docURL string) error {
	properties := notionapi.Properties{
		"Title": notionapi.TitleProperty{
			Type: notionapi.PropertyTypeTitle,
			Title: []notionapi.RichText{
				{Text: &notionapi.Text{Content: entry.Title}},
			},
		},
		"URL": notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  docURL,
		},
		"Date": notionapi.RichTextProperty{
			Type: notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: entry.Date}},
			},
		},
		"Category": notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: entry.Category},
		},
	}

	if summary != "" {
		properties["Summary"] = notionapi.RichTextProperty{
			Type: notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: truncateRunes(summary, notionTextLimit)}},
			},
		}
	}

	pageRequest := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: a.dbID,
		},
		Properties: properties,
	}

	if _, err := a.client.Page.Create(ctx, pageRequest); err != nil {
		return fmt.Errorf("failed to archive announcement: %w", err)
	}
	return nil
}
