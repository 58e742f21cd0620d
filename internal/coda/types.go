package coda

import (
	"fmt"
	"strings"
)

// Reference is a compact pointer to another Coda object.
type Reference struct {
	ID          string `json:"id"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name,omitempty"`
	BrowserLink string `json:"browserLink,omitempty"`
}

// Publishing is present on docs that have been published.
type Publishing struct {
	BrowserLink  string `json:"browserLink,omitempty"`
	Discoverable bool   `json:"discoverable"`
}

// Doc is a Coda document.
type Doc struct {
	Folder      *Reference  `json:"folder,omitempty"`
	Workspace   *Reference  `json:"workspace,omitempty"`
	Published   *Publishing `json:"published,omitempty"`
	ID          string      `json:"id"`
	Type        string      `json:"type,omitempty"`
	Name        string      `json:"name"`
	BrowserLink string      `json:"browserLink,omitempty"`
	Owner       string      `json:"owner,omitempty"`
	OwnerName   string      `json:"ownerName,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	UpdatedAt   string      `json:"updatedAt,omitempty"`
}

// Page is a canvas page within a doc.
type Page struct {
	Parent      *Reference  `json:"parent,omitempty"`
	ID          string      `json:"id"`
	Type        string      `json:"type,omitempty"`
	Name        string      `json:"name"`
	Subtitle    string      `json:"subtitle,omitempty"`
	BrowserLink string      `json:"browserLink,omitempty"`
	ContentType string      `json:"contentType,omitempty"`
	Children    []Reference `json:"children,omitempty"`
}

// Table is a table or view within a doc.
type Table struct {
	ID          string `json:"id"`
	Type        string `json:"type,omitempty"`
	TableType   string `json:"tableType,omitempty"`
	Name        string `json:"name"`
	BrowserLink string `json:"browserLink,omitempty"`
	RowCount    int    `json:"rowCount,omitempty"`
}

// Column is a table column.
type Column struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Display    bool   `json:"display,omitempty"`
	Calculated bool   `json:"calculated,omitempty"`
}

// Row is a table row. Values are keyed by column name.
type Row struct {
	Values      map[string]any `json:"values"`
	ID          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	BrowserLink string         `json:"browserLink,omitempty"`
	Index       int            `json:"index,omitempty"`
}

// User is the identity behind the API token.
type User struct {
	Workspace *Reference `json:"workspace,omitempty"`
	Name      string     `json:"name"`
	LoginID   string     `json:"loginId"`
	Type      string     `json:"type,omitempty"`
}

// Format is a content or export format.
type Format string

// Supported formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMarkdown, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want markdown or html)", s)
	}
}

// InsertionMode controls how UpdatePage applies new content.
type InsertionMode string

// Supported insertion modes.
const (
	ModeReplace InsertionMode = "replace"
	ModeAppend  InsertionMode = "append"
)

// ParseInsertionMode validates an insertion mode.
func ParseInsertionMode(s string) (InsertionMode, error) {
	switch m := InsertionMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeReplace, ModeAppend:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want replace or append)", s)
	}
}

// CanvasContent is page body text in a given format.
type CanvasContent struct {
	Format  Format `json:"format"`
	Content string `json:"content"`
}

// PageContent is the initial body of a new page.
type PageContent struct {
	Type          string        `json:"type"`
	CanvasContent CanvasContent `json:"canvasContent"`
}

// ContentUpdate replaces or extends a page body.
type ContentUpdate struct {
	InsertionMode InsertionMode `json:"insertionMode"`
	CanvasContent CanvasContent `json:"canvasContent"`
}

// CreatePageRequest is the body of POST /docs/{doc}/pages.
type CreatePageRequest struct {
	PageContent  *PageContent `json:"pageContent,omitempty"`
	Name         string       `json:"name"`
	Subtitle     string       `json:"subtitle,omitempty"`
	ParentPageID string       `json:"parentPageId,omitempty"`
}

// NewCanvas wraps content for CreatePageRequest.PageContent.
func NewCanvas(format Format, content string) *PageContent {
	return &PageContent{Type: "canvas", CanvasContent: CanvasContent{Format: format, Content: content}}
}

// UpdatePageRequest is the body of PUT /docs/{doc}/pages/{page}. A non-nil
// empty Subtitle clears the subtitle.
type UpdatePageRequest struct {
	Subtitle      *string        `json:"subtitle,omitempty"`
	ContentUpdate *ContentUpdate `json:"contentUpdate,omitempty"`
	Name          string         `json:"name,omitempty"`
}

// Empty reports whether the request changes nothing.
func (r UpdatePageRequest) Empty() bool {
	return r.Name == "" && r.Subtitle == nil && r.ContentUpdate == nil
}

// PageMutation is the acknowledgement of a page create or update.
type PageMutation struct {
	RequestID   string `json:"requestId,omitempty"`
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	BrowserLink string `json:"browserLink,omitempty"`
}

type listResponse[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

type exportRequest struct {
	OutputFormat Format `json:"outputFormat"`
}
