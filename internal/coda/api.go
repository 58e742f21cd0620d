package coda

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yourorg/pmctl/internal/paginate"
)

const (
	// DefaultListLimit caps ListDocs and ListRows when no limit is given.
	DefaultListLimit = 20

	firstPageLimit = 100
)

var errEmptyDocID = errors.New("doc ID cannot be empty")

// ListDocsOptions narrows ListDocs.
type ListDocsOptions struct {
	Query string
	Limit int
}

// ListDocs returns one page of the caller's docs.
func (c *Client) ListDocs(ctx context.Context, opts ListDocsOptions) ([]Doc, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	q := url.Values{"limit": []string{strconv.Itoa(limit)}}
	if query := strings.TrimSpace(opts.Query); query != "" {
		q.Set("query", query)
	}

	var resp listResponse[Doc]
	if err := c.api.Do(ctx, http.MethodGet, "docs", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetDoc returns doc metadata.
func (c *Client) GetDoc(ctx context.Context, docID string) (Doc, error) {
	if docID == "" {
		return Doc{}, errEmptyDocID
	}
	var doc Doc
	if err := c.api.Do(ctx, http.MethodGet, endpoint("docs", docID), nil, nil, &doc); err != nil {
		return Doc{}, err
	}
	return doc, nil
}

// ListPages returns every page in a doc.
func (c *Client) ListPages(ctx context.Context, docID string) ([]Page, error) {
	if docID == "" {
		return nil, errEmptyDocID
	}
	return listAll[Page](ctx, c, endpoint("docs", docID, "pages"))
}

// GetPage returns one page's metadata.
func (c *Client) GetPage(ctx context.Context, docID, pageID string) (Page, error) {
	if docID == "" {
		return Page{}, errEmptyDocID
	}
	var page Page
	if err := c.api.Do(ctx, http.MethodGet, endpoint("docs", docID, "pages", pageID), nil, nil, &page); err != nil {
		return Page{}, err
	}
	return page, nil
}

// ListTables returns every table and view in a doc.
func (c *Client) ListTables(ctx context.Context, docID string) ([]Table, error) {
	if docID == "" {
		return nil, errEmptyDocID
	}
	return listAll[Table](ctx, c, endpoint("docs", docID, "tables"))
}

// ListColumns returns every column of a table.
func (c *Client) ListColumns(ctx context.Context, docID, tableID string) ([]Column, error) {
	if docID == "" {
		return nil, errEmptyDocID
	}
	return listAll[Column](ctx, c, endpoint("docs", docID, "tables", tableID, "columns"))
}

// ListRows returns up to limit rows of a table with values keyed by column
// name.
func (c *Client) ListRows(ctx context.Context, docID, tableID string, limit int) ([]Row, error) {
	if docID == "" {
		return nil, errEmptyDocID
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	q := url.Values{
		"limit":          []string{strconv.Itoa(limit)},
		"useColumnNames": []string{"true"},
	}

	var resp listResponse[Row]
	if err := c.api.Do(ctx, http.MethodGet, endpoint("docs", docID, "tables", tableID, "rows"), q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// WhoAmI returns the user that owns the token.
func (c *Client) WhoAmI(ctx context.Context) (User, error) {
	var user User
	if err := c.api.Do(ctx, http.MethodGet, "whoami", nil, nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// CreatePage adds a page to a doc.
func (c *Client) CreatePage(ctx context.Context, docID string, req CreatePageRequest) (PageMutation, error) {
	if docID == "" {
		return PageMutation{}, errEmptyDocID
	}
	if strings.TrimSpace(req.Name) == "" {
		return PageMutation{}, errors.New("page name cannot be empty")
	}
	var out PageMutation
	if err := c.api.Do(ctx, http.MethodPost, endpoint("docs", docID, "pages"), nil, req, &out); err != nil {
		return PageMutation{}, err
	}
	return out, nil
}

// UpdatePage changes a page's name, subtitle or content.
func (c *Client) UpdatePage(ctx context.Context, docID, pageID string, req UpdatePageRequest) (PageMutation, error) {
	if docID == "" {
		return PageMutation{}, errEmptyDocID
	}
	if req.Empty() {
		return PageMutation{}, errors.New("no updates specified")
	}
	var out PageMutation
	if err := c.api.Do(ctx, http.MethodPut, endpoint("docs", docID, "pages", pageID), nil, req, &out); err != nil {
		return PageMutation{}, err
	}
	return out, nil
}

// listAll follows nextPageToken. Only the first request carries a limit;
// continuation requests send the token alone.
func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	items, err := paginate.All[T](ctx, func(ctx context.Context, token string) (paginate.Page[T], error) {
		q := url.Values{}
		if token == "" {
			q.Set("limit", strconv.Itoa(firstPageLimit))
		} else {
			q.Set("pageToken", token)
		}

		var resp listResponse[T]
		if err := c.api.Do(ctx, http.MethodGet, path, q, nil, &resp); err != nil {
			return paginate.Page[T]{}, err
		}
		return paginate.Page[T]{Items: resp.Items, NextToken: resp.NextPageToken}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	return items, nil
}
