package coda

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yourorg/pmctl/internal/export"
	"github.com/yourorg/pmctl/internal/logging"
)

// pageExport adapts one page's export endpoints to export.Source.
type pageExport struct {
	client *Client
	docID  string
	pageID string
}

func (p pageExport) Status(ctx context.Context, jobID string) (export.Job, error) {
	var job export.Job
	path := endpoint("docs", p.docID, "pages", p.pageID, "export", jobID)
	if err := p.client.api.Do(ctx, http.MethodGet, path, nil, nil, &job); err != nil {
		return export.Job{}, err
	}
	return job, nil
}

func (p pageExport) Download(ctx context.Context, link string) ([]byte, error) {
	return p.client.api.Download(ctx, link)
}

// StartExport requests an asynchronous export of a page.
func (c *Client) StartExport(ctx context.Context, docID, pageID string, format Format) (export.Job, error) {
	if docID == "" {
		return export.Job{}, errEmptyDocID
	}
	var job export.Job
	path := endpoint("docs", docID, "pages", pageID, "export")
	if err := c.api.Do(ctx, http.MethodPost, path, nil, exportRequest{OutputFormat: format}, &job); err != nil {
		return export.Job{}, err
	}
	return job, nil
}

// ExportPage exports a page and returns the rendered content.
func (c *Client) ExportPage(ctx context.Context, docID, pageID string, format Format) ([]byte, error) {
	job, err := c.StartExport(ctx, docID, pageID, format)
	if err != nil {
		return nil, fmt.Errorf("start export: %w", err)
	}
	logging.OrDiscard(c.log).Debug("export started", "page", pageID, "job", job.ID, logging.KeyStatus, job.Status)

	content, err := c.poller.Await(ctx, pageExport{client: c, docID: docID, pageID: pageID}, job)
	if err != nil {
		return nil, fmt.Errorf("export page %s: %w", pageID, err)
	}
	return content, nil
}
