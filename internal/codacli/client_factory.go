package codacli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/coda"
	"github.com/yourorg/pmctl/internal/config"
	"github.com/yourorg/pmctl/internal/lookup"
)

func buildClient(cmd *cobra.Command, globals *globalOptions) (*coda.Client, error) {
	path, err := config.ResolvePath(globals.configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadCoda(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return coda.NewClient(coda.ClientConfig{
		Token:   cfg.APIToken,
		BaseURL: globals.baseURL,
		Logger:  globals.logger(cmd),
		Limiter: globals.limiter,
		Poller:  globals.poller,
	})
}

func pageEntry(p coda.Page) lookup.Entry {
	return lookup.Entry{ID: p.ID, Name: p.Name}
}

func tableEntry(t coda.Table) lookup.Entry {
	return lookup.Entry{ID: t.ID, Name: t.Name}
}

// resolvePage lists every page of the doc and matches query by ID or name.
func resolvePage(ctx context.Context, client *coda.Client, docID, query string) (coda.Page, error) {
	pages, err := client.ListPages(ctx, docID)
	if err != nil {
		return coda.Page{}, fmt.Errorf("list pages: %w", err)
	}
	return lookup.NewIndex("page", pages, pageEntry).Find(query)
}

func resolveTable(ctx context.Context, client *coda.Client, docID, query string) (coda.Table, error) {
	tables, err := client.ListTables(ctx, docID)
	if err != nil {
		return coda.Table{}, fmt.Errorf("list tables: %w", err)
	}
	return lookup.NewIndex("table", tables, tableEntry).Find(query)
}

// readContent returns value, or all of stdin when value is "-".
func readContent(cmd *cobra.Command, value string) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read content from stdin: %w", err)
	}
	return string(data), nil
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
