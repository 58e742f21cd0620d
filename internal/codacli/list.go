package codacli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/coda"
	"github.com/yourorg/pmctl/internal/render"
)

const notAvailable = "N/A"

type listOptions struct {
	query  string
	format string
	limit  int
}

func newListCmd(globals *globalOptions) *cobra.Command {
	opts := &listOptions{limit: coda.DefaultListLimit, format: render.FormatText}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your Coda docs",
		Args:  cobra.NoArgs,
		RunE:  opts.run(globals),
	}

	cmd.Flags().IntVar(&opts.limit, "limit", opts.limit, "Maximum number of docs to return")
	cmd.Flags().StringVar(&opts.query, "query", "", "Search query to filter docs")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format: text|table|json")

	return cmd
}

func (opts *listOptions) run(globals *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		switch opts.format {
		case render.FormatText, render.FormatTable, render.FormatJSON:
		default:
			return fmt.Errorf("unknown format %q (expected text, table or json)", opts.format)
		}

		client, err := buildClient(cmd, globals)
		if err != nil {
			return err
		}

		docs, err := client.ListDocs(cmd.Context(), coda.ListDocsOptions{Limit: opts.limit, Query: opts.query})
		if err != nil {
			return fmt.Errorf("list docs: %w", err)
		}

		switch opts.format {
		case render.FormatJSON:
			return render.JSON(cmd.OutOrStdout(), docs)
		case render.FormatTable:
			return render.Table(cmd.OutOrStdout(), []string{"ID", "Name", "Folder", "Updated"}, docTableRows(docs))
		}

		p := render.NewPrinter(cmd.OutOrStdout())
		if len(docs) == 0 {
			p.Linef("No docs found.")
			return p.Err()
		}
		p.Linef("Found %d doc(s):", len(docs))
		p.Blank()
		for _, doc := range docs {
			p.Linef("Name: %s", doc.Name)
			p.Linef("ID: %s", doc.ID)
			p.Linef("URL: %s", render.OrDefault(doc.BrowserLink, notAvailable))
			if doc.Folder != nil {
				p.Linef("Folder: %s", render.OrDefault(doc.Folder.Name, notAvailable))
			}
			p.Linef("Created: %s", render.OrDefault(doc.CreatedAt, notAvailable))
			p.Linef("Updated: %s", render.OrDefault(doc.UpdatedAt, notAvailable))
			p.Blank()
		}
		return p.Err()
	}
}

func docTableRows(docs []coda.Doc) [][]string {
	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		folder := ""
		if doc.Folder != nil {
			folder = doc.Folder.Name
		}
		rows = append(rows, []string{doc.ID, doc.Name, folder, doc.UpdatedAt})
	}
	return rows
}
