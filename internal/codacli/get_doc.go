package codacli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/coda"
	"github.com/yourorg/pmctl/internal/render"
)

func newGetDocCmd(globals *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get-doc <doc-url-or-id>",
		Short: "Show a doc with its pages and tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID := coda.ExtractDocID(args[0])

			client, err := buildClient(cmd, globals)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			p := render.NewPrinter(cmd.OutOrStdout())
			p.Linef("Fetching doc: %s", docID)
			p.Blank()

			doc, err := client.GetDoc(ctx, docID)
			if err != nil {
				return fmt.Errorf("get doc: %w", err)
			}
			p.Linef("Name: %s", doc.Name)
			p.Linef("ID: %s", doc.ID)
			p.Linef("URL: %s", render.OrDefault(doc.BrowserLink, notAvailable))
			p.Linef("Owner: %s", render.OrDefault(doc.Owner, notAvailable))
			if doc.Folder != nil {
				p.Linef("Folder: %s", render.OrDefault(doc.Folder.Name, notAvailable))
			}
			p.Linef("Created: %s", render.OrDefault(doc.CreatedAt, notAvailable))
			p.Linef("Updated: %s", render.OrDefault(doc.UpdatedAt, notAvailable))
			p.Linef("Published: %t", doc.Published != nil)

			pages, err := client.ListPages(ctx, docID)
			if err != nil {
				return fmt.Errorf("list pages: %w", err)
			}
			p.Blank()
			p.Linef("--- Pages ---")
			if len(pages) == 0 {
				p.Linef("  No pages found.")
			}
			for _, page := range pages {
				p.Linef("  - %s (ID: %s)", page.Name, page.ID)
			}

			tables, err := client.ListTables(ctx, docID)
			if err != nil {
				return fmt.Errorf("list tables: %w", err)
			}
			p.Blank()
			p.Linef("--- Tables ---")
			if len(tables) == 0 {
				p.Linef("  No tables found.")
			}
			for _, table := range tables {
				p.Linef("  - %s (ID: %s)", table.Name, table.ID)
			}
			return p.Err()
		},
	}
}
