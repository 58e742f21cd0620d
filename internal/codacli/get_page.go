package codacli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/coda"
	"github.com/yourorg/pmctl/internal/render"
)

func newGetPageCmd(globals *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get-page <doc-url-or-id> <page-id-or-name>",
		Short: "Show a page's metadata",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID := coda.ExtractDocID(args[0])

			client, err := buildClient(cmd, globals)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			target, err := resolvePage(ctx, client, docID, args[1])
			if err != nil {
				return err
			}
			page, err := client.GetPage(ctx, docID, target.ID)
			if err != nil {
				return fmt.Errorf("get page: %w", err)
			}

			p := render.NewPrinter(cmd.OutOrStdout())
			p.Linef("Page: %s", page.Name)
			p.Linef("ID: %s", page.ID)
			p.Linef("URL: %s", render.OrDefault(page.BrowserLink, notAvailable))
			if page.Subtitle != "" {
				p.Linef("Subtitle: %s", page.Subtitle)
			}
			if page.Parent != nil {
				p.Linef("Parent: %s (ID: %s)", page.Parent.Name, page.Parent.ID)
			}
			p.Blank()
			p.Linef("Content Type: %s", render.OrDefault(page.ContentType, notAvailable))
			p.Blank()
			p.Linef("Use get-page-content to export the page body as markdown or html.")
			return p.Err()
		},
	}
}
