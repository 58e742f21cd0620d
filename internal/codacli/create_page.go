package codacli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/coda"
	"github.com/yourorg/pmctl/internal/render"
)

type createPageOptions struct {
	content  string
	format   string
	subtitle string
	parent   string
}

func newCreatePageCmd(globals *globalOptions) *cobra.Command {
	opts := &createPageOptions{format: string(coda.FormatMarkdown)}

	cmd := &cobra.Command{
		Use:   "create-page <doc-url-or-id> <name>",
		Short: "Create a new page in a doc",
		Example: `  codactl create-page ejBp5P1ahr "My New Page"
  codactl create-page ejBp5P1ahr "My New Page" --content "# Hello World"
  echo "# My Content" | codactl create-page ejBp5P1ahr "My New Page" --content -`,
		Args: cobra.ExactArgs(2),
		RunE: opts.run(globals),
	}

	cmd.Flags().StringVar(&opts.content, "content", "", "Initial page content (- reads stdin)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Content format: markdown|html")
	cmd.Flags().StringVar(&opts.subtitle, "subtitle", "", "Page subtitle")
	cmd.Flags().StringVar(&opts.parent, "parent", "", "Parent page ID or name")

	return cmd
}

func (opts *createPageOptions) run(globals *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		format, err := coda.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		docID, name := coda.ExtractDocID(args[0]), args[1]

		content, err := readContent(cmd, opts.content)
		if err != nil {
			return err
		}

		client, err := buildClient(cmd, globals)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		req := coda.CreatePageRequest{Name: name, Subtitle: opts.subtitle}
		if opts.parent != "" {
			parent, err := resolvePage(ctx, client, docID, opts.parent)
			if err != nil {
				return fmt.Errorf("resolve parent: %w", err)
			}
			req.ParentPageID = parent.ID
		}
		if content != "" {
			req.PageContent = coda.NewCanvas(format, content)
		}

		p := render.NewPrinter(cmd.OutOrStdout())
		p.Linef("Creating page '%s' in doc %s...", name, docID)

		created, err := client.CreatePage(ctx, docID, req)
		if err != nil {
			return fmt.Errorf("create page: %w", err)
		}

		p.Blank()
		p.Linef("Page created successfully!")
		p.Linef("Name: %s", render.OrDefault(created.Name, name))
		p.Linef("ID: %s", render.OrDefault(created.ID, notAvailable))
		p.Linef("URL: %s", render.OrDefault(created.BrowserLink, notAvailable))
		return p.Err()
	}
}
