package codacli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/coda"
	"github.com/yourorg/pmctl/internal/prompt"
	"github.com/yourorg/pmctl/internal/render"
)

const contentPreviewLen = 100

// ErrUpdateCancelled is returned when the user declines the confirmation.
var ErrUpdateCancelled = errors.New("update cancelled")

type updatePageOptions struct {
	content  string
	format   string
	mode     string
	name     string
	subtitle string
	yes      bool
}

func newUpdatePageCmd(globals *globalOptions) *cobra.Command {
	opts := &updatePageOptions{
		format: string(coda.FormatMarkdown),
		mode:   string(coda.ModeReplace),
	}

	cmd := &cobra.Command{
		Use:   "update-page <doc-url-or-id> <page-id-or-name>",
		Short: "Rename a page or replace/append its content",
		Long: "Rename a page or replace/append its content.\n\n" +
			"The planned changes are shown and confirmed before anything is sent;\n" +
			"pass --yes to skip the prompt.",
		Example: `  codactl update-page ejBp5P1ahr "My Page" --name "Renamed Page"
  codactl update-page ejBp5P1ahr "My Page" --content "# New content"
  echo "More content" | codactl update-page ejBp5P1ahr "My Page" --content - --mode append --yes`,
		Args: cobra.ExactArgs(2),
		RunE: opts.run(globals),
	}

	cmd.Flags().StringVar(&opts.content, "content", "", "New page content (- reads stdin)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Content format: markdown|html")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "Content insertion: replace|append")
	cmd.Flags().StringVar(&opts.name, "name", "", "New page name")
	cmd.Flags().StringVar(&opts.subtitle, "subtitle", "", "New page subtitle (empty clears it)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (opts *updatePageOptions) run(globals *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		format, err := coda.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		mode, err := coda.ParseInsertionMode(opts.mode)
		if err != nil {
			return err
		}
		docID := coda.ExtractDocID(args[0])

		client, err := buildClient(cmd, globals)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		page, err := resolvePage(ctx, client, docID, args[1])
		if err != nil {
			return err
		}

		content, err := readContent(cmd, opts.content)
		if err != nil {
			return err
		}

		req := coda.UpdatePageRequest{Name: opts.name}
		if cmd.Flags().Changed("subtitle") {
			subtitle := opts.subtitle
			req.Subtitle = &subtitle
		}
		if content != "" {
			req.ContentUpdate = &coda.ContentUpdate{
				InsertionMode: mode,
				CanvasContent: coda.CanvasContent{Format: format, Content: content},
			}
		}
		if req.Empty() {
			return errors.New("no updates specified: use --name, --subtitle or --content")
		}

		p := render.NewPrinter(cmd.OutOrStdout())
		describeUpdate(p, docID, page, req)
		if err := p.Err(); err != nil {
			return err
		}

		if !opts.yes {
			ok, err := prompt.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "\nDo you want to proceed with this update?")
			if err != nil {
				return err
			}
			if !ok {
				return ErrUpdateCancelled
			}
		}

		p.Blank()
		p.Linef("Updating page...")
		updated, err := client.UpdatePage(ctx, docID, page.ID, req)
		if err != nil {
			return fmt.Errorf("update page: %w", err)
		}

		p.Blank()
		p.Linef("Page updated successfully!")
		p.Linef("Name: %s", render.OrDefault(updated.Name, render.OrDefault(req.Name, page.Name)))
		p.Linef("ID: %s", render.OrDefault(updated.ID, page.ID))
		p.Linef("URL: %s", render.OrDefault(updated.BrowserLink, render.OrDefault(page.BrowserLink, notAvailable)))
		return p.Err()
	}
}

func describeUpdate(p *render.Printer, docID string, page coda.Page, req coda.UpdatePageRequest) {
	p.Blank()
	p.Linef("About to update page '%s' in doc %s", page.Name, docID)
	p.Linef("Page URL: %s", render.OrDefault(page.BrowserLink, notAvailable))
	p.Blank()
	p.Linef("Changes:")
	if req.Name != "" {
		p.Linef("  - Rename to: %s", req.Name)
	}
	if req.Subtitle != nil {
		p.Linef("  - Update subtitle: %s", *req.Subtitle)
	}
	if cu := req.ContentUpdate; cu != nil {
		action := "Replace"
		if cu.InsertionMode == coda.ModeAppend {
			action = "Append to"
		}
		text := cu.CanvasContent.Content
		p.Linef("  - %s content (%d chars): %s", action, len([]rune(text)), render.Truncate(text, contentPreviewLen))
	}
}
