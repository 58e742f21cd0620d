package codacli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/coda"
)

type getPageContentOptions struct {
	format string
}

func newGetPageContentCmd(globals *globalOptions) *cobra.Command {
	opts := &getPageContentOptions{format: string(coda.FormatMarkdown)}

	cmd := &cobra.Command{
		Use:   "get-page-content <doc-url-or-id> <page-id-or-name>",
		Short: "Export and print a page's content",
		Long: "Export and print a page's content.\n\n" +
			"Coda renders the page asynchronously; the command polls until the export\n" +
			"finishes and prints the result to stdout.",
		Args: cobra.ExactArgs(2),
		RunE: opts.run(globals),
	}

	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format: markdown|html")

	return cmd
}

func (opts *getPageContentOptions) run(globals *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		format, err := coda.ParseFormat(opts.format)
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

		if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "Exporting page '%s' as %s...\n", page.Name, format); err != nil {
			return fmt.Errorf("write progress: %w", err)
		}

		content, err := client.ExportPage(ctx, docID, page.ID, format)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(cmd.OutOrStdout(), ensureNewline(string(content))); err != nil {
			return fmt.Errorf("write content: %w", err)
		}
		return nil
	}
}
