package codacli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/coda"
	"github.com/yourorg/pmctl/internal/render"
)

type getTableOptions struct {
	limit int
}

func newGetTableCmd(globals *globalOptions) *cobra.Command {
	opts := &getTableOptions{limit: coda.DefaultListLimit}

	cmd := &cobra.Command{
		Use:   "get-table <doc-url-or-id> <table-id-or-name>",
		Short: "Show a table's columns and rows",
		Args:  cobra.ExactArgs(2),
		RunE:  opts.run(globals),
	}

	cmd.Flags().IntVar(&opts.limit, "limit", opts.limit, "Maximum number of rows to return")

	return cmd
}

func (opts *getTableOptions) run(globals *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		docID := coda.ExtractDocID(args[0])

		client, err := buildClient(cmd, globals)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		table, err := resolveTable(ctx, client, docID, args[1])
		if err != nil {
			return err
		}
		columns, err := client.ListColumns(ctx, docID, table.ID)
		if err != nil {
			return fmt.Errorf("list columns: %w", err)
		}
		rows, err := client.ListRows(ctx, docID, table.ID, opts.limit)
		if err != nil {
			return fmt.Errorf("list rows: %w", err)
		}

		p := render.NewPrinter(cmd.OutOrStdout())
		p.Linef("Table: %s", table.Name)
		p.Linef("ID: %s", table.ID)
		p.Blank()
		p.Linef("Columns:")
		for _, col := range columns {
			p.Linef("  - %s", col.Name)
		}

		p.Blank()
		p.Linef("Rows (showing %d):", len(rows))
		for _, row := range rows {
			p.Blank()
			p.Linef("Row ID: %s", row.ID)
			for _, name := range valueOrder(columns, row.Values) {
				p.Linef("  %s: %s", name, formatValue(row.Values[name]))
			}
		}
		return p.Err()
	}
}

// valueOrder lists value keys in column order, then any extra keys sorted.
func valueOrder(columns []coda.Column, values map[string]any) []string {
	order := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, col := range columns {
		if _, ok := values[col.Name]; ok && !seen[col.Name] {
			order = append(order, col.Name)
			seen[col.Name] = true
		}
	}

	var extra []string
	for name := range values {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
