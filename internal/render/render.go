// Package render provides helpers for formatting CLI output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const (
	tabWriterMinWidth = 0
	tabWriterTabWidth = 2
	tabWriterPadding  = 2
	tabWriterFlags    = 0

	ellipsis = "..."
)

// Output formats shared by the CLIs.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

// JSON writes the supplied value as indented JSON.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Table renders the provided headers and rows via a tabwriter.
func Table(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, tabWriterMinWidth, tabWriterTabWidth, tabWriterPadding, ' ', tabWriterFlags)
	if len(headers) > 0 {
		if err := writeRow(tw, headers); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := writeRow(tw, row); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}

func writeRow(w io.Writer, columns []string) error {
	if len(columns) == 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
		return nil
	}

	line := strings.Join(columns, "\t")
	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// Truncate shortens s to at most limit runes, marking the cut with "...".
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if limit < 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}

// OrDefault returns fallback when s is empty.
func OrDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Printer writes lines and keeps the first write error so callers can check
// once at the end.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter wraps w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Linef writes a formatted line followed by a newline.
func (p *Printer) Linef(format string, args ...any) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.w, format+"\n", args...); err != nil {
		p.err = fmt.Errorf("write output: %w", err)
	}
}

// Blank writes an empty line.
func (p *Printer) Blank() {
	p.Linef("")
}

// Err returns the first write error.
func (p *Printer) Err() error {
	return p.err
}
