package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes aligned columns.
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, headers ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	t.row(headers...)
	return t
}

func (t *table) row(cols ...string) {
	fmt.Fprintln(t.tw, strings.Join(cols, "\t"))
}

func (t *table) flush() error {
	return t.tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// emit prints v as JSON, or text otherwise.
func (o *rootOptions) emit(w io.Writer, v any, text string, args ...any) error {
	if o.jsonOut {
		return writeJSON(w, v)
	}
	_, err := fmt.Fprintf(w, text+"\n", args...)
	return err
}
