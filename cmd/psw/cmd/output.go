package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	domain "github.com/donaldgifford/property-search/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printListingsTable(w io.Writer, res *domain.SearchResults) error {
	tw := newTabWriter(w)
	if res.Message != "" {
		tw.writef("%s\n\n", res.Message)
	}
	tw.writef("ID\tTITLE\tBEDS\tBATHS\tGUESTS\tCITY\n")
	items := res.Items()
	for i := range items {
		tw.writef("%d\t%s\t%g\t%g\t%d\t%s\n",
			items[i].ID,
			truncate(items[i].Title, 40),
			items[i].Beds,
			items[i].Baths,
			items[i].Accommodates,
			items[i].CityName,
		)
	}
	if p := res.PagiInfo; p != nil {
		tw.writef("\nPage %d of %d (%d listings)\n", p.Page, p.TotalPages(), p.Count)
	}
	return tw.finish()
}

func printCities(w io.Writer, names []string) error {
	tw := newTabWriter(w)
	for _, name := range names {
		// Quote names with surrounding spaces so they can be passed back exactly.
		tw.writef("%q\n", name)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
