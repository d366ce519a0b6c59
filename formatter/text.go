package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
)

// WriteText writes an aligned table with a header row and a row count footer
func WriteText(w io.Writer, t *tabular.Table) error {
	if t == nil || len(t.Columns()) == 0 {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}

	tw := tabwriter.NewWriter(w, 4, 2, 2, ' ', 0)
	cols := t.Columns()
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	for i := 0; i < t.Len(); i++ {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = CellText(t.Cell(i, c))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "[%d rows x %d columns]\n", t.Len(), len(cols))
	return err
}
