package formatter

import (
	"encoding/csv"
	"io"

	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
)

// WriteCSV writes a header row followed by one record per table row
func WriteCSV(w io.Writer, t *tabular.Table) error {
	cw := csv.NewWriter(w)
	if t != nil {
		cols := t.Columns()
		if err := cw.Write(cols); err != nil {
			return err
		}
		for i := 0; i < t.Len(); i++ {
			rec := make([]string, len(cols))
			for j, c := range cols {
				rec[j] = CellText(t.Cell(i, c))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
