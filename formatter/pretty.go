package formatter

import (
	"io"

	"github.com/kr/pretty"

	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
)

// WritePretty dumps each row as a Go map, mainly for eyeballing nested members
func WritePretty(w io.Writer, t *tabular.Table) error {
	if t == nil {
		return nil
	}
	for _, rec := range t.Records() {
		if _, err := pretty.Fprintf(w, "%# v\n", rec.Map()); err != nil {
			return err
		}
	}
	return nil
}
