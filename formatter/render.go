package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
)

// Format selects an output encoding
type Format string

const (
	Text   Format = "text"
	JSON   Format = "json"
	CSV    Format = "csv"
	Pretty Format = "pretty"
)

// ParseFormat accepts text, json, csv or pretty
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Text, nil
	case Text, JSON, CSV, Pretty:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Render writes t to w in format f
func Render(w io.Writer, t *tabular.Table, f Format) error {
	switch f {
	case JSON:
		b, err := NewResponseBuilder().BuildJSON(t)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case CSV:
		return WriteCSV(w, t)
	case Pretty:
		return WritePretty(w, t)
	default:
		return WriteText(w, t)
	}
}

// RenderGroups writes each group in name order under a heading; JSON emits one object keyed by group
func RenderGroups(w io.Writer, groups map[string]*tabular.Table, f Format) error {
	if f == JSON {
		b, err := NewResponseBuilder().BuildGroupsJSON(groups)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	for _, name := range GroupNames(groups) {
		if _, err := fmt.Fprintf(w, "== %s (%d)\n", name, groups[name].Len()); err != nil {
			return err
		}
		if err := Render(w, groups[name], f); err != nil {
			return err
		}
	}
	return nil
}

// GroupNames returns the group keys sorted
func GroupNames(groups map[string]*tabular.Table) []string {
	names := make([]string, 0, len(groups))
	for n := range groups {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CellText renders one cell for text and CSV output
func CellText(c tabular.Cell) string {
	if !c.Present {
		return ""
	}
	switch v := c.Value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case tabular.Record, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
