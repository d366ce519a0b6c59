package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
)

func sampleTable(t *testing.T) *tabular.Table {
	t.Helper()
	recs, err := tabular.DecodeRecords([]byte(`[
		{"rn":"804","destNm":"Howard","flags":null},
		{"rn":"805","destNm":"95th/Dan Ryan","pos":{"lat":"41.8"}}
	]`))
	if err != nil {
		t.Fatalf("Failed to decode records: %v", err)
	}
	return tabular.FromRecords(recs)
}

// TestFormatter_JSONKeepsColumnOrder verifies rows serialize in column order and skip absent cells
func TestFormatter_JSONKeepsColumnOrder(t *testing.T) {
	rb := NewResponseBuilder()
	b, err := rb.BuildJSON(sampleTable(t))
	if err != nil {
		t.Fatalf("BuildJSON failed: %v", err)
	}

	expected := `[{"rn":"804","destNm":"Howard","flags":null},{"rn":"805","destNm":"95th/Dan Ryan","pos":{"lat":"41.8"}}]`
	if string(b) != expected {
		t.Errorf("expected %s, got %s", expected, b)
	}

	if !json.Valid(b) {
		t.Error("output should be valid JSON")
	}
}

func TestFormatter_GroupsJSON(t *testing.T) {
	groups := map[string]*tabular.Table{
		"red":  sampleTable(t),
		"blue": tabular.New(),
	}

	b, err := NewResponseBuilder().BuildGroupsJSON(groups)
	if err != nil {
		t.Fatalf("BuildGroupsJSON failed: %v", err)
	}
	s := string(b)
	if !strings.HasPrefix(s, `{"blue":[],"red":[`) {
		t.Errorf("groups should be sorted by name, got %s", s)
	}
}

func TestFormatter_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleTable(t), Text); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, 2 rows and footer, got %d lines:\n%s", len(lines), buf.String())
	}
	if fields := strings.Fields(lines[0]); strings.Join(fields, ",") != "rn,destNm,flags,pos" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "null") {
		t.Errorf("JSON null should render as null: %q", lines[1])
	}
	if !strings.Contains(lines[2], `{"lat":"41.8"}`) {
		t.Errorf("nested object should render as JSON: %q", lines[2])
	}
	if lines[3] != "[2 rows x 4 columns]" {
		t.Errorf("unexpected footer %q", lines[3])
	}
}

func TestFormatter_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, tabular.New()); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if buf.String() != "(empty)\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFormatter_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleTable(t), CSV); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expected := "rn,destNm,flags,pos\n" +
		"804,Howard,null,\n" +
		"805,95th/Dan Ryan,,\"{\"\"lat\"\":\"\"41.8\"\"}\"\n"
	if buf.String() != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, buf.String())
	}
}

func TestFormatter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleTable(t), Pretty); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"Howard"`) {
		t.Errorf("pretty output should contain values, got %s", buf.String())
	}
}

func TestFormatter_RenderGroupsText(t *testing.T) {
	var buf bytes.Buffer
	groups := map[string]*tabular.Table{"red": sampleTable(t), "blue": tabular.New()}
	if err := RenderGroups(&buf, groups, Text); err != nil {
		t.Fatalf("RenderGroups failed: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "== blue (0)") > strings.Index(out, "== red (2)") {
		t.Errorf("groups should be written in name order:\n%s", out)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{input: "", expected: Text},
		{input: "JSON", expected: JSON},
		{input: " csv ", expected: CSV},
		{input: "pretty", expected: Pretty},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
