package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func sampleRows() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "alice", "age": int64(30)},
		{"name": "bob", "age": int64(25), "city": "berlin"},
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)

	if err := f.Format(sampleRows()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %d", len(lines))
	}

	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not valid JSON: %v", err)
	}
	if first["name"] != "alice" {
		t.Errorf("expected name alice, got %v", first["name"])
	}
}

func TestJSONFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)

	if err := f.Format(nil); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty rows, got %q", buf.String())
	}
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter(&buf)

	if err := f.Format(sampleRows()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	// Header is the sorted union of all columns.
	if lines[0] != "age,city,name" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	// First row has no city column; the cell is empty.
	if lines[1] != "30,,alice" {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}

func TestCSVFormatterSanitizesFormulas(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter(&buf)

	rows := []map[string]interface{}{{"v": "=SUM(A1:A9)"}}
	if err := f.Format(rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "'=SUM") {
		t.Errorf("formula value not sanitized: %q", buf.String())
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)

	if err := f.Format(sampleRows()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"name", "alice", "bob", "berlin"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)

	if err := f.Format(nil); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty rows, got %q", buf.String())
	}
}
