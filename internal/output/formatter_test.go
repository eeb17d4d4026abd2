package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"toon", FormatTOON},
		{"TOON", FormatTOON},
		{"", FormatText},
		{"invalid", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseFormat(tt.input)
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	f, err := NewFormatter(FormatText, "", true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	defer f.Close()

	if f.Format() != FormatText {
		t.Errorf("Format() = %q, want text", f.Format())
	}
	if !f.Colored() {
		t.Error("Colored() = false, want true")
	}
	if f.file != nil {
		t.Error("file should be nil for stdout")
	}
	if f.Writer() == nil {
		t.Error("Writer() should not be nil")
	}
}

func TestNewFormatterWithFile(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "report.json")

	f, err := NewFormatter(FormatJSON, outputPath, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if f.file == nil {
		t.Error("file should not be nil for file output")
	}
	if f.Colored() {
		t.Error("color should be disabled when writing to a file")
	}

	payload := map[string]int{"num_files": 3}
	if err := f.Output(payload); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["num_files"] != 3 {
		t.Errorf("num_files = %d, want 3", decoded["num_files"])
	}
}

func TestOutputRawJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewWriterFormatter(FormatJSON, &buf, false)

	if err := f.Output(map[string]string{"description": "a repo"}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["description"] != "a repo" {
		t.Errorf("description = %q", decoded["description"])
	}
}

func TestOutputRawMarkdownWrapsJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewWriterFormatter(FormatMarkdown, &buf, false)

	if err := f.Output(map[string]int{"loc": 10}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "```json") {
		t.Errorf("markdown output should open a json fence, got %q", out)
	}
	if !strings.Contains(out, "\"loc\": 10") {
		t.Errorf("markdown output missing payload: %q", out)
	}
}

func TestOutputTOON(t *testing.T) {
	var buf bytes.Buffer
	f := NewWriterFormatter(FormatTOON, &buf, false)

	if err := f.Output(map[string]int{"num_files": 2}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if !strings.Contains(buf.String(), "num_files") {
		t.Errorf("toon output missing key: %q", buf.String())
	}
}

func TestTableRenderText(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable("Line Metrics",
		[]string{"Metric", "Value"},
		[][]string{{"loc", "12"}, {"sloc", "9"}},
		nil, nil)

	if err := tbl.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Line Metrics") {
		t.Error("missing title")
	}
	if !strings.Contains(out, "sloc") || !strings.Contains(out, "12") {
		t.Errorf("missing rows: %q", out)
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable("Report",
		[]string{"File", "CC"},
		[][]string{{"a.py", "4"}},
		[]string{"Total", "4"}, nil)

	if err := tbl.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Report") {
		t.Error("missing markdown title")
	}
	if !strings.Contains(out, "| File | CC |") {
		t.Errorf("missing header row: %q", out)
	}
	if !strings.Contains(out, "| Total | 4 |") {
		t.Errorf("missing footer row: %q", out)
	}
}

func TestTableRenderData(t *testing.T) {
	tbl := NewTable("", []string{"a", "b"}, [][]string{{"1", "2"}}, nil, nil)
	data, ok := tbl.RenderData().([]map[string]string)
	if !ok {
		t.Fatalf("RenderData() type = %T", tbl.RenderData())
	}
	if data[0]["a"] != "1" || data[0]["b"] != "2" {
		t.Errorf("RenderData() = %v", data)
	}

	wrapped := NewTable("", nil, nil, nil, map[string]int{"x": 1})
	if _, ok := wrapped.RenderData().(map[string]int); !ok {
		t.Errorf("RenderData() should return wrapped data, got %T", wrapped.RenderData())
	}
}
