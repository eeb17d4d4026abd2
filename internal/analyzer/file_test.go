package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reposcope/reposcope/pkg/parser"
)

const pythonSample = `# entry module


def handle(x, y, z):
    if x and y:
        return 1
    elif z:
        return 2
    return 3


class App(Base, Mixin):
    pass
`

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzePythonFile(t *testing.T) {
	path := writeSample(t, "app.py", pythonSample)

	p := parser.New()
	defer p.Close()

	a := NewFileAnalyzer()
	file, err := a.Analyze(p, path)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if file.Language != "python" {
		t.Errorf("Language = %q, want python", file.Language)
	}
	if file.Lines.LOC != 13 {
		t.Errorf("LOC = %d, want 13", file.Lines.LOC)
	}
	if file.Lines.SLOC != 9 {
		t.Errorf("SLOC = %d, want 9", file.Lines.SLOC)
	}
	if file.Lines.Comments != 1 {
		t.Errorf("Comments = %d, want 1", file.Lines.Comments)
	}
	if file.Lines.CommentDensity <= 0 {
		t.Error("CommentDensity should be positive")
	}

	if len(file.Functions) != 1 {
		t.Fatalf("len(Functions) = %d, want 1", len(file.Functions))
	}
	fn := file.Functions[0]
	if fn.Name != "handle" {
		t.Errorf("function name = %q, want handle", fn.Name)
	}
	if fn.Cyclomatic != 4 {
		t.Errorf("Cyclomatic = %d, want 4", fn.Cyclomatic)
	}
	if fn.Rank != "A" {
		t.Errorf("Rank = %q, want A", fn.Rank)
	}
	if fn.Maintainability <= 0 || fn.Maintainability > 100 {
		t.Errorf("Maintainability = %d, want within (0, 100]", fn.Maintainability)
	}

	if len(file.Classes) != 1 {
		t.Fatalf("len(Classes) = %d, want 1", len(file.Classes))
	}
	if file.Classes[0].Depth != 2 {
		t.Errorf("class depth = %d, want 2", file.Classes[0].Depth)
	}
}

func TestAnalyzeGoFile(t *testing.T) {
	src := `package main

func pick(a, b int) int {
	if a > 0 && b > 0 {
		return a
	}
	for i := 0; i < b; i++ {
		a++
	}
	return b
}
`
	path := writeSample(t, "pick.go", src)

	p := parser.New()
	defer p.Close()

	file, err := NewFileAnalyzer().Analyze(p, path)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if len(file.Functions) != 1 {
		t.Fatalf("len(Functions) = %d, want 1", len(file.Functions))
	}
	// if with one && plus the loop
	if got := file.Functions[0].Cyclomatic; got != 4 {
		t.Errorf("Cyclomatic = %d, want 4", got)
	}
	if file.Functions[0].Volume <= 0 {
		t.Error("Volume should be positive for a non-trivial function")
	}
}

func TestAnalyzeUnsupportedFile(t *testing.T) {
	path := writeSample(t, "notes.txt", "hello\n")

	p := parser.New()
	defer p.Close()

	if _, err := NewFileAnalyzer().Analyze(p, path); err == nil {
		t.Error("Analyze() should fail for an unsupported extension")
	}
}

func TestAnalyzeSizeLimit(t *testing.T) {
	path := writeSample(t, "big.py", pythonSample)

	p := parser.New()
	defer p.Close()

	a := NewFileAnalyzer(WithMaxFileSize(16))
	if _, err := a.Analyze(p, path); err == nil {
		t.Error("Analyze() should fail when the file exceeds the size limit")
	}
}

func TestAnalyzeSource(t *testing.T) {
	p := parser.New()
	defer p.Close()

	a := NewFileAnalyzer()
	file, err := a.AnalyzeSource(p, []byte("def f():\n    return 1\n"), parser.LangPython, "snippet.py")
	if err != nil {
		t.Fatalf("AnalyzeSource() error: %v", err)
	}
	if len(file.Functions) != 1 || file.Functions[0].Cyclomatic != 1 {
		t.Errorf("unexpected functions: %+v", file.Functions)
	}
}
