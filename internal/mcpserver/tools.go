package mcpserver

import (
	"context"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/reposcope/reposcope/internal/forge"
	"github.com/reposcope/reposcope/internal/report"
	"github.com/reposcope/reposcope/internal/scanner"
	"github.com/reposcope/reposcope/internal/service/analysis"
	"github.com/reposcope/reposcope/pkg/config"
)

// AnalyzeInput is the base input for all analyze tools.
type AnalyzeInput struct {
	Paths  []string `json:"paths,omitempty" jsonschema:"Paths to analyze. Defaults to current directory if empty."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// RepositoryInput configures the full repository report.
type RepositoryInput struct {
	AnalyzeInput
	Slug         string `json:"slug,omitempty" jsonschema:"owner/repo pair for the hosted description lookup."`
	IncludeFiles bool   `json:"include_files,omitempty" jsonschema:"Include per-file metric detail."`
}

// LinesInput configures line counting.
type LinesInput struct {
	AnalyzeInput
}

// ComplexityInput configures cyclomatic analysis.
type ComplexityInput struct {
	AnalyzeInput
	MinComplexity int `json:"min_complexity,omitempty" jsonschema:"Only report functions at or above this score."`
}

// MaintainabilityInput configures maintainability analysis.
type MaintainabilityInput struct {
	AnalyzeInput
	MaxIndex int `json:"max_index,omitempty" jsonschema:"Only report functions at or below this index."`
}

func getPaths(input AnalyzeInput) []string {
	if len(input.Paths) == 0 {
		return []string{"."}
	}
	return input.Paths
}

// resolveFiles expands directories into their parseable source files.
func resolveFiles(paths []string) ([]string, error) {
	sc := scanner.New(config.LoadOrDefault())

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := sc.ScanDir(path)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		if ok, err := sc.ScanFile(path); err == nil && ok {
			files = append(files, path)
		}
	}
	return files, nil
}

func formatOutput(data any, format string) (string, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return "", err
	}
	if format == "markdown" || format == "md" {
		return "```\n" + string(out) + "\n```", nil
	}
	return string(out), nil
}

func toolResult(data any, format string) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func handleAnalyzeRepository(ctx context.Context, req *mcp.CallToolRequest, input RepositoryInput) (*mcp.CallToolResult, any, error) {
	paths := getPaths(input.AnalyzeInput)

	files, err := resolveFiles(paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	svc := analysis.New(analysis.WithDescriber(forge.NewGitHub()))
	rep, err := svc.Report(ctx, files, analysis.ReportOptions{
		RepoPath:     paths[0],
		Slug:         input.Slug,
		IncludeFiles: input.IncludeFiles,
	})
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(rep, input.Format)
}

func handleAnalyzeLines(ctx context.Context, req *mcp.CallToolRequest, input LinesInput) (*mcp.CallToolResult, any, error) {
	files, err := resolveFiles(getPaths(input.AnalyzeInput))
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	svc := analysis.New()
	perFile := svc.Files(ctx, files, analysis.ReportOptions{})

	type fileLines struct {
		Path  string             `json:"path" toon:"path"`
		Lines report.LineMetrics `json:"lines" toon:"lines"`
	}
	out := struct {
		Total report.LineMetrics `json:"total" toon:"total"`
		Files []fileLines        `json:"files" toon:"files"`
	}{}

	for _, f := range perFile {
		out.Total.LOC += f.Lines.LOC
		out.Total.LLOC += f.Lines.LLOC
		out.Total.SLOC += f.Lines.SLOC
		out.Total.Comments += f.Lines.Comments
		out.Files = append(out.Files, fileLines{Path: f.Path, Lines: f.Lines})
	}
	if out.Total.LOC > 0 {
		out.Total.CommentDensity = float64(out.Total.Comments) / float64(out.Total.LOC)
	}

	return toolResult(out, input.Format)
}

type functionEntry struct {
	Path     string          `json:"path" toon:"path"`
	Function report.Function `json:"function" toon:"function"`
}

func collectFunctions(ctx context.Context, files []string) []functionEntry {
	svc := analysis.New()
	perFile := svc.Files(ctx, files, analysis.ReportOptions{})

	var entries []functionEntry
	for _, f := range perFile {
		for _, fn := range f.Functions {
			entries = append(entries, functionEntry{Path: f.Path, Function: fn})
		}
	}
	return entries
}

func handleAnalyzeComplexity(ctx context.Context, req *mcp.CallToolRequest, input ComplexityInput) (*mcp.CallToolResult, any, error) {
	files, err := resolveFiles(getPaths(input.AnalyzeInput))
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	entries := collectFunctions(ctx, files)
	if input.MinComplexity > 0 {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Function.Cyclomatic >= input.MinComplexity {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	out := struct {
		Functions []functionEntry `json:"functions" toon:"functions"`
	}{entries}

	return toolResult(out, input.Format)
}

func handleAnalyzeMaintainability(ctx context.Context, req *mcp.CallToolRequest, input MaintainabilityInput) (*mcp.CallToolResult, any, error) {
	files, err := resolveFiles(getPaths(input.AnalyzeInput))
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	entries := collectFunctions(ctx, files)
	if input.MaxIndex > 0 {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Function.Maintainability <= input.MaxIndex {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	out := struct {
		Functions []functionEntry `json:"functions" toon:"functions"`
	}{entries}

	return toolResult(out, input.Format)
}
