package analyzer

import (
	"fmt"
	"os"

	"github.com/reposcope/reposcope/internal/report"
	"github.com/reposcope/reposcope/pkg/analyzer/complexity"
	"github.com/reposcope/reposcope/pkg/analyzer/halstead"
	"github.com/reposcope/reposcope/pkg/analyzer/inherit"
	"github.com/reposcope/reposcope/pkg/analyzer/lines"
	"github.com/reposcope/reposcope/pkg/analyzer/maintidx"
	"github.com/reposcope/reposcope/pkg/parser"
	"github.com/reposcope/reposcope/pkg/syntax"
)

// FileAnalyzer computes line, complexity, volume, maintainability and
// inheritance metrics for a single source file.
type FileAnalyzer struct {
	maxFileSize int64
}

// FileOption configures a FileAnalyzer.
type FileOption func(*FileAnalyzer)

// WithMaxFileSize skips files larger than the given byte count.
func WithMaxFileSize(size int64) FileOption {
	return func(a *FileAnalyzer) {
		a.maxFileSize = size
	}
}

// NewFileAnalyzer creates a per file metrics analyzer.
func NewFileAnalyzer(opts ...FileOption) *FileAnalyzer {
	a := &FileAnalyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze parses path and derives its full metric detail.
func (a *FileAnalyzer) Analyze(p *parser.Parser, path string) (*report.File, error) {
	if a.maxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Size() > a.maxFileSize {
			return nil, fmt.Errorf("file exceeds size limit: %s", path)
		}
	}

	result, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}

	return analyzeParsed(result), nil
}

// AnalyzeSource derives metrics from in-memory source, used by the MCP
// tools where no file exists on disk.
func (a *FileAnalyzer) AnalyzeSource(p *parser.Parser, source []byte, lang parser.Language, path string) (*report.File, error) {
	result, err := p.Parse(source, lang, path)
	if err != nil {
		return nil, err
	}
	return analyzeParsed(result), nil
}

func analyzeParsed(result *parser.ParseResult) *report.File {
	lm := lines.Count(string(result.Source), lines.ProfileFor(result.Language))

	file := &report.File{
		Path:     result.Path,
		Language: string(result.Language),
		Lines: report.LineMetrics{
			LOC:      lm.LOC,
			LLOC:     lm.LLOC,
			SLOC:     lm.SLOC,
			Comments: lm.Comments,
		},
	}
	if lm.LOC > 0 {
		file.Lines.CommentDensity = float64(lm.Comments) / float64(lm.LOC)
	}

	for _, fn := range parser.GetFunctions(result) {
		lowered := syntax.Lower(fn, result.Source)
		file.Functions = append(file.Functions, analyzeFunction(lowered))
	}

	for _, cls := range parser.GetClasses(result) {
		lowered := syntax.LowerClass(cls)
		file.Classes = append(file.Classes, report.Class{
			Name:  lowered.Name,
			Depth: inherit.Depth(lowered),
		})
	}

	return file
}

func analyzeFunction(fn syntax.Function) report.Function {
	cc := complexity.Cyclomatic(fn.Body)
	rank, err := complexity.RankOf(cc)
	if err != nil {
		rank = ""
	}

	metrics := halstead.Compute(halstead.Extract(fn.Body))

	span := int(fn.EndLine) - int(fn.StartLine) + 1
	mi := maintidx.Index(metrics.Volume, cc, span)

	return report.Function{
		Name:            fn.Name,
		StartLine:       int(fn.StartLine),
		EndLine:         int(fn.EndLine),
		Cyclomatic:      cc,
		Rank:            string(rank),
		Volume:          metrics.Volume,
		Maintainability: mi,
		MaintRank:       string(maintidx.RankOf(mi)),
	}
}
