package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/reposcope/reposcope/internal/output"
)

// RenderData returns the report itself for JSON and TOON serialization.
func (r *Repo) RenderData() any {
	return r
}

func (r *Repo) summaryRows() [][]string {
	return [][]string{
		{"Files", fmt.Sprintf("%d", r.NumFiles)},
		{"Functions", fmt.Sprintf("%d", r.NumFunctions)},
		{"Classes", fmt.Sprintf("%d", r.NumClasses)},
		{"Lines of code", fmt.Sprintf("%d", r.LineMetrics.LOC)},
		{"Logical lines", fmt.Sprintf("%d", r.LineMetrics.LLOC)},
		{"Source lines", fmt.Sprintf("%d", r.LineMetrics.SLOC)},
		{"Comment lines", fmt.Sprintf("%d", r.LineMetrics.Comments)},
		{"Comment density", fmt.Sprintf("%.2f", r.LineMetrics.CommentDensity)},
		{"Cyclomatic complexity", fmt.Sprintf("%.2f", r.CyclomaticComplexity.Average)},
		{"Depth of inheritance", fmt.Sprintf("%.2f", r.DepthOfInheritance.Average)},
		{"Halstead volume (total)", fmt.Sprintf("%.2f", r.HalsteadMetrics.TotalVolume)},
		{"Halstead volume (mean)", fmt.Sprintf("%.2f", r.HalsteadMetrics.AverageVolume)},
		{"Maintainability index", fmt.Sprintf("%.2f", r.MaintainabilityIndex.Average)},
	}
}

// sortedMonths returns the activity window keys oldest first.
func (r *Repo) sortedMonths() []string {
	months := make([]string, 0, len(r.MonthlyCommits))
	for m := range r.MonthlyCommits {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// RenderText writes the report as aligned tables.
func (r *Repo) RenderText(w io.Writer, colored bool) error {
	title := "Repository Report"
	if r.Description != "" {
		title = fmt.Sprintf("Repository Report: %s", r.Description)
	}

	summary := output.NewTable(title, []string{"Metric", "Value"}, r.summaryRows(), nil, nil)
	if err := summary.RenderText(w, colored); err != nil {
		return err
	}

	if len(r.MonthlyCommits) > 0 {
		rows := make([][]string, 0, len(r.MonthlyCommits))
		for _, m := range r.sortedMonths() {
			rows = append(rows, []string{m, fmt.Sprintf("%d", r.MonthlyCommits[m])})
		}
		activity := output.NewTable("Commit Activity", []string{"Month", "Commits"}, rows, nil, nil)
		if err := activity.RenderText(w, colored); err != nil {
			return err
		}
	}

	for _, f := range r.Files {
		if len(f.Functions) == 0 {
			continue
		}
		rows := make([][]string, 0, len(f.Functions))
		for _, fn := range f.Functions {
			rows = append(rows, []string{
				fn.Name,
				fmt.Sprintf("%d", fn.Cyclomatic),
				fn.Rank,
				fmt.Sprintf("%.2f", fn.Volume),
				fmt.Sprintf("%d", fn.Maintainability),
				fn.MaintRank,
			})
		}
		tbl := output.NewTable(f.Path,
			[]string{"Function", "CC", "Rank", "Volume", "MI", "MI Rank"},
			rows, nil, nil)
		if err := tbl.RenderText(w, colored); err != nil {
			return err
		}
	}

	return nil
}

// RenderMarkdown writes the report as markdown tables.
func (r *Repo) RenderMarkdown(w io.Writer) error {
	summary := output.NewTable("Repository Report", []string{"Metric", "Value"}, r.summaryRows(), nil, nil)
	if err := summary.RenderMarkdown(w); err != nil {
		return err
	}

	if r.Description != "" {
		fmt.Fprintf(w, "%s\n\n", r.Description)
	}

	if len(r.MonthlyCommits) > 0 {
		rows := make([][]string, 0, len(r.MonthlyCommits))
		for _, m := range r.sortedMonths() {
			rows = append(rows, []string{m, fmt.Sprintf("%d", r.MonthlyCommits[m])})
		}
		activity := output.NewTable("Commit Activity", []string{"Month", "Commits"}, rows, nil, nil)
		if err := activity.RenderMarkdown(w); err != nil {
			return err
		}
	}

	for _, f := range r.Files {
		if len(f.Functions) == 0 {
			continue
		}
		rows := make([][]string, 0, len(f.Functions))
		for _, fn := range f.Functions {
			rows = append(rows, []string{
				fn.Name,
				fmt.Sprintf("%d", fn.Cyclomatic),
				fn.Rank,
				fmt.Sprintf("%.2f", fn.Volume),
				fmt.Sprintf("%d", fn.Maintainability),
				fn.MaintRank,
			})
		}
		tbl := output.NewTable(f.Path,
			[]string{"Function", "CC", "Rank", "Volume", "MI", "MI Rank"},
			rows, nil, nil)
		if err := tbl.RenderMarkdown(w); err != nil {
			return err
		}
	}

	return nil
}
