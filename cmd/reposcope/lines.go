package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/output"
	"github.com/reposcope/reposcope/internal/progress"
	"github.com/reposcope/reposcope/internal/report"
	"github.com/reposcope/reposcope/internal/service/analysis"
)

var linesCmd = &cobra.Command{
	Use:     "lines [path...]",
	Aliases: []string{"l"},
	Short:   "Count physical, source, logical and comment lines",
	RunE:    runLines,
}

func init() {
	rootCmd.AddCommand(linesCmd)
}

type linesResult struct {
	Total report.LineMetrics `json:"total"`
	Files []fileLines        `json:"files"`
}

type fileLines struct {
	Path  string             `json:"path"`
	Lines report.LineMetrics `json:"lines"`
}

func runLines(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ref, _ := cmd.Flags().GetString("ref")
	paths, _, cleanup, err := resolvePaths(cmd.Context(), args, ref)
	if err != nil {
		return err
	}
	defer cleanup()

	files, err := scanFiles(cfg, paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	svc, err := newService(cmd, cfg)
	if err != nil {
		return err
	}

	tracker := progress.New("Counting lines...", len(files))
	perFile := svc.Files(cmd.Context(), files, analysis.ReportOptions{
		OnProgress: tracker.Tick,
		OnError:    reportFileError,
	})
	tracker.Done()

	result := linesResult{}
	rows := make([][]string, 0, len(perFile))
	for _, f := range perFile {
		result.Total.LOC += f.Lines.LOC
		result.Total.LLOC += f.Lines.LLOC
		result.Total.SLOC += f.Lines.SLOC
		result.Total.Comments += f.Lines.Comments
		result.Files = append(result.Files, fileLines{Path: f.Path, Lines: f.Lines})
		rows = append(rows, []string{
			f.Path,
			fmt.Sprintf("%d", f.Lines.LOC),
			fmt.Sprintf("%d", f.Lines.SLOC),
			fmt.Sprintf("%d", f.Lines.LLOC),
			fmt.Sprintf("%d", f.Lines.Comments),
		})
	}
	if result.Total.LOC > 0 {
		result.Total.CommentDensity = float64(result.Total.Comments) / float64(result.Total.LOC)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(getFormat(cmd)), getOutputFile(cmd), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	footer := []string{
		"Total",
		fmt.Sprintf("%d", result.Total.LOC),
		fmt.Sprintf("%d", result.Total.SLOC),
		fmt.Sprintf("%d", result.Total.LLOC),
		fmt.Sprintf("%d", result.Total.Comments),
	}
	table := output.NewTable("Line Metrics",
		[]string{"File", "LOC", "SLOC", "LLOC", "Comments"},
		rows, footer, result)

	return formatter.Output(table)
}
