package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/output"
	"github.com/reposcope/reposcope/internal/progress"
	"github.com/reposcope/reposcope/internal/service/analysis"
)

var complexityCmd = &cobra.Command{
	Use:     "complexity [path...]",
	Aliases: []string{"cx"},
	Short:   "Measure cyclomatic complexity per function",
	RunE:    runComplexity,
}

func init() {
	complexityCmd.Flags().Int("min", 0, "Only show functions at or above this score")
	rootCmd.AddCommand(complexityCmd)
}

func runComplexity(cmd *cobra.Command, args []string) error {
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

	tracker := progress.New("Measuring complexity...", len(files))
	perFile := svc.Files(cmd.Context(), files, analysis.ReportOptions{
		OnProgress: tracker.Tick,
		OnError:    reportFileError,
	})
	tracker.Done()

	min, _ := cmd.Flags().GetInt("min")

	var rows [][]string
	total := 0
	count := 0
	for _, f := range perFile {
		for _, fn := range f.Functions {
			total += fn.Cyclomatic
			count++
			if fn.Cyclomatic < min {
				continue
			}

			score := fmt.Sprintf("%d", fn.Cyclomatic)
			if fn.Rank >= "D" {
				score = color.RedString("%d", fn.Cyclomatic)
			}
			rows = append(rows, []string{
				f.Path,
				fn.Name,
				fmt.Sprintf("%d", fn.StartLine),
				score,
				fn.Rank,
			})
		}
	}

	formatter, err := output.NewFormatter(output.ParseFormat(getFormat(cmd)), getOutputFile(cmd), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	footer := []string{"Total", fmt.Sprintf("%d functions", count), "", fmt.Sprintf("%d", total), ""}
	table := output.NewTable("Cyclomatic Complexity",
		[]string{"File", "Function", "Line", "CC", "Rank"},
		rows, footer, perFile)

	return formatter.Output(table)
}
