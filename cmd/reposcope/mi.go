package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/output"
	"github.com/reposcope/reposcope/internal/progress"
	"github.com/reposcope/reposcope/internal/service/analysis"
)

var miCmd = &cobra.Command{
	Use:   "mi [path...]",
	Short: "Compute the maintainability index per function",
	RunE:  runMI,
}

func init() {
	miCmd.Flags().Int("max", 0, "Only show functions at or below this index")
	rootCmd.AddCommand(miCmd)
}

func runMI(cmd *cobra.Command, args []string) error {
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

	tracker := progress.New("Measuring maintainability...", len(files))
	perFile := svc.Files(cmd.Context(), files, analysis.ReportOptions{
		OnProgress: tracker.Tick,
		OnError:    reportFileError,
	})
	tracker.Done()

	max, _ := cmd.Flags().GetInt("max")

	var rows [][]string
	for _, f := range perFile {
		for _, fn := range f.Functions {
			if max > 0 && fn.Maintainability > max {
				continue
			}

			index := fmt.Sprintf("%d", fn.Maintainability)
			if fn.MaintRank == "D" || fn.MaintRank == "F" {
				index = color.RedString("%d", fn.Maintainability)
			}
			rows = append(rows, []string{
				f.Path,
				fn.Name,
				fmt.Sprintf("%.1f", fn.Volume),
				fmt.Sprintf("%d", fn.Cyclomatic),
				index,
				fn.MaintRank,
			})
		}
	}

	formatter, err := output.NewFormatter(output.ParseFormat(getFormat(cmd)), getOutputFile(cmd), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	table := output.NewTable("Maintainability Index",
		[]string{"File", "Function", "Volume", "CC", "MI", "Rank"},
		rows, nil, perFile)

	return formatter.Output(table)
}
