package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/output"
	"github.com/reposcope/reposcope/internal/progress"
	"github.com/reposcope/reposcope/internal/service/analysis"
)

var reportCmd = &cobra.Command{
	Use:     "report [path|owner/repo]",
	Aliases: []string{"r"},
	Short:   "Build the full repository metric report",
	Long: `Measures every source file under the given path and rolls the results
up into a single report: line counts, cyclomatic complexity, Halstead
volume, maintainability index, inheritance depth, monthly commit
activity and the hosted repository description.

Remote GitHub repositories can be given as owner/repo shorthand; they
are cloned to a temp directory and removed afterwards.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("slug", "", "owner/repo pair for the description lookup (detected for remote targets)")
	reportCmd.Flags().Bool("files", false, "Include per-file metric detail")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ref, _ := cmd.Flags().GetString("ref")
	paths, detectedSlug, cleanup, err := resolvePaths(cmd.Context(), args, ref)
	if err != nil {
		return err
	}
	defer cleanup()

	slug, _ := cmd.Flags().GetString("slug")
	if slug == "" {
		slug = detectedSlug
	}

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

	includeFiles, _ := cmd.Flags().GetBool("files")

	tracker := progress.New("Measuring files...", len(files))
	rep, err := svc.Report(cmd.Context(), files, analysis.ReportOptions{
		RepoPath:     paths[0],
		Slug:         slug,
		IncludeFiles: includeFiles,
		OnProgress:   tracker.Tick,
		OnError:      reportFileError,
	})
	tracker.Done()
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(getFormat(cmd)), getOutputFile(cmd), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(rep)
}

func reportFileError(path string, err error) {
	if verbose {
		color.Yellow("skipping %s: %v", path, err)
	}
}
