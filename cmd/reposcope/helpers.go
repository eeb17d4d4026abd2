package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/cache"
	"github.com/reposcope/reposcope/internal/forge"
	"github.com/reposcope/reposcope/internal/progress"
	"github.com/reposcope/reposcope/internal/remote"
	"github.com/reposcope/reposcope/internal/scanner"
	"github.com/reposcope/reposcope/internal/service/analysis"
	"github.com/reposcope/reposcope/pkg/config"
)

// getPaths returns paths from args, defaulting to ["."]
func getPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func getFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("format")
	return format
}

func getOutputFile(cmd *cobra.Command) string {
	outputFile, _ := cmd.Flags().GetString("output")
	return outputFile
}

// loadConfig loads the configured file or the discovered defaults.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault(), nil
}

// resolvePaths resolves args to local directories, cloning any remote
// references. The returned cleanup removes clone temp dirs.
func resolvePaths(ctx context.Context, args []string, ref string) ([]string, string, func(), error) {
	paths := getPaths(args)
	slug := ""
	cleanups := []func(){}
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	resolved := make([]string, 0, len(paths))
	for _, path := range paths {
		src := remote.Parse(path)
		if src == nil {
			resolved = append(resolved, path)
			continue
		}
		if ref != "" {
			src.Ref = ref
		}

		spinner := progress.NewSpinner(fmt.Sprintf("Cloning %s...", src.URL))
		err := src.Clone(ctx)
		if err != nil {
			spinner.Fail(err)
			cleanup()
			return nil, "", nil, fmt.Errorf("failed to clone %s: %w", src.URL, err)
		}
		spinner.Done()

		cleanups = append(cleanups, src.Cleanup)
		resolved = append(resolved, src.CloneDir)
		if slug == "" {
			slug = src.Name
		}
	}

	return resolved, slug, cleanup, nil
}

// scanFiles expands paths into parseable source files.
func scanFiles(cfg *config.Config, paths []string) ([]string, error) {
	sc := scanner.New(cfg)

	var files []string
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := sc.ScanDir(abs)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		if ok, err := sc.ScanFile(abs); err == nil && ok {
			files = append(files, abs)
		}
	}
	return files, nil
}

// newService builds the analysis service from config and flags.
func newService(cmd *cobra.Command, cfg *config.Config) (*analysis.Service, error) {
	opts := []analysis.Option{
		analysis.WithConfig(cfg),
		analysis.WithDescriber(forge.NewGitHub()),
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	if cfg.Cache.Enabled && !noCache {
		c, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		opts = append(opts, analysis.WithCache(c))
	}

	return analysis.New(opts...), nil
}
