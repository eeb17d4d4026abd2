// Package fileproc provides concurrent file processing utilities.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/reposcope/reposcope/pkg/parser"
)

// ProcessingError records a failure while processing one file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects per-file failures without aborting a scan.
type ProcessingErrors struct {
	mu     sync.Mutex
	Errors []ProcessingError
}

// Add appends an error. Safe for concurrent use.
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors reports whether any failures were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	default:
		return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
	}
}

// DefaultWorkerMultiplier scales NumCPU for the worker count. Parsing is
// a mixed I/O and CGO workload, where 2x keeps the cores busy.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// ErrorFunc receives the path and error for each failed file.
type ErrorFunc func(path string, err error)

// Options configures a parallel map over files.
type Options struct {
	MaxWorkers int
	OnProgress ProgressFunc
	OnError    ErrorFunc
}

// MapFiles processes files in parallel, calling fn for each file with a
// dedicated parser. Results are collected in arbitrary order. Individual
// file failures are reported through OnError and never abort the run;
// a canceled context stops scheduling new files.
func MapFiles[T any](ctx context.Context, files []string, opts Options, fn func(*parser.Parser, string) (T, error)) []T {
	if len(files) == 0 {
		return nil
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]T, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		p.Go(func() {
			psr := parser.New()
			defer psr.Close()

			result, err := fn(psr, path)
			if opts.OnProgress != nil {
				opts.OnProgress()
			}
			if err != nil {
				if opts.OnError != nil {
					opts.OnError(path, err)
				}
				return
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	p.Wait()

	return results
}
