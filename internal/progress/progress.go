package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar for long running repository scans.
// A quiet tracker emits nothing, which keeps machine readable output
// formats clean when stdout is piped.
type Tracker struct {
	bar   *progressbar.ProgressBar
	label string
	out   io.Writer
	quiet bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithWriter directs bar and message output to w instead of stderr.
func WithWriter(w io.Writer) Option {
	return func(t *Tracker) { t.out = w }
}

// Quiet suppresses all tracker output.
func Quiet() Option {
	return func(t *Tracker) { t.quiet = true }
}

// NewSpinner creates a spinner for operations with unknown total count.
func NewSpinner(label string, opts ...Option) *Tracker {
	t := &Tracker{label: label, out: os.Stderr}
	for _, opt := range opts {
		opt(t)
	}
	if t.quiet {
		return t
	}
	t.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(t.out),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	return t
}

// New creates a progress bar with the given label and total count.
func New(label string, total int, opts ...Option) *Tracker {
	t := &Tracker{label: label, out: os.Stderr}
	for _, opt := range opts {
		opt(t)
	}
	if t.quiet {
		return t
	}
	t.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(t.out),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return t
}

// Tick increments the progress by 1. Safe for concurrent use.
func (t *Tracker) Tick() {
	if t.bar != nil {
		t.bar.Add(1)
	}
}

// Done clears the bar completely.
func (t *Tracker) Done() {
	if t.bar == nil {
		return
	}
	t.bar.Finish()
	t.bar.Clear()
}

// Skip clears the bar and prints a skip message.
func (t *Tracker) Skip(reason string) {
	t.Done()
	if !t.quiet {
		fmt.Fprintf(t.out, "  %s skipped (%s)\n", t.label, reason)
	}
}

// Fail clears the bar and prints an error message.
func (t *Tracker) Fail(err error) {
	t.Done()
	if !t.quiet {
		fmt.Fprintf(t.out, "  %s error: %v\n", t.label, err)
	}
}
