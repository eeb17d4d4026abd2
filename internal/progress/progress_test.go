package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		label string
		total int
	}{
		{name: "standard tracker", label: "Scanning files", total: 100},
		{name: "zero total", label: "Empty task", total: 0},
		{name: "negative total", label: "Unknown", total: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tracker := New(tt.label, tt.total, WithWriter(&buf))

			if tracker == nil {
				t.Fatal("New() returned nil")
			}
			if tracker.bar == nil {
				t.Error("tracker.bar should not be nil")
			}
			if tracker.label != tt.label {
				t.Errorf("tracker.label = %q, want %q", tracker.label, tt.label)
			}
		})
	}
}

func TestNewSpinner(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewSpinner("Cloning", WithWriter(&buf))
	if tracker == nil {
		t.Fatal("NewSpinner() returned nil")
	}
	if tracker.bar == nil {
		t.Error("tracker.bar should not be nil")
	}
}

func TestTick(t *testing.T) {
	var buf bytes.Buffer
	tracker := New("Test", 10, WithWriter(&buf))
	for i := 0; i < 15; i++ {
		tracker.Tick()
	}
	tracker.Done()
}

func TestQuietEmitsNothing(t *testing.T) {
	var buf bytes.Buffer
	tracker := New("Test", 10, WithWriter(&buf), Quiet())

	tracker.Tick()
	tracker.Skip("cache hit")
	tracker.Fail(errors.New("boom"))
	tracker.Done()

	if buf.Len() != 0 {
		t.Errorf("quiet tracker wrote %q, want nothing", buf.String())
	}
}

func TestSkipMessage(t *testing.T) {
	var buf bytes.Buffer
	tracker := New("History", 5, WithWriter(&buf))
	tracker.Skip("not a git repository")

	if !strings.Contains(buf.String(), "History skipped (not a git repository)") {
		t.Errorf("Skip output = %q, want skip message", buf.String())
	}
}

func TestFailMessage(t *testing.T) {
	var buf bytes.Buffer
	tracker := New("Description", 1, WithWriter(&buf))
	tracker.Fail(errors.New("network unreachable"))

	if !strings.Contains(buf.String(), "Description error: network unreachable") {
		t.Errorf("Fail output = %q, want error message", buf.String())
	}
}
