package vcs

import (
	"context"
	"time"
)

// History buckets commit timestamps into calendar months.
type History struct {
	opener Opener
	now    func() time.Time
}

// HistoryOption configures a History provider.
type HistoryOption func(*History)

// WithOpener sets the repository opener (for testing).
func WithOpener(opener Opener) HistoryOption {
	return func(h *History) {
		h.opener = opener
	}
}

// WithClock sets the time source (for testing).
func WithClock(now func() time.Time) HistoryOption {
	return func(h *History) {
		h.now = now
	}
}

// NewHistory creates a History provider backed by git.
func NewHistory(opts ...HistoryOption) *History {
	h := &History{
		opener: DefaultOpener(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// MonthlyCommits counts commits per "YYYY-MM" bucket over the trailing
// months window. Every month in the window appears in the result, zero
// or not, so sparse history still renders a full timeline.
func (h *History) MonthlyCommits(ctx context.Context, repoPath string, months int) (map[string]int, error) {
	if months <= 0 {
		months = 12
	}

	repo, err := h.opener.Open(repoPath)
	if err != nil {
		return nil, err
	}

	now := h.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)

	buckets := make(map[string]int, months)
	for i := 0; i < months; i++ {
		buckets[start.AddDate(0, i, 0).Format("2006-01")] = 0
	}

	err = repo.Log(ctx, &start, func(c Commit) error {
		key := c.When.Format("2006-01")
		if _, ok := buckets[key]; ok {
			buckets[key]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buckets, nil
}
