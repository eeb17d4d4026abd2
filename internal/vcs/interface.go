// Package vcs provides version control abstractions for commit history.
package vcs

import (
	"context"
	"time"
)

// Commit is the slice of commit metadata the metrics aggregation needs.
type Commit struct {
	Hash    string
	Author  string
	Message string
	When    time.Time
}

// Repository provides read access to a repository's commit log.
type Repository interface {
	// Log iterates commits from HEAD, newest first, optionally bounded
	// by a since time.
	Log(ctx context.Context, since *time.Time, fn func(Commit) error) error
}

// Opener opens repositories from local paths.
type Opener interface {
	Open(path string) (Repository, error)
}

// HistoryProvider buckets commit activity by calendar month. One
// implementation wraps git; tests substitute fakes.
type HistoryProvider interface {
	MonthlyCommits(ctx context.Context, repoPath string, months int) (map[string]int, error)
}
