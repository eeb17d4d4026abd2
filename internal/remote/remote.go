// Package remote resolves and clones remote repository references.
package remote

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Source represents a remote repository to analyze.
type Source struct {
	URL      string // normalized git URL
	Name     string // owner/repo shorthand, when known
	Ref      string // branch, tag, or SHA (empty = default branch)
	CloneDir string // temp directory after clone
}

// Parse detects if a path is a remote reference. Returns nil if the path
// exists on the filesystem (local paths take precedence).
func Parse(path string) *Source {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	ref := ""
	if idx := strings.LastIndex(path, "@"); idx != -1 {
		ref = path[idx+1:]
		path = path[:idx]
	}

	if isGitHubShorthand(path) {
		return &Source{
			URL:  "https://github.com/" + path,
			Name: path,
			Ref:  ref,
		}
	}

	return nil
}

// isGitHubShorthand returns true if path matches an owner/repo pattern:
// exactly one slash, no dots before it (a dot would indicate a domain).
func isGitHubShorthand(path string) bool {
	slashIdx := strings.Index(path, "/")
	if slashIdx == -1 {
		return false
	}
	if strings.Count(path, "/") != 1 {
		return false
	}
	if strings.Contains(path[:slashIdx], ".") {
		return false
	}
	return slashIdx > 0 && slashIdx < len(path)-1
}

// Clone clones the source into a temporary directory and records it in
// CloneDir. The caller is responsible for calling Cleanup.
func (s *Source) Clone(ctx context.Context) error {
	dir, err := os.MkdirTemp("", "reposcope-clone-*")
	if err != nil {
		return fmt.Errorf("creating clone dir: %w", err)
	}

	if s.Ref != "" {
		// Branch refs clone in a single pass.
		if _, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
			URL:           s.URL,
			ReferenceName: plumbing.NewBranchReferenceName(s.Ref),
			SingleBranch:  true,
		}); err == nil {
			s.CloneDir = dir
			return nil
		}
		// Tags and commit hashes need the full clone before checkout.
		os.RemoveAll(dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating clone dir: %w", err)
		}
	}

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: s.URL})
	if err != nil {
		os.RemoveAll(dir)
		return fmt.Errorf("cloning %s: %w", s.URL, err)
	}

	if s.Ref != "" {
		if err := checkoutRef(repo, s.Ref); err != nil {
			os.RemoveAll(dir)
			return fmt.Errorf("checking out %s: %w", s.Ref, err)
		}
	}

	s.CloneDir = dir
	return nil
}

// checkoutRef checks out a branch, tag, or commit hash. Branch refs are
// tried first; anything else goes through revision resolution.
func checkoutRef(repo *git.Repository, ref string) error {
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}

	branchRef := plumbing.NewBranchReferenceName(ref)
	if _, err := repo.Reference(branchRef, true); err == nil {
		return wt.Checkout(&git.CheckoutOptions{Branch: branchRef})
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{Hash: *hash})
}

// Cleanup removes the clone directory, if any.
func (s *Source) Cleanup() {
	if s.CloneDir != "" {
		os.RemoveAll(s.CloneDir)
		s.CloneDir = ""
	}
}
