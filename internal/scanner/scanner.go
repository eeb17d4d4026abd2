package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/reposcope/reposcope/pkg/config"
	"github.com/reposcope/reposcope/pkg/parser"
)

// Scanner discovers the source files under a repository root that the
// metrics engine knows how to parse.
type Scanner struct {
	config    *config.Config
	matcher   gitignore.Matcher
	matchRoot string // absolute dir that patterns are anchored at
}

// New creates a scanner. A nil config uses the defaults.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// findGitRoot walks upward from start looking for a .git directory.
// Returns empty string when start is not inside a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadExcludePatterns combines config exclude patterns with .gitignore
// files found in the repository tree.
func (s *Scanner) loadExcludePatterns(root string) {
	var patterns []gitignore.Pattern

	for _, pattern := range s.config.Exclude.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}
	for _, dir := range s.config.Exclude.Dirs {
		patterns = append(patterns, gitignore.ParsePattern(dir+"/", nil))
	}

	if abs, err := filepath.Abs(root); err == nil {
		s.matchRoot = abs
	}
	if gitRoot := findGitRoot(s.matchRoot); gitRoot != "" {
		// Ignore patterns are anchored at the repository root, so the
		// same file matches identically however it is reached.
		s.matchRoot = gitRoot
		if s.config.Exclude.Gitignore {
			fs := osfs.New(gitRoot)
			if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
				patterns = append(patterns, gitPatterns...)
			}
		}
	}

	if len(patterns) > 0 {
		s.matcher = gitignore.NewMatcher(patterns)
	}
}

func (s *Scanner) isExcluded(path string, isDir bool) bool {
	if s.matcher == nil {
		return false
	}
	if s.matchRoot != "" {
		if abs, err := filepath.Abs(path); err == nil {
			if rel, err := filepath.Rel(s.matchRoot, abs); err == nil && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
	}
	return s.matcher.Match(strings.Split(path, string(filepath.Separator)), isDir)
}

// skipBySize reports whether a file exceeds the configured size cap.
func (s *Scanner) skipBySize(d fs.DirEntry) bool {
	max := s.config.Analysis.MaxFileSize
	if max <= 0 {
		return false
	}
	info, err := d.Info()
	if err != nil {
		return false
	}
	return info.Size() > max
}

// ScanDir recursively scans a directory for parseable source files.
// Symlinks that resolve outside the root are skipped.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	files := make([]string, 0, 1024)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, err
	}

	s.loadExcludePatterns(root)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, absRoot) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			if s.isExcluded(path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isExcluded(path, false) || s.config.ShouldExclude(relPath) {
			return nil
		}
		if s.skipBySize(d) {
			return nil
		}
		if parser.DetectLanguage(path) != parser.LangUnknown {
			files = append(files, path)
		}

		return nil
	})

	return files, walkErr
}

// isWithinRoot reports whether path is contained inside root after
// cleaning. Prevents symlink escapes during the walk.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)

	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}

// ScanFile checks whether a single file should be analyzed.
func (s *Scanner) ScanFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}

	if s.matcher == nil {
		s.loadExcludePatterns(filepath.Dir(path))
	}

	if s.isExcluded(path, false) || s.config.ShouldExclude(path) {
		return false, nil
	}
	if max := s.config.Analysis.MaxFileSize; max > 0 && info.Size() > max {
		return false, nil
	}

	return parser.DetectLanguage(path) != parser.LangUnknown, nil
}

// GroupByLanguage buckets files by detected language.
func (s *Scanner) GroupByLanguage(files []string) map[parser.Language][]string {
	groups := make(map[parser.Language][]string)
	for _, f := range files {
		lang := parser.DetectLanguage(f)
		if lang != parser.LangUnknown {
			groups[lang] = append(groups[lang], f)
		}
	}
	return groups
}
