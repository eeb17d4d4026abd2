package analysis

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/reposcope/reposcope/internal/analyzer"
	"github.com/reposcope/reposcope/internal/cache"
	"github.com/reposcope/reposcope/internal/fileproc"
	"github.com/reposcope/reposcope/internal/forge"
	"github.com/reposcope/reposcope/internal/report"
	"github.com/reposcope/reposcope/internal/vcs"
	"github.com/reposcope/reposcope/pkg/config"
	"github.com/reposcope/reposcope/pkg/parser"
)

// HistoryProvider supplies monthly commit counts for a repository.
type HistoryProvider interface {
	MonthlyCommits(ctx context.Context, repoPath string, months int) (map[string]int, error)
}

// Service orchestrates repository metric collection.
type Service struct {
	config    *config.Config
	history   HistoryProvider
	describer forge.DescriptionProvider
	cache     *cache.Cache
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithHistory sets the commit history collaborator.
func WithHistory(h HistoryProvider) Option {
	return func(s *Service) {
		s.history = h
	}
}

// WithDescriber sets the repository description collaborator.
func WithDescriber(d forge.DescriptionProvider) Option {
	return func(s *Service) {
		s.describer = d
	}
}

// WithCache sets the per file result cache.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// New creates an analysis service.
func New(opts ...Option) *Service {
	s := &Service{
		config:  config.LoadOrDefault(),
		history: vcs.NewHistory(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReportOptions configures a repository report run.
type ReportOptions struct {
	// RepoPath is the checkout root used for commit history.
	RepoPath string

	// Slug is the owner/repo pair used for the hosted description.
	// Empty skips the lookup.
	Slug string

	// IncludeFiles keeps per file detail in the report.
	IncludeFiles bool

	MaxWorkers int
	OnProgress func()
	OnError    func(path string, err error)
}

// Files computes per file metric detail in parallel. Files that fail
// to parse are reported through OnError and skipped.
func (s *Service) Files(ctx context.Context, files []string, opts ReportOptions) []*report.File {
	fa := analyzer.NewFileAnalyzer(analyzer.WithMaxFileSize(s.config.Analysis.MaxFileSize))

	procOpts := fileproc.Options{
		MaxWorkers: opts.MaxWorkers,
		OnProgress: opts.OnProgress,
		OnError:    opts.OnError,
	}

	results := fileproc.MapFiles(ctx, files, procOpts, func(p *parser.Parser, path string) (*report.File, error) {
		return s.analyzeCached(fa, p, path)
	})

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}

// analyzeCached consults the content addressed cache before parsing.
func (s *Service) analyzeCached(fa *analyzer.FileAnalyzer, p *parser.Parser, path string) (*report.File, error) {
	var key string
	if s.cache != nil {
		if h, err := cache.HashFile(path); err == nil {
			key = h
			if data, ok := s.cache.Get(key); ok {
				var cached report.File
				if err := json.Unmarshal(data, &cached); err == nil {
					cached.Path = path
					return &cached, nil
				}
			}
		}
	}

	file, err := fa.Analyze(p, path)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && key != "" {
		if data, err := json.Marshal(file); err == nil {
			s.cache.Put(key, data)
		}
	}

	return file, nil
}

// Report runs the full repository aggregation, including the history
// and description collaborators. Collaborator failures degrade to
// empty values rather than failing the report.
func (s *Service) Report(ctx context.Context, files []string, opts ReportOptions) (*report.Repo, error) {
	perFile := s.Files(ctx, files, opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := Aggregate(perFile)
	if opts.IncludeFiles {
		rep.Files = make([]report.File, 0, len(perFile))
		for _, f := range perFile {
			rep.Files = append(rep.Files, *f)
		}
	}

	timeout := time.Duration(s.config.Analysis.CollaboratorTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rep.MonthlyCommits = map[string]int{}
	if s.history != nil && opts.RepoPath != "" {
		hctx, cancel := context.WithTimeout(ctx, timeout)
		if months, err := s.history.MonthlyCommits(hctx, opts.RepoPath, s.config.Analysis.HistoryMonths); err == nil {
			rep.MonthlyCommits = months
		}
		cancel()
	}

	if s.describer != nil && opts.Slug != "" {
		dctx, cancel := context.WithTimeout(ctx, timeout)
		if desc, err := s.describer.Description(dctx, opts.Slug); err == nil {
			rep.Description = desc
		}
		cancel()
	}

	return rep, nil
}

// Aggregate folds per file detail into the repository summary. The
// cyclomatic average field carries the summed complexity across all
// functions; downstream consumers rely on that shape.
func Aggregate(files []*report.File) *report.Repo {
	rep := &report.Repo{MonthlyCommits: map[string]int{}}

	var (
		ccTotal int
		depths  []float64
		volumes []float64
		indexes []float64
	)

	for _, f := range files {
		rep.NumFiles++
		rep.LineMetrics.LOC += f.Lines.LOC
		rep.LineMetrics.LLOC += f.Lines.LLOC
		rep.LineMetrics.SLOC += f.Lines.SLOC
		rep.LineMetrics.Comments += f.Lines.Comments

		for _, fn := range f.Functions {
			rep.NumFunctions++
			ccTotal += fn.Cyclomatic
			volumes = append(volumes, fn.Volume)
			indexes = append(indexes, float64(fn.Maintainability))
		}
		for _, cls := range f.Classes {
			rep.NumClasses++
			depths = append(depths, float64(cls.Depth))
		}
	}

	if rep.LineMetrics.LOC > 0 {
		rep.LineMetrics.CommentDensity = float64(rep.LineMetrics.Comments) / float64(rep.LineMetrics.LOC)
	}

	rep.CyclomaticComplexity.Average = float64(ccTotal)
	if len(depths) > 0 {
		rep.DepthOfInheritance.Average = stat.Mean(depths, nil)
	}
	if len(volumes) > 0 {
		total := 0.0
		for _, v := range volumes {
			total += v
		}
		rep.HalsteadMetrics.TotalVolume = total
		rep.HalsteadMetrics.AverageVolume = stat.Mean(volumes, nil)
	}
	if len(indexes) > 0 {
		rep.MaintainabilityIndex.Average = stat.Mean(indexes, nil)
	}

	return rep
}
