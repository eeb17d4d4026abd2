package report

// LineMetrics aggregates physical line counts across a repository.
type LineMetrics struct {
	LOC            int     `json:"loc"`
	LLOC           int     `json:"lloc"`
	SLOC           int     `json:"sloc"`
	Comments       int     `json:"comments"`
	CommentDensity float64 `json:"comment_density"`
}

// ComplexitySummary carries the repository wide cyclomatic figure.
// The average field holds the summed complexity across all functions.
type ComplexitySummary struct {
	Average float64 `json:"average"`
}

// InheritanceSummary carries the mean depth of inheritance per class.
type InheritanceSummary struct {
	Average float64 `json:"average"`
}

// HalsteadSummary carries volume totals across all functions.
type HalsteadSummary struct {
	TotalVolume   float64 `json:"total_volume"`
	AverageVolume float64 `json:"average_volume"`
}

// MaintainabilitySummary carries the mean maintainability index.
type MaintainabilitySummary struct {
	Average float64 `json:"average"`
}

// Repo is the top level repository report.
type Repo struct {
	LineMetrics          LineMetrics            `json:"line_metrics"`
	CyclomaticComplexity ComplexitySummary      `json:"cyclomatic_complexity"`
	DepthOfInheritance   InheritanceSummary     `json:"depth_of_inheritance"`
	HalsteadMetrics      HalsteadSummary        `json:"halstead_metrics"`
	MaintainabilityIndex MaintainabilitySummary `json:"maintainability_index"`
	Description          string                 `json:"description"`
	NumFiles             int                    `json:"num_files"`
	NumFunctions         int                    `json:"num_functions"`
	NumClasses           int                    `json:"num_classes"`
	MonthlyCommits       map[string]int         `json:"monthly_commits"`

	// Files holds per file detail when requested. Omitted from the
	// summary payload otherwise.
	Files []File `json:"files,omitempty"`
}

// Function is the per function metric detail.
type Function struct {
	Name            string  `json:"name"`
	StartLine       int     `json:"start_line"`
	EndLine         int     `json:"end_line"`
	Cyclomatic      int     `json:"cyclomatic"`
	Rank            string  `json:"rank"`
	Volume          float64 `json:"volume"`
	Maintainability int     `json:"maintainability"`
	MaintRank       string  `json:"maintainability_rank"`
}

// Class is the per class metric detail.
type Class struct {
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

// File is the per file metric detail.
type File struct {
	Path      string      `json:"path"`
	Language  string      `json:"language"`
	Lines     LineMetrics `json:"lines"`
	Functions []Function  `json:"functions,omitempty"`
	Classes   []Class     `json:"classes,omitempty"`
}
