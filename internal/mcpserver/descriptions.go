package mcpserver

// Tool descriptions with interpretation guidance for LLMs. Each
// description explains what the tool does, when to use it, and how to
// read the results.

func describeRepository() string {
	return `Builds a full metric report for a repository: line counts, cyclomatic complexity, Halstead volume, maintainability index, inheritance depth, commit activity and the hosted description.

USE WHEN:
- Getting a first overview of an unfamiliar codebase
- Comparing overall quality between repositories
- Tracking repository health over time

INTERPRETING RESULTS:
- line_metrics: loc (physical), sloc (non-blank), lloc (logical), comments, comment_density
- cyclomatic_complexity.average: summed complexity across all functions
- halstead_metrics: total and mean volume across functions
- maintainability_index.average: 0-100, higher is easier to maintain
- depth_of_inheritance.average: mean count of direct superclasses per class
- monthly_commits: commits per calendar month over the trailing window

METRICS RETURNED:
- Repository summary plus num_files, num_functions, num_classes
- Optional per-file detail with include_files`
}

func describeLines() string {
	return `Counts physical, source, logical and comment lines for source files.

USE WHEN:
- Sizing a codebase or a subdirectory
- Measuring comment coverage
- Comparing documentation density across modules

INTERPRETING RESULTS:
- loc: physical lines including blanks
- sloc: lines with any non-whitespace content
- lloc: logical statements after joining continuations and splitting separators
- comments: lines carrying a comment
- comment_density: comments / loc

METRICS RETURNED:
- Aggregate counts plus per-file breakdown`
}

func describeComplexity() string {
	return `Measures cyclomatic complexity per function with letter ranks.

USE WHEN:
- Finding functions that are hard to test or review
- Prioritizing refactoring work
- Gating changes on complexity budgets

INTERPRETING RESULTS:
- Each decision point (if, loop, handler, boolean operator) adds one
- Rank A (1-5) simple through F (41+) unmaintainable
- Rank C and above usually deserve a closer look

METRICS RETURNED:
- Per-function cyclomatic score, rank and line span
- Per-file function lists`
}

func describeMaintainability() string {
	return `Computes the maintainability index per function from volume, complexity and length.

USE WHEN:
- Ranking functions by maintenance effort
- Spotting long, dense, branchy code
- Tracking maintainability regressions

INTERPRETING RESULTS:
- 0-100 scale, higher is better
- Rank A (85+) very maintainable, B (65+), C (45+), D (25+), F below
- Short trivial functions score near 100

METRICS RETURNED:
- Per-function maintainability index, rank, Halstead volume and cyclomatic score`
}
