// Package complexity computes cyclomatic complexity over a lowered
// statement tree.
package complexity

import (
	"fmt"
	"strings"

	"github.com/reposcope/reposcope/pkg/syntax"
)

// Rank is a letter grade for a complexity score.
type Rank string

const (
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
	RankD Rank = "D"
	RankE Rank = "E"
	RankF Rank = "F"
)

// Cyclomatic computes the cyclomatic complexity of a statement tree.
// The base path counts 1; every decision point adds 1. A nil or empty
// tree (an unparsed stub) yields 1.
func Cyclomatic(stmts []syntax.Statement) int {
	return 1 + decisionPoints(stmts)
}

func decisionPoints(stmts []syntax.Statement) int {
	n := 0
	for i := range stmts {
		n += statementPoints(&stmts[i])
	}
	return n
}

func statementPoints(s *syntax.Statement) int {
	n := 0

	switch s.Kind {
	case syntax.KindIf:
		n++
		n += len(s.Branches)
	case syntax.KindFor, syntax.KindWhile:
		n++
	case syntax.KindTry:
		n += s.Handlers
	}

	n += conditionPoints(s.Condition)
	for _, br := range s.Branches {
		n += conditionPoints(br.Condition)
		n += decisionPoints(br.Body)
	}
	for _, block := range s.Blocks {
		n += decisionPoints(block)
	}

	return n
}

// conditionPoints counts boolean operators in a condition's source text.
// A textual proxy for branching inside compound conditions.
func conditionPoints(cond string) int {
	if cond == "" {
		return 0
	}
	return strings.Count(cond, " and ") + strings.Count(cond, " or ")
}

// RankOf maps a cyclomatic complexity score to a letter grade. Negative
// scores violate the additive invariant and return an error.
func RankOf(cc int) (Rank, error) {
	if cc < 0 {
		return "", fmt.Errorf("complexity must be non-negative, got %d", cc)
	}
	switch {
	case cc <= 5:
		return RankA, nil
	case cc <= 10:
		return RankB, nil
	case cc <= 20:
		return RankC, nil
	case cc <= 30:
		return RankD, nil
	case cc <= 40:
		return RankE, nil
	default:
		return RankF, nil
	}
}
