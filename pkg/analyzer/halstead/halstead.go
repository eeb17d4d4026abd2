// Package halstead extracts operator and operand tokens from a lowered
// statement tree and computes Halstead volume.
package halstead

import (
	"math"

	"github.com/reposcope/reposcope/pkg/syntax"
)

// Tokens holds the flat operator and operand sequences extracted from a
// callable, in encounter order.
type Tokens struct {
	Operators []string
	Operands  []string
}

// Metrics holds Halstead base counts and the derived volume.
type Metrics struct {
	DistinctOperators uint32  `json:"distinct_operators"` // n1
	DistinctOperands  uint32  `json:"distinct_operands"`  // n2
	TotalOperators    uint32  `json:"total_operators"`    // N1
	TotalOperands     uint32  `json:"total_operands"`     // N2
	Volume            float64 `json:"volume"`
}

// Extract walks a statement tree and collects operator/operand tokens.
// Function calls contribute their name as an operator and each argument's
// source text as an operand. Expressions are classified by kind; the walk
// follows at most one Inner hop and does not descend into deeper
// sub-expressions.
func Extract(stmts []syntax.Statement) Tokens {
	var tk Tokens
	extractStatements(stmts, &tk)
	return tk
}

func extractStatements(stmts []syntax.Statement, tk *Tokens) {
	for i := range stmts {
		s := &stmts[i]

		for _, call := range s.Calls {
			tk.Operators = append(tk.Operators, call.Name)
			tk.Operands = append(tk.Operands, call.Args...)
		}

		for j := range s.Exprs {
			extractExpression(&s.Exprs[j], tk)
		}

		for _, br := range s.Branches {
			extractStatements(br.Body, tk)
		}
		for _, block := range s.Blocks {
			extractStatements(block, tk)
		}
	}
}

func extractExpression(e *syntax.Expression, tk *Tokens) {
	switch e.Kind {
	case syntax.ExprBinary, syntax.ExprComparison:
		tk.Operators = append(tk.Operators, e.Operators...)
		tk.Operands = append(tk.Operands, e.Elements...)
	case syntax.ExprUnary:
		tk.Operators = append(tk.Operators, e.Operator)
		tk.Operands = append(tk.Operands, e.Operand)
	}

	// One level only; nested sub-expressions past this hop are not visited.
	if e.Inner != nil {
		extractExpression(e.Inner, tk)
	}
}

// Compute derives Halstead metrics from token sequences. Volume is
// (N1+N2) * log2(n1+n2), or 0 when the combined vocabulary is empty.
func Compute(tk Tokens) Metrics {
	m := Metrics{
		DistinctOperators: distinct(tk.Operators),
		DistinctOperands:  distinct(tk.Operands),
		TotalOperators:    uint32(len(tk.Operators)),
		TotalOperands:     uint32(len(tk.Operands)),
	}

	vocabulary := m.DistinctOperators + m.DistinctOperands
	if vocabulary > 0 {
		length := m.TotalOperators + m.TotalOperands
		m.Volume = float64(length) * math.Log2(float64(vocabulary))
	}

	return m
}

func distinct(tokens []string) uint32 {
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		seen[t] = struct{}{}
	}
	return uint32(len(seen))
}
