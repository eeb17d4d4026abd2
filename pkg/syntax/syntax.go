// Package syntax defines a language-neutral statement and expression tree.
// Parsers lower language-specific ASTs into this form; the metric analyzers
// consume it without knowing which parser produced it.
package syntax

// StatementKind classifies a statement for complexity accounting.
type StatementKind int

const (
	// KindOther covers statements that add no decision points themselves.
	KindOther StatementKind = iota
	KindIf
	KindFor
	KindWhile
	KindTry
)

// Statement is one statement together with its nested structure.
type Statement struct {
	Kind StatementKind

	// Condition is the boolean condition source text, empty when the
	// statement has none.
	Condition string

	// Branches holds the elif/else-if arms of an if statement.
	Branches []Branch

	// Handlers is the number of exception-handler clauses on a try statement.
	Handlers int

	// Blocks are the nested statement blocks attached to this statement
	// (then-block, else-block, loop body, try body, and so on).
	Blocks [][]Statement

	// Calls are the function calls appearing in this statement.
	Calls []Call

	// Exprs are the expressions attached to this statement.
	Exprs []Expression
}

// Branch is one else-if arm of an if statement.
type Branch struct {
	Condition string
	Body      []Statement
}

// Call is a function call: its name and the source text of each argument.
type Call struct {
	Name string
	Args []string
}

// ExprKind classifies an expression for operator/operand extraction.
type ExprKind int

const (
	ExprOther ExprKind = iota
	ExprBinary
	ExprComparison
	ExprUnary
)

// Expression is a single expression node. Binary and comparison expressions
// carry their operator symbols and element source texts; unary expressions
// carry one operator and one operand. Inner is the single wrapped expression
// some statements expose (e.g. an expression statement's payload).
type Expression struct {
	Kind      ExprKind
	Operators []string
	Elements  []string
	Operator  string
	Operand   string
	Inner     *Expression
}

// Class is a class-like declaration with its direct superclass references.
type Class struct {
	Name         string
	StartLine    uint32
	EndLine      uint32
	Superclasses []string
}

// Function is a callable together with its lowered statement tree. A nil
// Body means the callable could not be parsed (an external stub).
type Function struct {
	Name      string
	StartLine uint32
	EndLine   uint32
	Body      []Statement
}
