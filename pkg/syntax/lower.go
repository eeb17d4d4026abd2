package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/reposcope/reposcope/pkg/parser"
)

// Lower converts a parsed function into a Function with a lowered
// statement tree. A function without a body yields a nil tree.
func Lower(fn parser.FunctionNode, source []byte) Function {
	out := Function{
		Name:      fn.Name,
		StartLine: fn.StartLine,
		EndLine:   fn.EndLine,
	}
	if fn.Body != nil {
		out.Body = LowerBlock(fn.Body, source)
	}
	return out
}

// LowerClass converts a parsed class into a Class.
func LowerClass(cls parser.ClassNode) Class {
	return Class{
		Name:         cls.Name,
		StartLine:    cls.StartLine,
		EndLine:      cls.EndLine,
		Superclasses: cls.Superclasses,
	}
}

// LowerBlock lowers the statements of a block node.
func LowerBlock(block *sitter.Node, source []byte) []Statement {
	if block == nil {
		return nil
	}

	var stmts []Statement
	for i := range int(block.NamedChildCount()) {
		stmts = append(stmts, lowerStatement(block.NamedChild(i), source))
	}
	return stmts
}

var ifTypes = map[string]bool{
	"if_statement": true, "if_expression": true, "if": true, "unless": true,
	"conditional_expression": true, "ternary_expression": true,
}

var forTypes = map[string]bool{
	"for_statement": true, "for_expression": true, "for": true,
	"for_in_statement": true, "enhanced_for_statement": true,
	"foreach_statement": true,
}

var whileTypes = map[string]bool{
	"while_statement": true, "while_expression": true, "while": true,
	"until": true, "do_statement": true, "loop_expression": true,
}

var tryTypes = map[string]bool{
	"try_statement": true, "try_expression": true, "begin": true,
}

var handlerTypes = map[string]bool{
	"except_clause": true, "catch_clause": true, "rescue": true,
	"except_group_clause": true,
}

var branchTypes = map[string]bool{
	"elif_clause": true, "elseif_clause": true, "else_if_clause": true,
	"elsif": true,
}

var blockTypes = map[string]bool{
	"block": true, "statement_block": true, "compound_statement": true,
	"body_statement": true, "do_block": true, "suite": true,
	"else_clause": true, "finally_clause": true, "ensure": true,
	"declaration_list": true,
}

var callTypes = map[string]bool{
	"call": true, "call_expression": true, "method_invocation": true,
	"function_call_expression": true, "invocation_expression": true,
	"method_call": true, "macro_invocation": true,
}

var binaryTypes = map[string]bool{
	"binary_expression": true, "binary_operator": true,
	"boolean_operator": true, "logical_expression": true,
}

var comparisonTypes = map[string]bool{
	"comparison_operator": true, "comparison_expression": true,
	"relational_expression": true,
}

var unaryTypes = map[string]bool{
	"unary_expression": true, "unary_operator": true, "not_operator": true,
	"update_expression": true,
}

var wrapperTypes = map[string]bool{
	"expression_statement": true, "parenthesized_expression": true,
}

func statementKind(nodeType string) StatementKind {
	switch {
	case ifTypes[nodeType]:
		return KindIf
	case forTypes[nodeType]:
		return KindFor
	case whileTypes[nodeType]:
		return KindWhile
	case tryTypes[nodeType]:
		return KindTry
	default:
		return KindOther
	}
}

func lowerStatement(node *sitter.Node, source []byte) Statement {
	s := Statement{Kind: statementKind(node.Type())}

	if cond := node.ChildByFieldName("condition"); cond != nil {
		s.Condition = normalizeCondition(parser.GetNodeText(cond, source))
	}

	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		childType := child.Type()

		switch {
		case branchTypes[childType]:
			s.Branches = append(s.Branches, lowerBranch(child, source))
		case handlerTypes[childType]:
			s.Handlers++
			s.Blocks = append(s.Blocks, handlerBody(child, source))
		case blockTypes[childType]:
			s.Blocks = append(s.Blocks, LowerBlock(child, source))
		case statementKind(childType) != KindOther:
			// Nested statement attached directly (e.g. an else-if arm
			// represented as a nested if, or a loop as a bare child).
			s.Blocks = append(s.Blocks, []Statement{lowerStatement(child, source)})
		}
	}

	collectExpressions(node, source, &s)
	return s
}

// normalizeCondition rewrites symbolic boolean operators to their word
// forms so the complexity walker's textual operator count sees every
// language the same way.
func normalizeCondition(cond string) string {
	cond = strings.ReplaceAll(cond, "&&", " and ")
	cond = strings.ReplaceAll(cond, "||", " or ")
	return cond
}

func lowerBranch(node *sitter.Node, source []byte) Branch {
	br := Branch{}
	if cond := node.ChildByFieldName("condition"); cond != nil {
		br.Condition = normalizeCondition(parser.GetNodeText(cond, source))
	}
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		if blockTypes[child.Type()] {
			br.Body = append(br.Body, LowerBlock(child, source)...)
		}
	}
	return br
}

func handlerBody(node *sitter.Node, source []byte) []Statement {
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		if blockTypes[child.Type()] {
			return LowerBlock(child, source)
		}
	}
	return nil
}

// collectExpressions gathers the calls and expressions belonging to a
// statement, without crossing into nested blocks or nested statements
// (those are lowered separately).
func collectExpressions(node *sitter.Node, source []byte, s *Statement) {
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		childType := child.Type()

		if blockTypes[childType] || branchTypes[childType] || handlerTypes[childType] {
			continue
		}
		if statementKind(childType) != KindOther {
			continue
		}

		switch {
		case callTypes[childType]:
			s.Calls = append(s.Calls, lowerCall(child, source))
		case binaryTypes[childType], comparisonTypes[childType], unaryTypes[childType]:
			s.Exprs = append(s.Exprs, lowerExpression(child, source))
		case wrapperTypes[childType]:
			if inner := firstNamedChild(child); inner != nil {
				expr := lowerExpression(inner, source)
				if callTypes[inner.Type()] {
					s.Calls = append(s.Calls, lowerCall(inner, source))
				} else {
					s.Exprs = append(s.Exprs, Expression{Kind: ExprOther, Inner: &expr})
				}
			}
		default:
			collectExpressions(child, source, s)
		}
	}
}

func lowerCall(node *sitter.Node, source []byte) Call {
	call := Call{}

	fn := node.ChildByFieldName("function")
	if fn == nil {
		fn = node.ChildByFieldName("name")
	}
	if fn == nil {
		fn = node.ChildByFieldName("method")
	}
	call.Name = parser.GetNodeText(fn, source)

	args := node.ChildByFieldName("arguments")
	if args != nil {
		for i := range int(args.NamedChildCount()) {
			call.Args = append(call.Args, parser.GetNodeText(args.NamedChild(i), source))
		}
	}

	return call
}

// lowerExpression classifies one expression node. The walk is shallow:
// binary and comparison expressions contribute their operator symbols and
// element source texts, unary expressions their single operator and
// operand, and nothing deeper is visited.
func lowerExpression(node *sitter.Node, source []byte) Expression {
	nodeType := node.Type()

	switch {
	case binaryTypes[nodeType], comparisonTypes[nodeType]:
		expr := Expression{Kind: ExprBinary}
		if comparisonTypes[nodeType] {
			expr.Kind = ExprComparison
		}
		for i := range int(node.ChildCount()) {
			child := node.Child(i)
			if child.IsNamed() {
				expr.Elements = append(expr.Elements, parser.GetNodeText(child, source))
			} else {
				expr.Operators = append(expr.Operators, child.Type())
			}
		}
		return expr

	case unaryTypes[nodeType]:
		expr := Expression{Kind: ExprUnary}
		if op := node.ChildByFieldName("operator"); op != nil {
			expr.Operator = parser.GetNodeText(op, source)
		} else if node.ChildCount() > 0 && !node.Child(0).IsNamed() {
			expr.Operator = node.Child(0).Type()
		}
		if arg := node.ChildByFieldName("argument"); arg != nil {
			expr.Operand = parser.GetNodeText(arg, source)
		} else if operand := node.ChildByFieldName("operand"); operand != nil {
			expr.Operand = parser.GetNodeText(operand, source)
		} else if inner := firstNamedChild(node); inner != nil {
			expr.Operand = parser.GetNodeText(inner, source)
		}
		return expr

	case wrapperTypes[nodeType]:
		if inner := firstNamedChild(node); inner != nil {
			wrapped := lowerExpression(inner, source)
			return Expression{Kind: ExprOther, Inner: &wrapped}
		}
	}

	return Expression{Kind: ExprOther}
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	if node.NamedChildCount() == 0 {
		return nil
	}
	return node.NamedChild(0)
}
