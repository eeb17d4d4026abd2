package syntax

import (
	"testing"

	"github.com/reposcope/reposcope/pkg/parser"
)

func lowerFirst(t *testing.T, source string, lang parser.Language) Function {
	t.Helper()

	p := parser.New()
	defer p.Close()

	result, err := p.Parse([]byte(source), lang, "test")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	fns := parser.GetFunctions(result)
	if len(fns) == 0 {
		t.Fatal("no functions parsed")
	}
	return Lower(fns[0], result.Source)
}

func findKind(stmts []Statement, kind StatementKind) *Statement {
	for i := range stmts {
		if stmts[i].Kind == kind {
			return &stmts[i]
		}
		for _, block := range stmts[i].Blocks {
			if found := findKind(block, kind); found != nil {
				return found
			}
		}
	}
	return nil
}

func TestLowerPythonIfElif(t *testing.T) {
	src := `def f(x, y, z):
    if x and y:
        return 1
    elif z or x:
        return 2
    else:
        return 3
`
	fn := lowerFirst(t, src, parser.LangPython)

	if fn.Name != "f" {
		t.Errorf("Name = %q, want f", fn.Name)
	}

	ifStmt := findKind(fn.Body, KindIf)
	if ifStmt == nil {
		t.Fatal("no if statement lowered")
	}
	if ifStmt.Condition != "x and y" {
		t.Errorf("Condition = %q, want %q", ifStmt.Condition, "x and y")
	}
	if len(ifStmt.Branches) != 1 {
		t.Fatalf("len(Branches) = %d, want 1", len(ifStmt.Branches))
	}
	if ifStmt.Branches[0].Condition != "z or x" {
		t.Errorf("branch condition = %q, want %q", ifStmt.Branches[0].Condition, "z or x")
	}
}

func TestLowerGoConditionNormalized(t *testing.T) {
	src := `package main

func f(a, b int) int {
	if a > 0 && b > 0 {
		return a
	}
	return b
}
`
	fn := lowerFirst(t, src, parser.LangGo)

	ifStmt := findKind(fn.Body, KindIf)
	if ifStmt == nil {
		t.Fatal("no if statement lowered")
	}
	if want := "a > 0  and  b > 0"; ifStmt.Condition != want {
		t.Errorf("Condition = %q, want %q", ifStmt.Condition, want)
	}
}

func TestLowerPythonTryHandlers(t *testing.T) {
	src := `def f():
    try:
        risky()
    except ValueError:
        pass
    except KeyError:
        pass
`
	fn := lowerFirst(t, src, parser.LangPython)

	tryStmt := findKind(fn.Body, KindTry)
	if tryStmt == nil {
		t.Fatal("no try statement lowered")
	}
	if tryStmt.Handlers != 2 {
		t.Errorf("Handlers = %d, want 2", tryStmt.Handlers)
	}
	if len(tryStmt.Blocks) < 2 {
		t.Errorf("len(Blocks) = %d, want at least 2", len(tryStmt.Blocks))
	}
}

func TestLowerLoops(t *testing.T) {
	src := `def f(items):
    for item in items:
        use(item)
    while items:
        items.pop()
`
	fn := lowerFirst(t, src, parser.LangPython)

	if findKind(fn.Body, KindFor) == nil {
		t.Error("no for statement lowered")
	}
	if findKind(fn.Body, KindWhile) == nil {
		t.Error("no while statement lowered")
	}
}

func TestLowerCollectsCalls(t *testing.T) {
	src := `def f(x):
    print(x, 1)
`
	fn := lowerFirst(t, src, parser.LangPython)

	if len(fn.Body) == 0 {
		t.Fatal("empty body")
	}
	stmt := fn.Body[0]
	if len(stmt.Calls) != 1 {
		t.Fatalf("len(Calls) = %d, want 1", len(stmt.Calls))
	}
	if stmt.Calls[0].Name != "print" {
		t.Errorf("call name = %q, want print", stmt.Calls[0].Name)
	}
	if len(stmt.Calls[0].Args) != 2 {
		t.Errorf("len(Args) = %d, want 2", len(stmt.Calls[0].Args))
	}
}

func TestLowerExpressionClassification(t *testing.T) {
	src := `def f(a, b):
    if a > b:
        return a
`
	fn := lowerFirst(t, src, parser.LangPython)

	ifStmt := findKind(fn.Body, KindIf)
	if ifStmt == nil {
		t.Fatal("no if statement lowered")
	}
	if len(ifStmt.Exprs) == 0 {
		t.Fatal("condition expression not collected")
	}

	expr := ifStmt.Exprs[0]
	if expr.Kind != ExprComparison {
		t.Errorf("Kind = %v, want ExprComparison", expr.Kind)
	}
	if len(expr.Operators) != 1 || expr.Operators[0] != ">" {
		t.Errorf("Operators = %v, want [>]", expr.Operators)
	}
	if len(expr.Elements) != 2 {
		t.Errorf("Elements = %v, want two operands", expr.Elements)
	}
}

func TestLowerNoBody(t *testing.T) {
	fn := Lower(parser.FunctionNode{Name: "stub"}, nil)
	if fn.Body != nil {
		t.Errorf("Body = %v, want nil for a function without a body", fn.Body)
	}
}

func TestLowerClass(t *testing.T) {
	cls := LowerClass(parser.ClassNode{
		Name:         "App",
		StartLine:    1,
		EndLine:      4,
		Superclasses: []string{"Base", "Mixin"},
	})

	if cls.Name != "App" || len(cls.Superclasses) != 2 {
		t.Errorf("LowerClass() = %+v", cls)
	}
}
