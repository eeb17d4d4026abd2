package complexity

import (
	"testing"

	"github.com/reposcope/reposcope/pkg/syntax"
)

func TestCyclomatic_EmptyTree(t *testing.T) {
	if got := Cyclomatic(nil); got != 1 {
		t.Errorf("Cyclomatic(nil) = %d, want 1", got)
	}
	if got := Cyclomatic([]syntax.Statement{}); got != 1 {
		t.Errorf("Cyclomatic(empty) = %d, want 1", got)
	}
}

func TestCyclomatic_IfElifWithCompoundCondition(t *testing.T) {
	// if a and b: ... elif c: ...
	stmts := []syntax.Statement{
		{
			Kind:      syntax.KindIf,
			Condition: "a and b",
			Branches:  []syntax.Branch{{Condition: "c"}},
			Blocks: [][]syntax.Statement{
				{{Kind: syntax.KindOther}},
			},
		},
	}

	// 1 base + 1 if + 1 elif + 1 "and"
	if got := Cyclomatic(stmts); got != 4 {
		t.Fatalf("Cyclomatic = %d, want 4", got)
	}

	rank, err := RankOf(Cyclomatic(stmts))
	if err != nil {
		t.Fatalf("RankOf failed: %v", err)
	}
	if rank != RankA {
		t.Errorf("rank = %s, want A", rank)
	}
}

func TestCyclomatic_Loops(t *testing.T) {
	stmts := []syntax.Statement{
		{Kind: syntax.KindFor, Blocks: [][]syntax.Statement{
			{{Kind: syntax.KindWhile, Condition: "x or y"}},
		}},
	}

	// 1 base + 1 for + 1 while + 1 "or"
	if got := Cyclomatic(stmts); got != 4 {
		t.Errorf("Cyclomatic = %d, want 4", got)
	}
}

func TestCyclomatic_TryHandlers(t *testing.T) {
	stmts := []syntax.Statement{
		{Kind: syntax.KindTry, Handlers: 3},
	}

	if got := Cyclomatic(stmts); got != 4 {
		t.Errorf("Cyclomatic = %d, want 4", got)
	}
}

func TestCyclomatic_NestedBlocks(t *testing.T) {
	inner := []syntax.Statement{
		{Kind: syntax.KindIf, Condition: "z"},
	}
	stmts := []syntax.Statement{
		{Kind: syntax.KindIf, Condition: "a", Blocks: [][]syntax.Statement{inner}},
	}

	// 1 base + outer if + inner if
	if got := Cyclomatic(stmts); got != 3 {
		t.Errorf("Cyclomatic = %d, want 3", got)
	}
}

func TestRankOf_Bands(t *testing.T) {
	tests := []struct {
		cc   int
		want Rank
	}{
		{0, RankA},
		{1, RankA},
		{5, RankA},
		{6, RankB},
		{10, RankB},
		{11, RankC},
		{20, RankC},
		{21, RankD},
		{30, RankD},
		{31, RankE},
		{40, RankE},
		{41, RankF},
		{100, RankF},
	}

	for _, tt := range tests {
		got, err := RankOf(tt.cc)
		if err != nil {
			t.Fatalf("RankOf(%d) failed: %v", tt.cc, err)
		}
		if got != tt.want {
			t.Errorf("RankOf(%d) = %s, want %s", tt.cc, got, tt.want)
		}
	}
}

func TestRankOf_NegativeFails(t *testing.T) {
	if _, err := RankOf(-1); err == nil {
		t.Error("RankOf(-1) should fail")
	}
}
