package maintidx

import (
	"math"
	"testing"
)

func TestIndex_ZeroLoc(t *testing.T) {
	if got := Index(100, 5, 0); got != 100 {
		t.Errorf("Index(loc=0) = %d, want 100", got)
	}
	if got := Index(0, 1, -3); got != 100 {
		t.Errorf("Index(loc<0) = %d, want 100", got)
	}
}

func TestIndex_LiteralArithmetic(t *testing.T) {
	// volume=0, complexity=1, loc=10:
	// raw = 171 - 5.2*ln(1) - 0.23*1 - 16.2*ln(10)
	raw := 171.0 - 0.23 - 16.2*math.Log(10)
	want := int(raw * 100.0 / 171.0)

	if got := Index(0, 1, 10); got != want {
		t.Errorf("Index(0,1,10) = %d, want %d", got, want)
	}
}

func TestIndex_Bounds(t *testing.T) {
	cases := []struct {
		volume     float64
		complexity int
		loc        int
	}{
		{0, 1, 1},
		{1e9, 1000, 100000},
		{42.5, 7, 120},
		{0, 0, 5},
	}

	for _, c := range cases {
		got := Index(c.volume, c.complexity, c.loc)
		if got < 0 || got > 100 {
			t.Errorf("Index(%v,%d,%d) = %d, out of [0,100]", c.volume, c.complexity, c.loc, got)
		}
	}
}

func TestIndex_ArithmeticFailureDegradesToZero(t *testing.T) {
	if got := Index(math.NaN(), 1, 10); got != 0 {
		t.Errorf("Index(NaN volume) = %d, want 0", got)
	}
	if got := Index(math.Inf(1), 1, 10); got != 0 {
		t.Errorf("Index(Inf volume) = %d, want 0", got)
	}
}

func TestRankOf_Bands(t *testing.T) {
	tests := []struct {
		mi   int
		want Rank
	}{
		{100, RankA},
		{85, RankA},
		{84, RankB},
		{65, RankB},
		{64, RankC},
		{45, RankC},
		{44, RankD},
		{25, RankD},
		{24, RankF},
		{0, RankF},
	}

	for _, tt := range tests {
		if got := RankOf(tt.mi); got != tt.want {
			t.Errorf("RankOf(%d) = %s, want %s", tt.mi, got, tt.want)
		}
	}
}
