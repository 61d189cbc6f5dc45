package core

import (
	"reflect"
	"testing"
)

type rankedItem struct {
	id    string
	delta float64
}

func TestRankByAbsDelta(t *testing.T) {
	items := []rankedItem{
		{"a", -50},
		{"b", 10},
		{"c", 30},
		{"d", -10}, // ties with b on abs value, must stay after it
	}

	RankByAbsDelta(items, func(it rankedItem) float64 { return it.delta })

	gotIDs := make([]string, len(items))
	for i, it := range items {
		gotIDs[i] = it.id
	}
	want := []string{"a", "c", "b", "d"}
	if !reflect.DeepEqual(gotIDs, want) {
		t.Errorf("ranked order = %v, want %v", gotIDs, want)
	}
}

func TestShareOfDeltaSumsToHundred(t *testing.T) {
	deltas := []float64{40, -25, 85} // total 100
	var total float64
	for _, d := range deltas {
		total += d
	}

	var sum float64
	for _, d := range deltas {
		sum += ShareOfDelta(d, total)
	}
	if sum < 99.99 || sum > 100.01 {
		t.Errorf("shares sum to %v, want 100 within rounding tolerance", sum)
	}
}

func TestShareOfDeltaZeroTotal(t *testing.T) {
	if got := ShareOfDelta(12.5, 0); got != 0 {
		t.Errorf("ShareOfDelta(12.5, 0) = %v, want 0", got)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{10, 10},
		{50, 50},
		{999, 50},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.in); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
