package core

import (
	"math"
	"sort"
)

const (
	LimitDefault = 10
	LimitMin     = 1
	LimitMax     = 50
)

// RankByAbsDelta sorts items in place by descending absolute delta. The sort
// is stable so ties keep their input order.
func RankByAbsDelta[T any](items []T, delta func(T) float64) {
	sort.SliceStable(items, func(i, j int) bool {
		return math.Abs(delta(items[i])) > math.Abs(delta(items[j]))
	})
}

// ShareOfDelta returns delta as a rounded percentage of total, 0 when total
// is 0. The total must cover the full peer group, not a truncated top-N.
func ShareOfDelta(delta, total float64) float64 {
	if total != 0 {
		return Round2(delta / total * 100)
	}
	return 0
}

// ClampLimit coerces a requested result count into [LimitMin, LimitMax].
func ClampLimit(limit int) int {
	if limit < LimitMin {
		return LimitMin
	}
	if limit > LimitMax {
		return LimitMax
	}
	return limit
}
