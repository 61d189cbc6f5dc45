package report

import (
	"pharmakpi/internal/core"
	"pharmakpi/internal/dataset"
)

// MonthDetail drills into one calendar month across two years: month totals
// with decomposition plus the ranked per-product breakdown. ref 0 defaults
// to year-1. Aggregation is a single pass restricted to the target month.
func MonthDetail(snap *dataset.Snapshot, year, month, ref int, categoryID string, limit int) MonthDetailReport {
	if ref == 0 {
		ref = year - 1
	}
	limit = core.ClampLimit(limit)

	var cur, refAgg core.Aggregate
	agg := newPairAggregator()
	for _, r := range snap.Sales {
		if r.Month != month {
			continue
		}
		if r.Year != year && r.Year != ref {
			continue
		}
		p, ok := snap.ProductByID[r.ProductID]
		if !ok {
			continue
		}
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}

		isCurrent := r.Year == year
		if isCurrent {
			cur.Add(r)
		} else {
			refAgg.Add(r)
		}
		agg.add(r, isCurrent)
	}

	deltaRevenue := cur.Revenue - refAgg.Revenue

	type rawEntry struct {
		productID string
		pair      periodPair
		delta     float64
	}
	entries := make([]rawEntry, 0, len(agg.byID))
	agg.each(func(productID string, pair *periodPair) {
		entries = append(entries, rawEntry{
			productID: productID,
			pair:      *pair,
			delta:     pair.cur.Revenue - pair.ref.Revenue,
		})
	})

	core.RankByAbsDelta(entries, func(e rawEntry) float64 { return e.delta })
	if len(entries) > limit {
		entries = entries[:limit]
	}

	// Unresolvable rows are skipped from totals and breakdown alike, so the
	// whole-scope delta is the per-product deltas' total.
	topProducts := make([]MonthProductEntry, len(entries))
	for i, e := range entries {
		p := snap.ProductByID[e.productID]
		topProducts[i] = MonthProductEntry{
			ProductID:     e.productID,
			Product:       p.Name,
			Category:      snap.CategoryLabel(p.CategoryID),
			RevenueRef:    core.Round2(e.pair.ref.Revenue),
			RevenueCur:    core.Round2(e.pair.cur.Revenue),
			Delta:         core.Round2(e.delta),
			Decomposition: roundDecomposition(core.Decompose(e.pair.cur, e.pair.ref)),
			ShareOfDelta:  core.ShareOfDelta(e.delta, deltaRevenue),
		}
	}

	return MonthDetailReport{
		Scope: MonthDetailScope{
			Year:       year,
			Month:      month,
			Ref:        ref,
			CategoryID: optString(categoryID),
			Limit:      limit,
		},
		Month: periodKPIs(cur),
		Ref:   periodKPIs(refAgg),
		Delta: RevenueDelta{
			Revenue:    core.Round2(deltaRevenue),
			PctRevenue: core.Round2(core.Pct(deltaRevenue, refAgg.Revenue)),
		},
		Decomposition: roundDecomposition(core.Decompose(cur, refAgg)),
		TopProducts:   topProducts,
	}
}
