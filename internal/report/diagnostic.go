package report

import (
	"pharmakpi/internal/core"
	"pharmakpi/internal/dataset"
)

const diagnosticTopProducts = 3

// Diagnostic summarizes a year-over-year move: whole-scope decomposition,
// the category contributing most to the delta (by absolute value) and the
// top 3 contributing products.
func Diagnostic(snap *dataset.Snapshot, year, ref int) DiagnosticReport {
	cur, refAgg := scopeAggregates(snap, year, ref, "")
	deltaRevenue := cur.Revenue - refAgg.Revenue

	// Category deltas over all categories, including those without sales.
	categoryDeltas := make([]CategoryDelta, 0, len(snap.Categories))
	for _, cat := range snap.Categories {
		catCur, catRef := scopeAggregates(snap, year, ref, cat.ID)
		categoryDeltas = append(categoryDeltas, CategoryDelta{
			Category: cat.Name,
			Delta:    catCur.Revenue - catRef.Revenue,
		})
	}
	core.RankByAbsDelta(categoryDeltas, func(c CategoryDelta) float64 { return c.Delta })

	var topCategory *CategoryDelta
	if len(categoryDeltas) > 0 {
		top := categoryDeltas[0]
		top.Delta = core.Round2(top.Delta)
		topCategory = &top
	}

	// Per-product deltas, single pass.
	agg := newPairAggregator()
	for _, r := range snap.Sales {
		if r.Year != year && r.Year != ref {
			continue
		}
		if _, ok := snap.ProductByID[r.ProductID]; !ok {
			continue
		}
		agg.add(r, r.Year == year)
	}

	productDeltas := make([]ProductDelta, 0, len(agg.byID))
	agg.each(func(productID string, pair *periodPair) {
		productDeltas = append(productDeltas, ProductDelta{
			Product: snap.ProductByID[productID].Name,
			Delta:   pair.cur.Revenue - pair.ref.Revenue,
		})
	})
	core.RankByAbsDelta(productDeltas, func(p ProductDelta) float64 { return p.Delta })
	if len(productDeltas) > diagnosticTopProducts {
		productDeltas = productDeltas[:diagnosticTopProducts]
	}
	for i := range productDeltas {
		productDeltas[i].Delta = core.Round2(productDeltas[i].Delta)
	}

	return DiagnosticReport{
		Scope: YearRefScope{Year: year, Ref: ref},
		Summary: DiagnosticSummary{
			DeltaRevenue: core.Round2(deltaRevenue),
			PctRevenue:   core.Round2(core.Pct(deltaRevenue, refAgg.Revenue)),
		},
		Drivers:     roundDecomposition(core.Decompose(cur, refAgg)),
		TopCategory: topCategory,
		TopProducts: productDeltas,
	}
}
