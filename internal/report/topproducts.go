package report

import (
	"pharmakpi/internal/core"
	"pharmakpi/internal/dataset"
)

// TopProducts ranks products by absolute revenue delta between the two
// periods. Aggregation is a single pass over the sales rows; rows whose
// product cannot be resolved are skipped. The share of delta is computed
// against the total over all matching products, not the truncated top-N.
func TopProducts(snap *dataset.Snapshot, year, ref int, categoryID string, limit int) TopProductsReport {
	limit = core.ClampLimit(limit)

	agg := newPairAggregator()
	for _, r := range snap.Sales {
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
		agg.add(r, r.Year == year)
	}

	type rawItem struct {
		productID string
		pair      periodPair
		delta     float64
	}

	items := make([]rawItem, 0, len(agg.byID))
	var totalDelta float64
	agg.each(func(productID string, pair *periodPair) {
		delta := pair.cur.Revenue - pair.ref.Revenue
		totalDelta += delta
		items = append(items, rawItem{productID: productID, pair: *pair, delta: delta})
	})

	core.RankByAbsDelta(items, func(it rawItem) float64 { return it.delta })
	if len(items) > limit {
		items = items[:limit]
	}

	out := make([]ProductComparison, len(items))
	for i, it := range items {
		p := snap.ProductByID[it.productID]
		out[i] = ProductComparison{
			ProductID:     it.productID,
			Product:       p.Name,
			Category:      snap.CategoryLabel(p.CategoryID),
			RevenueRef:    core.Round2(it.pair.ref.Revenue),
			RevenueCur:    core.Round2(it.pair.cur.Revenue),
			Delta:         core.Round2(it.delta),
			QuantityRef:   it.pair.ref.Quantity,
			QuantityCur:   it.pair.cur.Quantity,
			AvgPriceRef:   core.Round2(it.pair.ref.AvgPrice()),
			AvgPriceCur:   core.Round2(it.pair.cur.AvgPrice()),
			Decomposition: roundDecomposition(core.Decompose(it.pair.cur, it.pair.ref)),
			ShareOfDelta:  core.ShareOfDelta(it.delta, totalDelta),
		}
	}

	return TopProductsReport{
		Scope: TopProductsScope{
			Year:       year,
			Ref:        ref,
			CategoryID: optString(categoryID),
			Limit:      limit,
		},
		TotalDelta: core.Round2(totalDelta),
		Items:      out,
	}
}
