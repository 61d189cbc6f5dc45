package report

import (
	"pharmakpi/internal/core"
	"pharmakpi/internal/dataset"
)

// ProductAnalysis compares one product's two periods and decomposes the
// delta. Returns ErrProductNotFound for an unknown id.
func ProductAnalysis(snap *dataset.Snapshot, year, ref int, productID string) (ProductAnalysisReport, error) {
	product, ok := snap.ProductByID[productID]
	if !ok {
		return ProductAnalysisReport{}, ErrProductNotFound
	}

	var cur, refAgg core.Aggregate
	for _, r := range snap.Sales {
		if r.ProductID != productID {
			continue
		}
		if r.Year == year {
			cur.Add(r)
		}
		if r.Year == ref {
			refAgg.Add(r)
		}
	}
	deltaRevenue := cur.Revenue - refAgg.Revenue

	return ProductAnalysisReport{
		Scope: ProductScope{Year: year, Ref: ref, ProductID: productID},
		Product: ProductInfo{
			ID:       product.ID,
			Name:     product.Name,
			Brand:    product.Brand,
			SKU:      product.SKU,
			Category: snap.CategoryLabel(product.CategoryID),
		},
		Year: periodKPIs(cur),
		Ref:  periodKPIs(refAgg),
		Delta: RevenueDelta{
			Revenue:    core.Round2(deltaRevenue),
			PctRevenue: core.Round2(core.Pct(deltaRevenue, refAgg.Revenue)),
		},
		Decomposition: roundDecomposition(core.Decompose(cur, refAgg)),
	}, nil
}
