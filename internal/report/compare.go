package report

import (
	"pharmakpi/internal/core"
	"pharmakpi/internal/dataset"
)

// scopeAggregates computes the current and reference period aggregates under
// the same category filter, as the decomposition contract requires.
func scopeAggregates(snap *dataset.Snapshot, year, ref int, categoryID string) (cur, refAgg core.Aggregate) {
	cur = core.SumRevenue(core.FilterSales(snap.Sales, snap.ProductByID, core.SalesFilter{Year: year, CategoryID: categoryID}))
	refAgg = core.SumRevenue(core.FilterSales(snap.Sales, snap.ProductByID, core.SalesFilter{Year: ref, CategoryID: categoryID}))
	return cur, refAgg
}

// CompareYearly produces the full aggregate pair for both periods plus raw
// deltas and the revenue delta percentage.
func CompareYearly(snap *dataset.Snapshot, year, ref int, categoryID string) ComparisonReport {
	cur, refAgg := scopeAggregates(snap, year, ref, categoryID)
	deltaRevenue := cur.Revenue - refAgg.Revenue

	return ComparisonReport{
		Scope: CompareScope{Year: year, Ref: ref, CategoryID: optString(categoryID)},
		Year:  periodKPIs(cur),
		Ref:   periodKPIs(refAgg),
		Delta: DeltaKPIs{
			Revenue:    core.Round2(deltaRevenue),
			Quantity:   cur.Quantity - refAgg.Quantity,
			AvgPrice:   core.Round2(cur.AvgPrice() - refAgg.AvgPrice()),
			PctRevenue: core.Round2(core.Pct(deltaRevenue, refAgg.Revenue)),
		},
	}
}

// PriceVolume is the yearly comparison plus the whole-scope volume/price/mix
// decomposition.
func PriceVolume(snap *dataset.Snapshot, year, ref int, categoryID string) PriceVolumeReport {
	cur, refAgg := scopeAggregates(snap, year, ref, categoryID)
	deltaRevenue := cur.Revenue - refAgg.Revenue

	return PriceVolumeReport{
		Scope: CompareScope{Year: year, Ref: ref, CategoryID: optString(categoryID)},
		Year:  periodKPIs(cur),
		Ref:   periodKPIs(refAgg),
		Delta: RevenueDelta{
			Revenue:    core.Round2(deltaRevenue),
			PctRevenue: core.Round2(core.Pct(deltaRevenue, refAgg.Revenue)),
		},
		Decomposition: roundDecomposition(core.Decompose(cur, refAgg)),
	}
}
