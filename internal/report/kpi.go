package report

import (
	"pharmakpi/internal/core"
	"pharmakpi/internal/dataset"
)

// YearlyKPI aggregates revenue, quantity and weighted average price over the
// optionally filtered scope. year 0 means all years, empty categoryID means
// all categories.
func YearlyKPI(snap *dataset.Snapshot, year int, categoryID string) YearlyKPIReport {
	rows := core.FilterSales(snap.Sales, snap.ProductByID, core.SalesFilter{Year: year, CategoryID: categoryID})
	return YearlyKPIReport{
		Scope: KPIScope{Year: optInt(year), CategoryID: optString(categoryID)},
		KPIs:  periodKPIs(core.SumRevenue(rows)),
	}
}
