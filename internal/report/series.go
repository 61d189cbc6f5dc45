package report

import (
	"pharmakpi/internal/core"
	"pharmakpi/internal/dataset"
)

// monthlyBuckets folds rows into 12 calendar buckets. Months with no rows
// stay at zero.
func monthlyBuckets(rows []core.SalesRow) []SeriesPoint {
	var buckets [12]core.Aggregate
	for _, r := range rows {
		if r.Month >= 1 && r.Month <= 12 {
			buckets[r.Month-1].Add(r)
		}
	}

	points := make([]SeriesPoint, 12)
	for i, a := range buckets {
		points[i] = SeriesPoint{
			Month:    i + 1,
			Revenue:  core.Round2(a.Revenue),
			Quantity: a.Quantity,
			AvgPrice: core.Round2(a.AvgPrice()),
		}
	}
	return points
}

// RevenueSeries returns the 12 monthly buckets for one year, optionally
// restricted to a category.
func RevenueSeries(snap *dataset.Snapshot, year int, categoryID string) RevenueSeriesReport {
	rows := core.FilterSales(snap.Sales, snap.ProductByID, core.SalesFilter{Year: year, CategoryID: categoryID})
	return RevenueSeriesReport{
		Scope:  SeriesScope{Year: year, CategoryID: optString(categoryID)},
		Points: monthlyBuckets(rows),
	}
}

// ProductSeries returns the 12 monthly buckets for a single product.
func ProductSeries(snap *dataset.Snapshot, year int, productID string) (ProductSeriesReport, error) {
	product, ok := snap.ProductByID[productID]
	if !ok {
		return ProductSeriesReport{}, ErrProductNotFound
	}

	rows := make([]core.SalesRow, 0)
	for _, r := range snap.Sales {
		if r.Year == year && r.ProductID == productID {
			rows = append(rows, r)
		}
	}

	return ProductSeriesReport{
		Scope: ProductSeriesScope{Year: year, ProductID: productID},
		Product: ProductRef{
			ID:       product.ID,
			Name:     product.Name,
			Category: snap.CategoryLabel(product.CategoryID),
		},
		Points: monthlyBuckets(rows),
	}, nil
}
