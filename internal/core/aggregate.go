package core

// Aggregate is a revenue/quantity pair summed over a set of sales rows.
type Aggregate struct {
	Revenue  float64
	Quantity float64
}

// AvgPrice returns the weighted average unit price, 0 when no quantity was
// sold regardless of revenue.
func (a Aggregate) AvgPrice() float64 {
	if a.Quantity > 0 {
		return a.Revenue / a.Quantity
	}
	return 0
}

// Add accumulates one sales row into the aggregate.
func (a *Aggregate) Add(r SalesRow) {
	a.Revenue += r.Revenue()
	a.Quantity += r.Quantity
}

// SalesFilter selects sales rows. Zero values match everything: Year 0 means
// any year, empty CategoryID means any category.
type SalesFilter struct {
	Year       int
	CategoryID string
}

// FilterSales returns the rows matching f, preserving input order. When a
// category filter is set, rows whose product cannot be resolved in the index
// are excluded; an unknown CategoryID therefore matches nothing.
func FilterSales(rows []SalesRow, products map[string]Product, f SalesFilter) []SalesRow {
	out := make([]SalesRow, 0, len(rows))
	for _, r := range rows {
		if f.Year != 0 && r.Year != f.Year {
			continue
		}
		if f.CategoryID != "" {
			p, ok := products[r.ProductID]
			if !ok || p.CategoryID != f.CategoryID {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// SumRevenue totals revenue and quantity over rows. Empty input yields the
// zero aggregate.
func SumRevenue(rows []SalesRow) Aggregate {
	var a Aggregate
	for _, r := range rows {
		a.Add(r)
	}
	return a
}
