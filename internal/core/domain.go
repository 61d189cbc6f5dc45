// Package core holds the sales domain model and the pure computation
// primitives shared by every report builder: filtering, aggregation,
// price/volume/mix decomposition and ranking.
package core

import "errors"

const (
	YearMin = 2000
	YearMax = 2100
)

type (
	// Category is a product family. Immutable after load.
	Category struct {
		ID   string
		Name string
	}

	// Product references its Category by ID. A dangling CategoryID is not an
	// error; display code falls back to a generic label.
	Product struct {
		ID         string
		Name       string
		Brand      string
		SKU        string
		CategoryID string
		Active     bool
	}

	// SalesRow is the aggregated sales of one product for one calendar month.
	SalesRow struct {
		ID        string
		ProductID string
		Year      int
		Month     int // 1-12
		Quantity  float64
		UnitPrice float64
	}
)

var (
	ErrInvalidYear  = errors.New("year out of range")
	ErrInvalidMonth = errors.New("month out of range")
)

// Revenue is the row's contribution to turnover.
func (r SalesRow) Revenue() float64 {
	return r.Quantity * r.UnitPrice
}

// ValidateYear checks that y is a plausible calendar year.
func ValidateYear(y int) error {
	if y < YearMin || y > YearMax {
		return ErrInvalidYear
	}
	return nil
}

// ValidateMonth checks that m is a calendar month.
func ValidateMonth(m int) error {
	if m < 1 || m > 12 {
		return ErrInvalidMonth
	}
	return nil
}
