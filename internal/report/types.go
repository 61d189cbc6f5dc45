// Package report builds the API response objects. Each builder is a pure
// function over a dataset snapshot and validated parameters; all arithmetic
// is delegated to the core primitives and rounded only here, at the output
// boundary.
//
// JSON field names keep the original French wire contract used by the
// dashboard frontend (chiffre_affaires, prix_moyen_pondere, effet_volume...).
package report

import (
	"errors"

	"pharmakpi/internal/core"
)

// ErrProductNotFound is returned by product-scoped builders for an unknown
// product id.
var ErrProductNotFound = errors.New("product not found")

// PeriodKPIs is the aggregate triple for one period.
type PeriodKPIs struct {
	Revenue  float64 `json:"chiffre_affaires"`
	Quantity float64 `json:"quantite"`
	AvgPrice float64 `json:"prix_moyen_pondere"`
}

// DecompositionKPIs is the rounded volume/price/mix split.
type DecompositionKPIs struct {
	VolumeEffect float64 `json:"effet_volume"`
	PriceEffect  float64 `json:"effet_prix"`
	MixEffect    float64 `json:"effet_mix"`
}

// DeltaKPIs carries raw deltas plus the revenue delta as a percentage of the
// reference.
type DeltaKPIs struct {
	Revenue    float64 `json:"chiffre_affaires"`
	Quantity   float64 `json:"quantite"`
	AvgPrice   float64 `json:"prix_moyen_pondere"`
	PctRevenue float64 `json:"pct_chiffre_affaires"`
}

// RevenueDelta is the short delta block used next to a decomposition.
type RevenueDelta struct {
	Revenue    float64 `json:"chiffre_affaires"`
	PctRevenue float64 `json:"pct_chiffre_affaires"`
}

// Scope types echo the request parameters back per endpoint. Pointer fields
// serialize as null when the parameter was not given.
type (
	KPIScope struct {
		Year       *int    `json:"year"`
		CategoryID *string `json:"categoryId"`
	}

	SeriesScope struct {
		Year       int     `json:"year"`
		CategoryID *string `json:"categoryId"`
	}

	YearRefScope struct {
		Year int `json:"year"`
		Ref  int `json:"ref"`
	}

	CompareScope struct {
		Year       int     `json:"year"`
		Ref        int     `json:"ref"`
		CategoryID *string `json:"categoryId"`
	}

	TopProductsScope struct {
		Year       int     `json:"year"`
		Ref        int     `json:"ref"`
		CategoryID *string `json:"categoryId"`
		Limit      int     `json:"limit"`
	}

	ProductScope struct {
		Year      int    `json:"year"`
		Ref       int    `json:"ref"`
		ProductID string `json:"productId"`
	}

	ProductSeriesScope struct {
		Year      int    `json:"year"`
		ProductID string `json:"productId"`
	}

	MonthDetailScope struct {
		Year       int     `json:"year"`
		Month      int     `json:"month"`
		Ref        int     `json:"ref"`
		CategoryID *string `json:"categoryId"`
		Limit      int     `json:"limit"`
	}
)

type YearlyKPIReport struct {
	Scope KPIScope   `json:"scope"`
	KPIs  PeriodKPIs `json:"kpis"`
}

// SeriesPoint is one monthly bucket of a time series.
type SeriesPoint struct {
	Month    int     `json:"mois"`
	Revenue  float64 `json:"chiffre_affaires"`
	Quantity float64 `json:"quantite"`
	AvgPrice float64 `json:"prix_moyen_pondere"`
}

type RevenueSeriesReport struct {
	Scope  SeriesScope   `json:"scope"`
	Points []SeriesPoint `json:"points"`
}

type CategoryContributionEntry struct {
	CategoryID   string  `json:"id_categorie"`
	Category     string  `json:"categorie"`
	RevenueRef   float64 `json:"ca_ref"`
	RevenueCur   float64 `json:"ca_year"`
	Delta        float64 `json:"delta"`
	ShareOfDelta float64 `json:"share_of_delta"`
}

type CategoryContributionReport struct {
	Scope         YearRefScope           `json:"scope"`
	TotalDelta    float64                `json:"total_delta"`
	Contributions []CategoryContributionEntry `json:"contributions"`
}

type ComparisonReport struct {
	Scope CompareScope `json:"scope"`
	Year  PeriodKPIs   `json:"year"`
	Ref   PeriodKPIs   `json:"ref"`
	Delta DeltaKPIs    `json:"delta"`
}

type PriceVolumeReport struct {
	Scope         CompareScope      `json:"scope"`
	Year          PeriodKPIs        `json:"year"`
	Ref           PeriodKPIs        `json:"ref"`
	Delta         RevenueDelta      `json:"delta"`
	Decomposition DecompositionKPIs `json:"decomposition"`
}

type DiagnosticSummary struct {
	DeltaRevenue float64 `json:"delta_ca"`
	PctRevenue   float64 `json:"pct_ca"`
}

type CategoryDelta struct {
	Category string  `json:"categorie"`
	Delta    float64 `json:"delta"`
}

type ProductDelta struct {
	Product string  `json:"produit"`
	Delta   float64 `json:"delta"`
}

type DiagnosticReport struct {
	Scope       YearRefScope      `json:"scope"`
	Summary     DiagnosticSummary `json:"summary"`
	Drivers     DecompositionKPIs `json:"drivers"`
	TopCategory *CategoryDelta    `json:"top_category"`
	TopProducts []ProductDelta    `json:"top_products"`
}

// ProductComparison is a fully decomposed per-product line of the top
// products leaderboard.
type ProductComparison struct {
	ProductID     string            `json:"id_produit"`
	Product       string            `json:"produit"`
	Category      string            `json:"categorie"`
	RevenueRef    float64           `json:"ca_ref"`
	RevenueCur    float64           `json:"ca_year"`
	Delta         float64           `json:"delta"`
	QuantityRef   float64           `json:"qty_ref"`
	QuantityCur   float64           `json:"qty_year"`
	AvgPriceRef   float64           `json:"pm_ref"`
	AvgPriceCur   float64           `json:"pm_year"`
	Decomposition DecompositionKPIs `json:"decomposition"`
	ShareOfDelta  float64           `json:"share_of_delta"`
}

type TopProductsReport struct {
	Scope      TopProductsScope    `json:"scope"`
	TotalDelta float64             `json:"total_delta"`
	Items      []ProductComparison `json:"items"`
}

type ProductInfo struct {
	ID       string `json:"id_produit"`
	Name     string `json:"nom"`
	Brand    string `json:"marque"`
	SKU      string `json:"sku"`
	Category string `json:"categorie"`
}

type ProductRef struct {
	ID       string `json:"id_produit"`
	Name     string `json:"nom"`
	Category string `json:"categorie"`
}

type ProductAnalysisReport struct {
	Scope         ProductScope      `json:"scope"`
	Product       ProductInfo       `json:"product"`
	Year          PeriodKPIs        `json:"year"`
	Ref           PeriodKPIs        `json:"ref"`
	Delta         RevenueDelta      `json:"delta"`
	Decomposition DecompositionKPIs `json:"decomposition"`
}

type ProductSeriesReport struct {
	Scope   ProductSeriesScope `json:"scope"`
	Product ProductRef         `json:"product"`
	Points  []SeriesPoint      `json:"points"`
}

type MonthProductEntry struct {
	ProductID     string            `json:"id_produit"`
	Product       string            `json:"produit"`
	Category      string            `json:"categorie"`
	RevenueRef    float64           `json:"ca_ref"`
	RevenueCur    float64           `json:"ca_year"`
	Delta         float64           `json:"delta"`
	Decomposition DecompositionKPIs `json:"decomposition"`
	ShareOfDelta  float64           `json:"share_of_delta"`
}

type MonthDetailReport struct {
	Scope         MonthDetailScope    `json:"scope"`
	Month         PeriodKPIs          `json:"month"`
	Ref           PeriodKPIs          `json:"ref"`
	Delta         RevenueDelta        `json:"delta"`
	Decomposition DecompositionKPIs   `json:"decomposition"`
	TopProducts   []MonthProductEntry `json:"top_products"`
}

func periodKPIs(a core.Aggregate) PeriodKPIs {
	return PeriodKPIs{
		Revenue:  core.Round2(a.Revenue),
		Quantity: a.Quantity,
		AvgPrice: core.Round2(a.AvgPrice()),
	}
}

func roundDecomposition(d core.Decomposition) DecompositionKPIs {
	return DecompositionKPIs{
		VolumeEffect: core.Round2(d.VolumeEffect),
		PriceEffect:  core.Round2(d.PriceEffect),
		MixEffect:    core.Round2(d.MixEffect),
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
