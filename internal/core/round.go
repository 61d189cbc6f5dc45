package core

import "github.com/shopspring/decimal"

// Round2 rounds a monetary or percentage value to 2 decimals, half up at the
// cent. Only applied at the output boundary; intermediate math stays in full
// float64 precision so the decomposition identity holds exactly.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
