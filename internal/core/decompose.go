package core

// Decomposition splits a revenue delta between two periods into a volume
// effect (quantity change valued at reference price), a price effect (price
// change valued at current quantity) and a residual mix effect. By
// construction VolumeEffect + PriceEffect + MixEffect == DeltaRevenue before
// any rounding.
type Decomposition struct {
	VolumeEffect float64
	PriceEffect  float64
	MixEffect    float64
}

// Decompose explains cur.Revenue - ref.Revenue. Both aggregates must come
// from the same filtering context; the function itself is pure and does not
// check that.
func Decompose(cur, ref Aggregate) Decomposition {
	delta := cur.Revenue - ref.Revenue
	volume := (cur.Quantity - ref.Quantity) * ref.AvgPrice()
	price := (cur.AvgPrice() - ref.AvgPrice()) * cur.Quantity
	return Decomposition{
		VolumeEffect: volume,
		PriceEffect:  price,
		MixEffect:    delta - volume - price,
	}
}

// Pct returns delta as a percentage of ref, 0 when ref is 0.
func Pct(delta, ref float64) float64 {
	if ref != 0 {
		return delta / ref * 100
	}
	return 0
}
