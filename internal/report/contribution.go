package report

import (
	"pharmakpi/internal/core"
	"pharmakpi/internal/dataset"
)

// CategoryContribution explains the whole-scope revenue delta category by
// category: per-category delta, share of the total delta, sorted by absolute
// delta descending. Shares are computed against the full set's total before
// any sorting, on full-precision deltas.
func CategoryContribution(snap *dataset.Snapshot, year, ref int) CategoryContributionReport {
	type rawContribution struct {
		category core.Category
		caRef    float64
		caCur    float64
		delta    float64
	}

	raw := make([]rawContribution, 0, len(snap.Categories))
	var totalDelta float64
	for _, cat := range snap.Categories {
		cur, refAgg := scopeAggregates(snap, year, ref, cat.ID)
		delta := cur.Revenue - refAgg.Revenue
		totalDelta += delta
		raw = append(raw, rawContribution{
			category: cat,
			caRef:    refAgg.Revenue,
			caCur:    cur.Revenue,
			delta:    delta,
		})
	}

	core.RankByAbsDelta(raw, func(c rawContribution) float64 { return c.delta })

	contributions := make([]CategoryContributionEntry, len(raw))
	for i, c := range raw {
		contributions[i] = CategoryContributionEntry{
			CategoryID:   c.category.ID,
			Category:     c.category.Name,
			RevenueRef:   core.Round2(c.caRef),
			RevenueCur:   core.Round2(c.caCur),
			Delta:        core.Round2(c.delta),
			ShareOfDelta: core.ShareOfDelta(c.delta, totalDelta),
		}
	}

	return CategoryContributionReport{
		Scope:         YearRefScope{Year: year, Ref: ref},
		TotalDelta:    core.Round2(totalDelta),
		Contributions: contributions,
	}
}
