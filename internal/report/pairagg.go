package report

import "pharmakpi/internal/core"

// pairAggregator accumulates current and reference period aggregates per
// product in a single pass over the sales rows. First-seen order is kept so
// later stable ranking breaks ties deterministically.
type pairAggregator struct {
	order []string
	byID  map[string]*periodPair
}

type periodPair struct {
	cur core.Aggregate
	ref core.Aggregate
}

func newPairAggregator() *pairAggregator {
	return &pairAggregator{byID: make(map[string]*periodPair)}
}

func (a *pairAggregator) add(r core.SalesRow, isCurrent bool) {
	pair, ok := a.byID[r.ProductID]
	if !ok {
		pair = &periodPair{}
		a.byID[r.ProductID] = pair
		a.order = append(a.order, r.ProductID)
	}
	if isCurrent {
		pair.cur.Add(r)
	} else {
		pair.ref.Add(r)
	}
}

// each visits the pairs in first-seen order.
func (a *pairAggregator) each(fn func(productID string, pair *periodPair)) {
	for _, id := range a.order {
		fn(id, a.byID[id])
	}
}
