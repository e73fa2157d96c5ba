package distance

import "github.com/asabr-go/asabr/bundle"

// SABRDistance is the classical schedule-aware ordering: earliest arrival
// wins; among equal arrivals, fewer hops wins; among equal arrival and hop
// count, more residual capacity on the final hop wins (a weak preference
// for routes that leave more room behind them).
type SABRDistance struct{}

// Initial returns a zero-hop cost at the bundle's injection time with zero
// residual (no contact has been crossed yet).
func (SABRDistance) Initial(now bundle.Date) Cost {
	return Cost{Arrival: now, Hops: 0, Residual: 0}
}

// Combine extends prev by one hop landing at arrival with residual volume
// left on the contact that carried it.
func (SABRDistance) Combine(prev Cost, txStart, arrival bundle.Date, residual bundle.Volume) Cost {
	return Cost{Arrival: arrival, Hops: prev.Hops + 1, Residual: residual}
}

// Less orders (Arrival asc, Hops asc, Residual desc).
func (SABRDistance) Less(a, b Cost) bool {
	if a.Arrival != b.Arrival {
		return a.Arrival < b.Arrival
	}
	if a.Hops != b.Hops {
		return a.Hops < b.Hops
	}

	return a.Residual > b.Residual
}
