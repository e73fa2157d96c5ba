package distance

import "github.com/asabr-go/asabr/bundle"

// HopDistance orders purely by hop count, arrival time only as a tiebreak.
// Under hop-count optimization a route can be "best" at a node yet block a
// strictly-arrival-better route that would have used a different contact
// out of the same node.
type HopDistance struct{}

// Initial returns a zero-hop cost at the bundle's injection time.
func (HopDistance) Initial(now bundle.Date) Cost {
	return Cost{Arrival: now, Hops: 0, Residual: 0}
}

// Combine extends prev by one hop landing at arrival.
func (HopDistance) Combine(prev Cost, txStart, arrival bundle.Date, residual bundle.Volume) Cost {
	return Cost{Arrival: arrival, Hops: prev.Hops + 1, Residual: residual}
}

// Less orders (Hops asc, Arrival asc).
func (HopDistance) Less(a, b Cost) bool {
	if a.Hops != b.Hops {
		return a.Hops < b.Hops
	}

	return a.Arrival < b.Arrival
}
