package altpath

import (
	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/distance"
)

// VolumeAwareDistance folds residual-volume preference directly into the
// cost ordering rather than discovering diversity through iteration: among
// routes that arrive equally early, it prefers the one leaving the most
// usable volume behind on its final hop, and only then the one with fewer
// hops. This is VolCGR's single-pass alternative to FirstDepleted's
// repeat-and-exclude loop.
type VolumeAwareDistance struct{}

// Initial returns a zero-hop cost at the bundle's injection time with zero
// residual.
func (VolumeAwareDistance) Initial(now bundle.Date) distance.Cost {
	return distance.Cost{Arrival: now, Hops: 0, Residual: 0}
}

// Combine extends prev by one hop, carrying forward the residual volume
// contactmgr reported for this hop.
func (VolumeAwareDistance) Combine(prev distance.Cost, txStart, arrival bundle.Date, residual bundle.Volume) distance.Cost {
	return distance.Cost{Arrival: arrival, Hops: prev.Hops + 1, Residual: residual}
}

// Less orders (Arrival asc, Residual desc, Hops asc).
func (VolumeAwareDistance) Less(a, b distance.Cost) bool {
	if a.Arrival != b.Arrival {
		return a.Arrival < b.Arrival
	}
	if a.Residual != b.Residual {
		return a.Residual > b.Residual
	}

	return a.Hops < b.Hops
}
