package distance

import "github.com/asabr-go/asabr/bundle"

// Cost is the lexicographic progress record a Distance strategy compares.
// Not every field is meaningful to every strategy: HopDistance ignores
// Residual, for instance, but all three travel together on every RouteStage
// so that one RouteStage chain serves any Distance strategy.
type Cost struct {
	Arrival  bundle.Date
	Hops     int
	Residual bundle.Volume
}

// Distance is the strategy a pathfinder optimizes against. Initial seeds the
// cost at the bundle's source; Combine extends a predecessor's cost across
// one contact hop; Less orders two costs for priority-queue comparison (a
// Less(a, b) == true meaning a is strictly preferred over b).
type Distance interface {
	// Initial returns the cost of the zero-hop path at the bundle's
	// injection time.
	Initial(now bundle.Date) Cost

	// Combine extends prev across one hop that transmits starting at
	// txStart, lands the bundle at arrival, and leaves residual volume
	// available for bundles still to be routed over that contact.
	Combine(prev Cost, txStart, arrival bundle.Date, residual bundle.Volume) Cost

	// Less reports whether a is strictly preferred to b.
	Less(a, b Cost) bool
}

// RouteStage is one hop of a provisional or committed path: it names the
// contact carrying the bundle, the window during which it did so, the cost
// accumulated by that point, and the predecessor stage it extends. A nil
// Back marks the path's origin (no contact, cost as returned by
// Distance.Initial).
//
// RouteStage chains are immutable once built: a committed route is retained
// by following Back pointers from its final stage, and nothing ever mutates
// an existing stage in place — extending a path always allocates a new
// RouteStage rather than rewriting one already reachable from another chain.
type RouteStage struct {
	Contact bundle.ContactID
	TxStart bundle.Date
	Arrival bundle.Date
	Hops    int
	Cost    Cost
	Back    *RouteStage
}

// Path walks Back pointers from s to the origin and returns the stages in
// traversal order (source to destination).
func (s *RouteStage) Path() []*RouteStage {
	if s == nil {
		return nil
	}

	var rev []*RouteStage
	for cur := s; cur != nil; cur = cur.Back {
		rev = append(rev, cur)
	}

	path := make([]*RouteStage, len(rev))
	for i, st := range rev {
		path[len(rev)-1-i] = st
	}

	return path
}
