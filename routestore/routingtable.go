package routestore

import (
	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
	"github.com/asabr-go/asabr/pathfind"
)

// RoutingTable holds, per destination, an ordered list of previously found
// routes (best-preferred first). Select returns the first entry that is
// still live and still feasible for the calling bundle; Prune evicts routes
// whose earliest-ending contact has expired.
type RoutingTable[CM contactmgr.Manager, NM nodemgr.Manager] struct {
	g      *cpgraph.Multigraph[CM, NM]
	byDest map[bundle.NodeID][]*distance.RouteStage
}

// NewRoutingTable constructs an empty RoutingTable backed by g.
func NewRoutingTable[CM contactmgr.Manager, NM nodemgr.Manager](g *cpgraph.Multigraph[CM, NM]) *RoutingTable[CM, NM] {
	return &RoutingTable[CM, NM]{g: g, byDest: make(map[bundle.NodeID][]*distance.RouteStage)}
}

// Insert appends route as a new candidate for dest, least-preferred so far.
// Callers insert in discovery-preference order (e.g. altpath's output).
func (t *RoutingTable[CM, NM]) Insert(dest bundle.NodeID, route *distance.RouteStage) {
	t.byDest[dest] = append(t.byDest[dest], route)
}

// hops returns route's non-origin stages, source to destination.
func hops(route *distance.RouteStage) []*distance.RouteStage {
	path := route.Path()
	out := make([]*distance.RouteStage, 0, len(path))
	for _, st := range path {
		if st.Back != nil {
			out = append(out, st)
		}
	}

	return out
}

// Select returns the most-preferred cached route to dest that passes a
// fresh dry-run pass along its whole chain of hops for b starting at now,
// or nil if no cached route qualifies.
func (t *RoutingTable[CM, NM]) Select(dest bundle.NodeID, now bundle.Date, b *bundle.Bundle) *distance.RouteStage {
	for _, route := range t.byDest[dest] {
		if pathfind.VerifyRoute(t.g, route, b, now) {
			return route
		}
	}

	return nil
}

// Prune evicts, from every destination's list, any route whose
// earliest-ending contact has expired as of now.
func (t *RoutingTable[CM, NM]) Prune(now bundle.Date) {
	for dest, routes := range t.byDest {
		kept := routes[:0]
		for _, route := range routes {
			h := hops(route)
			if len(h) == 0 {
				continue
			}

			earliestEnd := t.g.ContactByID(h[0].Contact).Info.End
			for _, st := range h[1:] {
				if end := t.g.ContactByID(st.Contact).Info.End; end < earliestEnd {
					earliestEnd = end
				}
			}
			if earliestEnd > now {
				kept = append(kept, route)
			}
		}
		t.byDest[dest] = kept
	}
}
