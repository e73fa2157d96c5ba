package altpath

import (
	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
	"github.com/asabr-go/asabr/pathfind"
)

// FirstEnding repeatedly calls backend for dest, each time excluding the
// earliest-ending contact used by the previous iteration's route, until a
// call finds no route at all. It returns every route found, in discovery
// order.
func FirstEnding[CM contactmgr.Manager, NM nodemgr.Manager](
	backend Backend[CM, NM], g *cpgraph.Multigraph[CM, NM], b *bundle.Bundle, now bundle.Date, dist distance.Distance,
	dest bundle.NodeID, opts ...pathfind.Option,
) ([]*distance.RouteStage, error) {
	excluded := make(map[bundle.ContactID]bool)
	var routes []*distance.RouteStage

	for {
		runOpts := append(append([]pathfind.Option{}, opts...),
			pathfind.WithDestination(dest), pathfind.WithExcludedContacts(keys(excluded)...))

		tree, err := backend(g, b, now, dist, runOpts...)
		if err != nil {
			return routes, err
		}

		route := tree.Route(dest)
		if route == nil {
			return routes, nil
		}
		routes = append(routes, route)

		hops := contactsOf(route)
		if len(hops) == 0 {
			return routes, nil // zero-hop route; nothing left to exclude
		}

		earliest := hops[0]
		earliestEnd := g.ContactByID(earliest.Contact).Info.End
		for _, h := range hops[1:] {
			if end := g.ContactByID(h.Contact).Info.End; end < earliestEnd {
				earliest, earliestEnd = h, end
			}
		}
		excluded[earliest.Contact] = true
	}
}

func keys(m map[bundle.ContactID]bool) []bundle.ContactID {
	ks := make([]bundle.ContactID, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}

	return ks
}
