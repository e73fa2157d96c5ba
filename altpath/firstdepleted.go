package altpath

import (
	"math"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
	"github.com/asabr-go/asabr/pathfind"
)

// FirstDepleted is FirstEnding's twin: instead of excluding the
// earliest-ending contact on the previous route, it excludes the one with
// the smallest original volume (contactmgr.VolumeReporter), diversifying
// discovered routes away from scarce-capacity contacts rather than
// short-lived ones. A hop whose manager does not implement VolumeReporter
// is treated as having unbounded volume and is never chosen for exclusion.
func FirstDepleted[CM contactmgr.Manager, NM nodemgr.Manager](
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
			return routes, nil
		}

		var leastHop *distance.RouteStage
		leastVolume := bundle.Volume(math.Inf(1))
		anyBounded := false
		for _, h := range hops {
			c := g.ContactByID(h.Contact)
			vr, ok := any(c.Manager).(contactmgr.VolumeReporter)
			if !ok {
				continue
			}
			anyBounded = true
			if v := vr.OriginalVolume(); leastHop == nil || v < leastVolume {
				leastHop, leastVolume = h, v
			}
		}
		if !anyBounded {
			return routes, nil // nothing measurable to exclude; avoid looping forever on the same route
		}
		excluded[leastHop.Contact] = true
	}
}
