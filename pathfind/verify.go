package pathfind

import (
	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
)

// VerifyRoute re-confirms route is still feasible for b starting at now, in
// a single forward dry-run pass using the same gate sequence a fresh search
// would use. routestore calls this on a cache hit instead of re-running a
// full search: cheaper, and sufficient since the route's shape (which
// contacts, in which order) is fixed — only whether each gate still agrees
// can have changed.
func VerifyRoute[CM contactmgr.Manager, NM nodemgr.Manager](g *cpgraph.Multigraph[CM, NM], route *distance.RouteStage, b *bundle.Bundle, now bundle.Date) bool {
	path := route.Path()
	if len(path) == 0 {
		return false
	}

	availableSince := now
	carried := b

	for _, st := range path[1:] {
		c := g.ContactByID(st.Contact)
		if c == nil {
			return false
		}

		mu := g.Node(c.Info.Tx).Manager
		mv := g.Node(c.Info.Rx).Manager

		h, ok, err := tryHop[CM, NM](mu, mv, c, availableSince, carried)
		if err != nil || !ok {
			return false
		}

		availableSince = h.arrival
		carried = h.bundle
	}

	return true
}
