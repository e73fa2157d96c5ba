package altpath

import (
	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
	"github.com/asabr-go/asabr/pathfind"
)

// Backend is any of pathfind.NodeParenting, pathfind.ContactParenting, or
// pathfind.HybridParenting: a single-run shortest-path search that
// FirstEnding and FirstDepleted call repeatedly with a growing exclusion
// set.
type Backend[CM contactmgr.Manager, NM nodemgr.Manager] func(
	g *cpgraph.Multigraph[CM, NM], b *bundle.Bundle, now bundle.Date, dist distance.Distance, opts ...pathfind.Option,
) (pathfind.Tree, error)

// contactsOf returns the non-origin stages of stage's path, each naming the
// contact that produced it.
func contactsOf(stage *distance.RouteStage) []*distance.RouteStage {
	path := stage.Path()
	hops := make([]*distance.RouteStage, 0, len(path))
	for _, st := range path {
		if st.Back != nil {
			hops = append(hops, st)
		}
	}

	return hops
}
