package router

import (
	"fmt"

	"github.com/asabr-go/asabr/altpath"
	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
	"github.com/asabr-go/asabr/pathfind"
	"github.com/asabr-go/asabr/routestore"
)

type spsnConfig[CM contactmgr.Manager, NM nodemgr.Manager] struct {
	backend altpath.Backend[CM, NM]
}

// SPSNOption configures an SPSN mainframe at construction.
type SPSNOption[CM contactmgr.Manager, NM nodemgr.Manager] func(*spsnConfig[CM, NM])

// WithSPSNBackend overrides the shortest-path-tree search SPSN builds on a
// TreeCache miss. Defaults to pathfind.NodeParenting, the cheapest
// discipline that still produces one full tree per call.
func WithSPSNBackend[CM contactmgr.Manager, NM nodemgr.Manager](backend altpath.Backend[CM, NM]) SPSNOption[CM, NM] {
	return func(c *spsnConfig[CM, NM]) { c.backend = backend }
}

// SPSN is the multicast routing mainframe: one shortest-path-tree Dijkstra
// build serves every destination a bundle names, cached by exclusion set
// and bundle bounds in a TreeCache.
type SPSN[CM contactmgr.Manager, NM nodemgr.Manager] struct {
	g     *cpgraph.Multigraph[CM, NM]
	dist  distance.Distance
	cache *routestore.TreeCache
	cfg   spsnConfig[CM, NM]
}

// NewSPSN constructs an SPSN mainframe bound to g, caching up to
// cacheCapacity trees.
func NewSPSN[CM contactmgr.Manager, NM nodemgr.Manager](
	g *cpgraph.Multigraph[CM, NM], dist distance.Distance, cacheCapacity int, opts ...SPSNOption[CM, NM],
) (*SPSN[CM, NM], error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	cfg := spsnConfig[CM, NM]{backend: pathfind.NodeParenting[CM, NM]}
	for _, o := range opts {
		o(&cfg)
	}

	return &SPSN[CM, NM]{g: g, dist: dist, cache: routestore.NewTreeCache(cacheCapacity), cfg: cfg}, nil
}

func excludedKeys(m map[bundle.ContactID]bool) []bundle.ContactID {
	ks := make([]bundle.ContactID, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}

	return ks
}

// Route resolves every destination named by the multicast bundle b from a
// single tree build (or a TreeCache hit, re-confirmed per destination
// before being trusted).
func (r *SPSN[CM, NM]) Route(now bundle.Date, b *bundle.Bundle, exclusions map[bundle.ContactID]bool) (*RouteOutput, error) {
	if !b.IsMulticast() {
		return nil, ErrUnicast
	}
	if exclusions == nil {
		exclusions = map[bundle.ContactID]bool{}
	}

	tree, ok := r.cache.Lookup(exclusions, b.Priority, b.Size)
	if !ok {
		var opts []pathfind.Option
		if len(exclusions) > 0 {
			opts = append(opts, pathfind.WithExcludedContacts(excludedKeys(exclusions)...))
		}

		built, err := r.cfg.backend(r.g, b, now, r.dist, opts...)
		if err != nil {
			return nil, err
		}

		tree = built
		r.cache.Store(exclusions, b.Priority, b.Size, tree)
	}

	dests := make(map[bundle.NodeID]*RouteResult, len(b.Destinations))
	for _, d := range b.Destinations {
		route := tree.Route(d)
		if route == nil || !pathfind.VerifyRoute(r.g, route, b, now) {
			dests[d] = &RouteResult{Err: ErrNoRoute}
			continue
		}

		dests[d] = &RouteResult{Route: route}
	}

	return &RouteOutput{Destinations: dests}, nil
}

// Commit re-walks and applies every successfully resolved destination's
// route. Destinations that Route could not resolve are skipped; it is the
// caller's responsibility to decide whether a partial multicast commit is
// acceptable.
func (r *SPSN[CM, NM]) Commit(now bundle.Date, b *bundle.Bundle, out *RouteOutput) error {
	for dest, res := range out.Destinations {
		if res.Route == nil {
			continue
		}
		if err := commitRoute(r.g, res.Route, b); err != nil {
			return fmt.Errorf("destination %d: %w", dest, err)
		}
	}

	return nil
}
