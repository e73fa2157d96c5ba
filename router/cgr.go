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

// altFunc matches altpath.FirstEnding and altpath.FirstDepleted: a backend
// search repeated with a growing exclusion set.
type altFunc[CM contactmgr.Manager, NM nodemgr.Manager] func(
	backend altpath.Backend[CM, NM], g *cpgraph.Multigraph[CM, NM], b *bundle.Bundle, now bundle.Date,
	dist distance.Distance, dest bundle.NodeID, opts ...pathfind.Option,
) ([]*distance.RouteStage, error)

type cgrConfig[CM contactmgr.Manager, NM nodemgr.Manager] struct {
	backend altpath.Backend[CM, NM]
	alt     altFunc[CM, NM]
}

// CGROption configures a CGR mainframe at construction.
type CGROption[CM contactmgr.Manager, NM nodemgr.Manager] func(*cgrConfig[CM, NM])

// WithCGRBackend overrides the pathfind search CGR feeds to its alternative
// pathfinder. Defaults to pathfind.ContactParenting.
func WithCGRBackend[CM contactmgr.Manager, NM nodemgr.Manager](backend altpath.Backend[CM, NM]) CGROption[CM, NM] {
	return func(c *cgrConfig[CM, NM]) { c.backend = backend }
}

// WithAlternative overrides the diversification loop CGR uses on a storage
// miss. Defaults to altpath.FirstEnding.
func WithAlternative[CM contactmgr.Manager, NM nodemgr.Manager](alt altFunc[CM, NM]) CGROption[CM, NM] {
	return func(c *cgrConfig[CM, NM]) { c.alt = alt }
}

// CGR is the single-destination routing mainframe: Dijkstra plus
// alternative pathfinding, backed by a RoutingTable. A miss against the
// table triggers the alternative-pathfinding loop, whose every discovered
// route is cached for future calls.
type CGR[CM contactmgr.Manager, NM nodemgr.Manager] struct {
	g     *cpgraph.Multigraph[CM, NM]
	self  bundle.NodeID
	dist  distance.Distance
	table *routestore.RoutingTable[CM, NM]
	cfg   cgrConfig[CM, NM]
}

// NewCGR constructs a CGR mainframe bound to g, routing only bundles whose
// Source equals self.
func NewCGR[CM contactmgr.Manager, NM nodemgr.Manager](
	g *cpgraph.Multigraph[CM, NM], self bundle.NodeID, dist distance.Distance, opts ...CGROption[CM, NM],
) (*CGR[CM, NM], error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	cfg := cgrConfig[CM, NM]{backend: pathfind.ContactParenting[CM, NM], alt: altpath.FirstEnding[CM, NM]}
	for _, o := range opts {
		o(&cfg)
	}

	return &CGR[CM, NM]{g: g, self: self, dist: dist, table: routestore.NewRoutingTable(g), cfg: cfg}, nil
}

func validateUnicast(b *bundle.Bundle, self bundle.NodeID) error {
	if b.Source != self {
		return fmt.Errorf("%w: source=%d self=%d", ErrNotSource, b.Source, self)
	}
	if b.IsMulticast() {
		return ErrMulticast
	}

	return nil
}

// Route resolves b's single destination: a RoutingTable hit re-confirmed
// live, and clear of exclusions, takes precedence over running the
// alternative-pathfinding loop. exclusions lets a caller retry routing
// around a contact it has separately learned is unusable for this bundle
// (e.g. after a failed relay); pass nil when there is nothing to exclude.
func (r *CGR[CM, NM]) Route(now bundle.Date, b *bundle.Bundle, exclusions map[bundle.ContactID]bool) (*RouteOutput, error) {
	if err := validateUnicast(b, r.self); err != nil {
		return nil, err
	}

	dest := b.Destinations[0]
	result := &RouteResult{}

	if cached := r.table.Select(dest, now, b); cached != nil && !routeUsesExcluded(cached, exclusions) {
		result.Route = cached
	} else {
		routes, err := r.cfg.alt(r.cfg.backend, r.g, b, now, r.dist, dest, excludedContactOpts(exclusions)...)
		switch {
		case err != nil:
			result.Err = err
		case len(routes) == 0:
			result.Err = ErrNoRoute
		default:
			for _, route := range routes {
				r.table.Insert(dest, route)
			}
			result.Route = routes[0]
		}
	}

	return &RouteOutput{Destinations: map[bundle.NodeID]*RouteResult{dest: result}}, nil
}

// Commit re-walks and applies the route Route chose for b's destination.
func (r *CGR[CM, NM]) Commit(now bundle.Date, b *bundle.Bundle, out *RouteOutput) error {
	dest := b.Destinations[0]

	res, ok := out.Destinations[dest]
	if !ok || res.Route == nil {
		return fmt.Errorf("%w: destination %d", ErrNoRoute, dest)
	}

	return commitRoute(r.g, res.Route, b)
}
