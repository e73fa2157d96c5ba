package router

import (
	"fmt"

	"github.com/asabr-go/asabr/altpath"
	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/nodemgr"
	"github.com/asabr-go/asabr/pathfind"
	"github.com/asabr-go/asabr/routestore"
)

type volConfig[CM contactmgr.Manager, NM nodemgr.Manager] struct {
	backend altpath.Backend[CM, NM]
}

// VolCGROption configures a VolCGR mainframe at construction.
type VolCGROption[CM contactmgr.Manager, NM nodemgr.Manager] func(*volConfig[CM, NM])

// WithVolCGRBackend overrides the pathfind search VolCGR runs against its
// volume-aware distance. Defaults to pathfind.ContactParenting.
func WithVolCGRBackend[CM contactmgr.Manager, NM nodemgr.Manager](backend altpath.Backend[CM, NM]) VolCGROption[CM, NM] {
	return func(c *volConfig[CM, NM]) { c.backend = backend }
}

// VolCGR is CGR's single-pass sibling: instead of iterating pathfind with a
// growing exclusion set, it folds residual-volume preference directly into
// the relaxation order via altpath.VolumeAwareDistance. Still backed by a
// RoutingTable.
type VolCGR[CM contactmgr.Manager, NM nodemgr.Manager] struct {
	g     *cpgraph.Multigraph[CM, NM]
	self  bundle.NodeID
	table *routestore.RoutingTable[CM, NM]
	cfg   volConfig[CM, NM]
}

// NewVolCGR constructs a VolCGR mainframe bound to g, routing only bundles
// whose Source equals self.
func NewVolCGR[CM contactmgr.Manager, NM nodemgr.Manager](
	g *cpgraph.Multigraph[CM, NM], self bundle.NodeID, opts ...VolCGROption[CM, NM],
) (*VolCGR[CM, NM], error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	cfg := volConfig[CM, NM]{backend: pathfind.ContactParenting[CM, NM]}
	for _, o := range opts {
		o(&cfg)
	}

	return &VolCGR[CM, NM]{g: g, self: self, table: routestore.NewRoutingTable(g), cfg: cfg}, nil
}

// Route resolves b's single destination using the volume-aware distance on
// a RoutingTable miss. exclusions lets a caller retry routing around a
// contact it has separately learned is unusable for this bundle (e.g. after
// a failed relay); pass nil when there is nothing to exclude.
func (r *VolCGR[CM, NM]) Route(now bundle.Date, b *bundle.Bundle, exclusions map[bundle.ContactID]bool) (*RouteOutput, error) {
	if err := validateUnicast(b, r.self); err != nil {
		return nil, err
	}

	dest := b.Destinations[0]
	result := &RouteResult{}

	if cached := r.table.Select(dest, now, b); cached != nil && !routeUsesExcluded(cached, exclusions) {
		result.Route = cached
	} else {
		var dist altpath.VolumeAwareDistance

		opts := append([]pathfind.Option{pathfind.WithDestination(dest)}, excludedContactOpts(exclusions)...)
		tree, err := r.cfg.backend(r.g, b, now, dist, opts...)
		route := tree.Route(dest)
		switch {
		case err != nil:
			result.Err = err
		case route == nil:
			result.Err = ErrNoRoute
		default:
			r.table.Insert(dest, route)
			result.Route = route
		}
	}

	return &RouteOutput{Destinations: map[bundle.NodeID]*RouteResult{dest: result}}, nil
}

// Commit re-walks and applies the route Route chose for b's destination.
func (r *VolCGR[CM, NM]) Commit(now bundle.Date, b *bundle.Bundle, out *RouteOutput) error {
	dest := b.Destinations[0]

	res, ok := out.Destinations[dest]
	if !ok || res.Route == nil {
		return fmt.Errorf("%w: destination %d", ErrNoRoute, dest)
	}

	return commitRoute(r.g, res.Route, b)
}
