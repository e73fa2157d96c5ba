package router

import (
	"errors"
	"fmt"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
	"github.com/asabr-go/asabr/pathfind"
)

// Sentinel errors returned before any search begins.
var (
	// ErrNilGraph indicates a router was constructed with a nil Multigraph.
	ErrNilGraph = errors.New("router: graph is nil")

	// ErrNotSource indicates a unicast mainframe (CGR, VolCGR) was asked to
	// route a bundle whose Source does not equal the node the router was
	// constructed for.
	ErrNotSource = errors.New("router: bundle source is not this router's node")

	// ErrMulticast indicates a unicast mainframe was handed a bundle naming
	// more than one destination.
	ErrMulticast = errors.New("router: unicast mainframe cannot route a multicast bundle")

	// ErrUnicast indicates SPSN was handed a bundle naming only one
	// destination; SPSN exists specifically for the multicast case.
	ErrUnicast = errors.New("router: SPSN requires a multicast bundle")

	// ErrNoRoute indicates no feasible route to a destination could be
	// found or confirmed; it is returned inside a RouteResult, never as a
	// call's top-level error, since it is a routine routing outcome.
	ErrNoRoute = errors.New("router: no feasible route")
)

// RouteResult is the per-destination outcome of a Route call: exactly one
// of Route or Err is non-nil.
type RouteResult struct {
	Route *distance.RouteStage
	Err   error
}

// RouteOutput is what Route returns: one RouteResult per destination named
// by the bundle. A failure reaching one destination never prevents another
// from being resolved.
type RouteOutput struct {
	Destinations map[bundle.NodeID]*RouteResult
}

// excludedContactOpts turns a caller-supplied exclusion set into the
// pathfind.Option a fresh search needs to honor it, mirroring how SPSN
// builds the same option for its tree search.
func excludedContactOpts(exclusions map[bundle.ContactID]bool) []pathfind.Option {
	if len(exclusions) == 0 {
		return nil
	}

	return []pathfind.Option{pathfind.WithExcludedContacts(excludedKeys(exclusions)...)}
}

// routeUsesExcluded reports whether route traverses any contact named in
// exclusions, so a RoutingTable hit computed without that exclusion in mind
// is never handed back to a caller retrying around it.
func routeUsesExcluded(route *distance.RouteStage, exclusions map[bundle.ContactID]bool) bool {
	if len(exclusions) == 0 {
		return false
	}

	for _, st := range route.Path()[1:] {
		if exclusions[st.Contact] {
			return true
		}
	}

	return false
}

// commitRoute re-walks route hop by hop in two passes: the first re-runs
// every gate's dry-run check exactly as pathfind did when the route was
// built, confirming nothing has changed since; only once every hop has
// re-confirmed does the second pass call Schedule along the same hops in
// the same order, so a rejection can never leave a route half-committed.
// A rejection during the confirm pass is wrapped in ErrInvariantViolation —
// it means the route was feasible when chosen and is no longer, a condition
// the two-phase protocol treats as a programmer error (concurrent mutation
// of manager state between Route and Commit), not a routine routing outcome.
func commitRoute[CM contactmgr.Manager, NM nodemgr.Manager](g *cpgraph.Multigraph[CM, NM], route *distance.RouteStage, b *bundle.Bundle) error {
	path := route.Path()
	if len(path) <= 1 {
		return nil // source-only route, nothing to commit
	}

	type confirmedHop struct {
		mu, mv         NM
		c              *cpgraph.Contact[CM]
		availableSince bundle.Date
		res            *contactmgr.TxEndHopData
		bundleIn       *bundle.Bundle
	}

	plan := make([]confirmedHop, 0, len(path)-1)
	bundleIn := b
	availableSince := path[0].Cost.Arrival

	for _, st := range path[1:] {
		c := g.ContactByID(st.Contact)
		mu := g.Node(c.Info.Tx).Manager
		mv := g.Node(c.Info.Rx).Manager

		if !mu.DryRunTx(availableSince, c.Info.Start, c.Info.End, bundleIn) {
			return fmt.Errorf("%w: tx gate at node %d rejected contact %d", contactmgr.ErrInvariantViolation, c.Info.Tx, c.Info.ID)
		}

		res, err := c.Manager.DryRun(&c.Info, availableSince, bundleIn)
		if err != nil {
			return fmt.Errorf("%w: contact %d: %v", contactmgr.ErrInvariantViolation, c.Info.ID, err)
		}

		if !mv.DryRunRx(res.TxStart, res.ArrivalAtRx, bundleIn) {
			return fmt.Errorf("%w: rx gate at node %d rejected contact %d", contactmgr.ErrInvariantViolation, c.Info.Rx, c.Info.ID)
		}

		arrival := res.ArrivalAtRx
		bundleOut := bundleIn
		if proc, ok := any(mv).(nodemgr.Processor); ok {
			arrival, bundleOut = proc.DryRunProcess(res.ArrivalAtRx, bundleIn)
		}

		plan = append(plan, confirmedHop{mu: mu, mv: mv, c: c, availableSince: availableSince, res: res, bundleIn: bundleIn})

		availableSince = arrival
		bundleIn = bundleOut
	}

	for _, p := range plan {
		p.mu.ScheduleTx(p.availableSince, p.c.Info.Start, p.c.Info.End, p.bundleIn)

		if _, err := p.c.Manager.Schedule(&p.c.Info, p.availableSince, p.bundleIn); err != nil {
			return fmt.Errorf("%w: contact %d schedule disagreed with its dry-run: %v", contactmgr.ErrInvariantViolation, p.c.Info.ID, err)
		}

		p.mv.ScheduleRx(p.res.TxStart, p.res.ArrivalAtRx, p.bundleIn)

		if proc, ok := any(p.mv).(nodemgr.Processor); ok {
			proc.ScheduleProcess(p.res.ArrivalAtRx, p.bundleIn)
		}
	}

	return nil
}
