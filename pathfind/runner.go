package pathfind

import (
	"errors"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
)

// item is one entry in the lazy-decrease-key priority queue: a candidate
// RouteStage together with the node it currently reaches and the bundle
// (possibly shrunk by a node Processor) it carries forward from there.
type item struct {
	node   bundle.NodeID
	stage  *distance.RouteStage
	bundle *bundle.Bundle
}

// pq is a min-heap of *item ordered by dist.Less(stage.Cost, ...), grounded
// on the teacher's nodePQ (container/heap, lazy decrease-key: stale entries
// are pushed over rather than mutated in place, and skipped on pop).
type pq struct {
	items []*item
	dist  distance.Distance
}

func (q pq) Len() int            { return len(q.items) }
func (q pq) Less(i, j int) bool  { return q.dist.Less(q.items[i].stage.Cost, q.items[j].stage.Cost) }
func (q pq) Swap(i, j int)       { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *pq) Push(x interface{}) { q.items = append(q.items, x.(*item)) }
func (q *pq) Pop() interface{} {
	old := q.items
	n := len(old)
	it := old[n-1]
	q.items = old[:n-1]

	return it
}

// runner holds the state shared by all three parenting disciplines: the
// graph, the distance strategy, the search options, and the heap. The
// caller-specific admission logic (one best per node, one best per contact,
// or a Pareto set per node) lives in the NodeParenting/ContactParenting/
// HybridParenting loops, not here.
type runner[CM contactmgr.Manager, NM nodemgr.Manager] struct {
	g       *cpgraph.Multigraph[CM, NM]
	dist    distance.Distance
	opts    Options
	pq      pq
	visited map[bundle.ContactID]bool // blocks re-entering a contact already finalized (ContactParenting, HybridParenting); NodeParenting finalizes per node instead
}

func newRunner[CM contactmgr.Manager, NM nodemgr.Manager](g *cpgraph.Multigraph[CM, NM], dist distance.Distance, opts Options) *runner[CM, NM] {
	return &runner[CM, NM]{
		g:       g,
		dist:    dist,
		opts:    opts,
		pq:      pq{dist: dist},
		visited: make(map[bundle.ContactID]bool),
	}
}

func validate[CM contactmgr.Manager, NM nodemgr.Manager](g *cpgraph.Multigraph[CM, NM], b *bundle.Bundle, dist distance.Distance, now bundle.Date) error {
	if g == nil {
		return ErrNilGraph
	}
	if b == nil {
		return ErrNilBundle
	}
	if dist == nil {
		return ErrNilDistance
	}
	if err := b.Validate(now); err != nil {
		return err
	}
	if g.Node(b.Source).Info.Excluded {
		return ErrSourceExcluded
	}

	return nil
}

// hop is the outcome of successfully crossing one contact from a node that
// already holds the bundle.
type hop struct {
	txStart  bundle.Date
	arrival  bundle.Date
	residual bundle.Volume
	bundle   *bundle.Bundle
}

// tryHop applies the gate sequence for crossing contact c out of node u,
// whose manager is mu: tx-gate at u, the contact manager's dry run, then
// rx-gate and optional processing at the destination v, whose manager is
// mv. A false ok return means the hop is infeasible for a non-fatal reason
// (the caller simply tries the next candidate contact); err is reserved for
// unexpected manager failures.
func tryHop[CM contactmgr.Manager, NM nodemgr.Manager](mu, mv NM, c *cpgraph.Contact[CM], availableSince bundle.Date, b *bundle.Bundle) (hop, bool, error) {
	if !mu.DryRunTx(availableSince, c.Info.Start, c.Info.End, b) {
		return hop{}, false, nil
	}

	res, err := c.Manager.DryRun(&c.Info, availableSince, b)
	if err != nil {
		if errors.Is(err, contactmgr.ErrExpired) || errors.Is(err, contactmgr.ErrInsufficientCapacity) ||
			errors.Is(err, contactmgr.ErrOverbooked) || errors.Is(err, contactmgr.ErrQueueFull) {
			return hop{}, false, nil // contactmgr sentinel errors mean "infeasible", not fatal
		}

		return hop{}, false, err
	}

	if !mv.DryRunRx(res.TxStart, res.ArrivalAtRx, b) {
		return hop{}, false, nil
	}

	arrival := res.ArrivalAtRx
	outBundle := b
	if proc, ok := any(mv).(nodemgr.Processor); ok {
		arrival, outBundle = proc.DryRunProcess(arrival, b)
	}

	return hop{txStart: res.TxStart, arrival: arrival, residual: res.ResidualSnap, bundle: outBundle}, true, nil
}

func (r *runner[CM, NM]) excluded(node bundle.NodeID) bool {
	if r.opts.ExcludedNodes != nil && r.opts.ExcludedNodes[node] {
		return true
	}

	return r.g.Node(node).Info.Excluded
}

func (r *runner[CM, NM]) contactExcluded(id bundle.ContactID) bool {
	return r.opts.ExcludedContacts != nil && r.opts.ExcludedContacts[id]
}
