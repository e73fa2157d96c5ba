package pathfind

import (
	"container/heap"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
)

// NodeParenting runs a schedule-aware Dijkstra search that keeps exactly one
// best RouteStage per node. It is the cheapest of the three disciplines but
// cannot express two different best contacts arriving at the same node via
// different predecessors: once a node is finalized, every contact out of it
// is explored using only that one retained stage, even if a worse-ranked
// predecessor would have opened a contact this one missed.
func NodeParenting[CM contactmgr.Manager, NM nodemgr.Manager](
	g *cpgraph.Multigraph[CM, NM], b *bundle.Bundle, now bundle.Date, dist distance.Distance, opts ...Option,
) (Tree, error) {
	if err := validate(g, b, dist, now); err != nil {
		return nil, err
	}

	cfg := DefaultOptions()
	for _, o := range opts {
		o(&cfg)
	}

	r := newRunner(g, dist, cfg)

	best := make(Tree)
	origin := &distance.RouteStage{Cost: dist.Initial(now)}
	best[b.Source] = origin
	heap.Init(&r.pq)
	heap.Push(&r.pq, &item{node: b.Source, stage: origin, bundle: b})

	finalized := make(map[bundle.NodeID]bool)

	for r.pq.Len() > 0 {
		it := heap.Pop(&r.pq).(*item)
		if best[it.node] != it.stage || finalized[it.node] {
			continue // stale lazy-decrease-key entry
		}
		finalized[it.node] = true

		if cfg.Destination != nil && *cfg.Destination == it.node {
			break
		}

		u := it.node
		mu := g.Node(u).Manager

		g.ContactsFrom(u, it.stage.Cost.Arrival, func(v bundle.NodeID, c *cpgraph.Contact[CM]) bool {
			if r.contactExcluded(c.Info.ID) || r.excluded(v) || finalized[v] {
				return true
			}

			h, ok, err := tryHop[CM, NM](mu, g.Node(v).Manager, c, it.stage.Cost.Arrival, it.bundle)
			if err != nil || !ok {
				return true
			}

			newCost := dist.Combine(it.stage.Cost, h.txStart, h.arrival, h.residual)
			if existing, had := best[v]; had && !dist.Less(newCost, existing.Cost) {
				return true
			}

			stage := &distance.RouteStage{
				Contact: c.Info.ID,
				TxStart: h.txStart,
				Arrival: h.arrival,
				Hops:    it.stage.Hops + 1,
				Cost:    newCost,
				Back:    it.stage,
			}
			best[v] = stage
			heap.Push(&r.pq, &item{node: v, stage: stage, bundle: h.bundle})

			return true
		})
	}

	return best, nil
}
