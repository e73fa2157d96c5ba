package pathfind

import (
	"container/heap"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
)

// ContactParenting runs a schedule-aware Dijkstra search that keeps one best
// RouteStage per contact rather than per node: a node may be re-expanded any
// number of times, once per contact that improves on that contact's own
// best-known cost, so two different predecessors reaching the same node via
// different contacts are both retained and both explored onward. Each
// contact is still finalized at most once, which bounds total work and
// blocks cycles.
func ContactParenting[CM contactmgr.Manager, NM nodemgr.Manager](
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

	best := make(Tree) // node -> best stage seen so far, for reporting only
	bestContact := make(map[bundle.ContactID]*distance.RouteStage)
	origin := &distance.RouteStage{Cost: dist.Initial(now)}
	originFinalized := false
	best[b.Source] = origin

	heap.Init(&r.pq)
	heap.Push(&r.pq, &item{node: b.Source, stage: origin, bundle: b})

	for r.pq.Len() > 0 {
		it := heap.Pop(&r.pq).(*item)

		if it.stage.Back == nil {
			if originFinalized {
				continue
			}
			originFinalized = true
		} else {
			if bestContact[it.stage.Contact] != it.stage || r.visited[it.stage.Contact] {
				continue // stale lazy-decrease-key entry, or contact already finalized
			}
			r.visited[it.stage.Contact] = true
		}

		if existing, had := best[it.node]; !had || dist.Less(it.stage.Cost, existing.Cost) {
			best[it.node] = it.stage
		}

		if cfg.Destination != nil && *cfg.Destination == it.node && best[it.node] == it.stage {
			break
		}

		u := it.node
		mu := g.Node(u).Manager

		g.ContactsFrom(u, it.stage.Cost.Arrival, func(v bundle.NodeID, c *cpgraph.Contact[CM]) bool {
			if r.contactExcluded(c.Info.ID) || r.excluded(v) || r.visited[c.Info.ID] {
				return true
			}

			h, ok, err := tryHop[CM, NM](mu, g.Node(v).Manager, c, it.stage.Cost.Arrival, it.bundle)
			if err != nil || !ok {
				return true
			}

			newCost := dist.Combine(it.stage.Cost, h.txStart, h.arrival, h.residual)
			if existing, had := bestContact[c.Info.ID]; had && !dist.Less(newCost, existing.Cost) {
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
			bestContact[c.Info.ID] = stage
			heap.Push(&r.pq, &item{node: v, stage: stage, bundle: h.bundle})

			return true
		})
	}

	return best, nil
}
