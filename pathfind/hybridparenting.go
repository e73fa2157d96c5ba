package pathfind

import (
	"container/heap"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
)

// dominates reports whether x Pareto-dominates y: no worse on any
// coordinate (earlier-or-equal arrival, fewer-or-equal hops, greater-or-equal
// residual) and strictly better on at least one.
func dominates(x, y distance.Cost) bool {
	noWorse := x.Arrival <= y.Arrival && x.Hops <= y.Hops && x.Residual >= y.Residual
	strictlyBetter := x.Arrival < y.Arrival || x.Hops < y.Hops || x.Residual > y.Residual

	return noWorse && strictlyBetter
}

// paretoOffer admits cand into set iff it is strictly better than the
// best-so-far value retained among set on at least one cost coordinate; any
// retained stage cand now dominates is pruned.
func paretoOffer(set []*distance.RouteStage, cand *distance.RouteStage) ([]*distance.RouteStage, bool) {
	if len(set) == 0 {
		return append(set, cand), true
	}

	bestArrival, bestHops, bestResidual := set[0].Cost.Arrival, set[0].Cost.Hops, set[0].Cost.Residual
	for _, s := range set[1:] {
		if s.Cost.Arrival < bestArrival {
			bestArrival = s.Cost.Arrival
		}
		if s.Cost.Hops < bestHops {
			bestHops = s.Cost.Hops
		}
		if s.Cost.Residual > bestResidual {
			bestResidual = s.Cost.Residual
		}
	}

	if !(cand.Cost.Arrival < bestArrival || cand.Cost.Hops < bestHops || cand.Cost.Residual > bestResidual) {
		return set, false
	}

	kept := set[:0]
	for _, s := range set {
		if !dominates(cand.Cost, s.Cost) {
			kept = append(kept, s)
		}
	}

	return append(kept, cand), true
}

func containsStage(set []*distance.RouteStage, s *distance.RouteStage) bool {
	for _, x := range set {
		if x == s {
			return true
		}
	}

	return false
}

// HybridParenting (multi-path tracking) retains a Pareto set of
// non-dominated RouteStages per node instead of a single best: a candidate
// enters the set whenever it strictly improves at least one cost coordinate
// over every retained candidate, and it prunes any retained candidate it now
// dominates. Contact-level finalization is still used to block cycles, the
// same as ContactParenting.
func HybridParenting[CM contactmgr.Manager, NM nodemgr.Manager](
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

	pareto := make(map[bundle.NodeID][]*distance.RouteStage)
	best := make(Tree) // node -> lexicographically-best admitted stage, for reporting
	origin := &distance.RouteStage{Cost: dist.Initial(now)}
	pareto[b.Source] = []*distance.RouteStage{origin}
	best[b.Source] = origin
	originFinalized := false

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
			if !containsStage(pareto[it.node], it.stage) || r.visited[it.stage.Contact] {
				continue // pruned from the Pareto set since being queued, or contact already finalized
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
			stage := &distance.RouteStage{
				Contact: c.Info.ID,
				TxStart: h.txStart,
				Arrival: h.arrival,
				Hops:    it.stage.Hops + 1,
				Cost:    newCost,
				Back:    it.stage,
			}

			updated, admitted := paretoOffer(pareto[v], stage)
			if !admitted {
				return true
			}
			pareto[v] = updated
			heap.Push(&r.pq, &item{node: v, stage: stage, bundle: h.bundle})

			return true
		})
	}

	return best, nil
}
