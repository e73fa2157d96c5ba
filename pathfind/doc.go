// Package pathfind computes schedule-aware shortest paths over a
// cpgraph.Multigraph using a single shared Dijkstra runner (mirroring the
// teacher's dijkstra.runner) parameterized by a distance.Distance strategy
// and one of three parenting disciplines:
//
//   - NodeParenting keeps one best RouteStage per node — cheapest, but
//     cannot express "two different best contacts arriving at the same
//     node via different predecessors", a known source of missed routes.
//   - ContactParenting keeps one best RouteStage per contact instead,
//     fixing most of NodeParenting's blind spot at the cost of exploring
//     more states.
//   - HybridParenting (multi-path tracking) keeps a Pareto set of
//     non-dominated RouteStages per node, admitting a candidate whenever it
//     is strictly better than every retained candidate on at least one
//     cost coordinate; contact-level parenting is retained alongside it
//     purely to block cycles.
//
// All three share the priority queue, lazy-decrease-key discipline, and
// node/contact gate wiring in runner.go; they differ only in how a newly
// relaxed RouteStage is admitted and in what "already finalized" means.
package pathfind
