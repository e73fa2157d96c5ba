// Package distance defines the cost model that pathfind's Dijkstra variants
// optimize against, and the RouteStage chain that records how a bundle gets
// from one hop to the next.
//
// A Distance strategy is the generalization point that lets one runner
// (pathfind.runner) serve both the classic arrival-time-first ordering
// (SABRDistance) and a pure hop-count ordering (HopDistance) without
// duplicating the search loop, mirroring how the teacher's dijkstra package
// keeps one runner parameterized by Options rather than one runner per
// variant.
package distance
