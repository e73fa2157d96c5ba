// Package altpath builds alternative-route discovery on top of pathfind's
// single-shortest-path search: FirstEnding and FirstDepleted both wrap a
// pathfind backend in a repeat-until-no-route loop, grounded on the
// teacher's flow.Dinic outer loop (repeat augmenting-path search until the
// level graph no longer reaches the sink). Each iteration removes one
// contact from consideration and re-runs the search, so repeated calls
// surface successively less-preferred routes rather than the same one.
//
// VolumeAware takes a different approach: instead of iterating, it folds
// residual-volume preference directly into the cost ordering a single
// Dijkstra run optimizes against.
package altpath
