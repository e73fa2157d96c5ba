// Package routestore holds the two caches router consults before invoking
// pathfind: RoutingTable, a per-destination ordered list of previously
// found routes, and TreeCache, a capacity-bounded cache of whole
// shortest-path trees keyed by exclusion set, each reusable only within the
// bundle bounds (priority, size) it was stored with. They are
// kept as separate types rather than unified behind one interface, because
// a single-destination route and a multicast tree have different
// invalidation rules (a route expires hop-by-hop; a tree is reusable only
// for a bundle no more demanding than the one that built it).
package routestore
