// Package router exposes the three routing mainframes — CGR, VolCGR, SPSN —
// each a long-lived value that owns a Multigraph reference plus its own
// route-storage cache across calls. All three share the same two-phase
// protocol: Route searches in dry-run mode and returns a RouteOutput without
// touching manager state; Commit re-walks the chosen route, re-confirms
// every gate with a fresh dry run, and only then applies Schedule along the
// whole route, so a route is never partially committed.
package router
