// Package contactmgr implements the pluggable Contact Manager contract: the
// resource-accounting strategy attached to one Contact in a cpgraph.Multigraph.
//
// A Manager owns exactly one contact's capacity state. Pathfinding calls
// DryRun speculatively, any number of times, with no side effects; a router
// commits a chosen route by calling Schedule exactly once per contact along
// that route, which must reproduce the immediately preceding DryRun's result
// and mutate internal state so that later DryRun calls observe the
// reservation. TryInit validates and caches derived constants once, right
// after construction.
//
// Concrete managers, grounded on the table in the specification:
//
//	EVLManager   - tracks residual volume only.
//	ETOManager   - tracks an externally-driven queue occupancy (Enqueue/Dequeue).
//	QDManager    - tracks residual volume plus a self-maintained booked volume.
//	SegmentationManager - per-interval (rate, delay) accounting.
//	PEVLManager / PQDManager - per-priority residual on top of EVL/QD.
//	PBEVLManager / PBQDManager - per-priority residual capped by a budget.
//
// DryRun/Schedule report "this bundle cannot be carried" by returning a nil
// *TxEndHopData together with one of the sentinel errors below (ErrExpired,
// ErrInsufficientCapacity, ErrOverbooked, ErrQueueFull) rather than treating
// it as a fatal error — callers distinguish the two with errors.Is, exactly
// as lvlath's algorithm packages use sentinel errors for expected,
// recoverable conditions.
package contactmgr
