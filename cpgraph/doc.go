// Package cpgraph holds the contact plan as a time-varying multigraph: a
// dense array of nodes and, per (tx, rx) pair, a start-sorted slice of
// contacts with a lazily-advanced expiry cursor.
//
// Contact and Node are generic over their manager type (contactmgr.Manager,
// nodemgr.Manager) so that a Multigraph instantiated for one manager pairing
// carries no interface-dispatch overhead and no manager the caller never
// asked for — the same monomorphization the rest of this module uses to
// avoid runtime vtables for a concern that is fixed for the lifetime of one
// contact plan.
//
// Contact intentionally does not carry the optional "work area" scratch
// space contact-parenting Dijkstra needs (bundle.ContactInfo has no such
// field either): threading a RouteStage pointer through the Multigraph would
// force an import cycle back from cpgraph into distance for a piece of
// state that is meaningful only during one pathfind call and irrelevant
// between them. pathfind keeps that scratch in a side table keyed by
// bundle.ContactID instead, scoped to the call that needs it.
package cpgraph
