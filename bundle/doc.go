// Package bundle defines the domain primitives shared by every other A-SABR
// package: NodeID, Date, Duration, Volume, Priority, the Bundle record, and
// the static NodeInfo/ContactInfo pairs that describe a contact plan's
// topology independent of any resource manager.
//
// These types intentionally carry no behavior beyond arithmetic and simple
// validation — they are the vocabulary the rest of the module is written
// in, the same role core.Vertex/core.Edge play for lvlath's graph packages.
// Date and Duration share a representation (both are real-valued,
// monotonic, caller-supplied time units); there is no wall clock anywhere
// in this module.
//
// NodeInfo/ContactInfo live here rather than in cpgraph so that both
// cpgraph (which assembles them into a Multigraph) and contactmgr/nodemgr
// (whose Manager contracts take a *ContactInfo) can depend on them without
// an import cycle.
package bundle
