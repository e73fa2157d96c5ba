// Package ion is a read-only adapter from ION's contact-plan editor
// directives ("a contact", "a range") to a Multigraph. It forces a single
// contact-manager type (EVLManager) and a single node-manager type
// (nodemgr.NoManagement), since ION's format carries no node-level
// management concept and only one kind of capacity/delay model.
//
// Known limitation: ION permits multiple overlapping "a contact" entries
// between the same pair of nodes to be coalesced by some tools into one
// longer contact; this adapter does not coalesce — every "a contact" line
// becomes exactly one ContactInfo, matching the specification's explicit
// choice to leave coalescing out of scope.
package ion
