// Package nodemgr implements the Node Manager contract: the per-node gates
// that decide whether a bundle may be received, transmitted, or processed
// at one node, independent of any particular contact.
//
// Like contactmgr.Manager, every dry-run/schedule pair must be symmetric: a
// pathfinder may call the DryRun* methods any number of times with no
// side effects, and a router commits by calling the Schedule* counterpart
// exactly once per gate, in the order rx (at the hop's destination),
// process (if the manager implements Processor), tx (at the hop's source
// for the next hop).
package nodemgr
