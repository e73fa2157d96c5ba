// Package cpparse reads and writes the native contact-plan text format: a
// flat stream of whitespace-separated tokens (newlines included) describing
// "node" and "contact" statements, comments starting with "#" stripped
// before tokenizing. Every statement names the concrete manager it wants
// via a marker token, dispatched through a caller-supplied Registry — the
// dynamic counterpart to cpgraph.Multigraph's static generic parameters:
// a parsed Plan carries contactmgr.Manager and nodemgr.Manager interface
// values directly, so a single plan may freely mix manager types the way
// the static API, bound to one CM/NM pair, cannot.
//
// Every statement is required to carry its marker explicitly, even when a
// plan uses only one manager type throughout: an optional marker would
// make the token grammar ambiguous against variable-length manager token
// sequences (SegmentationManager's rate/delay lists in particular), so the
// parser always requires it.
package cpparse
