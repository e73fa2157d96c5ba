// Package asabr is a schedule-aware bundle router for delay/disruption
// tolerant networks: given a contact plan (a set of time-windowed links
// between nodes, each governed by a capacity/delay model) it finds and
// commits routes for bundles across that plan ahead of time, the way a
// network with no end-to-end path at any single instant still gets traffic
// delivered by exploiting known future contacts.
//
// The module is organized as one package per concern rather than a deep
// internal/ tree:
//
//	bundle/     — domain types: NodeID, ContactID, Bundle, NodeInfo, ContactInfo
//	cpgraph/    — the time-varying multigraph contacts and nodes live on
//	contactmgr/ — per-contact capacity/delay models (EVL, ETO, QD, segmented, ...)
//	nodemgr/    — per-node transmit/receive/processing gates
//	distance/   — route cost and the Dijkstra relaxation rule
//	pathfind/   — Dijkstra variants producing a parent tree or single route
//	altpath/    — repeated search loops that diversify around a blocked route
//	routestore/ — cached routes (RoutingTable) and cached trees (TreeCache)
//	router/     — the CGR, VolCGR and SPSN routing mainframes
//	cpparse/    — the native contact-plan text format, plus read-only ion
//	            and tvgutil adapters
//
// See DESIGN.md for how each package's approach was grounded.
package asabr
