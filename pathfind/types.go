package pathfind

import (
	"errors"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/distance"
)

// Sentinel errors returned before a search ever begins.
var (
	// ErrNilGraph indicates a nil *cpgraph.Multigraph was passed in.
	ErrNilGraph = errors.New("pathfind: graph is nil")

	// ErrNilBundle indicates a nil *bundle.Bundle was passed in.
	ErrNilBundle = errors.New("pathfind: bundle is nil")

	// ErrNilDistance indicates a nil distance.Distance strategy was passed in.
	ErrNilDistance = errors.New("pathfind: distance strategy is nil")

	// ErrSourceExcluded indicates the bundle's source node is marked
	// Excluded in the contact plan, so no route can ever begin.
	ErrSourceExcluded = errors.New("pathfind: source node is excluded")
)

// Options configures one search. The zero value computes a full
// shortest-path tree from the bundle's source with no exclusions.
type Options struct {
	// Destination, if non-nil, stops the search as soon as this node is
	// finalized; the returned Tree then holds only the nodes reached by
	// that point. Leave nil to compute the whole reachable tree.
	Destination *bundle.NodeID

	// ExcludedContacts are skipped whenever the search relaxes a node's
	// outgoing contacts; altpath uses this to iterate-and-exclude across
	// successive calls.
	ExcludedContacts map[bundle.ContactID]bool

	// ExcludedNodes are never entered, in addition to any node whose
	// NodeInfo.Excluded flag is already set.
	ExcludedNodes map[bundle.NodeID]bool
}

// Option is a functional option over Options.
type Option func(*Options)

// WithDestination restricts the search to a single destination, stopping as
// soon as it is finalized.
func WithDestination(id bundle.NodeID) Option {
	return func(o *Options) { o.Destination = &id }
}

// WithExcludedContacts removes the given contacts from consideration.
func WithExcludedContacts(ids ...bundle.ContactID) Option {
	return func(o *Options) {
		if o.ExcludedContacts == nil {
			o.ExcludedContacts = make(map[bundle.ContactID]bool, len(ids))
		}
		for _, id := range ids {
			o.ExcludedContacts[id] = true
		}
	}
}

// WithExcludedNodes removes the given nodes from consideration.
func WithExcludedNodes(ids ...bundle.NodeID) Option {
	return func(o *Options) {
		if o.ExcludedNodes == nil {
			o.ExcludedNodes = make(map[bundle.NodeID]bool, len(ids))
		}
		for _, id := range ids {
			o.ExcludedNodes[id] = true
		}
	}
}

// DefaultOptions returns the zero-value Options: full tree, no exclusions.
func DefaultOptions() Options {
	return Options{}
}

// Tree is a shortest-path forest rooted at one bundle's source: the best
// RouteStage reaching each node found reachable. The source node itself
// maps to a stage with a nil Back and zero Contact.
type Tree map[bundle.NodeID]*distance.RouteStage

// Route extracts the path to a single destination, or nil if unreached.
func (t Tree) Route(dest bundle.NodeID) *distance.RouteStage {
	return t[dest]
}
