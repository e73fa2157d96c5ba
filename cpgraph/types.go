package cpgraph

import (
	"errors"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/nodemgr"
)

// Sentinel errors returned by NewMultigraph.
var (
	// ErrSparseNodeIDs indicates the supplied nodes do not form a dense
	// 0..n-1 run of NodeIDs usable directly as a slice index.
	ErrSparseNodeIDs = errors.New("cpgraph: node IDs must be dense, 0..n-1")

	// ErrUnknownEndpoint indicates a contact names a tx or rx node outside
	// the supplied node set.
	ErrUnknownEndpoint = errors.New("cpgraph: contact endpoint has no matching node")

	// ErrBadContactInfo wraps a ContactInfo.Validate failure.
	ErrBadContactInfo = errors.New("cpgraph: invalid contact")

	// ErrDuplicateContactID indicates two contacts share a ContactID.
	ErrDuplicateContactID = errors.New("cpgraph: duplicate contact ID")
)

// Node pairs a node's static description with the manager gating what may
// happen there.
type Node[NM nodemgr.Manager] struct {
	Info    bundle.NodeInfo
	Manager NM
}

// Contact pairs a scheduled transmission opportunity with the manager
// owning its resource accounting.
type Contact[CM contactmgr.Manager] struct {
	Info    bundle.ContactInfo
	Manager CM
}
