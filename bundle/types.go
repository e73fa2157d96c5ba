package bundle

import (
	"errors"
	"fmt"
)

// Sentinel errors for Bundle validation.
var (
	// ErrNoDestinations indicates a Bundle was constructed with an empty
	// destination list.
	ErrNoDestinations = errors.New("bundle: no destinations")

	// ErrBadSize indicates a non-positive Bundle size.
	ErrBadSize = errors.New("bundle: size must be positive")

	// ErrBadExpiration indicates an expiration that does not lie strictly
	// after the bundle's injection time.
	ErrBadExpiration = errors.New("bundle: expiration must be in the future")
)

// NodeID is a compact, non-negative, dense index in [0, node_count). It is
// usable directly as an array index into any per-node slice.
type NodeID uint32

// Date is an abstract monotonic point in time, in whatever unit the caller's
// contact plan uses (commonly seconds). There is no relationship to wall-clock
// time anywhere in this module.
type Date float64

// Duration is an abstract span of time in the same unit as Date. Date and
// Duration are arithmetically interchangeable: Date + Duration == Date.
type Duration = Date

// Volume is a real-valued quantity of bytes (or bits — the unit is whatever
// the caller's rate/size fields use, as long as they agree).
type Volume float64

// Priority is a bundle's service class, 0 (lowest) through some manager- or
// contact-plan-defined maximum P.
type Priority uint8

// Bundle is the atomic message the router plans paths for. It is immutable
// to the router itself; a node manager's processing hook (nodemgr.Manager.
// DryRunProcess/ScheduleProcess) may return a modified clone, never mutate
// the caller's original.
type Bundle struct {
	Source       NodeID
	Destinations []NodeID
	Priority     Priority
	Size         Volume
	Expiration   Date
}

// Validate checks the structural invariants of a Bundle: it must name at
// least one destination and carry a positive size. now is the bundle's
// injection time; Expiration must lie strictly after it.
func (b *Bundle) Validate(now Date) error {
	if len(b.Destinations) == 0 {
		return ErrNoDestinations
	}
	if b.Size <= 0 {
		return fmt.Errorf("%w: got %v", ErrBadSize, b.Size)
	}
	if b.Expiration <= now {
		return fmt.Errorf("%w: expiration=%v now=%v", ErrBadExpiration, b.Expiration, now)
	}

	return nil
}

// Clone returns a deep copy of b. Node managers with a processing hook must
// call Clone before mutating Size (or any other field) so that the caller's
// original Bundle is never observed as mutated — dry-run calls must leave no
// trace.
func (b *Bundle) Clone() *Bundle {
	dests := make([]NodeID, len(b.Destinations))
	copy(dests, b.Destinations)

	return &Bundle{
		Source:       b.Source,
		Destinations: dests,
		Priority:     b.Priority,
		Size:         b.Size,
		Expiration:   b.Expiration,
	}
}

// IsMulticast reports whether b names more than one destination.
func (b *Bundle) IsMulticast() bool {
	return len(b.Destinations) > 1
}

// ErrStartNotBeforeEnd indicates a ContactInfo whose Start does not
// precede its End.
var ErrStartNotBeforeEnd = errors.New("bundle: contact start must be < end")

// ContactID is a compact arena index identifying one Contact within a
// Multigraph. RouteStage chains and the Multigraph both reference contacts
// by this ID rather than by pointer, so that the Multigraph never needs to
// be mutated to keep old RouteStage chains valid (see cpgraph.Multigraph).
type ContactID uint32

// NodeInfo is the static, manager-independent description of one node.
// Excluded, when true, means the router must never route through this
// node regardless of any caller-supplied exclusion list.
type NodeInfo struct {
	ID       NodeID
	Name     string
	Excluded bool
}

// ContactInfo is the static, manager-independent description of one
// scheduled transmission opportunity between two nodes.
type ContactInfo struct {
	ID    ContactID
	Tx    NodeID
	Rx    NodeID
	Start Date
	End   Date
}

// Validate checks the ContactInfo invariant Start < End.
func (c *ContactInfo) Validate() error {
	if !(c.Start < c.End) {
		return fmt.Errorf("%w: start=%v end=%v", ErrStartNotBeforeEnd, c.Start, c.End)
	}

	return nil
}

// Span returns the contact's length, End - Start.
func (c *ContactInfo) Span() Duration {
	return c.End - c.Start
}
