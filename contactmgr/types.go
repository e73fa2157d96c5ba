package contactmgr

import (
	"errors"

	"github.com/asabr-go/asabr/bundle"
)

// Sentinel errors describing why a contact cannot carry a bundle right now.
// These are expected, recoverable conditions (per the specification's error
// taxonomy) and must be checked with errors.Is, never treated as fatal.
var (
	// ErrExpired indicates at_time is at or past the contact's end, or the
	// bundle's expiration precedes the earliest feasible arrival.
	ErrExpired = errors.New("contactmgr: contact expired before a feasible arrival")

	// ErrInsufficientCapacity indicates the contact's rate/volume cannot
	// fit the bundle's size before the contact ends.
	ErrInsufficientCapacity = errors.New("contactmgr: insufficient capacity")

	// ErrOverbooked indicates a priority-budgeted manager's budget share is
	// exhausted at the bundle's priority level.
	ErrOverbooked = errors.New("contactmgr: priority budget exhausted")

	// ErrQueueFull is returned by queue-backed managers (ETOManager) when a
	// caller-enforced queue bound rejects the bundle.
	ErrQueueFull = errors.New("contactmgr: queue full")

	// ErrNotInitialized indicates Schedule or DryRun was called before a
	// successful TryInit.
	ErrNotInitialized = errors.New("contactmgr: manager not initialized")

	// ErrInvariantViolation indicates a manager's Schedule result disagreed
	// with the DryRun that must have immediately preceded it. This is a
	// programmer error, never a recoverable routing condition.
	ErrInvariantViolation = errors.New("contactmgr: schedule disagrees with dry-run")
)

// TxEndHopData is the non-nil result of a successful DryRun or Schedule: the
// timing and residual-capacity snapshot the bundle would experience (or did
// experience) crossing this contact.
type TxEndHopData struct {
	TxStart      bundle.Date
	TxEnd        bundle.Date
	ArrivalAtRx  bundle.Date
	ResidualSnap bundle.Volume
}

// Manager is the Contact Manager contract. Implementations own exactly one
// contact's resource state; DryRun must be idempotent and side-effect free.
type Manager interface {
	// TryInit sanity-checks info and caches any derived constants (e.g.
	// total volume = rate * span). Called once, right after construction.
	TryInit(info *bundle.ContactInfo) error

	// DryRun reports whether b could be transmitted on this contact no
	// earlier than at, without mutating any persistent state. A nil
	// *TxEndHopData with a sentinel error (ErrExpired, ErrInsufficientCapacity,
	// ErrOverbooked, ErrQueueFull) means "cannot carry"; any other non-nil
	// error is a real failure.
	DryRun(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error)

	// Schedule commits the reservation DryRun last reported for identical
	// arguments. Calling Schedule without an immediately preceding,
	// argument-identical DryRun is unspecified.
	Schedule(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error)
}

// VolumeReporter is implemented by managers that can report the contact's
// original (un-booked) volume. Required by altpath.FirstDepleted to rank
// contacts for exclusion.
type VolumeReporter interface {
	OriginalVolume() bundle.Volume
}

// Queueing is implemented by managers backed by an externally-driven
// transmission queue (ETOManager). Callers invoke Dequeue after learning a
// previously committed transmission was aborted; this reverses queue
// occupancy but never downstream commits on the route.
type Queueing interface {
	Enqueue(size bundle.Volume)
	Dequeue(size bundle.Volume)
}

func maxD(a, b bundle.Date) bundle.Date {
	if a > b {
		return a
	}

	return b
}
