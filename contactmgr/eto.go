package contactmgr

import (
	"fmt"

	"github.com/asabr-go/asabr/bundle"
)

// ETOManager tracks an externally-driven transmission queue occupancy Q:
// tx_start = max(at_time, info.Start + Q/rate). It is intended for a
// bundle's first-hop contact, where the transmitter is the local node and Q
// reflects everything already queued ahead of this bundle. Scheduling a
// bundle enqueues its size automatically; callers additionally call Dequeue
// when a previously committed transmission is learned to have aborted.
type ETOManager struct {
	rate        float64
	delay       bundle.Duration
	queue       bundle.Volume // Q: occupancy ahead of the next bundle, for maxQueue accounting
	nextFree    bundle.Date   // busy-until time the next bundle must queue behind
	maxQueue    bundle.Volume // 0 means unbounded
	initialized bool
}

// NewETOManager constructs an ETOManager with the given rate, propagation
// delay, and initial queue occupancy (commonly 0). maxQueue, if > 0, bounds
// Q and causes DryRun/Schedule to return ErrQueueFull once exceeded.
func NewETOManager(rate float64, delay bundle.Duration, initialQueue bundle.Volume, maxQueue bundle.Volume) *ETOManager {
	return &ETOManager{rate: rate, delay: delay, queue: initialQueue, maxQueue: maxQueue}
}

// TryInit validates the configured rate and delay.
func (m *ETOManager) TryInit(info *bundle.ContactInfo) error {
	if m.rate <= 0 {
		return fmt.Errorf("contactmgr: ETOManager rate must be positive, got %v", m.rate)
	}
	if m.delay < 0 {
		return fmt.Errorf("contactmgr: ETOManager delay must be non-negative, got %v", m.delay)
	}
	if err := info.Validate(); err != nil {
		return err
	}

	m.nextFree = info.Start + bundle.Date(float64(m.queue)/m.rate)
	m.initialized = true

	return nil
}

// Enqueue increases queue occupancy by size, as if some other bundle were
// placed ahead of future DryRun/Schedule calls, appended directly onto the
// busy-until clock rather than onto "now".
func (m *ETOManager) Enqueue(size bundle.Volume) {
	m.queue += size
	m.nextFree += bundle.Date(float64(size) / m.rate)
}

// Dequeue reverses a prior enqueue (own or external), restoring the exact
// prior DryRun result for bundles still behind it in the queue.
func (m *ETOManager) Dequeue(size bundle.Volume) {
	m.queue -= size
	if m.queue < 0 {
		m.queue = 0
	}

	m.nextFree -= bundle.Date(float64(size) / m.rate)
	if m.nextFree < 0 {
		m.nextFree = 0
	}
}

func (m *ETOManager) plan(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}
	if m.maxQueue > 0 && m.queue+b.Size > m.maxQueue {
		return nil, ErrQueueFull
	}

	txStart := maxD(at, m.nextFree)
	if txStart >= info.End {
		return nil, ErrExpired
	}

	txEnd := txStart + bundle.Date(float64(b.Size)/m.rate)
	if txEnd > info.End {
		return nil, ErrInsufficientCapacity
	}

	arrival := txEnd + m.delay
	if b.Expiration < arrival {
		return nil, ErrExpired
	}

	return &TxEndHopData{
		TxStart:      txStart,
		TxEnd:        txEnd,
		ArrivalAtRx:  arrival,
		ResidualSnap: m.queue + b.Size,
	}, nil
}

// DryRun reports feasibility with no side effects.
func (m *ETOManager) DryRun(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	return m.plan(info, at, b)
}

// Schedule commits the reservation, enqueueing b.Size onto the queue and
// advancing the busy-until clock to this reservation's actual tx_end (not
// simply by size/rate, since tx_start may have been pushed out past the
// previous busy-until by a late-arriving at).
func (m *ETOManager) Schedule(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	res, err := m.plan(info, at, b)
	if err != nil {
		return nil, err
	}

	m.queue += b.Size
	m.nextFree = res.TxEnd

	return res, nil
}
