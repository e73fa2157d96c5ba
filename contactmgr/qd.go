package contactmgr

import (
	"fmt"

	"github.com/asabr-go/asabr/bundle"
)

// QDManager tracks both a residual volume and a self-maintained booked
// volume B: tx_start = max(at_time, info.Start + B/rate). Unlike ETOManager,
// B is advanced only by this manager's own Schedule calls — there is no
// external Enqueue/Dequeue hook — which is why QDManager is the natural
// choice for a non-first-hop contact (the transmitter is remote, so no
// externally observable local queue exists).
type QDManager struct {
	rate        float64
	delay       bundle.Duration
	totalVolume bundle.Volume
	residual    bundle.Volume
	booked      bundle.Volume
	initialized bool
}

// NewQDManager constructs a QDManager with the given rate and delay.
func NewQDManager(rate float64, delay bundle.Duration) *QDManager {
	return &QDManager{rate: rate, delay: delay}
}

// TryInit caches totalVolume = rate * span and resets residual/booked.
func (m *QDManager) TryInit(info *bundle.ContactInfo) error {
	if m.rate <= 0 {
		return fmt.Errorf("contactmgr: QDManager rate must be positive, got %v", m.rate)
	}
	if m.delay < 0 {
		return fmt.Errorf("contactmgr: QDManager delay must be non-negative, got %v", m.delay)
	}
	if err := info.Validate(); err != nil {
		return err
	}

	m.totalVolume = bundle.Volume(m.rate * float64(info.Span()))
	m.residual = m.totalVolume
	m.booked = 0
	m.initialized = true

	return nil
}

// OriginalVolume implements VolumeReporter.
func (m *QDManager) OriginalVolume() bundle.Volume {
	return m.totalVolume
}

func (m *QDManager) plan(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}

	txStart := maxD(at, info.Start+bundle.Date(float64(m.booked)/m.rate))
	if txStart >= info.End {
		return nil, ErrExpired
	}

	airtime := info.End - txStart
	available := bundle.Volume(m.rate * float64(airtime))
	if available > m.residual {
		available = m.residual
	}
	if b.Size > available {
		return nil, ErrInsufficientCapacity
	}

	txEnd := txStart + bundle.Date(float64(b.Size)/m.rate)
	arrival := txEnd + m.delay
	if b.Expiration < arrival {
		return nil, ErrExpired
	}

	return &TxEndHopData{
		TxStart:      txStart,
		TxEnd:        txEnd,
		ArrivalAtRx:  arrival,
		ResidualSnap: m.residual - b.Size,
	}, nil
}

// DryRun reports feasibility with no side effects.
func (m *QDManager) DryRun(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	return m.plan(info, at, b)
}

// Schedule commits the reservation: advances booked volume B and deducts
// residual.
func (m *QDManager) Schedule(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	res, err := m.plan(info, at, b)
	if err != nil {
		return nil, err
	}

	m.booked += b.Size
	m.residual -= b.Size

	return res, nil
}
