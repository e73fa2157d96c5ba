package contactmgr

import (
	"fmt"

	"github.com/asabr-go/asabr/bundle"
)

// EVLManager tracks a contact's residual volume only: tx_start is simply
// max(at_time, info.Start), and the contact's total transmissible volume
// (rate * span) is decremented as bundles are scheduled.
type EVLManager struct {
	rate        float64       // volume per unit duration
	delay       bundle.Duration
	totalVolume bundle.Volume
	residual    bundle.Volume
	initialized bool
}

// NewEVLManager constructs an EVLManager with the given rate (volume per
// unit duration) and fixed one-way propagation delay. Call TryInit before
// use; cpgraph.NewMultigraph does not call it (cpparse's Plan.Build does).
func NewEVLManager(rate float64, delay bundle.Duration) *EVLManager {
	return &EVLManager{rate: rate, delay: delay}
}

// TryInit caches totalVolume = rate * span and resets residual to it.
func (m *EVLManager) TryInit(info *bundle.ContactInfo) error {
	if m.rate <= 0 {
		return fmt.Errorf("contactmgr: EVLManager rate must be positive, got %v", m.rate)
	}
	if m.delay < 0 {
		return fmt.Errorf("contactmgr: EVLManager delay must be non-negative, got %v", m.delay)
	}
	if err := info.Validate(); err != nil {
		return err
	}

	m.totalVolume = bundle.Volume(m.rate * float64(info.Span()))
	m.residual = m.totalVolume
	m.initialized = true

	return nil
}

// OriginalVolume implements VolumeReporter.
func (m *EVLManager) OriginalVolume() bundle.Volume {
	return m.totalVolume
}

func (m *EVLManager) plan(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}

	txStart := maxD(at, info.Start)
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
	if b.Expiration < txEnd+m.delay {
		return nil, ErrExpired
	}

	return &TxEndHopData{
		TxStart:      txStart,
		TxEnd:        txEnd,
		ArrivalAtRx:  txEnd + m.delay,
		ResidualSnap: m.residual - b.Size,
	}, nil
}

// DryRun reports feasibility with no side effects.
func (m *EVLManager) DryRun(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	return m.plan(info, at, b)
}

// Schedule commits the reservation, deducting b.Size from the residual.
func (m *EVLManager) Schedule(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	res, err := m.plan(info, at, b)
	if err != nil {
		return nil, err
	}

	m.residual -= b.Size

	return res, nil
}
