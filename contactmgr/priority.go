package contactmgr

import (
	"fmt"

	"github.com/asabr-go/asabr/bundle"
)

// PEVLManager adds per-priority residual accounting on top of EVLManager's
// time-based tx_start. A bundle at priority p may draw on the contact's
// unreserved residual plus anything reserved by strictly lower (less
// urgent) priorities, since those reservations are not yet committed to the
// network and may be displaced by more urgent traffic in this planning
// model; it may never draw on volume already reserved by priorities p or
// higher.
type PEVLManager struct {
	rate        float64
	delay       bundle.Duration
	totalVolume bundle.Volume
	reserved    map[bundle.Priority]bundle.Volume
	initialized bool
}

// NewPEVLManager constructs a PEVLManager with the given rate and delay.
func NewPEVLManager(rate float64, delay bundle.Duration) *PEVLManager {
	return &PEVLManager{rate: rate, delay: delay, reserved: make(map[bundle.Priority]bundle.Volume)}
}

// TryInit caches totalVolume = rate * span.
func (m *PEVLManager) TryInit(info *bundle.ContactInfo) error {
	if m.rate <= 0 {
		return fmt.Errorf("contactmgr: PEVLManager rate must be positive, got %v", m.rate)
	}
	if err := info.Validate(); err != nil {
		return err
	}

	m.totalVolume = bundle.Volume(m.rate * float64(info.Span()))
	m.initialized = true

	return nil
}

// OriginalVolume implements VolumeReporter.
func (m *PEVLManager) OriginalVolume() bundle.Volume {
	return m.totalVolume
}

// availableFor computes the volume priority p may draw on: the contact's
// fully-unreserved residual, plus whatever is reserved by strictly lower
// priorities (which p may displace).
func (m *PEVLManager) availableFor(p bundle.Priority) bundle.Volume {
	free := m.totalVolume
	var lower bundle.Volume
	for q, v := range m.reserved {
		free -= v
		if q < p {
			lower += v
		}
	}

	return free + lower
}

func (m *PEVLManager) plan(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}

	txStart := maxD(at, info.Start)
	if txStart >= info.End {
		return nil, ErrExpired
	}

	airtime := info.End - txStart
	timeCap := bundle.Volume(m.rate * float64(airtime))
	avail := m.availableFor(b.Priority)
	if timeCap < avail {
		avail = timeCap
	}
	if b.Size > avail {
		return nil, ErrInsufficientCapacity
	}

	txEnd := txStart + bundle.Date(float64(b.Size)/m.rate)
	arrival := txEnd + m.delay
	if b.Expiration < arrival {
		return nil, ErrExpired
	}

	return &TxEndHopData{TxStart: txStart, TxEnd: txEnd, ArrivalAtRx: arrival, ResidualSnap: avail - b.Size}, nil
}

// DryRun reports feasibility with no side effects.
func (m *PEVLManager) DryRun(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	return m.plan(info, at, b)
}

// Schedule commits the reservation against b.Priority.
func (m *PEVLManager) Schedule(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	res, err := m.plan(info, at, b)
	if err != nil {
		return nil, err
	}

	m.reserved[b.Priority] += b.Size

	return res, nil
}

// PQDManager adds the same per-priority residual accounting on top of
// QDManager's booked-volume-based tx_start.
type PQDManager struct {
	rate        float64
	delay       bundle.Duration
	totalVolume bundle.Volume
	booked      bundle.Volume
	reserved    map[bundle.Priority]bundle.Volume
	initialized bool
}

// NewPQDManager constructs a PQDManager with the given rate and delay.
func NewPQDManager(rate float64, delay bundle.Duration) *PQDManager {
	return &PQDManager{rate: rate, delay: delay, reserved: make(map[bundle.Priority]bundle.Volume)}
}

// TryInit caches totalVolume = rate * span.
func (m *PQDManager) TryInit(info *bundle.ContactInfo) error {
	if m.rate <= 0 {
		return fmt.Errorf("contactmgr: PQDManager rate must be positive, got %v", m.rate)
	}
	if err := info.Validate(); err != nil {
		return err
	}

	m.totalVolume = bundle.Volume(m.rate * float64(info.Span()))
	m.initialized = true

	return nil
}

// OriginalVolume implements VolumeReporter.
func (m *PQDManager) OriginalVolume() bundle.Volume {
	return m.totalVolume
}

func (m *PQDManager) availableFor(p bundle.Priority) bundle.Volume {
	free := m.totalVolume
	var lower bundle.Volume
	for q, v := range m.reserved {
		free -= v
		if q < p {
			lower += v
		}
	}

	return free + lower
}

func (m *PQDManager) plan(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}

	txStart := maxD(at, info.Start+bundle.Date(float64(m.booked)/m.rate))
	if txStart >= info.End {
		return nil, ErrExpired
	}

	airtime := info.End - txStart
	timeCap := bundle.Volume(m.rate * float64(airtime))
	avail := m.availableFor(b.Priority)
	if timeCap < avail {
		avail = timeCap
	}
	if b.Size > avail {
		return nil, ErrInsufficientCapacity
	}

	txEnd := txStart + bundle.Date(float64(b.Size)/m.rate)
	arrival := txEnd + m.delay
	if b.Expiration < arrival {
		return nil, ErrExpired
	}

	return &TxEndHopData{TxStart: txStart, TxEnd: txEnd, ArrivalAtRx: arrival, ResidualSnap: avail - b.Size}, nil
}

// DryRun reports feasibility with no side effects.
func (m *PQDManager) DryRun(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	return m.plan(info, at, b)
}

// Schedule commits the reservation, advancing booked volume and the
// per-priority reservation ledger.
func (m *PQDManager) Schedule(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	res, err := m.plan(info, at, b)
	if err != nil {
		return nil, err
	}

	m.booked += b.Size
	m.reserved[b.Priority] += b.Size

	return res, nil
}
