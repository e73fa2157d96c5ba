package contactmgr

import (
	"fmt"

	"github.com/asabr-go/asabr/bundle"
)

// Budget maps a priority level to its guaranteed volume share on a
// priority-budgeted contact.
type Budget map[bundle.Priority]bundle.Volume

// capFor resolves the budgetCap for priority p: its configured budget share, or
// if p has no explicit entry, the residual left after every configured
// budget is set aside (the Open Question in the specification's §9 is
// resolved this way: an unbudgeted priority shares whatever budgeted
// priorities did not reserve).
func (bd Budget) capFor(p bundle.Priority, totalVolume bundle.Volume) bundle.Volume {
	if budgetCap, ok := bd[p]; ok {
		return budgetCap
	}

	var reserved bundle.Volume
	for _, v := range bd {
		reserved += v
	}

	return totalVolume - reserved
}

// PBEVLManager caps each priority's share of a contact's volume at a
// configured budget: a priority level can never exceed its own share, even
// when the contact's overall residual has room.
type PBEVLManager struct {
	rate        float64
	delay       bundle.Duration
	budget      Budget
	totalVolume bundle.Volume
	used        map[bundle.Priority]bundle.Volume
	initialized bool
}

// NewPBEVLManager constructs a PBEVLManager with the given rate, delay, and
// per-priority budget shares.
func NewPBEVLManager(rate float64, delay bundle.Duration, budget Budget) *PBEVLManager {
	return &PBEVLManager{rate: rate, delay: delay, budget: budget, used: make(map[bundle.Priority]bundle.Volume)}
}

// TryInit caches totalVolume = rate * span and validates the budget shares
// do not exceed it.
func (m *PBEVLManager) TryInit(info *bundle.ContactInfo) error {
	if m.rate <= 0 {
		return fmt.Errorf("contactmgr: PBEVLManager rate must be positive, got %v", m.rate)
	}
	if err := info.Validate(); err != nil {
		return err
	}

	m.totalVolume = bundle.Volume(m.rate * float64(info.Span()))

	var sum bundle.Volume
	for _, v := range m.budget {
		sum += v
	}
	if sum > m.totalVolume {
		return fmt.Errorf("contactmgr: PBEVLManager budgets sum to %v, exceeding volume %v", sum, m.totalVolume)
	}

	m.initialized = true

	return nil
}

// OriginalVolume implements VolumeReporter.
func (m *PBEVLManager) OriginalVolume() bundle.Volume {
	return m.totalVolume
}

func (m *PBEVLManager) plan(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}

	txStart := maxD(at, info.Start)
	if txStart >= info.End {
		return nil, ErrExpired
	}

	budgetCap := m.budget.capFor(b.Priority, m.totalVolume)
	already := m.used[b.Priority]
	if already+b.Size > budgetCap {
		return nil, ErrOverbooked
	}

	airtime := info.End - txStart
	timeCap := bundle.Volume(m.rate * float64(airtime))
	if b.Size > timeCap {
		return nil, ErrInsufficientCapacity
	}

	txEnd := txStart + bundle.Date(float64(b.Size)/m.rate)
	arrival := txEnd + m.delay
	if b.Expiration < arrival {
		return nil, ErrExpired
	}

	return &TxEndHopData{TxStart: txStart, TxEnd: txEnd, ArrivalAtRx: arrival, ResidualSnap: budgetCap - already - b.Size}, nil
}

// DryRun reports feasibility with no side effects.
func (m *PBEVLManager) DryRun(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	return m.plan(info, at, b)
}

// Schedule commits the reservation against b.Priority's budget.
func (m *PBEVLManager) Schedule(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	res, err := m.plan(info, at, b)
	if err != nil {
		return nil, err
	}

	m.used[b.Priority] += b.Size

	return res, nil
}

// PBQDManager is PBEVLManager's counterpart built on QDManager's
// booked-volume-based tx_start.
type PBQDManager struct {
	rate        float64
	delay       bundle.Duration
	budget      Budget
	totalVolume bundle.Volume
	booked      bundle.Volume
	used        map[bundle.Priority]bundle.Volume
	initialized bool
}

// NewPBQDManager constructs a PBQDManager with the given rate, delay, and
// per-priority budget shares.
func NewPBQDManager(rate float64, delay bundle.Duration, budget Budget) *PBQDManager {
	return &PBQDManager{rate: rate, delay: delay, budget: budget, used: make(map[bundle.Priority]bundle.Volume)}
}

// TryInit caches totalVolume = rate * span and validates the budget shares.
func (m *PBQDManager) TryInit(info *bundle.ContactInfo) error {
	if m.rate <= 0 {
		return fmt.Errorf("contactmgr: PBQDManager rate must be positive, got %v", m.rate)
	}
	if err := info.Validate(); err != nil {
		return err
	}

	m.totalVolume = bundle.Volume(m.rate * float64(info.Span()))

	var sum bundle.Volume
	for _, v := range m.budget {
		sum += v
	}
	if sum > m.totalVolume {
		return fmt.Errorf("contactmgr: PBQDManager budgets sum to %v, exceeding volume %v", sum, m.totalVolume)
	}

	m.initialized = true

	return nil
}

// OriginalVolume implements VolumeReporter.
func (m *PBQDManager) OriginalVolume() bundle.Volume {
	return m.totalVolume
}

func (m *PBQDManager) plan(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}

	txStart := maxD(at, info.Start+bundle.Date(float64(m.booked)/m.rate))
	if txStart >= info.End {
		return nil, ErrExpired
	}

	budgetCap := m.budget.capFor(b.Priority, m.totalVolume)
	already := m.used[b.Priority]
	if already+b.Size > budgetCap {
		return nil, ErrOverbooked
	}

	airtime := info.End - txStart
	timeCap := bundle.Volume(m.rate * float64(airtime))
	if b.Size > timeCap {
		return nil, ErrInsufficientCapacity
	}

	txEnd := txStart + bundle.Date(float64(b.Size)/m.rate)
	arrival := txEnd + m.delay
	if b.Expiration < arrival {
		return nil, ErrExpired
	}

	return &TxEndHopData{TxStart: txStart, TxEnd: txEnd, ArrivalAtRx: arrival, ResidualSnap: budgetCap - already - b.Size}, nil
}

// DryRun reports feasibility with no side effects.
func (m *PBQDManager) DryRun(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	return m.plan(info, at, b)
}

// Schedule commits the reservation, advancing booked volume and the
// priority's budget usage.
func (m *PBQDManager) Schedule(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	res, err := m.plan(info, at, b)
	if err != nil {
		return nil, err
	}

	m.booked += b.Size
	m.used[b.Priority] += b.Size

	return res, nil
}
