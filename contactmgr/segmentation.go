package contactmgr

import (
	"errors"
	"fmt"
	"sort"

	"github.com/asabr-go/asabr/bundle"
)

// ErrGapInSpec indicates the supplied rate/delay intervals do not cover the
// contact's full [Start, End) span.
var ErrGapInSpec = errors.New("contactmgr: rate/delay intervals leave a gap")

// RateSpec describes a constant-rate sub-interval of a contact.
type RateSpec struct {
	Start, End bundle.Date
	Rate       float64
}

// DelaySpec describes a constant-delay sub-interval of a contact. Delay
// breakpoints may fall at different times than rate breakpoints.
type DelaySpec struct {
	Start, End bundle.Date
	Delay      bundle.Duration
}

// segment is one merged breakpoint of the timeline: constant rate and delay
// throughout [start, end).
type segment struct {
	start, end bundle.Date
	rate       float64
	delay      bundle.Duration
	residual   bundle.Volume // rate*(end-start), decremented as booked
}

// SegmentationManager walks a contact's timeline as a sequence of
// (rate, delay) intervals, consuming capacity from the earliest usable
// interval forward until the bundle's size is fully accounted for. A
// bundle that straddles a rate or delay boundary is pro-rated across the
// intervals it touches.
type SegmentationManager struct {
	rates         []RateSpec
	delays        []DelaySpec
	segments      []segment
	totalVolume   bundle.Volume // live residual, decremented by Schedule
	originalTotal bundle.Volume // fixed nominal capacity, set once at TryInit
	initialized   bool
}

// NewSegmentationManager constructs a SegmentationManager from the given
// rate and delay interval lists, which together must cover the contact's
// span (verified at TryInit, once the contact's [Start,End) is known).
func NewSegmentationManager(rates []RateSpec, delays []DelaySpec) *SegmentationManager {
	return &SegmentationManager{rates: rates, delays: delays}
}

func findCovering[T interface{ span() (bundle.Date, bundle.Date) }](items []T, at bundle.Date) (T, bool) {
	var zero T
	for _, it := range items {
		s, e := it.span()
		if at >= s && at < e {
			return it, true
		}
	}

	return zero, false
}

func (r RateSpec) span() (bundle.Date, bundle.Date)  { return r.Start, r.End }
func (d DelaySpec) span() (bundle.Date, bundle.Date) { return d.Start, d.End }

// TryInit merges the rate and delay interval lists into a single ordered
// list of segments, each with a constant rate and delay, and verifies that
// they jointly cover [info.Start, info.End) with no gaps.
func (m *SegmentationManager) TryInit(info *bundle.ContactInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if len(m.rates) == 0 || len(m.delays) == 0 {
		return fmt.Errorf("%w: no rate or delay intervals supplied", ErrGapInSpec)
	}

	breakpoints := map[bundle.Date]struct{}{info.Start: {}, info.End: {}}
	for _, r := range m.rates {
		breakpoints[r.Start] = struct{}{}
		breakpoints[r.End] = struct{}{}
	}
	for _, d := range m.delays {
		breakpoints[d.Start] = struct{}{}
		breakpoints[d.End] = struct{}{}
	}

	ordered := make([]bundle.Date, 0, len(breakpoints))
	for bp := range breakpoints {
		if bp >= info.Start && bp <= info.End {
			ordered = append(ordered, bp)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	segments := make([]segment, 0, len(ordered))
	for i := 0; i+1 < len(ordered); i++ {
		start, end := ordered[i], ordered[i+1]
		mid := start + (end-start)/2

		rs, ok := findCovering(m.rates, mid)
		if !ok {
			return fmt.Errorf("%w: [%v,%v) has no rate", ErrGapInSpec, start, end)
		}
		ds, ok := findCovering(m.delays, mid)
		if !ok {
			return fmt.Errorf("%w: [%v,%v) has no delay", ErrGapInSpec, start, end)
		}

		segments = append(segments, segment{
			start:    start,
			end:      end,
			rate:     rs.Rate,
			delay:    ds.Delay,
			residual: bundle.Volume(rs.Rate * float64(end-start)),
		})
	}

	var total bundle.Volume
	for _, s := range segments {
		total += s.residual
	}

	m.segments = segments
	m.totalVolume = total
	m.originalTotal = total
	m.initialized = true

	return nil
}

// OriginalVolume implements VolumeReporter: the sum of every segment's
// capacity at TryInit, fixed regardless of subsequent scheduling.
func (m *SegmentationManager) OriginalVolume() bundle.Volume {
	return m.originalTotal
}

// plannedUse describes how much of one segment a plan touches, so Schedule
// can apply exactly what DryRun computed.
type plannedUse struct {
	idx    int
	amount bundle.Volume
}

func (m *SegmentationManager) planWalk(at bundle.Date, size bundle.Volume) (txStart, txEnd, arrival bundle.Date, uses []plannedUse, err error) {
	remaining := size
	started := false

	for i := range m.segments {
		seg := &m.segments[i]
		if seg.end <= at {
			continue
		}
		segStart := maxD(at, seg.start)
		if seg.residual <= 0 {
			continue
		}

		if !started {
			txStart = segStart
			started = true
		}

		take := seg.residual
		if timeCap := bundle.Volume(seg.rate * float64(seg.end-segStart)); take > timeCap {
			take = timeCap
		}
		if take > remaining {
			take = remaining
		}
		if take <= 0 {
			continue
		}

		used := bundle.Date(float64(take) / seg.rate)
		segTxEnd := segStart + used
		arrival = segTxEnd + seg.delay
		txEnd = segTxEnd

		uses = append(uses, plannedUse{idx: i, amount: take})
		remaining -= take
		if remaining <= 0 {
			return txStart, txEnd, arrival, uses, nil
		}
	}

	if !started {
		return 0, 0, 0, nil, ErrExpired
	}

	return 0, 0, 0, nil, ErrInsufficientCapacity
}

// DryRun reports feasibility with no side effects.
func (m *SegmentationManager) DryRun(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}
	if at >= info.End {
		return nil, ErrExpired
	}

	txStart, txEnd, arrival, _, err := m.planWalk(at, b.Size)
	if err != nil {
		return nil, err
	}
	if b.Expiration < arrival {
		return nil, ErrExpired
	}

	return &TxEndHopData{TxStart: txStart, TxEnd: txEnd, ArrivalAtRx: arrival, ResidualSnap: m.totalVolume - b.Size}, nil
}

// Schedule commits the reservation, deducting the walked amount from each
// touched segment's residual.
func (m *SegmentationManager) Schedule(info *bundle.ContactInfo, at bundle.Date, b *bundle.Bundle) (*TxEndHopData, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}
	if at >= info.End {
		return nil, ErrExpired
	}

	txStart, txEnd, arrival, uses, err := m.planWalk(at, b.Size)
	if err != nil {
		return nil, err
	}
	if b.Expiration < arrival {
		return nil, ErrExpired
	}

	for _, u := range uses {
		m.segments[u.idx].residual -= u.amount
	}
	m.totalVolume -= b.Size

	return &TxEndHopData{TxStart: txStart, TxEnd: txEnd, ArrivalAtRx: arrival, ResidualSnap: m.totalVolume}, nil
}
