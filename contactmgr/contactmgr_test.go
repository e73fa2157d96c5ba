package contactmgr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
)

func mkBundle(size bundle.Volume, expiration bundle.Date) *bundle.Bundle {
	return &bundle.Bundle{Destinations: []bundle.NodeID{1}, Size: size, Expiration: expiration}
}

func TestEVLManager_BasicFit(t *testing.T) {
	info := &bundle.ContactInfo{Tx: 0, Rx: 1, Start: 10, End: 30}
	m := contactmgr.NewEVLManager(10, 0) // rate 10, no delay
	require.NoError(t, m.TryInit(info))

	res, err := m.Schedule(info, 10, mkBundle(100, 1000))
	require.NoError(t, err)
	require.Equal(t, bundle.Date(10), res.TxStart)
	require.Equal(t, bundle.Date(20), res.TxEnd)
	require.Equal(t, bundle.Date(20), res.ArrivalAtRx)

	// Residual now 100 (200 total - 100 used); a second 150-size bundle should
	// not fit.
	_, err = m.DryRun(info, 10, mkBundle(150, 1000))
	require.ErrorIs(t, err, contactmgr.ErrInsufficientCapacity)
}

// TestETOManager_QueueAccounting implements scenario S2 from the
// specification.
func TestETOManager_QueueAccounting(t *testing.T) {
	info := &bundle.ContactInfo{Tx: 0, Rx: 1, Start: 0, End: 1000}
	m := contactmgr.NewETOManager(10, 0, 0, 0)
	require.NoError(t, m.TryInit(info))

	b := mkBundle(20, 10000)

	res1, err := m.Schedule(info, 15, b)
	require.NoError(t, err)
	require.Equal(t, bundle.Date(15), res1.TxStart)

	res2, err := m.Schedule(info, 15, b)
	require.NoError(t, err)
	require.Equal(t, bundle.Date(17), res2.TxStart)

	res3, err := m.Schedule(info, 15, b)
	require.NoError(t, err)
	require.Equal(t, bundle.Date(19), res3.TxStart)

	// Dequeue b1's 20 units; the busy-until clock rewinds by its 2-unit
	// transmission time (21 -> 19), so a new bundle still queues behind
	// b2 and b3's combined 40 units.
	m.Dequeue(20)

	res3again, err := m.DryRun(info, 15, b)
	require.NoError(t, err)
	require.Equal(t, bundle.Date(19), res3again.TxStart)
}

// TestSegmentationManager_VsSplitEVL implements scenario S3.
func TestSegmentationManager_VsSplitEVL(t *testing.T) {
	info := &bundle.ContactInfo{Tx: 0, Rx: 1, Start: 0, End: 100}

	seg := contactmgr.NewSegmentationManager(
		[]contactmgr.RateSpec{{Start: 0, End: 50, Rate: 10}, {Start: 50, End: 100, Rate: 20}},
		[]contactmgr.DelaySpec{{Start: 0, End: 100, Delay: 0}},
	)
	require.NoError(t, seg.TryInit(info))
	require.Equal(t, bundle.Volume(1500), seg.OriginalVolume()) // 10*50 + 20*50

	// A 300-size bundle fits wholly within the first [0,50) segment.
	_, err := seg.DryRun(info, 0, mkBundle(300, 1000))
	require.NoError(t, err)

	// Replacing the contact with one EVL logical contact restricted to just
	// the first segment [0,50): a bundle that fits wholly within it (300)
	// still succeeds, but one that needs capacity only the second segment
	// could supply (600 > 500) is rejected, even though SegmentationManager
	// would happily walk forward into the second segment for the same size.
	firstHalf := &bundle.ContactInfo{Tx: 0, Rx: 1, Start: 0, End: 50}
	evlFirst := contactmgr.NewEVLManager(10, 0)
	require.NoError(t, evlFirst.TryInit(firstHalf))

	_, err = evlFirst.DryRun(firstHalf, 0, mkBundle(300, 1000))
	require.NoError(t, err) // size<=500 in [0,50) fits

	_, err = evlFirst.DryRun(firstHalf, 0, mkBundle(600, 1000))
	require.ErrorIs(t, err, contactmgr.ErrInsufficientCapacity) // size=600 rejects on the split contact

	_, err = seg.DryRun(info, 0, mkBundle(600, 1000))
	require.NoError(t, err) // segmentation accepts the same size by spanning both segments
}

// TestPBEVLManager_Budgets implements scenario S4.
func TestPBEVLManager_Budgets(t *testing.T) {
	info := &bundle.ContactInfo{Tx: 0, Rx: 1, Start: 0, End: 10}
	budget := contactmgr.Budget{0: 30, 1: 50, 2: 20} // low, mid, high
	m := contactmgr.NewPBEVLManager(10, 0, budget)    // totalVolume = 10*10=100
	require.NoError(t, m.TryInit(info))

	// (mid, size 40) -> accept
	_, err := m.Schedule(info, 0, &bundle.Bundle{Destinations: []bundle.NodeID{1}, Priority: 1, Size: 40, Expiration: 1000})
	require.NoError(t, err)

	// (mid, size 20) -> reject Overbooked (40+20=60 > 50)
	_, err = m.Schedule(info, 0, &bundle.Bundle{Destinations: []bundle.NodeID{1}, Priority: 1, Size: 20, Expiration: 1000})
	require.ErrorIs(t, err, contactmgr.ErrOverbooked)

	// (high, size 20) -> accept
	_, err = m.Schedule(info, 0, &bundle.Bundle{Destinations: []bundle.NodeID{1}, Priority: 2, Size: 20, Expiration: 1000})
	require.NoError(t, err)
}

func TestEVLManager_NotInitialized(t *testing.T) {
	m := contactmgr.NewEVLManager(10, 0)
	_, err := m.DryRun(&bundle.ContactInfo{Start: 0, End: 10}, 0, mkBundle(1, 100))
	if !errors.Is(err, contactmgr.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}
