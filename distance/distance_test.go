package distance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/distance"
)

func TestSABRDistance_Ordering(t *testing.T) {
	var d distance.SABRDistance

	earlier := distance.Cost{Arrival: 10, Hops: 3, Residual: 0}
	later := distance.Cost{Arrival: 20, Hops: 1, Residual: 0}
	require.True(t, d.Less(earlier, later), "earlier arrival always wins regardless of hops")

	fewerHops := distance.Cost{Arrival: 10, Hops: 1, Residual: 0}
	moreHops := distance.Cost{Arrival: 10, Hops: 2, Residual: 0}
	require.True(t, d.Less(fewerHops, moreHops), "equal arrival breaks on fewer hops")

	moreResidual := distance.Cost{Arrival: 10, Hops: 1, Residual: 50}
	lessResidual := distance.Cost{Arrival: 10, Hops: 1, Residual: 10}
	require.True(t, d.Less(moreResidual, lessResidual), "equal arrival and hops breaks on more residual")
}

func TestHopDistance_Ordering(t *testing.T) {
	var d distance.HopDistance

	fewerHops := distance.Cost{Arrival: 100, Hops: 1}
	moreHops := distance.Cost{Arrival: 10, Hops: 2}
	require.True(t, d.Less(fewerHops, moreHops), "fewer hops wins even with a later arrival")

	earlier := distance.Cost{Arrival: 10, Hops: 1}
	later := distance.Cost{Arrival: 20, Hops: 1}
	require.True(t, d.Less(earlier, later), "equal hops breaks on earlier arrival")
}

func TestRouteStage_Path(t *testing.T) {
	origin := &distance.RouteStage{Cost: distance.Cost{Arrival: 0}}
	hop1 := &distance.RouteStage{Contact: 1, TxStart: 0, Arrival: 10, Hops: 1, Back: origin}
	hop2 := &distance.RouteStage{Contact: 2, TxStart: 10, Arrival: 20, Hops: 2, Back: hop1}

	path := hop2.Path()
	require.Len(t, path, 3)
	require.Equal(t, origin, path[0])
	require.Equal(t, hop1, path[1])
	require.Equal(t, hop2, path[2])
	require.Equal(t, bundle.ContactID(2), path[2].Contact)
}
