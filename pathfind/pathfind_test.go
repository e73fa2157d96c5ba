package pathfind_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
	"github.com/asabr-go/asabr/pathfind"
)

func mkNodes(n int) []cpgraph.Node[nodemgr.NoManagement] {
	nodes := make([]cpgraph.Node[nodemgr.NoManagement], n)
	for i := range nodes {
		nodes[i] = cpgraph.Node[nodemgr.NoManagement]{Info: bundle.NodeInfo{ID: bundle.NodeID(i)}}
	}

	return nodes
}

// mkContact builds a contact with ample, effectively-instantaneous capacity
// (a very high rate keeps transmission duration negligible) so that each
// hop's arrival time is, to floating-point precision, just the later of the
// predecessor's arrival and the contact's own window start.
func mkContact(t *testing.T, id bundle.ContactID, tx, rx bundle.NodeID, start, end bundle.Date) cpgraph.Contact[*contactmgr.EVLManager] {
	t.Helper()

	info := bundle.ContactInfo{ID: id, Tx: tx, Rx: rx, Start: start, End: end}
	m := contactmgr.NewEVLManager(1e6, 0)
	require.NoError(t, m.TryInit(&info))

	return cpgraph.Contact[*contactmgr.EVLManager]{Info: info, Manager: m}
}

func mkBundle() *bundle.Bundle {
	return &bundle.Bundle{Source: 0, Destinations: []bundle.NodeID{3}, Size: 1, Expiration: 10000}
}

// TestPathfind_S1_DijkstraAccuracy implements scenario S1: nodes 0..3 with
// C0 (0->1, [10,30]), C1 (0->2, [10,30]), C2 (1->2, [15,35]), C3 (2->3,
// [30,50]). The best route is 0->2->3, arriving at node 3 at time 30.
// ContactParenting and HybridParenting must find it; NodeParenting, which
// keeps only one retained stage per node, must never do better.
func TestPathfind_S1_DijkstraAccuracy(t *testing.T) {
	nodes := mkNodes(4)
	contacts := []cpgraph.Contact[*contactmgr.EVLManager]{
		mkContact(t, 0, 0, 1, 10, 30),
		mkContact(t, 1, 0, 2, 10, 30),
		mkContact(t, 2, 1, 2, 15, 35),
		mkContact(t, 3, 2, 3, 30, 50),
	}

	g, err := cpgraph.NewMultigraph[*contactmgr.EVLManager, nodemgr.NoManagement](nodes, contacts)
	require.NoError(t, err)

	var dist distance.SABRDistance
	b := mkBundle()

	contactTree, err := pathfind.ContactParenting[*contactmgr.EVLManager, nodemgr.NoManagement](g, b, 0, dist)
	require.NoError(t, err)
	contactRoute := contactTree.Route(3)
	require.NotNil(t, contactRoute)
	require.InDelta(t, 30, float64(contactRoute.Cost.Arrival), 1e-3)
	require.Equal(t, 2, contactRoute.Hops)
	require.Equal(t, bundle.ContactID(3), contactRoute.Contact)
	require.Equal(t, bundle.ContactID(1), contactRoute.Back.Contact) // reached via the direct 0->2 contact

	hybridTree, err := pathfind.HybridParenting[*contactmgr.EVLManager, nodemgr.NoManagement](g, b, 0, dist)
	require.NoError(t, err)
	hybridRoute := hybridTree.Route(3)
	require.NotNil(t, hybridRoute)
	require.InDelta(t, 30, float64(hybridRoute.Cost.Arrival), 1e-3)
	require.Equal(t, 2, hybridRoute.Hops)

	nodeTree, err := pathfind.NodeParenting[*contactmgr.EVLManager, nodemgr.NoManagement](g, b, 0, dist)
	require.NoError(t, err)
	if nodeRoute := nodeTree.Route(3); nodeRoute != nil {
		// NodeParenting must never outperform the routes ContactParenting
		// and HybridParenting found; it may only match or lose to them.
		require.False(t, dist.Less(nodeRoute.Cost, contactRoute.Cost),
			"NodeParenting must not find a strictly better route than ContactParenting")
	}
}

func TestPathfind_SingleHop(t *testing.T) {
	nodes := mkNodes(2)
	contacts := []cpgraph.Contact[*contactmgr.EVLManager]{
		mkContact(t, 0, 0, 1, 0, 100),
	}
	g, err := cpgraph.NewMultigraph[*contactmgr.EVLManager, nodemgr.NoManagement](nodes, contacts)
	require.NoError(t, err)

	b := &bundle.Bundle{Source: 0, Destinations: []bundle.NodeID{1}, Size: 10, Expiration: 1000}
	tree, err := pathfind.NodeParenting[*contactmgr.EVLManager, nodemgr.NoManagement](g, b, 0, distance.SABRDistance{})
	require.NoError(t, err)

	route := tree.Route(1)
	require.NotNil(t, route)
	require.Equal(t, 1, route.Hops)
	require.Equal(t, bundle.ContactID(0), route.Contact)
}

func TestPathfind_Unreachable(t *testing.T) {
	nodes := mkNodes(2)
	g, err := cpgraph.NewMultigraph[*contactmgr.EVLManager, nodemgr.NoManagement](nodes, nil)
	require.NoError(t, err)

	b := &bundle.Bundle{Source: 0, Destinations: []bundle.NodeID{1}, Size: 10, Expiration: 1000}
	tree, err := pathfind.NodeParenting[*contactmgr.EVLManager, nodemgr.NoManagement](g, b, 0, distance.SABRDistance{})
	require.NoError(t, err)
	require.Nil(t, tree.Route(1))
}
