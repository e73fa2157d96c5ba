package routestore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/distance"
	"github.com/asabr-go/asabr/nodemgr"
	"github.com/asabr-go/asabr/pathfind"
	"github.com/asabr-go/asabr/routestore"
)

func mkNodes(n int) []cpgraph.Node[nodemgr.NoManagement] {
	nodes := make([]cpgraph.Node[nodemgr.NoManagement], n)
	for i := range nodes {
		nodes[i] = cpgraph.Node[nodemgr.NoManagement]{Info: bundle.NodeInfo{ID: bundle.NodeID(i)}}
	}

	return nodes
}

func mkContact(t *testing.T, id bundle.ContactID, tx, rx bundle.NodeID, start, end bundle.Date) cpgraph.Contact[*contactmgr.EVLManager] {
	t.Helper()

	info := bundle.ContactInfo{ID: id, Tx: tx, Rx: rx, Start: start, End: end}
	m := contactmgr.NewEVLManager(1e6, 0)
	require.NoError(t, m.TryInit(&info))

	return cpgraph.Contact[*contactmgr.EVLManager]{Info: info, Manager: m}
}

func mkGraph(t *testing.T) *cpgraph.Multigraph[*contactmgr.EVLManager, nodemgr.NoManagement] {
	t.Helper()

	nodes := mkNodes(3)
	contacts := []cpgraph.Contact[*contactmgr.EVLManager]{
		mkContact(t, 0, 0, 1, 10, 30),
		mkContact(t, 1, 1, 2, 15, 35),
	}

	g, err := cpgraph.NewMultigraph[*contactmgr.EVLManager, nodemgr.NoManagement](nodes, contacts)
	require.NoError(t, err)

	return g
}

func mkRoute(g *cpgraph.Multigraph[*contactmgr.EVLManager, nodemgr.NoManagement], b *bundle.Bundle, dest bundle.NodeID) *distance.RouteStage {
	var dist distance.SABRDistance

	tree, err := pathfind.ContactParenting[*contactmgr.EVLManager, nodemgr.NoManagement](g, b, 0, dist, pathfind.WithDestination(dest))
	if err != nil {
		return nil
	}

	return tree.Route(dest)
}

func TestRoutingTable_SelectReturnsLiveRoute(t *testing.T) {
	g := mkGraph(t)
	b := &bundle.Bundle{Source: 0, Destinations: []bundle.NodeID{2}, Size: 1, Expiration: 1000}

	route := mkRoute(g, b, 2)
	require.NotNil(t, route)

	rt := routestore.NewRoutingTable[*contactmgr.EVLManager, nodemgr.NoManagement](g)
	rt.Insert(2, route)

	selected := rt.Select(2, 0, b)
	require.NotNil(t, selected)
	require.Equal(t, route, selected)
}

func TestRoutingTable_SelectSkipsExpiredRoute(t *testing.T) {
	g := mkGraph(t)
	b := &bundle.Bundle{Source: 0, Destinations: []bundle.NodeID{2}, Size: 1, Expiration: 1000}

	route := mkRoute(g, b, 2)
	require.NotNil(t, route)

	rt := routestore.NewRoutingTable[*contactmgr.EVLManager, nodemgr.NoManagement](g)
	rt.Insert(2, route)

	// At now=40, both contacts (End 30, 35) have expired.
	selected := rt.Select(2, 40, b)
	require.Nil(t, selected)
}

func TestRoutingTable_Prune(t *testing.T) {
	g := mkGraph(t)
	b := &bundle.Bundle{Source: 0, Destinations: []bundle.NodeID{2}, Size: 1, Expiration: 1000}

	route := mkRoute(g, b, 2)
	require.NotNil(t, route)

	rt := routestore.NewRoutingTable[*contactmgr.EVLManager, nodemgr.NoManagement](g)
	rt.Insert(2, route)

	rt.Prune(5) // earliest-ending contact (0, End=30) has not expired yet
	require.NotNil(t, rt.Select(2, 5, b))

	rt.Prune(31) // contact 0 has now expired
	require.Nil(t, rt.Select(2, 31, b))
}

func TestTreeCache_ReuseRule(t *testing.T) {
	g := mkGraph(t)
	b := &bundle.Bundle{Source: 0, Destinations: []bundle.NodeID{2}, Size: 1, Expiration: 1000}

	var dist distance.SABRDistance
	tree, err := pathfind.HybridParenting[*contactmgr.EVLManager, nodemgr.NoManagement](g, b, 0, dist)
	require.NoError(t, err)

	tc := routestore.NewTreeCache(4)
	excluded := map[bundle.ContactID]bool{}

	tc.Store(excluded, 5, 100, tree)

	// A less-demanding bundle may reuse the cached tree.
	got, ok := tc.Lookup(excluded, 3, 50)
	require.True(t, ok)
	require.Equal(t, tree, got)

	// A higher-priority request cannot reuse it.
	_, ok = tc.Lookup(excluded, 6, 50)
	require.False(t, ok)

	// A larger request cannot reuse it.
	_, ok = tc.Lookup(excluded, 3, 200)
	require.False(t, ok)

	// An unrelated exclusion set misses entirely.
	_, ok = tc.Lookup(map[bundle.ContactID]bool{0: true}, 3, 50)
	require.False(t, ok)
}

func TestTreeCache_EvictsLeastRecentlyUsed(t *testing.T) {
	tc := routestore.NewTreeCache(2)

	keyA := map[bundle.ContactID]bool{0: true}
	keyB := map[bundle.ContactID]bool{1: true}
	keyC := map[bundle.ContactID]bool{2: true}

	tc.Store(keyA, 1, 1, pathfind.Tree{})
	tc.Store(keyB, 1, 1, pathfind.Tree{})

	// Touch A so B becomes least-recently-used.
	_, ok := tc.Lookup(keyA, 1, 1)
	require.True(t, ok)

	tc.Store(keyC, 1, 1, pathfind.Tree{})

	_, ok = tc.Lookup(keyB, 1, 1)
	require.False(t, ok, "B should have been evicted as least-recently-used")

	_, ok = tc.Lookup(keyA, 1, 1)
	require.True(t, ok)

	_, ok = tc.Lookup(keyC, 1, 1)
	require.True(t, ok)
}
