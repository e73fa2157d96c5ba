package cpgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/nodemgr"
)

func mkGraph(t *testing.T) *cpgraph.Multigraph[*contactmgr.EVLManager, nodemgr.NoManagement] {
	t.Helper()

	nodes := []cpgraph.Node[nodemgr.NoManagement]{
		{Info: bundle.NodeInfo{ID: 0, Name: "a"}},
		{Info: bundle.NodeInfo{ID: 1, Name: "b"}},
	}

	mkContact := func(id bundle.ContactID, start, end bundle.Date) cpgraph.Contact[*contactmgr.EVLManager] {
		info := bundle.ContactInfo{ID: id, Tx: 0, Rx: 1, Start: start, End: end}
		m := contactmgr.NewEVLManager(10, 0)
		require.NoError(t, m.TryInit(&info))

		return cpgraph.Contact[*contactmgr.EVLManager]{Info: info, Manager: m}
	}

	contacts := []cpgraph.Contact[*contactmgr.EVLManager]{
		mkContact(2, 20, 30),
		mkContact(0, 0, 10),
		mkContact(1, 10, 20),
	}

	g, err := cpgraph.NewMultigraph[*contactmgr.EVLManager, nodemgr.NoManagement](nodes, contacts)
	require.NoError(t, err)

	return g
}

func TestMultigraph_ContactsFrom_StartOrder(t *testing.T) {
	g := mkGraph(t)

	var seen []bundle.ContactID
	g.ContactsFrom(0, 0, func(rx bundle.NodeID, c *cpgraph.Contact[*contactmgr.EVLManager]) bool {
		require.Equal(t, bundle.NodeID(1), rx)
		seen = append(seen, c.Info.ID)
		return true
	})

	require.Equal(t, []bundle.ContactID{0, 1, 2}, seen)
}

func TestMultigraph_ContactsFrom_SkipsExpired(t *testing.T) {
	g := mkGraph(t)

	var seen []bundle.ContactID
	g.ContactsFrom(0, 15, func(rx bundle.NodeID, c *cpgraph.Contact[*contactmgr.EVLManager]) bool {
		seen = append(seen, c.Info.ID)
		return true
	})

	// Contact 0 ([0,10)) expired as of t=15; contacts 1 ([10,20)) and
	// 2 ([20,30)) remain.
	require.Equal(t, []bundle.ContactID{1, 2}, seen)
}

func TestMultigraph_Prune_IdempotentAndMonotonic(t *testing.T) {
	g := mkGraph(t)

	g.Prune(15)
	var after []bundle.ContactID
	g.ContactsFrom(0, 0, func(rx bundle.NodeID, c *cpgraph.Contact[*contactmgr.EVLManager]) bool {
		after = append(after, c.Info.ID)
		return true
	})
	require.Equal(t, []bundle.ContactID{1, 2}, after, "pruning past t=15 must not resurrect contact 0")

	g.Prune(15) // idempotent: calling again changes nothing
	var again []bundle.ContactID
	g.ContactsFrom(0, 0, func(rx bundle.NodeID, c *cpgraph.Contact[*contactmgr.EVLManager]) bool {
		again = append(again, c.Info.ID)
		return true
	})
	require.Equal(t, after, again)
}

func TestMultigraph_ContactByID(t *testing.T) {
	g := mkGraph(t)

	c := g.ContactByID(2)
	require.NotNil(t, c)
	require.Equal(t, bundle.Date(20), c.Info.Start)

	require.Nil(t, g.ContactByID(99))
}
