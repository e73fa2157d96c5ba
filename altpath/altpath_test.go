package altpath_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asabr-go/asabr/altpath"
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

func mkContact(t *testing.T, id bundle.ContactID, tx, rx bundle.NodeID, rate float64) cpgraph.Contact[*contactmgr.EVLManager] {
	t.Helper()

	info := bundle.ContactInfo{ID: id, Tx: tx, Rx: rx, Start: 0, End: 100}
	m := contactmgr.NewEVLManager(rate, 0)
	require.NoError(t, m.TryInit(&info))

	return cpgraph.Contact[*contactmgr.EVLManager]{Info: info, Manager: m}
}

// TestFirstDepleted_ExcludesFromTheFoundRoute implements scenario S6: two
// disjoint paths from 0 to 3, one with ample volume per contact (10000) and
// one scarce (1000). The scarce path is also slower, so the ample path P1
// (0->1->3) is found first. FirstDepleted must pick its exclusion from
// P1's own contacts (both originally 10000, the smallest among them, not the
// unrelated P2 contact whose 1000 happens to be globally smaller) so that
// the next iteration is forced off of P1 rather than trivially reproducing
// it by excluding a contact the route never used.
func TestFirstDepleted_ExcludesFromTheFoundRoute(t *testing.T) {
	nodes := mkNodes(4)
	contacts := []cpgraph.Contact[*contactmgr.EVLManager]{
		mkContact(t, 0, 0, 1, 100), // P1 hop 1: volume 100*100=10000... see rate below
		mkContact(t, 1, 1, 3, 100), // P1 hop 2
		mkContact(t, 2, 0, 2, 10),  // P2 hop 1: scarce, volume 10*100=1000
		mkContact(t, 3, 2, 3, 10),  // P2 hop 2
	}

	g, err := cpgraph.NewMultigraph[*contactmgr.EVLManager, nodemgr.NoManagement](nodes, contacts)
	require.NoError(t, err)

	b := &bundle.Bundle{Source: 0, Destinations: []bundle.NodeID{3}, Size: 1, Expiration: 1000}
	var dist distance.SABRDistance

	backend := pathfind.ContactParenting[*contactmgr.EVLManager, nodemgr.NoManagement]

	routes, err := altpath.FirstDepleted[*contactmgr.EVLManager, nodemgr.NoManagement](backend, g, b, 0, dist, 3)
	require.NoError(t, err)
	require.NotEmpty(t, routes)

	first := routes[0]
	require.InDelta(t, 0, float64(first.Back.TxStart), 0.5) // P1 is the faster path, found first
	require.Equal(t, bundle.ContactID(1), first.Contact)     // 1->3
	require.Equal(t, bundle.ContactID(0), first.Back.Contact) // 0->1

	if len(routes) > 1 {
		second := routes[1]
		// The second route must not reuse contact 0 or 1 (P1): FirstDepleted
		// must have excluded one of them, not the unrelated scarce contact.
		hops := map[bundle.ContactID]bool{second.Contact: true}
		if second.Back != nil && second.Back.Back != nil {
			hops[second.Back.Contact] = true
		}
		require.False(t, hops[0] && hops[1], "second route must not be P1 again")
	}
}
