package cpgraph

import (
	"fmt"
	"sort"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/nodemgr"
)

// Multigraph holds a contact plan as a dense array of nodes and, for every
// (tx, rx) pair, a start-sorted slice of contacts with a lazily-advanced
// expiry cursor. It generalizes the teacher's three-level adjacency map
// (from -> to -> edge-id -> struct{}) by swapping set membership for an
// ordered, cursor-pruned slice, because a contact — unlike a plain edge —
// carries a validity window that must be consulted in schedule order.
type Multigraph[CM contactmgr.Manager, NM nodemgr.Manager] struct {
	nodes []Node[NM]

	// contactsByTxRx[tx][rx] is sorted ascending by Info.Start and never
	// reordered or shortened after construction; entries are only ever
	// skipped by advancing cursor[tx][rx] past them.
	contactsByTxRx [][][]Contact[CM]
	cursor         [][]int

	byID map[bundle.ContactID]*Contact[CM]
}

// NewMultigraph builds a Multigraph from a dense node set and an unordered
// contact list, grouping contacts by (tx, rx) and sorting each group by
// start time. Every contact must reference nodes present in nodes and carry
// a unique ContactID.
func NewMultigraph[CM contactmgr.Manager, NM nodemgr.Manager](nodes []Node[NM], contacts []Contact[CM]) (*Multigraph[CM, NM], error) {
	for i, n := range nodes {
		if n.Info.ID != bundle.NodeID(i) {
			return nil, fmt.Errorf("%w: index %d has ID %d", ErrSparseNodeIDs, i, n.Info.ID)
		}
	}

	n := len(nodes)
	byTxRx := make([][][]Contact[CM], n)
	for tx := range byTxRx {
		byTxRx[tx] = make([][]Contact[CM], n)
	}

	byID := make(map[bundle.ContactID]*Contact[CM], len(contacts))
	for _, c := range contacts {
		if err := c.Info.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadContactInfo, err)
		}
		if int(c.Info.Tx) >= n || int(c.Info.Rx) >= n {
			return nil, fmt.Errorf("%w: tx=%d rx=%d", ErrUnknownEndpoint, c.Info.Tx, c.Info.Rx)
		}
		if _, dup := byID[c.Info.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateContactID, c.Info.ID)
		}

		byTxRx[c.Info.Tx][c.Info.Rx] = append(byTxRx[c.Info.Tx][c.Info.Rx], c)
		byID[c.Info.ID] = nil // reserve the key; pointer filled in below after sort
	}

	cursor := make([][]int, n)
	for tx := range cursor {
		cursor[tx] = make([]int, n)
	}

	for tx := range byTxRx {
		for rx := range byTxRx[tx] {
			row := byTxRx[tx][rx]
			sort.Slice(row, func(i, j int) bool { return row[i].Info.Start < row[j].Info.Start })
			for i := range row {
				byID[row[i].Info.ID] = &row[i]
			}
		}
	}

	return &Multigraph[CM, NM]{
		nodes:          nodes,
		contactsByTxRx: byTxRx,
		cursor:         cursor,
		byID:           byID,
	}, nil
}

// Node returns the node with the given ID.
func (g *Multigraph[CM, NM]) Node(id bundle.NodeID) *Node[NM] {
	return &g.nodes[id]
}

// NodeCount returns the number of nodes in the graph.
func (g *Multigraph[CM, NM]) NodeCount() int {
	return len(g.nodes)
}

// ContactByID returns the contact with the given ID, or nil if none exists.
func (g *Multigraph[CM, NM]) ContactByID(id bundle.ContactID) *Contact[CM] {
	return g.byID[id]
}

// advance skips past any contact at the head of (tx,rx) that has already
// expired as of now (Info.End <= now), permanently moving the cursor past
// it. Never shortens or reorders the underlying slice.
func (g *Multigraph[CM, NM]) advance(tx, rx int, now bundle.Date) {
	row := g.contactsByTxRx[tx][rx]
	cur := &g.cursor[tx][rx]
	for *cur < len(row) && row[*cur].Info.End <= now {
		*cur++
	}
}

// Prune advances every (tx,rx) cursor past contacts that have expired as of
// now. Idempotent and safe to call at any time; contacts are never removed,
// only skipped, so RouteStage chains built before a Prune call remain valid.
func (g *Multigraph[CM, NM]) Prune(now bundle.Date) {
	for tx := range g.contactsByTxRx {
		for rx := range g.contactsByTxRx[tx] {
			g.advance(tx, rx, now)
		}
	}
}

// ContactsFrom yields, for a given tx node, every not-yet-expired contact
// to every rx node in start order beginning at each (tx,rx) cursor,
// advancing cursors past newly expired contacts first. visit is called once
// per candidate contact in increasing start order within each rx row; it is
// not called again for that row once it returns false. ContactsFrom never
// allocates: it is the inner loop a pathfinder calls once per node
// expansion.
func (g *Multigraph[CM, NM]) ContactsFrom(tx bundle.NodeID, afterTime bundle.Date, visit func(rx bundle.NodeID, c *Contact[CM]) bool) {
	txi := int(tx)
	for rxi := range g.contactsByTxRx[txi] {
		g.advance(txi, rxi, afterTime)

		row := g.contactsByTxRx[txi][rxi]
		for i := g.cursor[txi][rxi]; i < len(row); i++ {
			if !visit(bundle.NodeID(rxi), &row[i]) {
				break
			}
		}
	}
}
