package tvgutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/nodemgr"
)

// ErrSyntax indicates an edge line did not match the expected token shape.
var ErrSyntax = errors.New("tvgutil: syntax error")

// Parse reads TVG-Util edge-list directives from r:
//
//	edge <from> <to> <start> <end> <rate> <delay> [<rate> <delay> ...]
//
// Only the first (rate, delay) generation on each line is used. Node numbers
// are assigned dense NodeIDs in first-seen order.
func Parse(r io.Reader) (*cpgraph.Multigraph[*contactmgr.EVLManager, nodemgr.NoManagement], error) {
	nodeIndex := make(map[int]bundle.NodeID)
	var nodeOrder []int

	assignNode := func(n int) bundle.NodeID {
		if id, ok := nodeIndex[n]; ok {
			return id
		}
		id := bundle.NodeID(len(nodeOrder))
		nodeIndex[n] = id
		nodeOrder = append(nodeOrder, n)

		return id
	}

	var contacts []cpgraph.Contact[*contactmgr.EVLManager]
	var nextID bundle.ContactID

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] != "edge" {
			continue
		}
		if len(fields) < 7 {
			return nil, fmt.Errorf("%w: edge line needs at least 6 fields, got %d", ErrSyntax, len(fields)-1)
		}

		from, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: from %q", ErrSyntax, fields[1])
		}
		to, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: to %q", ErrSyntax, fields[2])
		}
		start, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: start %q", ErrSyntax, fields[3])
		}
		end, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: end %q", ErrSyntax, fields[4])
		}
		rate, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: rate %q", ErrSyntax, fields[5])
		}
		delay, err := strconv.ParseFloat(fields[6], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: delay %q", ErrSyntax, fields[6])
		}
		// Any further (rate, delay) generations in fields[7:] describe how
		// the link's characteristics evolve later in its window; only the
		// first generation is modeled.

		txID := assignNode(from)
		rxID := assignNode(to)

		info := bundle.ContactInfo{
			ID:    nextID,
			Tx:    txID,
			Rx:    rxID,
			Start: bundle.Date(start),
			End:   bundle.Date(end),
		}
		nextID++

		mgr := contactmgr.NewEVLManager(rate, bundle.Duration(delay))
		if err := mgr.TryInit(&info); err != nil {
			return nil, fmt.Errorf("tvgutil: edge %d->%d: %w", from, to, err)
		}

		contacts = append(contacts, cpgraph.Contact[*contactmgr.EVLManager]{Info: info, Manager: mgr})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tvgutil: reading input: %w", err)
	}

	nodes := make([]cpgraph.Node[nodemgr.NoManagement], len(nodeOrder))
	for i := range nodeOrder {
		nodes[i] = cpgraph.Node[nodemgr.NoManagement]{Info: bundle.NodeInfo{ID: bundle.NodeID(i)}}
	}

	return cpgraph.NewMultigraph[*contactmgr.EVLManager, nodemgr.NoManagement](nodes, contacts)
}
