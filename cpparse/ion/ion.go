package ion

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

// ErrSyntax indicates a directive did not match the expected token shape.
var ErrSyntax = errors.New("ion: syntax error")

type contactKey struct {
	from, to     int
	start, stop  float64
}

// Parse reads ION "a contact"/"a range" directives from r:
//
//	a contact <start> <stop> <from> <to> <rate>
//	a range <start> <stop> <from> <to> <owlt>
//
// Every node number encountered is assigned a dense NodeID in first-seen
// order. A "range" line sets the one-way light time (delay) for the
// contact sharing its (from, to, start, stop) key; a contact with no
// matching range gets zero delay.
func Parse(r io.Reader) (*cpgraph.Multigraph[*contactmgr.EVLManager, nodemgr.NoManagement], error) {
	type contactSpec struct {
		key        contactKey
		rate       float64
		delay      bundle.Duration
		hasContact bool
	}

	specs := make(map[contactKey]*contactSpec)
	order := make([]contactKey, 0)
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

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) < 7 || fields[0] != "a" {
			continue
		}

		kind := fields[1]
		start, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: start %q", ErrSyntax, fields[2])
		}
		stop, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: stop %q", ErrSyntax, fields[3])
		}
		from, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("%w: from %q", ErrSyntax, fields[4])
		}
		to, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("%w: to %q", ErrSyntax, fields[5])
		}
		last, err := strconv.ParseFloat(fields[6], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %q", ErrSyntax, fields[6])
		}

		key := contactKey{from: from, to: to, start: start, stop: stop}
		spec, ok := specs[key]
		if !ok {
			spec = &contactSpec{key: key}
			specs[key] = spec
			order = append(order, key)
		}

		switch kind {
		case "contact":
			spec.rate = last
			spec.hasContact = true
		case "range":
			spec.delay = bundle.Duration(last)
		default:
			continue
		}

		assignNode(from)
		assignNode(to)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ion: reading input: %w", err)
	}

	nodes := make([]cpgraph.Node[nodemgr.NoManagement], len(nodeOrder))
	for i := range nodeOrder {
		nodes[i] = cpgraph.Node[nodemgr.NoManagement]{Info: bundle.NodeInfo{ID: bundle.NodeID(i)}}
	}

	var contacts []cpgraph.Contact[*contactmgr.EVLManager]
	var nextID bundle.ContactID
	for _, key := range order {
		spec := specs[key]
		if !spec.hasContact {
			continue // a lone "a range" with no matching "a contact" names no capacity
		}

		info := bundle.ContactInfo{
			ID:    nextID,
			Tx:    nodeIndex[key.from],
			Rx:    nodeIndex[key.to],
			Start: bundle.Date(key.start),
			End:   bundle.Date(key.stop),
		}
		nextID++

		mgr := contactmgr.NewEVLManager(spec.rate, spec.delay)
		if err := mgr.TryInit(&info); err != nil {
			return nil, fmt.Errorf("ion: contact %d->%d: %w", key.from, key.to, err)
		}

		contacts = append(contacts, cpgraph.Contact[*contactmgr.EVLManager]{Info: info, Manager: mgr})
	}

	return cpgraph.NewMultigraph[*contactmgr.EVLManager, nodemgr.NoManagement](nodes, contacts)
}
