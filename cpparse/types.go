package cpparse

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/cpgraph"
	"github.com/asabr-go/asabr/nodemgr"
)

// Sentinel errors describing malformed plan text.
var (
	// ErrSyntax indicates a token did not match the grammar at its position.
	ErrSyntax = errors.New("cpparse: syntax error")

	// ErrUnknownMarker indicates a marker token has no registered factory.
	ErrUnknownMarker = errors.New("cpparse: unknown manager marker")

	// ErrTruncated indicates the token stream ended mid-statement.
	ErrTruncated = errors.New("cpparse: unexpected end of input")
)

// ContactFactory consumes exactly the tokens one contact manager's
// configuration needs from tok and returns the constructed, uninitialized
// manager (TryInit is called once the contact's window is known, by
// Plan.Build).
type ContactFactory func(tok *Tokenizer) (contactmgr.Manager, error)

// NodeFactory consumes exactly the tokens one node manager's configuration
// needs from tok and returns the constructed manager.
type NodeFactory func(tok *Tokenizer) (nodemgr.Manager, error)

// Registry maps marker tokens to manager factories. DefaultRegistry covers
// every concrete manager this module ships; callers extending the format
// with a new manager type supply their own marker in a copy of it.
type Registry struct {
	Contact map[string]ContactFactory
	Node    map[string]NodeFactory
}

// Tokenizer is a forward-only cursor over a pre-lexed token stream.
// Factories call it to consume exactly the tokens they need; Parse records
// the span each factory consumes so Serialize can echo it back verbatim.
type Tokenizer struct {
	toks []string
	pos  int
}

// Next returns the next token, or ok=false at end of input.
func (t *Tokenizer) Next() (string, bool) {
	if t.pos >= len(t.toks) {
		return "", false
	}

	tok := t.toks[t.pos]
	t.pos++

	return tok, true
}

// NextFloat consumes and parses the next token as a float64.
func (t *Tokenizer) NextFloat() (float64, error) {
	tok, ok := t.Next()
	if !ok {
		return 0, ErrTruncated
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrSyntax, tok)
	}

	return v, nil
}

// NextInt consumes and parses the next token as an int.
func (t *Tokenizer) NextInt() (int, error) {
	tok, ok := t.Next()
	if !ok {
		return 0, ErrTruncated
	}

	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrSyntax, tok)
	}

	return v, nil
}

// NodeRecord is one parsed "node" statement, retaining its marker and raw
// manager tokens so Serialize can reproduce the line exactly.
type NodeRecord struct {
	Info    bundle.NodeInfo
	Manager nodemgr.Manager
	Marker  string
	Tokens  []string
}

// ContactRecord is one parsed "contact" statement.
type ContactRecord struct {
	Info    bundle.ContactInfo
	Manager contactmgr.Manager
	Marker  string
	Tokens  []string
}

// Plan is a parsed contact plan: a dense node list and an unordered
// contact list, each carrying dynamically-dispatched manager instances.
type Plan struct {
	Nodes    []NodeRecord
	Contacts []ContactRecord
}

// Build constructs a Multigraph from the plan, initializing every manager
// against its contact's window. CM and NM are instantiated with the
// interface types themselves (contactmgr.Manager, nodemgr.Manager) so a
// single graph may hold contacts and nodes of differing concrete manager
// types, which a statically-typed Multigraph[CM,NM] instantiation cannot.
func (p *Plan) Build() (*cpgraph.Multigraph[contactmgr.Manager, nodemgr.Manager], error) {
	nodes := make([]cpgraph.Node[nodemgr.Manager], len(p.Nodes))
	for i, rec := range p.Nodes {
		nodes[i] = cpgraph.Node[nodemgr.Manager]{Info: rec.Info, Manager: rec.Manager}
	}

	contacts := make([]cpgraph.Contact[contactmgr.Manager], len(p.Contacts))
	for i, rec := range p.Contacts {
		info := rec.Info
		if err := rec.Manager.TryInit(&info); err != nil {
			return nil, fmt.Errorf("cpparse: contact %d: %w", info.ID, err)
		}

		contacts[i] = cpgraph.Contact[contactmgr.Manager]{Info: info, Manager: rec.Manager}
	}

	return cpgraph.NewMultigraph[contactmgr.Manager, nodemgr.Manager](nodes, contacts)
}
