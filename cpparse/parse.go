package cpparse

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/asabr-go/asabr/bundle"
)

// lex strips "#" comments to end of line and splits the remainder on
// whitespace (including newlines) into a flat token stream.
func lex(r io.Reader) ([]string, error) {
	var toks []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		toks = append(toks, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cpparse: reading input: %w", err)
	}

	return toks, nil
}

// Parse reads a full contact plan from r, dispatching each statement's
// manager-specific tokens through reg.
func Parse(r io.Reader, reg Registry) (*Plan, error) {
	toks, err := lex(r)
	if err != nil {
		return nil, err
	}

	tk := &Tokenizer{toks: toks}
	plan := &Plan{}

	for {
		kw, ok := tk.Next()
		if !ok {
			break
		}

		switch kw {
		case "node":
			rec, err := parseNode(tk, reg)
			if err != nil {
				return nil, err
			}
			plan.Nodes = append(plan.Nodes, rec)
		case "contact":
			rec, err := parseContact(tk, reg)
			if err != nil {
				return nil, err
			}
			// ContactID is not part of the text format; it is assigned by
			// position, matching bundle.ContactID's role as a compact arena
			// index rather than a caller-chosen identifier.
			rec.Info.ID = bundle.ContactID(len(plan.Contacts))
			plan.Contacts = append(plan.Contacts, rec)
		default:
			return nil, fmt.Errorf("%w: unexpected statement %q", ErrSyntax, kw)
		}
	}

	return plan, nil
}

func parseNode(tk *Tokenizer, reg Registry) (NodeRecord, error) {
	id, err := tk.NextInt()
	if err != nil {
		return NodeRecord{}, fmt.Errorf("node id: %w", err)
	}

	name, ok := tk.Next()
	if !ok {
		return NodeRecord{}, fmt.Errorf("node %d: %w", id, ErrTruncated)
	}

	marker, ok := tk.Next()
	if !ok {
		return NodeRecord{}, fmt.Errorf("node %d: %w", id, ErrTruncated)
	}

	factory, ok := reg.Node[marker]
	if !ok {
		return NodeRecord{}, fmt.Errorf("node %d: %w: %q", id, ErrUnknownMarker, marker)
	}

	start := tk.pos
	mgr, err := factory(tk)
	if err != nil {
		return NodeRecord{}, fmt.Errorf("node %d (%s): %w", id, marker, err)
	}

	tokens := append([]string(nil), tk.toks[start:tk.pos]...)

	return NodeRecord{
		Info:    bundle.NodeInfo{ID: bundle.NodeID(id), Name: name},
		Manager: mgr,
		Marker:  marker,
		Tokens:  tokens,
	}, nil
}

func parseContact(tk *Tokenizer, reg Registry) (ContactRecord, error) {
	from, err := tk.NextInt()
	if err != nil {
		return ContactRecord{}, fmt.Errorf("contact from: %w", err)
	}
	to, err := tk.NextInt()
	if err != nil {
		return ContactRecord{}, fmt.Errorf("contact to: %w", err)
	}
	start, err := tk.NextFloat()
	if err != nil {
		return ContactRecord{}, fmt.Errorf("contact start: %w", err)
	}
	end, err := tk.NextFloat()
	if err != nil {
		return ContactRecord{}, fmt.Errorf("contact end: %w", err)
	}

	marker, ok := tk.Next()
	if !ok {
		return ContactRecord{}, fmt.Errorf("contact %d->%d: %w", from, to, ErrTruncated)
	}

	factory, ok := reg.Contact[marker]
	if !ok {
		return ContactRecord{}, fmt.Errorf("contact %d->%d: %w: %q", from, to, ErrUnknownMarker, marker)
	}

	pos := tk.pos
	mgr, err := factory(tk)
	if err != nil {
		return ContactRecord{}, fmt.Errorf("contact %d->%d (%s): %w", from, to, marker, err)
	}

	tokens := append([]string(nil), tk.toks[pos:tk.pos]...)

	return ContactRecord{
		Info: bundle.ContactInfo{
			Tx:    bundle.NodeID(from),
			Rx:    bundle.NodeID(to),
			Start: bundle.Date(start),
			End:   bundle.Date(end),
		},
		Manager: mgr,
		Marker:  marker,
		Tokens:  tokens,
	}, nil
}
