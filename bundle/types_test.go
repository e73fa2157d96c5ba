package bundle_test

import (
	"errors"
	"testing"

	"github.com/asabr-go/asabr/bundle"
)

func TestBundle_ValidateNoDestinations(t *testing.T) {
	b := &bundle.Bundle{Size: 10, Expiration: 5}
	if err := b.Validate(0); !errors.Is(err, bundle.ErrNoDestinations) {
		t.Fatalf("expected ErrNoDestinations, got %v", err)
	}
}

func TestBundle_ValidateBadSize(t *testing.T) {
	b := &bundle.Bundle{Destinations: []bundle.NodeID{1}, Size: 0, Expiration: 5}
	if err := b.Validate(0); !errors.Is(err, bundle.ErrBadSize) {
		t.Fatalf("expected ErrBadSize, got %v", err)
	}
}

func TestBundle_ValidateBadExpiration(t *testing.T) {
	b := &bundle.Bundle{Destinations: []bundle.NodeID{1}, Size: 10, Expiration: 5}
	if err := b.Validate(5); !errors.Is(err, bundle.ErrBadExpiration) {
		t.Fatalf("expected ErrBadExpiration, got %v", err)
	}
	if err := b.Validate(6); !errors.Is(err, bundle.ErrBadExpiration) {
		t.Fatalf("expected ErrBadExpiration, got %v", err)
	}
}

func TestBundle_ValidateOK(t *testing.T) {
	b := &bundle.Bundle{Destinations: []bundle.NodeID{1, 2}, Size: 10, Expiration: 5}
	if err := b.Validate(0); err != nil {
		t.Fatalf("expected valid bundle, got %v", err)
	}
	if !b.IsMulticast() {
		t.Fatalf("expected multicast bundle")
	}
}

func TestContactInfo_ValidateStartNotBeforeEnd(t *testing.T) {
	c := &bundle.ContactInfo{Tx: 0, Rx: 1, Start: 10, End: 10}
	if err := c.Validate(); !errors.Is(err, bundle.ErrStartNotBeforeEnd) {
		t.Fatalf("expected ErrStartNotBeforeEnd, got %v", err)
	}
	c.End = 5
	if err := c.Validate(); !errors.Is(err, bundle.ErrStartNotBeforeEnd) {
		t.Fatalf("expected ErrStartNotBeforeEnd, got %v", err)
	}
}

func TestContactInfo_ValidateOK(t *testing.T) {
	c := &bundle.ContactInfo{Tx: 0, Rx: 1, Start: 5, End: 10}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected valid contact, got %v", err)
	}
	if c.Span() != 5 {
		t.Fatalf("expected span 5, got %v", c.Span())
	}
}

func TestBundle_CloneIsIndependent(t *testing.T) {
	b := &bundle.Bundle{Destinations: []bundle.NodeID{1, 2}, Size: 10, Expiration: 5}
	c := b.Clone()
	c.Destinations[0] = 99
	c.Size = 1

	if b.Destinations[0] == 99 {
		t.Fatalf("clone mutation leaked into original destinations")
	}
	if b.Size == 1 {
		t.Fatalf("clone mutation leaked into original size")
	}
}
