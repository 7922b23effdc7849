package module

import "testing"

type fakePorts interface{ Kind() string }

type likesPorts struct{}

func (likesPorts) Kind() string { return "likes" }

func TestRegistry_RoundTrip(t *testing.T) {
	Reset()
	Register("likes", likesPorts{})

	got, ok := PortsAs[fakePorts]("likes")
	if !ok {
		t.Fatal("expected ports for likes")
	}
	if got.Kind() != "likes" {
		t.Fatalf("got %q", got.Kind())
	}

	if _, ok := PortsAs[fakePorts]("missing"); ok {
		t.Fatal("expected miss for unknown module")
	}

	Reset()
	if _, ok := PortsAs[fakePorts]("likes"); ok {
		t.Fatal("expected registry to be cleared")
	}
}
