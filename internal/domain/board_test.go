package domain

import "testing"

func TestCanPlaceBounds(t *testing.T) {
	var b Board
	line := Shape{{0, 0}, {1, 0}, {2, 0}}
	cases := []Coord{{-1, 0}, {0, -1}, {10, 0}, {11, 5}, {0, 12}, {12, 12}}
	for _, anchor := range cases {
		if CanPlace(&b, line, anchor) {
			t.Fatalf("expected placement at %v to be rejected", anchor)
		}
	}
	if !CanPlace(&b, line, Coord{X: 9, Y: 11}) {
		t.Fatalf("expected placement flush with the corner to be allowed")
	}
}

func TestCanPlaceOverlap(t *testing.T) {
	var b Board
	b[4][5] = Cell{Owner: Second}
	diag := Shape{{0, 0}, {1, 1}}
	if CanPlace(&b, diag, Coord{X: 4, Y: 3}) {
		t.Fatalf("expected overlap with (5,4) to be rejected")
	}
	if !CanPlace(&b, diag, Coord{X: 5, Y: 5}) {
		t.Fatalf("expected free cells to be placeable")
	}
}

func TestPlaceCopiesBoard(t *testing.T) {
	var b Board
	shape := Shape{{0, 0}, {0, 1}}
	next := Place(b, shape, Coord{X: 3, Y: 3}, First, []float64{90})
	if !b.At(Coord{X: 3, Y: 3}).Empty() {
		t.Fatalf("original board must stay untouched")
	}
	got := next.At(Coord{X: 3, Y: 3})
	if got.Owner != First || got.Facing != 90 {
		t.Fatalf("unexpected cell %+v", got)
	}
	if next.At(Coord{X: 3, Y: 4}).Owner != First || next.At(Coord{X: 3, Y: 4}).Facing != 0 {
		t.Fatalf("missing facing should default to 0, got %+v", next.At(Coord{X: 3, Y: 4}))
	}
	if next.CountEmpty() != Size*Size-2 {
		t.Fatalf("expected two occupied cells, have %d empty", next.CountEmpty())
	}
}

func TestPlayerOther(t *testing.T) {
	if First.Other() != Second || Second.Other() != First || None.Other() != None {
		t.Fatalf("unexpected Other mapping")
	}
}
