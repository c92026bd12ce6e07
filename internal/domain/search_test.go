package domain

import (
	"slices"
	"testing"
)

func TestFindBestMoveEmptyBoard(t *testing.T) {
	var b Board
	for _, d := range Difficulties {
		m, ok := FindBestMove(b, 3, First, d, NewLockedRand(1))
		if !ok {
			t.Fatalf("%v: expected a move on an empty board", d)
		}
		if len(m.Shape) != 3 || !CanPlace(&b, m.Shape, m.Anchor) {
			t.Fatalf("%v: move %+v does not fit", d, m)
		}
	}
}

func TestFindBestMoveEmptyBoardHell(t *testing.T) {
	var b Board
	m, ok := FindBestMove(b, 3, First, Hell, nil)
	if !ok {
		t.Fatalf("expected a move")
	}
	// The first open three in enumeration order: a horizontal line one cell
	// away from the left edge.
	if m.Anchor != (Coord{1, 0}) || !slices.Equal(m.Shape, Shape{{0, 0}, {1, 0}, {2, 0}}) {
		t.Fatalf("unexpected move %+v", m)
	}
}

func TestFindBestMoveTakesInstantWin(t *testing.T) {
	var b Board
	line(&b, First, Coord{1, 5}, Coord{1, 0}, 6)
	// Both (0,5) and (7,5) complete seven; enumeration reaches (0,5) first.
	m, ok := FindBestMove(b, 1, First, Easy, NewLockedRand(3))
	if !ok {
		t.Fatalf("expected a move")
	}
	if m.Anchor != (Coord{0, 5}) {
		t.Fatalf("expected the first winning anchor (0,5), got %+v", m)
	}
	after := Place(b, m.Shape, m.Anchor, First, nil)
	if !HasConnectedRun(&after, First) {
		t.Fatalf("move %+v does not win", m)
	}
}

func TestFindBestMoveWinsWithLongerShape(t *testing.T) {
	var b Board
	line(&b, Second, Coord{4, 2}, Coord{0, 1}, 5)
	m, ok := FindBestMove(b, 2, Second, Hard, NewLockedRand(5))
	if !ok {
		t.Fatalf("expected a move")
	}
	after := Place(b, m.Shape, m.Anchor, Second, nil)
	if !HasConnectedRun(&after, Second) {
		t.Fatalf("expected a winning pair, got %+v", m)
	}
}

func TestFindBestMoveBlocksLiveSix(t *testing.T) {
	var b Board
	line(&b, First, Coord{0, 0}, Coord{1, 0}, 6)
	for turnLength := 1; turnLength <= 3; turnLength++ {
		m, ok := FindBestMove(b, turnLength, Second, Hell, nil)
		if !ok {
			t.Fatalf("length %d: expected a move", turnLength)
		}
		if !slices.Contains(m.Cells(), Coord{6, 0}) {
			t.Fatalf("length %d: expected a block at (6,0), got %+v", turnLength, m)
		}
	}
}

func TestFindBestMoveHellIsDeterministic(t *testing.T) {
	var b Board
	line(&b, First, Coord{3, 3}, Coord{1, 1}, 3)
	line(&b, Second, Coord{8, 2}, Coord{0, 1}, 2)
	b[7][7] = Cell{Owner: First}
	first, ok := FindBestMove(b, 2, Second, Hell, NewLockedRand(1))
	if !ok {
		t.Fatalf("expected a move")
	}
	for seed := uint64(2); seed < 6; seed++ {
		again, _ := FindBestMove(b, 2, Second, Hell, NewLockedRand(seed))
		if again.Anchor != first.Anchor || !slices.Equal(again.Shape, first.Shape) {
			t.Fatalf("hell search changed between runs: %+v vs %+v", first, again)
		}
	}
}

func TestFindBestMoveLeavesBoardUntouched(t *testing.T) {
	var b Board
	line(&b, First, Coord{2, 2}, Coord{1, 0}, 4)
	before := b
	FindBestMove(b, 3, Second, Hard, NewLockedRand(9))
	if b != before {
		t.Fatalf("search mutated the board")
	}
}

func TestFindBestMoveNoRoom(t *testing.T) {
	var b Board
	for y := range Size {
		for x := range Size {
			// Alternate owners in 2x1 bricks so no 7-run exists; leave one hole.
			b[y][x] = Cell{Owner: Player(1 + (x/2+y)%2)}
		}
	}
	b[11][11] = Cell{}
	if _, ok := FindBestMove(b, 2, First, Hard, NewLockedRand(1)); ok {
		t.Fatalf("a single hole cannot hold two stones")
	}
	m, ok := FindBestMove(b, 1, First, Hard, NewLockedRand(1))
	if !ok || m.Anchor != (Coord{11, 11}) {
		t.Fatalf("expected the last hole, got %+v ok=%v", m, ok)
	}
}

func TestRandomTurnLengthRange(t *testing.T) {
	r := NewLockedRand(11)
	seen := map[int]bool{}
	for range 300 {
		n := RandomTurnLength(r)
		if n < 1 || n > 3 {
			t.Fatalf("turn length %d out of range", n)
		}
		seen[n] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected all lengths to appear, saw %v", seen)
	}
}
