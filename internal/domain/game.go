package domain

import (
	"errors"
	"math"
)

// Game holds the current state of a match.
type Game struct {
	Board       Board
	Turn        Player
	TurnLength  int
	Winner      Player
	Over        bool
	Moves       int
	History     [][]Coord
	WinningLine []Coord
}

// Errors returned by domain operations.
var (
	ErrOutOfBounds      = errors.New("out of bounds")
	ErrOccupied         = errors.New("cell occupied")
	ErrGameOver         = errors.New("game over")
	ErrWrongLength      = errors.New("wrong number of cells for this turn")
	ErrRepeatedCell     = errors.New("cell used twice")
	ErrNotConnected     = errors.New("cells are not connected")
	ErrIllegalPlacement = errors.New("shape does not fit")
)

// New returns a new game with First to move and a freshly rolled turn length.
func New(r Rand) Game {
	return Game{Turn: First, TurnLength: RandomTurnLength(r)}
}

// PlayPath places the current player's stones along a drawn path. The path
// must have exactly TurnLength distinct empty cells, each adjacent
// (including diagonally) to the one before it.
func (g *Game) PlayPath(path []Coord, r Rand) error {
	if g.Over {
		return ErrGameOver
	}
	if len(path) != g.TurnLength {
		return ErrWrongLength
	}
	for i, c := range path {
		if !InBounds(c) {
			return ErrOutOfBounds
		}
		if !g.Board.At(c).Empty() {
			return ErrOccupied
		}
		for _, prev := range path[:i] {
			if prev == c {
				return ErrRepeatedCell
			}
		}
		if i > 0 && !IsNeighbor(path[i-1], c) {
			return ErrNotConnected
		}
	}
	g.commit(path, r)
	return nil
}

// PlayShape places the current player's stones for a searched move.
func (g *Game) PlayShape(m Move, r Rand) error {
	if g.Over {
		return ErrGameOver
	}
	if len(m.Shape) != g.TurnLength {
		return ErrWrongLength
	}
	if !CanPlace(&g.Board, m.Shape, m.Anchor) {
		return ErrIllegalPlacement
	}
	g.commit(m.Cells(), r)
	return nil
}

// Pass hands the turn over without placing anything.
func (g *Game) Pass(r Rand) error {
	if g.Over {
		return ErrGameOver
	}
	g.Turn = g.Turn.Other()
	g.TurnLength = RandomTurnLength(r)
	return nil
}

func (g *Game) commit(cells []Coord, r Rand) {
	facings := Facings(cells)
	for i, c := range cells {
		g.Board[c.Y][c.X] = Cell{Owner: g.Turn, Facing: facings[i]}
	}
	g.Moves++
	g.History = append(g.History, append([]Coord(nil), cells...))

	if run := FindConnectedRun(&g.Board, g.Turn); run != nil {
		g.Winner = g.Turn
		g.WinningLine = run
		g.Over = true
		return
	}
	if g.Board.Full() {
		g.Winner = None
		g.Over = true
		return
	}
	g.Turn = g.Turn.Other()
	g.TurnLength = RandomTurnLength(r)
}

// Clone returns a copy that shares no slices with g.
func (g Game) Clone() Game {
	cp := g
	cp.History = make([][]Coord, len(g.History))
	for i, h := range g.History {
		cp.History[i] = append([]Coord(nil), h...)
	}
	cp.WinningLine = append([]Coord(nil), g.WinningLine...)
	return cp
}

// IsNeighbor reports whether a and b touch orthogonally or diagonally.
func IsNeighbor(a, b Coord) bool {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

// Facings orients each stone of a placement toward the next cell, or away
// from the previous one for the last cell. A single stone faces 0.
func Facings(cells []Coord) []float64 {
	out := make([]float64, len(cells))
	if len(cells) < 2 {
		return out
	}
	for i, c := range cells {
		var dx, dy int
		if i+1 < len(cells) {
			dx, dy = cells[i+1].X-c.X, cells[i+1].Y-c.Y
		} else {
			dx, dy = c.X-cells[i-1].X, c.Y-cells[i-1].Y
		}
		out[i] = math.Atan2(float64(dy), float64(dx))*180/math.Pi + 90
	}
	return out
}

// HasLegalPath reports whether some path of length empty, connected cells
// exists on b.
func HasLegalPath(b *Board, length int) bool {
	if length <= 0 {
		return true
	}
	var visited [Size][Size]bool
	var walk func(c Coord, left int) bool
	walk = func(c Coord, left int) bool {
		if left == 0 {
			return true
		}
		visited[c.Y][c.X] = true
		defer func() { visited[c.Y][c.X] = false }()
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := Coord{X: c.X + dx, Y: c.Y + dy}
				if n == c || !b.IsEmpty(n) || visited[n.Y][n.X] {
					continue
				}
				if walk(n, left-1) {
					return true
				}
			}
		}
		return false
	}
	for y := range Size {
		for x := range Size {
			c := Coord{X: x, Y: y}
			if b.IsEmpty(c) && walk(c, length-1) {
				return true
			}
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
