package domain

// Board dimensions and the run length that wins a game.
const (
	Size      = 12
	WinLength = 7
)

// Player identifies a side. None marks empty cells and undecided games.
type Player uint8

const (
	None Player = iota
	First
	Second
)

// Other returns the opposing side.
func (p Player) Other() Player {
	switch p {
	case First:
		return Second
	case Second:
		return First
	default:
		return None
	}
}

func (p Player) String() string {
	switch p {
	case First:
		return "first"
	case Second:
		return "second"
	default:
		return "none"
	}
}

// Coord is a board position; X is the column and Y the row.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add offsets c by d.
func (c Coord) Add(d Coord) Coord { return Coord{X: c.X + d.X, Y: c.Y + d.Y} }

// Cell is one board square. Facing is the cosmetic stone orientation in
// degrees and never affects the rules.
type Cell struct {
	Owner  Player
	Facing float64
}

// Empty reports whether no stone occupies the cell.
func (c Cell) Empty() bool { return c.Owner == None }

// Board is a fixed grid indexed [y][x]. It is a value type: assigning it
// copies every cell, so simulations never alias the authoritative board.
type Board [Size][Size]Cell

// InBounds reports whether c lies on the board.
func InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < Size && c.Y < Size
}

// At returns the cell at c. c must be in bounds.
func (b *Board) At(c Coord) Cell { return b[c.Y][c.X] }

// IsEmpty reports whether c is on the board and unoccupied.
func (b *Board) IsEmpty(c Coord) bool { return InBounds(c) && b[c.Y][c.X].Empty() }

// owner returns the owner at (x, y), or None when off the board.
func (b *Board) owner(x, y int) Player {
	if x < 0 || y < 0 || x >= Size || y >= Size {
		return None
	}
	return b[y][x].Owner
}

// CountEmpty returns the number of unoccupied cells.
func (b *Board) CountEmpty() int {
	n := 0
	for y := range Size {
		for x := range Size {
			if b[y][x].Empty() {
				n++
			}
		}
	}
	return n
}

// Full reports whether every cell is occupied.
func (b *Board) Full() bool { return b.CountEmpty() == 0 }

// CanPlace reports whether every cell of shape anchored at anchor is on the
// board and empty.
func CanPlace(b *Board, shape Shape, anchor Coord) bool {
	for _, off := range shape {
		if !b.IsEmpty(anchor.Add(off)) {
			return false
		}
	}
	return true
}

// Place returns a copy of b with the cells of shape at anchor owned by p.
// facings supplies per-cell orientation in shape order; missing entries are 0.
// Callers check CanPlace first.
func Place(b Board, shape Shape, anchor Coord, p Player, facings []float64) Board {
	for i, off := range shape {
		c := anchor.Add(off)
		var facing float64
		if i < len(facings) {
			facing = facings[i]
		}
		b[c.Y][c.X] = Cell{Owner: p, Facing: facing}
	}
	return b
}
