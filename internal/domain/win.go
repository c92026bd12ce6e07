package domain

// directions are the forward steps of the four line families: east, south,
// south-east and north-east. Every straight line belongs to exactly one.
var directions = [4]Coord{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// HasConnectedRun reports whether p owns WinLength or more contiguous stones
// along any line.
func HasConnectedRun(b *Board, p Player) bool {
	return FindConnectedRun(b, p) != nil
}

// FindConnectedRun returns the winning run of p, or nil. Cells are scanned
// row-major and directions in order; the first cell and direction reaching
// WinLength wins, and the run is returned as far as it extends forward.
func FindConnectedRun(b *Board, p Player) []Coord {
	if p == None {
		return nil
	}
	for y := range Size {
		for x := range Size {
			if b[y][x].Owner != p {
				continue
			}
			for _, d := range directions {
				n := 1
				for b.owner(x+d.X*n, y+d.Y*n) == p {
					n++
				}
				if n < WinLength {
					continue
				}
				run := make([]Coord, n)
				for k := range n {
					run[k] = Coord{X: x + d.X*k, Y: y + d.Y*k}
				}
				return run
			}
		}
	}
	return nil
}
