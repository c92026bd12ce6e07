package domain

// Score for a run reaching WinLength.
const winScore = 100_000_000.0

// runScores[consecutive][blockedEnds] for runs shorter than WinLength.
// Runs with both ends blocked are worth nothing.
var runScores = [WinLength][2]float64{
	2: {50, 0},
	3: {500, 100},
	4: {5_000, 1_000},
	5: {100_000, 10_000},
	6: {5_000_000, 500_000},
}

// Evaluate scores b from perspective's point of view; higher is better.
// Each maximal run is counted once from its start cell in each of the four
// directions. Runs on lines that can never reach WinLength score zero.
func Evaluate(b *Board, perspective Player, d Difficulty) float64 {
	score := 0.0
	for y := range Size {
		for x := range Size {
			owner := b[y][x].Owner
			if owner == None {
				continue
			}
			for _, dir := range directions {
				if b.owner(x-dir.X, y-dir.Y) == owner {
					continue
				}
				lineScore, consecutive := scoreRun(b, x, y, dir, owner)
				if lineScore == 0 {
					continue
				}
				if owner == perspective {
					score += lineScore
					continue
				}
				lineScore *= d.defenseMultiplier()
				if d == Hell && consecutive >= 5 {
					lineScore *= 2.0
				}
				score -= lineScore
			}
		}
	}
	return score
}

// runLength counts owner's stones from (x, y) along dir, capped at WinLength.
func runLength(b *Board, x, y int, dir Coord, owner Player) int {
	n := 1
	for n < WinLength && b.owner(x+dir.X*n, y+dir.Y*n) == owner {
		n++
	}
	return n
}

// space counts cells past (x, y) along dir that are empty or owner's,
// stopping at the edge or an opposing stone.
func space(b *Board, x, y int, dir Coord, owner Player) int {
	n := 0
	for k := 1; ; k++ {
		cx, cy := x+dir.X*k, y+dir.Y*k
		if cx < 0 || cy < 0 || cx >= Size || cy >= Size {
			return n
		}
		if o := b[cy][cx].Owner; o != None && o != owner {
			return n
		}
		n++
	}
}

// blocked reports whether (x, y) ends a run of owner: off the board or held
// by the other side.
func blocked(b *Board, x, y int, owner Player) bool {
	if x < 0 || y < 0 || x >= Size || y >= Size {
		return true
	}
	o := b[y][x].Owner
	return o != None && o != owner
}

// scoreRun looks up the run of owner starting at (x, y) along dir and
// returns its score with its length.
func scoreRun(b *Board, x, y int, dir Coord, owner Player) (float64, int) {
	consecutive := runLength(b, x, y, dir, owner)
	if space(b, x, y, dir.neg(), owner)+space(b, x, y, dir, owner)+1 < WinLength {
		return 0, consecutive
	}
	if consecutive >= WinLength {
		return winScore, consecutive
	}
	ends := 0
	if blocked(b, x+dir.X*consecutive, y+dir.Y*consecutive, owner) {
		ends++
	}
	if blocked(b, x-dir.X, y-dir.Y, owner) {
		ends++
	}
	if ends == 2 {
		return 0, consecutive
	}
	return runScores[consecutive][ends], consecutive
}

func (c Coord) neg() Coord { return Coord{X: -c.X, Y: -c.Y} }
