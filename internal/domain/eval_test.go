package domain

import "testing"

func TestEvaluateEmptyBoard(t *testing.T) {
	var b Board
	for _, d := range Difficulties {
		if got := Evaluate(&b, First, d); got != 0 {
			t.Fatalf("%v: expected 0 on empty board, got %f", d, got)
		}
	}
}

func TestEvaluateLiveSixBeatsDeadSix(t *testing.T) {
	var live Board
	line(&live, First, Coord{1, 0}, Coord{1, 0}, 6)

	// Edge on the left, opponent on the right: the line can hold at most six.
	var dead Board
	line(&dead, First, Coord{0, 0}, Coord{1, 0}, 6)
	dead[0][6] = Cell{Owner: Second}

	liveScore := Evaluate(&live, First, Hard)
	deadScore := Evaluate(&dead, First, Hard)
	if liveScore != 5_000_000 {
		t.Fatalf("expected open six to score 5,000,000, got %f", liveScore)
	}
	if deadScore != 0 {
		t.Fatalf("expected dead six to be pruned to 0, got %f", deadScore)
	}
	if liveScore <= deadScore {
		t.Fatalf("live six (%f) must beat dead six (%f)", liveScore, deadScore)
	}
}

func TestEvaluateScoreTable(t *testing.T) {
	cases := []struct {
		name  string
		start Coord
		n     int
		want  float64
	}{
		{"open two", Coord{3, 6}, 2, 50},
		{"edge two", Coord{0, 6}, 2, 0},
		{"open three", Coord{3, 6}, 3, 500},
		{"edge three", Coord{0, 6}, 3, 100},
		{"open four", Coord{3, 6}, 4, 5_000},
		{"edge four", Coord{0, 6}, 4, 1_000},
		{"open five", Coord{3, 6}, 5, 100_000},
		{"edge five", Coord{0, 6}, 5, 10_000},
		{"edge six", Coord{0, 6}, 6, 500_000},
		{"seven", Coord{0, 6}, 7, winScore},
	}
	for _, tc := range cases {
		var b Board
		line(&b, First, tc.start, Coord{1, 0}, tc.n)
		if got := Evaluate(&b, First, Hard); got != tc.want {
			t.Fatalf("%s: expected %f, got %f", tc.name, tc.want, got)
		}
	}
}

func TestEvaluateOpponentWeighting(t *testing.T) {
	var b Board
	line(&b, Second, Coord{3, 6}, Coord{1, 0}, 3)
	if got := Evaluate(&b, First, Easy); got != -100 {
		t.Fatalf("easy: expected -100, got %f", got)
	}
	if got := Evaluate(&b, First, Hard); got != -500 {
		t.Fatalf("hard: expected -500, got %f", got)
	}
	if got := Evaluate(&b, First, Hell); got != -1250 {
		t.Fatalf("hell: expected -1250, got %f", got)
	}
	if got := Evaluate(&b, Second, Hell); got != 500 {
		t.Fatalf("own runs are never multiplied, got %f", got)
	}
}

func TestEvaluateHellDoublesNearWins(t *testing.T) {
	var b Board
	line(&b, Second, Coord{3, 6}, Coord{1, 0}, 5)
	want := -100_000 * 2.5 * 2.0
	if got := Evaluate(&b, First, Hell); got != want {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestEvaluateBothEndsBlocked(t *testing.T) {
	var b Board
	line(&b, First, Coord{3, 6}, Coord{1, 0}, 4)
	b[6][2] = Cell{Owner: Second}
	b[6][7] = Cell{Owner: Second}
	// First's four is capped on both sides; Second's single stones score 0.
	if got := Evaluate(&b, First, Hard); got != 0 {
		t.Fatalf("expected 0 for a run blocked at both ends, got %f", got)
	}
}

func TestEvaluateShortDiagonalIsDead(t *testing.T) {
	var b Board
	// The anti-diagonal through (0,5)..(5,0) has only six cells.
	line(&b, First, Coord{0, 5}, Coord{1, -1}, 3)
	if got := Evaluate(&b, First, Hard); got != 0 {
		t.Fatalf("expected dead diagonal to score 0, got %f", got)
	}
}

func TestEvaluateIgnoresFacing(t *testing.T) {
	var a, b Board
	line(&a, First, Coord{3, 6}, Coord{1, 0}, 3)
	line(&b, First, Coord{3, 6}, Coord{1, 0}, 3)
	for x := 3; x < 6; x++ {
		b[6][x].Facing = float64(45 * x)
	}
	if Evaluate(&a, First, Hard) != Evaluate(&b, First, Hard) {
		t.Fatalf("facing must not change the score")
	}
}

// Each maximal run must be scored exactly once. Count runs found from start
// cells in the four forward directions and compare with a scan of all eight
// directions, halved.
func TestFourDirectionsCountEachRunOnce(t *testing.T) {
	r := NewLockedRand(7)
	for trial := 0; trial < 20; trial++ {
		var b Board
		for y := range Size {
			for x := range Size {
				switch r.IntN(3) {
				case 1:
					b[y][x] = Cell{Owner: First}
				case 2:
					b[y][x] = Cell{Owner: Second}
				}
			}
		}
		forward := 0
		for y := range Size {
			for x := range Size {
				o := b[y][x].Owner
				if o == None {
					continue
				}
				for _, d := range directions {
					if b.owner(x-d.X, y-d.Y) != o {
						forward++
					}
				}
			}
		}
		all := 0
		for y := range Size {
			for x := range Size {
				o := b[y][x].Owner
				if o == None {
					continue
				}
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if (dx != 0 || dy != 0) && b.owner(x-dx, y-dy) != o {
							all++
						}
					}
				}
			}
		}
		if all != 2*forward {
			t.Fatalf("trial %d: forward scan found %d runs, eight-way scan %d", trial, forward, all)
		}
	}
}
