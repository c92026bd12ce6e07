package domain

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Rand is the randomness the rules need: turn lengths and search noise.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand returns a seeded Rand that is safe for concurrent use.
func NewLockedRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// DefaultRand draws from the process-wide generator.
var DefaultRand Rand = globalRand{}

// RandomTurnLength returns 1, 2 or 3 with equal probability.
func RandomTurnLength(r Rand) int {
	return r.IntN(3) + 1
}

// Move is a shape placed at an anchor.
type Move struct {
	Anchor Coord `json:"anchor"`
	Shape  Shape `json:"shape"`
}

// Cells returns the absolute cells the move occupies.
func (m Move) Cells() []Coord { return m.Shape.Cells(m.Anchor) }

// FindBestMove searches every placement of every shape of turnLength cells
// for p and returns the best one. An immediately winning placement is
// returned as soon as it is found; otherwise each board is scored with
// Evaluate plus uniform noise sized by d, and ties keep the earliest
// candidate. ok is false when nothing fits.
func FindBestMove(b Board, turnLength int, p Player, d Difficulty, r Rand) (best Move, ok bool) {
	bestScore := math.Inf(-1)
	noise := d.noiseRange()
	for _, shape := range ShapesForSize(turnLength) {
		for y := range Size {
			for x := range Size {
				anchor := Coord{X: x, Y: y}
				if !CanPlace(&b, shape, anchor) {
					continue
				}
				sim := Place(b, shape, anchor, p, nil)
				if HasConnectedRun(&sim, p) {
					return Move{Anchor: anchor, Shape: shape}, true
				}
				score := Evaluate(&sim, p, d)
				if noise > 0 {
					score += r.Float64() * noise
				}
				if score > bestScore {
					bestScore = score
					best = Move{Anchor: anchor, Shape: shape}
					ok = true
				}
			}
		}
	}
	return best, ok
}
