package domain

import (
	"slices"
)

// Shape is a set of offsets normalized so the minimum x and y are both 0.
type Shape []Coord

// Cells returns the absolute coordinates of s anchored at anchor.
func (s Shape) Cells(anchor Coord) []Coord {
	out := make([]Coord, len(s))
	for i, off := range s {
		out[i] = anchor.Add(off)
	}
	return out
}

// Normalize shifts s so its bounding box starts at the origin.
func Normalize(s Shape) Shape {
	if len(s) == 0 {
		return s
	}
	minX, minY := s[0].X, s[0].Y
	for _, c := range s[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
	}
	out := make(Shape, len(s))
	for i, c := range s {
		out[i] = Coord{X: c.X - minX, Y: c.Y - minY}
	}
	return out
}

// Rotate turns s by 90 degrees, (x,y) -> (-y,x), and renormalizes.
func Rotate(s Shape) Shape {
	out := make(Shape, len(s))
	for i, c := range s {
		out[i] = Coord{X: -c.Y, Y: c.X}
	}
	return Normalize(out)
}

// Canonical returns the normalized offsets sorted row-major.
func Canonical(s Shape) Shape {
	out := Normalize(s)
	slices.SortFunc(out, func(a, b Coord) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

var baseShapes = map[int][]Shape{
	1: {
		{{0, 0}},
	},
	2: {
		{{0, 0}, {0, 1}}, // orthogonal
		{{0, 0}, {1, 1}}, // diagonal
	},
	3: {
		{{0, 0}, {0, 1}, {0, 2}}, // line
		{{0, 0}, {0, 1}, {1, 1}}, // L
		{{0, 0}, {1, 1}, {2, 2}}, // diagonal line
	},
}

var catalog = buildCatalog()

func buildCatalog() map[int][]Shape {
	out := make(map[int][]Shape, len(baseShapes))
	for size, bases := range baseShapes {
		var shapes []Shape
		for _, base := range bases {
			cur := base
			for range 4 {
				cur = Rotate(cur)
				canon := Canonical(cur)
				if !slices.ContainsFunc(shapes, func(s Shape) bool { return slices.Equal(s, canon) }) {
					shapes = append(shapes, canon)
				}
			}
		}
		out[size] = shapes
	}
	return out
}

// ShapesForSize returns every rotationally distinct shape of n cells in
// discovery order. Only sizes 1 to 3 are defined; other sizes yield nil.
func ShapesForSize(n int) []Shape {
	shapes, ok := catalog[n]
	if !ok {
		return nil
	}
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = slices.Clone(s)
	}
	return out
}
