// Package grid holds the coordinate model of an area: offset hex points
// where odd columns are shifted half a tile down.
package grid

import (
	"cmp"
	"fmt"
	"slices"
)

// Point is a tile coordinate in an area
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Invalid marks a creature that is not placed in any area
var Invalid = Point{X: -1, Y: -1}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Valid reports whether the point lies in the non-negative quadrant
func (p Point) Valid() bool {
	return p.X >= 0 && p.Y >= 0
}

// Add offsets the point by another one
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

type cube struct{ x, y, z int }

func toCube(p Point) cube {
	x := p.X
	z := p.Y - (p.X-(p.X&1))/2
	return cube{x: x, y: -x - z, z: z}
}

func fromCube(c cube) Point {
	return Point{X: c.x, Y: c.z + (c.x-(c.x&1))/2}
}

// Distance returns the number of hex steps between two points
func Distance(a, b Point) int {
	ca, cb := toCube(a), toCube(b)
	return max(abs(ca.x-cb.x), abs(ca.y-cb.y), abs(ca.z-cb.z))
}

// WithinRadius returns every point at distance <= radius from center,
// ordered by column then row. Points with negative coordinates are dropped.
func WithinRadius(center Point, radius int) []Point {
	if radius < 0 {
		return nil
	}

	c := toCube(center)
	var points []Point
	for dx := -radius; dx <= radius; dx++ {
		for dy := max(-radius, -dx-radius); dy <= min(radius, -dx+radius); dy++ {
			dz := -dx - dy
			p := fromCube(cube{x: c.x + dx, y: c.y + dy, z: c.z + dz})
			if p.Valid() {
				points = append(points, p)
			}
		}
	}

	slices.SortFunc(points, Compare)
	return points
}

// Compare orders points by column then row
func Compare(a, b Point) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
