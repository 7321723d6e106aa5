package domain

import "fmt"

// Point is an integer screen coordinate of a pointer sample.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Delta returns the displacement from p to q with the vertical axis inverted,
// so that moving up the screen yields a positive dy.
func (p Point) Delta(q Point) (dx, dy int) {
	return q.X - p.X, p.Y - q.Y
}

// Beyond reports whether q lies outside the square of the given radius
// centered on p. Each axis is tested independently.
func (p Point) Beyond(q Point, radius int) bool {
	dx, dy := p.Delta(q)
	return abs(dx) > radius || abs(dy) > radius
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
