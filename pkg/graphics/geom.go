// Package graphics turns content-stream operators into fillable and
// strokable path event sequences for a downstream tessellator.
//
// Coordinates inside this package use the builder's internal space: origin
// at the top centre of the page, y growing downward. PDF page coordinates
// (origin bottom left, y up) are converted on the way in.
package graphics

import "math"

// Point is a position in the builder's internal space.
type Point struct {
	X, Y float32
}

// Pt builds a point.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Add returns p shifted by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Hypotenuse returns the distance between two points.
func Hypotenuse(p1, p2 Point) float32 {
	a := float64(p1.Y - p2.Y)
	b := float64(p1.X - p2.X)
	return float32(math.Sqrt(a*a + b*b))
}

// fillWidth is the thickness given to a bare line when it has to survive
// a fill.
const fillWidth = 1.0

// AsRect converts the line from..to into the four corners of a one-unit
// wide rectangle whose long axis lies on the line. The corners come from
// an axis-aligned base rectangle centred at the origin, rotated by the
// segment's angle minus 90 degrees, then translated to the midpoint.
func AsRect(from, to Point) [4]Point {
	h := Hypotenuse(from, to)
	corners := [4]Point{
		{X: -fillWidth / 2, Y: h / 2},
		{X: fillWidth / 2, Y: h / 2},
		{X: fillWidth / 2, Y: -h / 2},
		{X: -fillWidth / 2, Y: -h / 2},
	}

	radians := math.Atan2(float64(to.Y-from.Y), float64(to.X-from.X)) - math.Pi/2
	sin, cos := math.Sincos(radians)
	midX := (from.X + to.X) / 2
	midY := (from.Y + to.Y) / 2

	for i, c := range corners {
		x := float64(c.X)*cos - float64(c.Y)*sin
		y := float64(c.X)*sin + float64(c.Y)*cos
		corners[i] = Point{X: float32(x) + midX, Y: float32(y) + midY}
	}
	return corners
}
