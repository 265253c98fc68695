// Package geometry provides the pure numeric primitives used by detection
// post-processing and rectification: convex hulls, minimum-area rectangles,
// polygon measures, outward offsetting and projective transforms.
package geometry

import "math"

// Point is a 2D coordinate in float space.
type Point struct {
	X float64
	Y float64
}

// Box is an axis-aligned bounding box in float coordinates.
type Box struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewBox constructs a Box from two corners, normalizing the ordering.
func NewBox(x1, y1, x2, y2 float64) Box {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Box{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}
}

// Width returns the box width.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the box height.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// BoundingBox returns the axis-aligned bounding box of a point set.
func BoundingBox(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// SignedArea computes the shoelace area of a closed polygon. The closing
// edge from the last point back to the first is implicit. The sign encodes
// winding; callers interested in magnitude take the absolute value.
func SignedArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Perimeter sums consecutive edge lengths of a closed polygon, including
// the closing edge.
func Perimeter(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	var sum float64
	for i, p := range pts {
		sum += Distance(p, pts[(i+1)%len(pts)])
	}
	return sum
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
