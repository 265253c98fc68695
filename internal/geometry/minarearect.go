package geometry

import "math"

// RotatedRect is an oriented rectangle described by its 4 corners and side
// lengths. Corners follow the hull edge orientation that produced the
// minimum area; no particular corner ordering is guaranteed beyond being a
// valid rectangle boundary.
type RotatedRect struct {
	Corners [4]Point
	Width   float64
	Height  float64
}

// MinSide returns the shorter rectangle side.
func (r RotatedRect) MinSide() float64 { return math.Min(r.Width, r.Height) }

// MaxSide returns the longer rectangle side.
func (r RotatedRect) MaxSide() float64 { return math.Max(r.Width, r.Height) }

// Points returns the corners as a slice.
func (r RotatedRect) Points() []Point {
	return []Point{r.Corners[0], r.Corners[1], r.Corners[2], r.Corners[3]}
}

// MinAreaRect computes the smallest-area enclosing rectangle of a point set
// using rotating calipers over the convex hull. Degenerate inputs (single
// points, collinear sets) fall back to thin unit rectangles so callers can
// still reason about side lengths.
func MinAreaRect(pts []Point) (RotatedRect, bool) {
	if len(pts) == 0 {
		return RotatedRect{}, false
	}
	hull := ConvexHull(pts)
	switch len(hull) {
	case 0:
		return RotatedRect{}, false
	case 1:
		p := hull[0]
		return RotatedRect{
			Corners: [4]Point{p, {p.X + 1, p.Y}, {p.X + 1, p.Y + 1}, {p.X, p.Y + 1}},
			Width:   1,
			Height:  1,
		}, true
	case 2:
		a, b := hull[0], hull[1]
		return RotatedRect{
			Corners: [4]Point{a, b, {b.X, b.Y + 1}, {a.X, a.Y + 1}},
			Width:   Distance(a, b),
			Height:  1,
		}, true
	}
	return calipersRect(hull), true
}

// calipersRect evaluates each hull edge as a candidate orientation and
// keeps the orientation with the smallest projected area.
func calipersRect(hull []Point) RotatedRect {
	bestArea := math.Inf(1)
	var best RotatedRect
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		ux, uy := dx/l, dy/l
		vx, vy := -uy, ux
		minS, maxS := math.Inf(1), math.Inf(-1)
		minT, maxT := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			s := p.X*ux + p.Y*uy
			t := p.X*vx + p.Y*vy
			minS = math.Min(minS, s)
			maxS = math.Max(maxS, s)
			minT = math.Min(minT, t)
			maxT = math.Max(maxT, t)
		}
		area := (maxS - minS) * (maxT - minT)
		if area < bestArea {
			bestArea = area
			best = RotatedRect{
				Corners: [4]Point{
					{ux*minS + vx*minT, uy*minS + vy*minT},
					{ux*maxS + vx*minT, uy*maxS + vy*minT},
					{ux*maxS + vx*maxT, uy*maxS + vy*maxT},
					{ux*minS + vx*maxT, uy*minS + vy*maxT},
				},
				Width:  maxS - minS,
				Height: maxT - minT,
			}
		}
	}
	return best
}
