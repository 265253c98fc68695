package geometry

import "math"

// Simplify reduces a polygon with the Douglas-Peucker algorithm at the
// given tolerance. Endpoints are always kept so the closed-polygon
// continuity survives simplification.
func Simplify(pts []Point, epsilon float64) []Point {
	if len(pts) <= 3 || epsilon <= 0 {
		return append([]Point(nil), pts...)
	}
	keep := make([]bool, len(pts))
	keep[0] = true
	keep[len(pts)-1] = true
	douglasPeucker(pts, 0, len(pts)-1, epsilon, keep)
	out := make([]Point, 0, len(pts))
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

func douglasPeucker(pts []Point, start, end int, eps float64, keep []bool) {
	if end <= start+1 {
		return
	}
	maxDist := -1.0
	index := -1
	for i := start + 1; i < end; i++ {
		if d := segmentDistance(pts[i], pts[start], pts[end]); d > maxDist {
			maxDist = d
			index = i
		}
	}
	if maxDist > eps {
		douglasPeucker(pts, start, index, eps, keep)
		keep[index] = true
		douglasPeucker(pts, index, end, eps, keep)
	}
}

// segmentDistance returns the perpendicular distance from p to segment ab.
func segmentDistance(p, a, b Point) float64 {
	vx, vy := b.X-a.X, b.Y-a.Y
	if vx == 0 && vy == 0 {
		return Distance(p, a)
	}
	num := math.Abs((p.X-a.X)*vy - (p.Y-a.Y)*vx)
	return num / math.Hypot(vx, vy)
}
