package geometry

// ConvexHull computes the convex hull of a point set with the monotone
// chain algorithm. The hull is returned in CCW order without repeating the
// first point at the end.
func ConvexHull(pts []Point) []Point {
	n := len(pts)
	if n <= 1 {
		return append([]Point(nil), pts...)
	}
	p := make([]Point, n)
	copy(p, pts)
	sortPointsXY(p)
	p = dedupePoints(p)
	if len(p) <= 1 {
		return p
	}
	lower := halfHull(p, false)
	upper := halfHull(p, true)
	hull := make([]Point, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)
	return hull
}

func halfHull(p []Point, reversed bool) []Point {
	out := make([]Point, 0, len(p))
	for i := range p {
		pt := p[i]
		if reversed {
			pt = p[len(p)-1-i]
		}
		for len(out) >= 2 && cross(out[len(out)-2], out[len(out)-1], pt) <= 0 {
			out = out[:len(out)-1]
		}
		out = append(out, pt)
	}
	return out
}

// sortPointsXY sorts points by X, then Y. Insertion sort: the inputs here
// are small simplified contours.
func sortPointsXY(p []Point) {
	for i := 1; i < len(p); i++ {
		v := p[i]
		j := i - 1
		for j >= 0 && (p[j].X > v.X || (p[j].X == v.X && p[j].Y > v.Y)) {
			p[j+1] = p[j]
			j--
		}
		p[j+1] = v
	}
}

func dedupePoints(p []Point) []Point {
	out := p[:0]
	for i, pt := range p {
		if i == 0 || pt != p[i-1] {
			out = append(out, pt)
		}
	}
	return out
}
