package geometry

import "math"

// Homography is a 3x3 projective transform in row-major order.
type Homography [9]float64

// IdentityHomography returns the identity transform.
func IdentityHomography() Homography {
	return Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// IsIdentity reports whether h is exactly the identity transform. The
// solver returns the identity as its degenerate fallback, so callers use
// this to detect that the transform is unusable.
func (h Homography) IsIdentity() bool {
	return h == IdentityHomography()
}

// Apply maps (x, y) through the transform, performing the projective
// divide. A zero denominator maps far outside any plausible image so that
// samplers treat it as out of bounds.
func (h Homography) Apply(x, y float64) (float64, float64) {
	denom := h[6]*x + h[7]*y + h[8]
	if denom == 0 {
		return -1e9, -1e9
	}
	return (h[0]*x + h[1]*y + h[2]) / denom, (h[3]*x + h[4]*y + h[5]) / denom
}

// Invert returns the inverse transform via the adjugate, or false when the
// matrix is singular.
func (h Homography) Invert() (Homography, bool) {
	det := h[0]*(h[4]*h[8]-h[5]*h[7]) -
		h[1]*(h[3]*h[8]-h[5]*h[6]) +
		h[2]*(h[3]*h[7]-h[4]*h[6])
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Homography{}, false
	}
	inv := Homography{
		h[4]*h[8] - h[5]*h[7], h[2]*h[7] - h[1]*h[8], h[1]*h[5] - h[2]*h[4],
		h[5]*h[6] - h[3]*h[8], h[0]*h[8] - h[2]*h[6], h[2]*h[3] - h[0]*h[5],
		h[3]*h[7] - h[4]*h[6], h[1]*h[6] - h[0]*h[7], h[0]*h[4] - h[1]*h[3],
	}
	for i := range inv {
		inv[i] /= det
	}
	return inv, true
}

// SolveProjective solves the transform mapping the corners of a dstW x dstH
// upright rectangle onto the 4 source quadrilateral corners (destination to
// source direction, the one a resampler walks). Corner correspondence is
// TL, TR, BR, BL. The identity is returned when the linear system is
// singular; callers detect that with IsIdentity and fall back.
func SolveProjective(srcQuad [4]Point, dstW, dstH float64) Homography {
	dst := [4]Point{
		{0, 0},
		{dstW - 1, 0},
		{dstW - 1, dstH - 1},
		{0, dstH - 1},
	}
	h, ok := solveCorrespondences(dst, srcQuad)
	if !ok {
		return IdentityHomography()
	}
	// Degenerate quads (collinear or repeated corners) can slip past the
	// pivot check on rounding noise; a solution that does not reproduce
	// the correspondences is no solution.
	for i := range 4 {
		x, y := h.Apply(dst[i].X, dst[i].Y)
		tol := 1e-4 * math.Max(1, math.Max(math.Abs(srcQuad[i].X), math.Abs(srcQuad[i].Y)))
		if math.Abs(x-srcQuad[i].X) > tol || math.Abs(y-srcQuad[i].Y) > tol {
			return IdentityHomography()
		}
	}
	return h
}

// solveCorrespondences builds the classical 8x8 linear system from 4 point
// correspondences p[i] -> q[i] (h22 fixed at 1) and solves it with Gaussian
// elimination.
func solveCorrespondences(p, q [4]Point) (Homography, bool) {
	var a [8][8]float64
	var b [8]float64
	for i := range 4 {
		x, y := p[i].X, p[i].Y
		u, v := q[i].X, q[i].Y
		r := 2 * i
		a[r] = [8]float64{x, y, 1, 0, 0, 0, -x * u, -y * u}
		b[r] = u
		a[r+1] = [8]float64{0, 0, 0, x, y, 1, -x * v, -y * v}
		b[r+1] = v
	}
	h, ok := solveLinear8(a, b)
	if !ok {
		return Homography{}, false
	}
	return Homography{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}, true
}

func solveLinear8(a [8][8]float64, b [8]float64) ([8]float64, bool) {
	for col := range 8 {
		pivot := col
		maxAbs := math.Abs(a[col][col])
		for r := col + 1; r < 8; r++ {
			if v := math.Abs(a[r][col]); v > maxAbs {
				maxAbs = v
				pivot = r
			}
		}
		if maxAbs == 0 {
			return [8]float64{}, false
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			b[col], b[pivot] = b[pivot], b[col]
		}
		div := a[col][col]
		for c := col; c < 8; c++ {
			a[col][c] /= div
		}
		b[col] /= div
		for r := range 8 {
			if r == col || a[r][col] == 0 {
				continue
			}
			factor := a[r][col]
			for c := col; c < 8; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}
	return b, true
}
