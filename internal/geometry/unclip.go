package geometry

import (
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// minUnclipSide is the side length below which a fitted rectangle is
// considered degenerate and not worth offsetting.
const minUnclipSide = 1.001

// UnclipDistance computes the outward offset distance used to compensate
// for the detector shrinking text boundaries: |area| * ratio / perimeter.
// The perimeter is used raw; the formula is only meaningful for convex,
// simply-connected polygons, which is all the post-processor feeds it.
func UnclipDistance(pts []Point, ratio float64) float64 {
	per := Perimeter(pts)
	if per == 0 {
		return 0
	}
	return math.Abs(SignedArea(pts)) * ratio / per
}

// Unclip grows the rectangle outward by the ratio-derived distance using
// round-join closed-polygon offsetting. It returns false when the input is
// degenerate (both sides below ~1px) or the offset result is empty.
func Unclip(rect RotatedRect, ratio float64) ([]Point, bool) {
	if rect.Width < minUnclipSide && rect.Height < minUnclipSide {
		return nil, false
	}
	dist := UnclipDistance(rect.Points(), ratio)

	off := clipper.NewClipperOffset()
	path := make(clipper.Path, 0, 4)
	for _, p := range rect.Corners {
		path = append(path, &clipper.IntPoint{X: clipper.CInt(math.Round(p.X)), Y: clipper.CInt(math.Round(p.Y))})
	}
	off.AddPath(path, clipper.JtRound, clipper.EtClosedPolygon)
	solution := off.Execute(dist)

	var out []Point
	for _, sp := range solution {
		for _, ip := range sp {
			out = append(out, Point{X: float64(ip.X), Y: float64(ip.Y)})
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
