package detector

import (
	"math"

	"github.com/ocrkit-go/ocrkit/internal/geometry"
)

// scorePolygon averages the raw probability-map values inside the closed
// contour polygon, restricted to the polygon's bounding box. The polygon is
// rasterized with an even-odd scanline fill, mirroring a fillPoly-based
// mask-and-mean.
func scorePolygon(prob []float32, w, h int, poly []geometry.Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	box := geometry.BoundingBox(poly)
	minX := clampInt(int(math.Floor(box.MinX)), 0, w-1)
	maxX := clampInt(int(math.Ceil(box.MaxX)), 0, w-1)
	minY := clampInt(int(math.Floor(box.MinY)), 0, h-1)
	maxY := clampInt(int(math.Ceil(box.MaxY)), 0, h-1)
	if maxX < minX || maxY < minY {
		return 0
	}

	var sum float64
	var count int
	for y := minY; y <= maxY; y++ {
		xs := scanlineCrossings(poly, float64(y))
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := clampInt(int(math.Ceil(xs[i])), minX, maxX)
			x1 := clampInt(int(math.Floor(xs[i+1])), minX, maxX)
			for x := x0; x <= x1; x++ {
				sum += float64(prob[y*w+x])
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// scanlineCrossings returns the sorted x-coordinates where the horizontal
// line at y crosses the polygon's edges.
func scanlineCrossings(poly []geometry.Point, y float64) []float64 {
	var xs []float64
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
			t := (y - a.Y) / (b.Y - a.Y)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
	}
	// Insertion sort: crossings per row are few.
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
	return xs
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
