package rectifier

import (
	"image"
	"image/color"
	"math"

	"github.com/ocrkit-go/ocrkit/internal/geometry"
)

// warpQuad resamples the source through the destination-to-source transform
// into a dstW x dstH image, one smooth (bicubic) sample per output pixel.
func warpQuad(src image.Image, dstToSrc geometry.Homography, dstW, dstH int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	sb := src.Bounds()
	for y := range dstH {
		for x := range dstW {
			sx, sy := dstToSrc.Apply(float64(x), float64(y))
			c := bicubicSample(src, sx+float64(sb.Min.X), sy+float64(sb.Min.Y))
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// bicubicSample evaluates a Catmull-Rom interpolated sample at (x, y).
// Samples outside the image resolve to black, matching the border handling
// of the detection-side resizing.
func bicubicSample(src image.Image, x, y float64) color.NRGBA {
	b := src.Bounds()
	if x < float64(b.Min.X) || y < float64(b.Min.Y) ||
		x > float64(b.Max.X-1) || y > float64(b.Max.Y-1) {
		return color.NRGBA{A: 255}
	}

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	var wx, wy [4]float64
	for i := range 4 {
		wx[i] = cubicWeight(float64(i-1) - fx)
		wy[i] = cubicWeight(float64(i-1) - fy)
	}

	var r, g, bl, a float64
	for j := range 4 {
		sy := clampInt(y0+j-1, b.Min.Y, b.Max.Y-1)
		for i := range 4 {
			sx := clampInt(x0+i-1, b.Min.X, b.Max.X-1)
			w := wx[i] * wy[j]
			if w == 0 {
				continue
			}
			cr, cg, cb, ca := src.At(sx, sy).RGBA()
			r += w * float64(cr>>8)
			g += w * float64(cg>>8)
			bl += w * float64(cb>>8)
			a += w * float64(ca>>8)
		}
	}
	return color.NRGBA{
		R: clampByte(r),
		G: clampByte(g),
		B: clampByte(bl),
		A: clampByte(a),
	}
}

// cubicWeight is the Catmull-Rom kernel (a = -0.5).
func cubicWeight(t float64) float64 {
	const a = -0.5
	t = math.Abs(t)
	switch {
	case t < 1:
		return (a+2)*t*t*t - (a+3)*t*t + 1
	case t < 2:
		return a*t*t*t - 5*a*t*t + 8*a*t - 4*a
	default:
		return 0
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
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
