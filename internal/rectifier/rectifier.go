// Package rectifier turns one oriented text box into an upright line image:
// axis-aligned crop, perspective unwarp and a 90 degree rotation for tall
// crops.
package rectifier

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/ocrkit-go/ocrkit/internal/detector"
	"github.com/ocrkit-go/ocrkit/internal/geometry"
)

// tallAspect is the height/width ratio beyond which a crop is assumed to be
// a rotated text line and turned 90 degrees clockwise.
const tallAspect = 1.5

// ErrEmptyCrop reports a box whose bounding rectangle has no area inside
// the source image. The orchestrator drops such boxes.
var ErrEmptyCrop = errors.New("rectifier: empty crop")

// Rectify extracts the box region from the source image and returns an
// upright rectangular line image ready for angle classification and
// recognition.
func Rectify(src image.Image, box detector.TextBox) (image.Image, error) {
	if box.Points == ([4]image.Point{}) {
		return nil, ErrEmptyCrop
	}

	bounds := boundingRect(box.Points).Intersect(src.Bounds())
	if bounds.Empty() {
		return nil, ErrEmptyCrop
	}
	crop := imaging.Crop(src, bounds)

	// Re-express the quadrilateral relative to the crop origin.
	var quad [4]geometry.Point
	for i, p := range box.Points {
		quad[i] = geometry.Point{
			X: float64(p.X - bounds.Min.X),
			Y: float64(p.Y - bounds.Min.Y),
		}
	}

	dstW := int(math.Round(geometry.Distance(quad[0], quad[1])))
	dstH := int(math.Round(geometry.Distance(quad[0], quad[3])))
	if dstW < 1 || dstH < 1 {
		return uprightOrRotated(crop), nil
	}

	m := geometry.SolveProjective(quad, float64(dstW), float64(dstH))
	if m.IsIdentity() {
		// Degenerate quadrilateral: fall back to the axis-aligned crop.
		return uprightOrRotated(crop), nil
	}
	if _, ok := m.Invert(); !ok {
		return uprightOrRotated(crop), nil
	}

	warped := warpQuad(crop, m, dstW, dstH)
	return uprightOrRotated(warped), nil
}

// uprightOrRotated rotates tall line images 90 degrees clockwise so that
// downstream stages always see a horizontal line.
func uprightOrRotated(img image.Image) image.Image {
	b := img.Bounds()
	if float64(b.Dy()) >= float64(b.Dx())*tallAspect {
		return imaging.Rotate270(img)
	}
	return img
}

func boundingRect(pts [4]image.Point) image.Rectangle {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return image.Rect(minX, minY, maxX, maxY)
}
