// Package detector turns a per-pixel text probability map into scored,
// oriented quadrilateral text boxes in source-image coordinates, and hosts
// the ONNX detection inference boundary that produces those maps.
package detector

import (
	"image"

	"github.com/disintegration/imaging"
)

// detector input dimensions must be multiples of this for the model's
// stride pyramid.
const sizeMultiple = 32

// ScaleParam records how a source image was resized for detection so box
// coordinates can be mapped back. ScaleWidth/ScaleHeight are the
// destination/source ratios; mapping back divides by them.
type ScaleParam struct {
	SrcWidth    int
	SrcHeight   int
	DstWidth    int
	DstHeight   int
	ScaleWidth  float64
	ScaleHeight float64
}

// NewScaleParam computes detector input dimensions for a source image,
// capping the long edge at maxSideLen and rounding both dimensions to
// multiples of 32.
func NewScaleParam(srcW, srcH, maxSideLen int) ScaleParam {
	ratio := 1.0
	if maxSideLen > 0 {
		longSide := max(srcW, srcH)
		if longSide > maxSideLen {
			ratio = float64(maxSideLen) / float64(longSide)
		}
	}
	dstW := roundToMultiple(float64(srcW)*ratio, sizeMultiple)
	dstH := roundToMultiple(float64(srcH)*ratio, sizeMultiple)
	return ScaleParam{
		SrcWidth:    srcW,
		SrcHeight:   srcH,
		DstWidth:    dstW,
		DstHeight:   dstH,
		ScaleWidth:  float64(dstW) / float64(srcW),
		ScaleHeight: float64(dstH) / float64(srcH),
	}
}

// ScaleParamFor builds the scale parameters for an image.
func ScaleParamFor(img image.Image, maxSideLen int) ScaleParam {
	b := img.Bounds()
	return NewScaleParam(b.Dx(), b.Dy(), maxSideLen)
}

// ResizeForDetection resizes an image to the detector input dimensions.
func ResizeForDetection(img image.Image, sp ScaleParam) image.Image {
	return imaging.Resize(img, sp.DstWidth, sp.DstHeight, imaging.Linear)
}

func roundToMultiple(v float64, m int) int {
	n := (int(v) / m) * m
	if n < m {
		n = m
	}
	return n
}
