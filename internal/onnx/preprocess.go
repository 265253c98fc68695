package onnx

import "image"

// NormalizeNCHW converts an image into a float32 NCHW buffer (C=3, RGB
// plane order), applying per-channel (value - mean) * scale normalization.
func NormalizeNCHW(img image.Image, mean, scale [3]float32) []float32 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]float32, 3*w*h)
	plane := w * h
	for y := range h {
		for x := range w {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := y*w + x
			out[i] = (float32(r>>8) - mean[0]) * scale[0]
			out[plane+i] = (float32(g>>8) - mean[1]) * scale[1]
			out[2*plane+i] = (float32(b>>8) - mean[2]) * scale[2]
		}
	}
	return out
}
