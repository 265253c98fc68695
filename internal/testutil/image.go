// Package testutil provides synthetic image generation shared by the
// package tests. Images are rendered with the fixed 7x13 bitmap font so
// text extents are deterministic.
package testutil

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// SolidImage returns a width x height image filled with the given color.
func SolidImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// TextImage renders black text centered on a white canvas.
func TextImage(text string, width, height int) *image.NRGBA {
	return TextImageAt(text, width, height, -1, -1)
}

// TextImageAt renders black text on a white canvas with the text baseline
// anchored so the string is centered on (cx, cy). Negative coordinates
// center on the canvas.
func TextImageAt(text string, width, height, cx, cy int) *image.NRGBA {
	img := SolidImage(width, height, color.White)
	if cx < 0 {
		cx = width / 2
	}
	if cy < 0 {
		cy = height / 2
	}

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(cx-textWidth/2, cy+(ascent-descent)/2),
	}
	drawer.DrawString(text)
	return img
}

// TextExtent returns the pixel bounds a string rendered with TextImageAt
// occupies, for asserting that detected boxes cover the text.
func TextExtent(text string, cx, cy int) image.Rectangle {
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	left := cx - textWidth/2
	baseline := cy + (ascent-descent)/2
	return image.Rect(left, baseline-ascent, left+textWidth, baseline+descent)
}

// Rotate180 returns the image turned upside down, for orientation tests.
func Rotate180(img image.Image) *image.NRGBA {
	return imaging.Rotate180(img)
}
