package pipeline

// Options are the per-call knobs of the OCR pipeline. The zero value is
// not useful; start from DefaultOptions.
type Options struct {
	// Padding is the white border, in pixels, added around the source
	// image before detection. Text touching the image edge detects poorly
	// without it.
	Padding int
	// MaxSideLength caps the longer edge of the detector input. 0 leaves
	// the image unscaled.
	MaxSideLength int
	// BoxThresh binarizes the probability map.
	BoxThresh float32
	// BoxScoreThresh drops candidate boxes whose mean probability is lower.
	BoxScoreThresh float64
	// UnclipRatio controls how far accepted boxes are expanded to recover
	// the full glyph extent.
	UnclipRatio float64
	// DoAngle enables per-crop orientation classification.
	DoAngle bool
	// MostAngle replaces per-crop orientation with the batch majority.
	MostAngle bool
	// Workers bounds per-box concurrency. 0 or 1 processes boxes
	// sequentially.
	Workers int
}

// DefaultOptions mirrors the model defaults the detection and
// classification models were tuned with.
func DefaultOptions() Options {
	return Options{
		Padding:        50,
		MaxSideLength:  1024,
		BoxThresh:      0.3,
		BoxScoreThresh: 0.5,
		UnclipRatio:    1.6,
		DoAngle:        true,
		MostAngle:      true,
		Workers:        0,
	}
}
