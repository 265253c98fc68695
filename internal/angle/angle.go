// Package angle decides whether rectified text-line crops need a 180
// degree rotation, per crop and optionally by batch-level majority vote.
package angle

import (
	"image"
	"log/slog"
	"time"
)

// Index values for an angle decision.
const (
	// IndexSkipped means angle classification did not run for the crop.
	IndexSkipped = -1
	// IndexUpright means the crop is already upright.
	IndexUpright = 0
	// IndexFlipped means the crop needs a 180 degree rotation.
	IndexFlipped = 1
)

// Angle is the orientation decision for one crop.
type Angle struct {
	Index   int
	Score   float64
	Elapsed time.Duration
}

// Classifier is the angle-classification inference boundary. Tests
// substitute fakes; the production implementation wraps an ONNX session.
type Classifier interface {
	Classify(img image.Image) (Angle, error)
	Close() error
}

// Options controls aggregation behavior.
type Options struct {
	// DoAngle enables per-crop classification; when false every crop is
	// marked skipped and left unrotated downstream.
	DoAngle bool
	// MostAngle replaces every per-crop decision with a single batch-level
	// majority vote. A scanned page is overwhelmingly one orientation, so
	// the vote is far more robust than per-line classification on short or
	// low-contrast lines.
	MostAngle bool
}

// Resolve produces one Angle per crop. Classification failures mark the
// crop skipped rather than failing the batch.
func Resolve(cls Classifier, crops []image.Image, opts Options) []Angle {
	angles := make([]Angle, len(crops))
	if !opts.DoAngle {
		for i := range angles {
			angles[i] = Angle{Index: IndexSkipped}
		}
		return angles
	}

	for i, crop := range crops {
		a, err := cls.Classify(crop)
		if err != nil {
			slog.Debug("angle classification failed, leaving crop unrotated",
				"crop", i, "error", err)
			angles[i] = Angle{Index: IndexSkipped}
			continue
		}
		angles[i] = a
	}

	if opts.MostAngle {
		ApplyMostAngle(angles)
	}
	return angles
}

// ApplyMostAngle overwrites every decision with the batch majority:
// sum(index) < n/2 forces all indexes to 0, otherwise to 1. The comparison
// deliberately biases exact ties toward 1, matching the reference
// behavior.
func ApplyMostAngle(angles []Angle) {
	if len(angles) == 0 {
		return
	}
	sum := 0
	for _, a := range angles {
		if a.Index > 0 {
			sum += a.Index
		}
	}
	most := IndexFlipped
	if float64(sum) < float64(len(angles))/2.0 {
		most = IndexUpright
	}
	for i := range angles {
		angles[i].Index = most
	}
}
