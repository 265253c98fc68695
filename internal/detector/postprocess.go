package detector

import (
	"image"
	"log/slog"
	"math"

	"github.com/ocrkit-go/ocrkit/internal/geometry"
)

const (
	// minBoxSide filters noise specks: fitted rectangles with a shorter
	// side below this never survive.
	minBoxSide = 3.0
	// contour simplification tolerance in map pixels.
	simplifyEpsilon = 1.0
)

// TextBox is one detected text region: an oriented quadrilateral in
// source-image coordinates and its mean text-probability score.
// Points are ordered top-left, top-right, bottom-right, bottom-left.
type TextBox struct {
	Score  float64
	Points [4]image.Point
}

// Params are the post-processing thresholds.
type Params struct {
	// BoxThresh is the binarization cutoff applied to the probability map.
	BoxThresh float32
	// BoxScoreThresh rejects boxes whose mean probability is below it.
	BoxScoreThresh float64
	// UnclipRatio controls how far boxes grow outward to compensate for
	// the detector under-sizing text regions.
	UnclipRatio float64
}

// RejectReason classifies why a contour produced no box.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectTooFewPoints
	RejectTooSmall
	RejectLowScore
	RejectUnclipFailed
	RejectUnclippedTooSmall
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "accepted"
	case RejectTooFewPoints:
		return "too_few_points"
	case RejectTooSmall:
		return "too_small"
	case RejectLowScore:
		return "low_score"
	case RejectUnclipFailed:
		return "unclip_failed"
	case RejectUnclippedTooSmall:
		return "unclipped_too_small"
	default:
		return "unknown"
	}
}

// contourOutcome is the per-contour result: an accepted box or a typed
// rejection. Aggregating outcomes instead of failing keeps one bad contour
// from aborting the whole image.
type contourOutcome struct {
	box    TextBox
	reason RejectReason
}

func accepted(b TextBox) contourOutcome    { return contourOutcome{box: b, reason: RejectNone} }
func rejected(r RejectReason) contourOutcome { return contourOutcome{reason: r} }

// PostProcess converts a probability map into scored text boxes in
// source-image coordinates. Boxes are emitted in contour-scan order
// (top-to-bottom, left-to-right); no additional sorting is applied.
func PostProcess(prob []float32, w, h int, sp ScaleParam, params Params) []TextBox {
	if len(prob) != w*h || w <= 0 || h <= 0 {
		return nil
	}
	mask := dilate(binarize(prob, w, h, params.BoxThresh), w, h)
	labels, comps := labelComponents(mask, w, h)

	boxes := make([]TextBox, 0, len(comps))
	rejects := make(map[RejectReason]int)
	for _, comp := range comps {
		contour := geometry.Simplify(traceOuterContour(labels, w, h, comp), simplifyEpsilon)
		outcome := processContour(contour, prob, w, h, sp, params)
		if outcome.reason == RejectNone {
			boxes = append(boxes, outcome.box)
		} else {
			rejects[outcome.reason]++
		}
	}
	if len(rejects) > 0 {
		for reason, n := range rejects {
			slog.Debug("contours rejected", "reason", reason.String(), "count", n)
		}
	}
	return boxes
}

// processContour runs the per-contour acceptance chain: fit, score, unclip,
// refit, map to source coordinates, order corners.
func processContour(contour []geometry.Point, prob []float32, w, h int,
	sp ScaleParam, params Params,
) contourOutcome {
	if len(contour) <= 2 {
		return rejected(RejectTooFewPoints)
	}

	rect, ok := geometry.MinAreaRect(contour)
	if !ok || rect.MinSide() < minBoxSide {
		return rejected(RejectTooSmall)
	}

	score := scorePolygon(prob, w, h, contour)
	if score < params.BoxScoreThresh {
		return rejected(RejectLowScore)
	}

	grown, ok := geometry.Unclip(rect, params.UnclipRatio)
	if !ok {
		return rejected(RejectUnclipFailed)
	}

	refit, ok := geometry.MinAreaRect(grown)
	if !ok || refit.MinSide() < minBoxSide+2 {
		return rejected(RejectUnclippedTooSmall)
	}

	var pts [4]image.Point
	for i, p := range refit.Corners {
		x := clampFloat(p.X/sp.ScaleWidth, 0, float64(sp.SrcWidth))
		y := clampFloat(p.Y/sp.ScaleHeight, 0, float64(sp.SrcHeight))
		pts[i] = image.Pt(int(math.Round(x)), int(math.Round(y)))
	}
	return accepted(TextBox{Score: score, Points: OrderQuadPoints(pts)})
}

// OrderQuadPoints orders quadrilateral corners as top-left, top-right,
// bottom-right, bottom-left. Of the two smallest-X points the one with the
// larger Y is bottom-left; of the two largest-X points the one with the
// larger Y is bottom-right. The ordering is idempotent.
func OrderQuadPoints(pts [4]image.Point) [4]image.Point {
	sorted := pts
	for i := 1; i < 4; i++ {
		v := sorted[i]
		j := i - 1
		for j >= 0 && sorted[j].X > v.X {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = v
	}

	topLeft, bottomLeft := sorted[0], sorted[1]
	if topLeft.Y > bottomLeft.Y {
		topLeft, bottomLeft = bottomLeft, topLeft
	}
	topRight, bottomRight := sorted[2], sorted[3]
	if topRight.Y > bottomRight.Y {
		topRight, bottomRight = bottomRight, topRight
	}
	return [4]image.Point{topLeft, topRight, bottomRight, bottomLeft}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
