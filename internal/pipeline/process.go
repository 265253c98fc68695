package pipeline

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/ocrkit-go/ocrkit/internal/angle"
	"github.com/ocrkit-go/ocrkit/internal/detector"
	"github.com/ocrkit-go/ocrkit/internal/rectifier"
)

// candidate is one detected box with its rectified crop, kept in detection
// order through orientation and recognition.
type candidate struct {
	box  detector.TextBox
	crop image.Image
}

// Detect runs the full flow on one image. Detection failure yields an
// empty result; failures on individual boxes drop only those boxes.
func (p *Pipeline) Detect(src image.Image, opts Options) OcrResult {
	start := time.Now()

	padded := padImage(src, opts.Padding)
	sp := detector.ScaleParamFor(padded, opts.MaxSideLength)

	detStart := time.Now()
	pm, err := p.det.DetectMap(padded, sp)
	detElapsed := time.Since(detStart)
	if err != nil {
		slog.Error("detection failed", "error", err)
		return OcrResult{DetectElapsed: detElapsed, TotalElapsed: time.Since(start)}
	}
	p.debug("probability_map", pm)

	boxes := detector.PostProcess(pm.Data, pm.Width, pm.Height, sp, detector.Params{
		BoxThresh:      opts.BoxThresh,
		BoxScoreThresh: opts.BoxScoreThresh,
		UnclipRatio:    opts.UnclipRatio,
	})
	p.debug("text_boxes", boxes)

	cands := p.rectifyBoxes(padded, boxes)
	angles := angle.Resolve(p.cls, crops(cands), angle.Options{
		DoAngle:   opts.DoAngle,
		MostAngle: opts.MostAngle,
	})

	blocks := p.recognizeAll(cands, angles, opts.Workers)
	for i := range blocks {
		blocks[i].Points = unpadPoints(blocks[i].Points, opts.Padding, src.Bounds())
	}

	return OcrResult{
		TextBlocks:    blocks,
		DetectElapsed: detElapsed,
		TotalElapsed:  time.Since(start),
	}
}

// rectifyBoxes crops and unwarps each detected box, dropping the ones that
// cannot produce a usable crop.
func (p *Pipeline) rectifyBoxes(src image.Image, boxes []detector.TextBox) []candidate {
	cands := make([]candidate, 0, len(boxes))
	for i, box := range boxes {
		crop, err := rectifier.Rectify(src, box)
		if err != nil {
			slog.Debug("dropping box", "index", i, "error", err)
			continue
		}
		p.debug("crop", crop)
		cands = append(cands, candidate{box: box, crop: crop})
	}
	return cands
}

// recognizeAll classifies orientation, rotates flipped crops and runs
// recognition, preserving detection order. Failed recognitions drop the
// block.
func (p *Pipeline) recognizeAll(cands []candidate, angles []angle.Angle, workers int) []TextBlock {
	results := make([]*TextBlock, len(cands))

	recognizeOne := func(i int) {
		crop := cands[i].crop
		if angles[i].Index == angle.IndexFlipped {
			crop = imaging.Rotate180(crop)
		}
		res, err := p.rec.Recognize(crop)
		if err != nil {
			slog.Debug("dropping block", "index", i, "error", err)
			return
		}
		results[i] = &TextBlock{
			Points:           cands[i].box.Points,
			Text:             res.Text,
			CharScores:       res.CharScores,
			RecognitionScore: res.Score,
			DetectionScore:   cands[i].box.Score,
			AngleIndex:       angles[i].Index,
			AngleScore:       angles[i].Score,
			AngleElapsed:     angles[i].Elapsed,
			RecognizeElapsed: res.Elapsed,
		}
	}

	if workers <= 1 || len(cands) <= 1 {
		for i := range cands {
			recognizeOne(i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for range min(workers, len(cands)) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					recognizeOne(i)
				}
			}()
		}
		for i := range cands {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	blocks := make([]TextBlock, 0, len(cands))
	for _, b := range results {
		if b != nil {
			blocks = append(blocks, *b)
		}
	}
	return blocks
}

// padImage surrounds the source with a white border so edge-touching text
// detects reliably.
func padImage(src image.Image, padding int) image.Image {
	if padding <= 0 {
		return src
	}
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()+2*padding, b.Dy()+2*padding))
	draw.Draw(out, out.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(padding, padding, padding+b.Dx(), padding+b.Dy()), src, b.Min, draw.Src)
	return out
}

// unpadPoints maps box corners from padded back to source coordinates,
// clamped into the source bounds.
func unpadPoints(pts [4]image.Point, padding int, bounds image.Rectangle) [4]image.Point {
	if padding <= 0 {
		return pts
	}
	w, h := bounds.Dx(), bounds.Dy()
	for i := range pts {
		pts[i].X = clamp(pts[i].X-padding, 0, w)
		pts[i].Y = clamp(pts[i].Y-padding, 0, h)
	}
	return pts
}

func crops(cands []candidate) []image.Image {
	out := make([]image.Image, len(cands))
	for i, c := range cands {
		out[i] = c.crop
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
