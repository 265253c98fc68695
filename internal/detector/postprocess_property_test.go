package detector

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPostProcessSubThresholdMapsYieldNoBoxes(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("maps with no pixel above the threshold produce no boxes", prop.ForAll(
		func(values []float32, thresh float32) bool {
			const w, h = 32, 32
			if len(values) != w*h {
				return true
			}
			// Clamp every pixel at or below the binarization cutoff.
			prob := make([]float32, len(values))
			for i, v := range values {
				prob[i] = v
				if prob[i] > thresh {
					prob[i] = thresh
				}
			}
			params := Params{BoxThresh: thresh, BoxScoreThresh: 0, UnclipRatio: 1.5}
			return len(PostProcess(prob, w, h, identityScale(w, h), params)) == 0
		},
		gen.SliceOfN(32*32, gen.Float32Range(0, 1)),
		gen.Float32Range(0.1, 0.9),
	))

	properties.TestingRun(t)
}

func TestPostProcessBoxInvariants(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every box is inside the source frame with idempotent ordering", prop.ForAll(
		func(x0, y0, bw, bh int) bool {
			const w, h = 64, 64
			x1 := min(x0+bw, w-1)
			y1 := min(y0+bh, h-1)
			prob := probMapWithBlock(w, h, x0, y0, x1, y1, 0.9)
			boxes := PostProcess(prob, w, h, identityScale(w, h), defaultParams())
			for _, b := range boxes {
				if OrderQuadPoints(b.Points) != b.Points {
					return false
				}
				for _, p := range b.Points {
					if p.X < 0 || p.Y < 0 || p.X > w || p.Y > h {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 40),
		gen.IntRange(1, 30),
		gen.IntRange(1, 30),
	))

	properties.TestingRun(t)
}
