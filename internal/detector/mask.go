package detector

// binarize thresholds a probability map into a foreground mask. A pixel is
// foreground iff its probability is strictly greater than thresh.
func binarize(prob []float32, w, h int, thresh float32) []bool {
	if len(prob) != w*h || w <= 0 || h <= 0 {
		return nil
	}
	mask := make([]bool, len(prob))
	for i, v := range prob {
		mask[i] = v > thresh
	}
	return mask
}

// dilate grows the foreground by one pixel in every direction (3x3
// structuring element). This merges adjacent glyph strokes into a single
// region before contour tracing.
func dilate(mask []bool, w, h int) []bool {
	if len(mask) != w*h {
		return nil
	}
	out := make([]bool, len(mask))
	for y := range h {
		for x := range w {
			if !mask[y*w+x] {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx >= 0 && ny >= 0 && nx < w && ny < h {
						out[ny*w+nx] = true
					}
				}
			}
		}
	}
	return out
}
