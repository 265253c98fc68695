package recognizer

// ctcBlank is the reserved blank class of the recognition head.
const ctcBlank = 0

// decodeGreedy performs greedy CTC decoding over a [T, C] probability grid:
// argmax per timestep, then collapse of repeats and blanks. It returns the
// decoded text and one confidence per emitted character.
func decodeGreedy(probs []float32, timesteps, classes int, dict *Dictionary) (string, []float64) {
	var text []byte
	var scores []float64
	prev := -1
	for t := range timesteps {
		row := probs[t*classes : (t+1)*classes]
		class, score := argmaxRow(row)
		if class == ctcBlank || class == prev {
			prev = class
			continue
		}
		text = append(text, dict.Token(class)...)
		scores = append(scores, float64(score))
		prev = class
	}
	return string(text), scores
}

// argmaxRow returns the largest entry of a single timestep row and its
// index. The recognition head emits softmax probabilities, so the value is
// used as the character confidence directly.
func argmaxRow(row []float32) (int, float32) {
	best := 0
	for i, v := range row {
		if v > row[best] {
			best = i
		}
	}
	return best, row[best]
}

// meanScore averages per-character confidences, 0 for an empty sequence.
func meanScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
