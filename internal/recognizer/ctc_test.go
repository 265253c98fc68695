package recognizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDict() *Dictionary {
	return &Dictionary{keys: []string{"a", "b", "c"}}
}

// grid builds a [T, C] probability grid where each timestep puts prob at
// the given class and spreads the remainder evenly.
func grid(classes int, picks []int, prob float32) []float32 {
	rest := (1 - prob) / float32(classes-1)
	out := make([]float32, len(picks)*classes)
	for t, pick := range picks {
		for c := range classes {
			if c == pick {
				out[t*classes+c] = prob
			} else {
				out[t*classes+c] = rest
			}
		}
	}
	return out
}

func TestDecodeGreedyCollapsesRepeats(t *testing.T) {
	dict := testDict()
	classes := dict.NumClasses()
	// a a blank b b -> "ab"
	probs := grid(classes, []int{1, 1, 0, 2, 2}, 0.9)
	text, scores := decodeGreedy(probs, 5, classes, dict)
	assert.Equal(t, "ab", text)
	require.Len(t, scores, 2)
	for _, s := range scores {
		assert.InDelta(t, 0.9, s, 1e-6)
	}
}

func TestDecodeGreedyBlankSeparatesRepeats(t *testing.T) {
	dict := testDict()
	classes := dict.NumClasses()
	// a blank a -> "aa"
	probs := grid(classes, []int{1, 0, 1}, 0.8)
	text, scores := decodeGreedy(probs, 3, classes, dict)
	assert.Equal(t, "aa", text)
	assert.Len(t, scores, 2)
}

func TestDecodeGreedyAllBlank(t *testing.T) {
	dict := testDict()
	classes := dict.NumClasses()
	probs := grid(classes, []int{0, 0, 0, 0}, 0.95)
	text, scores := decodeGreedy(probs, 4, classes, dict)
	assert.Empty(t, text)
	assert.Empty(t, scores)
}

func TestDecodeGreedySpaceClass(t *testing.T) {
	dict := testDict()
	classes := dict.NumClasses()
	// a space b: the last class index maps to space.
	probs := grid(classes, []int{1, classes - 1, 2}, 0.9)
	text, _ := decodeGreedy(probs, 3, classes, dict)
	assert.Equal(t, "a b", text)
}

func TestMeanScore(t *testing.T) {
	assert.Zero(t, meanScore(nil))
	assert.InDelta(t, 0.5, meanScore([]float64{0.25, 0.75}), 1e-9)
}
