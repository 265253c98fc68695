package angle

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClassifier returns a fixed sequence of decisions.
type scriptedClassifier struct {
	angles []Angle
	errs   []error
	calls  int
}

func (s *scriptedClassifier) Classify(image.Image) (Angle, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return Angle{}, s.errs[i]
	}
	return s.angles[i], nil
}

func (s *scriptedClassifier) Close() error { return nil }

func crops(n int) []image.Image {
	out := make([]image.Image, n)
	for i := range out {
		out[i] = image.NewNRGBA(image.Rect(0, 0, 10, 4))
	}
	return out
}

func indexes(angles []Angle) []int {
	out := make([]int, len(angles))
	for i, a := range angles {
		out[i] = a.Index
	}
	return out
}

func TestResolveDisabled(t *testing.T) {
	cls := &scriptedClassifier{}
	got := Resolve(cls, crops(3), Options{DoAngle: false})
	assert.Equal(t, []int{IndexSkipped, IndexSkipped, IndexSkipped}, indexes(got))
	assert.Zero(t, cls.calls, "classifier must not run when disabled")
}

func TestResolveDisabledIgnoresMostAngle(t *testing.T) {
	cls := &scriptedClassifier{}
	got := Resolve(cls, crops(4), Options{DoAngle: false, MostAngle: true})
	for _, a := range got {
		assert.Equal(t, IndexSkipped, a.Index)
	}
	assert.Zero(t, cls.calls)
}

func TestResolvePerCrop(t *testing.T) {
	cls := &scriptedClassifier{angles: []Angle{
		{Index: IndexUpright, Score: 0.9},
		{Index: IndexFlipped, Score: 0.8},
		{Index: IndexUpright, Score: 0.7},
	}}
	got := Resolve(cls, crops(3), Options{DoAngle: true})
	require.Len(t, got, 3)
	assert.Equal(t, []int{0, 1, 0}, indexes(got))
	assert.InDelta(t, 0.8, got[1].Score, 1e-9)
}

func TestResolveClassifierErrorSkipsCrop(t *testing.T) {
	cls := &scriptedClassifier{
		angles: []Angle{{Index: IndexFlipped}, {}, {Index: IndexUpright}},
		errs:   []error{nil, errors.New("inference failed"), nil},
	}
	got := Resolve(cls, crops(3), Options{DoAngle: true})
	assert.Equal(t, []int{1, IndexSkipped, 0}, indexes(got))
}

func TestMostAngleMajorityFlipped(t *testing.T) {
	cls := &scriptedClassifier{angles: []Angle{
		{Index: IndexFlipped},
		{Index: IndexFlipped},
		{Index: IndexUpright},
		{Index: IndexFlipped},
	}}
	got := Resolve(cls, crops(4), Options{DoAngle: true, MostAngle: true})
	assert.Equal(t, []int{1, 1, 1, 1}, indexes(got))
}

func TestMostAngleMajorityUpright(t *testing.T) {
	cls := &scriptedClassifier{angles: []Angle{
		{Index: IndexUpright},
		{Index: IndexFlipped},
		{Index: IndexUpright},
		{Index: IndexUpright},
		{Index: IndexUpright},
	}}
	got := Resolve(cls, crops(5), Options{DoAngle: true, MostAngle: true})
	assert.Equal(t, []int{0, 0, 0, 0, 0}, indexes(got))
}

func TestApplyMostAngleTieForcesFlipped(t *testing.T) {
	angles := []Angle{
		{Index: IndexFlipped},
		{Index: IndexUpright},
		{Index: IndexFlipped},
		{Index: IndexUpright},
	}
	// Exactly half flipped: the comparison sum < n/2 is false, so the
	// batch is forced to 1.
	ApplyMostAngle(angles)
	assert.Equal(t, []int{1, 1, 1, 1}, indexes(angles))
}

func TestApplyMostAngleEmpty(t *testing.T) {
	assert.NotPanics(t, func() { ApplyMostAngle(nil) })
}

func TestApplyMostAngleSkippedCountAgainstFlip(t *testing.T) {
	// Skipped entries contribute nothing to the sum but do count toward
	// the batch size, so a lone flipped vote loses.
	angles := []Angle{
		{Index: IndexSkipped},
		{Index: IndexSkipped},
		{Index: IndexFlipped},
	}
	ApplyMostAngle(angles)
	assert.Equal(t, []int{0, 0, 0}, indexes(angles))
}

func TestArgmaxSoftmax(t *testing.T) {
	idx, score := argmaxSoftmax([]float32{0.2, 2.5})
	assert.Equal(t, 1, idx)
	assert.Greater(t, score, 0.5)
	assert.LessOrEqual(t, score, 1.0)

	idx, score = argmaxSoftmax([]float32{3, 3})
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 0.5, score, 1e-9)
}
