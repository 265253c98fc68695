package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedArea(t *testing.T) {
	tests := []struct {
		name     string
		points   []Point
		expected float64
	}{
		{
			name:     "empty",
			points:   nil,
			expected: 0,
		},
		{
			name:     "degenerate segment",
			points:   []Point{{0, 0}, {4, 0}},
			expected: 0,
		},
		{
			name:     "unit square CCW",
			points:   []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
			expected: 1,
		},
		{
			name:     "unit square CW",
			points:   []Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
			expected: -1,
		},
		{
			name:     "triangle",
			points:   []Point{{0, 0}, {4, 0}, {0, 3}},
			expected: 6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SignedArea(tt.points), 1e-9)
		})
	}
}

func TestPerimeter(t *testing.T) {
	tests := []struct {
		name     string
		points   []Point
		expected float64
	}{
		{name: "empty", points: nil, expected: 0},
		{name: "single point", points: []Point{{1, 1}}, expected: 0},
		{name: "segment counts both directions", points: []Point{{0, 0}, {3, 4}}, expected: 10},
		{name: "rectangle", points: []Point{{0, 0}, {4, 0}, {4, 2}, {0, 2}}, expected: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Perimeter(tt.points), 1e-9)
		})
	}
}

func TestBoundingBox(t *testing.T) {
	b := BoundingBox([]Point{{3, 1}, {-2, 5}, {0, 0}})
	assert.InDelta(t, -2.0, b.MinX, 1e-9)
	assert.InDelta(t, 0.0, b.MinY, 1e-9)
	assert.InDelta(t, 3.0, b.MaxX, 1e-9)
	assert.InDelta(t, 5.0, b.MaxY, 1e-9)
	assert.InDelta(t, 5.0, b.Width(), 1e-9)
	assert.InDelta(t, 5.0, b.Height(), 1e-9)
}

func TestConvexHull(t *testing.T) {
	pts := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}, {1, 1}}
	hull := ConvexHull(pts)
	require.Len(t, hull, 4)
	area := math.Abs(SignedArea(hull))
	assert.InDelta(t, 16.0, area, 1e-9)
}

func TestMinAreaRect(t *testing.T) {
	t.Run("axis aligned rectangle", func(t *testing.T) {
		rect, ok := MinAreaRect([]Point{{0, 0}, {10, 0}, {10, 4}, {0, 4}})
		require.True(t, ok)
		assert.InDelta(t, 4.0, rect.MinSide(), 1e-6)
		assert.InDelta(t, 10.0, rect.MaxSide(), 1e-6)
	})

	t.Run("rotated rectangle", func(t *testing.T) {
		// 45 degree square with corners on the axes
		rect, ok := MinAreaRect([]Point{{5, 0}, {10, 5}, {5, 10}, {0, 5}})
		require.True(t, ok)
		side := 5 * math.Sqrt2
		assert.InDelta(t, side, rect.MinSide(), 1e-6)
		assert.InDelta(t, side, rect.MaxSide(), 1e-6)
	})

	t.Run("interior points do not change the fit", func(t *testing.T) {
		base := []Point{{0, 0}, {8, 0}, {8, 3}, {0, 3}}
		withInterior := append(append([]Point(nil), base...), Point{4, 1}, Point{2, 2})
		r1, ok := MinAreaRect(base)
		require.True(t, ok)
		r2, ok := MinAreaRect(withInterior)
		require.True(t, ok)
		assert.InDelta(t, r1.MinSide(), r2.MinSide(), 1e-6)
		assert.InDelta(t, r1.MaxSide(), r2.MaxSide(), 1e-6)
	})

	t.Run("empty input", func(t *testing.T) {
		_, ok := MinAreaRect(nil)
		assert.False(t, ok)
	})

	t.Run("single point falls back to unit rect", func(t *testing.T) {
		rect, ok := MinAreaRect([]Point{{3, 3}})
		require.True(t, ok)
		assert.InDelta(t, 1.0, rect.MinSide(), 1e-9)
	})
}

func TestSimplify(t *testing.T) {
	t.Run("keeps corners drops edge midpoints", func(t *testing.T) {
		pts := []Point{{0, 0}, {5, 0}, {10, 0}, {10, 5}, {10, 10}, {5, 10}, {0, 10}, {0, 5}}
		out := Simplify(pts, 1.0)
		assert.LessOrEqual(t, len(out), 5)
		assert.GreaterOrEqual(t, len(out), 3)
	})

	t.Run("triangle untouched", func(t *testing.T) {
		pts := []Point{{0, 0}, {10, 0}, {5, 10}}
		out := Simplify(pts, 1.0)
		assert.Equal(t, pts, out)
	})

	t.Run("zero epsilon is a copy", func(t *testing.T) {
		pts := []Point{{0, 0}, {1, 0}, {2, 0.1}, {3, 0}, {4, 0}}
		out := Simplify(pts, 0)
		assert.Equal(t, pts, out)
	})
}
