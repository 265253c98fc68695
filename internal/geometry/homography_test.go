package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveProjectiveRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		quad [4]Point
		w, h float64
	}{
		{
			name: "axis aligned",
			quad: [4]Point{{10, 10}, {110, 10}, {110, 50}, {10, 50}},
			w:    100, h: 40,
		},
		{
			name: "sheared",
			quad: [4]Point{{20, 5}, {120, 15}, {115, 60}, {12, 48}},
			w:    96, h: 42,
		},
		{
			name: "rotated",
			quad: [4]Point{{50, 0}, {100, 50}, {50, 100}, {0, 50}},
			w:    70, h: 70,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := SolveProjective(tt.quad, tt.w, tt.h)
			require.False(t, m.IsIdentity())

			dst := [4]Point{{0, 0}, {tt.w - 1, 0}, {tt.w - 1, tt.h - 1}, {0, tt.h - 1}}
			for i := range 4 {
				x, y := m.Apply(dst[i].X, dst[i].Y)
				assert.InDelta(t, tt.quad[i].X, x, 1e-6)
				assert.InDelta(t, tt.quad[i].Y, y, 1e-6)
			}

			// The inverse must map source corners back to destination corners.
			inv, ok := m.Invert()
			require.True(t, ok)
			for i := range 4 {
				x, y := inv.Apply(tt.quad[i].X, tt.quad[i].Y)
				assert.InDelta(t, dst[i].X, x, 1e-6)
				assert.InDelta(t, dst[i].Y, y, 1e-6)
			}
		})
	}
}

func TestSolveProjectiveDegenerate(t *testing.T) {
	// All four corners collinear: no projective transform exists.
	quad := [4]Point{{0, 0}, {10, 0}, {20, 0}, {30, 0}}
	m := SolveProjective(quad, 100, 40)
	assert.True(t, m.IsIdentity())
}

func TestHomographyInvert(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		inv, ok := IdentityHomography().Invert()
		require.True(t, ok)
		assert.True(t, inv.IsIdentity())
	})

	t.Run("singular", func(t *testing.T) {
		_, ok := Homography{1, 2, 3, 2, 4, 6, 0, 0, 1}.Invert()
		assert.False(t, ok)
	})
}
