package onnx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageTensor(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		data := make([]float32, 3*4*5)
		tensor, err := NewImageTensor(data, 3, 4, 5)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3, 4, 5}, tensor.Shape)
		assert.NoError(t, tensor.Verify())
	})

	t.Run("nil data", func(t *testing.T) {
		_, err := NewImageTensor(nil, 3, 4, 5)
		assert.Error(t, err)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := NewImageTensor(make([]float32, 10), 3, 4, 5)
		assert.Error(t, err)
	})
}

func TestNewBatchImageTensor(t *testing.T) {
	t.Run("stacks in order", func(t *testing.T) {
		a := []float32{1, 2, 3, 4}
		b := []float32{5, 6, 7, 8}
		tensor, err := NewBatchImageTensor([][]float32{a, b}, 1, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1, 2, 2}, tensor.Shape)
		assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Data)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := NewBatchImageTensor(nil, 1, 2, 2)
		assert.Error(t, err)
	})

	t.Run("ragged batch", func(t *testing.T) {
		_, err := NewBatchImageTensor([][]float32{{1, 2, 3, 4}, {1}}, 1, 2, 2)
		assert.Error(t, err)
	})
}

func TestValidateNCHW(t *testing.T) {
	assert.NoError(t, ValidateNCHW([]int64{1, 3, 48, 192}))
	assert.Error(t, ValidateNCHW([]int64{1, 3, 48}))
	assert.Error(t, ValidateNCHW([]int64{1, 3, 0, 192}))
}
