// Package onnx holds the shared ONNX Runtime plumbing: NCHW tensor
// assembly, session creation and shared-library discovery.
package onnx

import (
	"errors"
	"fmt"
)

// Tensor is a float32 tensor prepared for ONNX input, row-major, NCHW for
// images.
type Tensor struct {
	Data  []float32
	Shape []int64
}

// NewImageTensor builds a single-image tensor with shape [1, C, H, W].
// data must be C*H*W floats in NCHW order.
func NewImageTensor(data []float32, c, h, w int) (Tensor, error) {
	if data == nil {
		return Tensor{}, errors.New("nil tensor data")
	}
	if expected := c * h * w; len(data) != expected {
		return Tensor{}, fmt.Errorf("tensor data length %d, want %d", len(data), expected)
	}
	return Tensor{Data: data, Shape: []int64{1, int64(c), int64(h), int64(w)}}, nil
}

// NewBatchImageTensor stacks per-image NCHW buffers into [N, C, H, W].
// Every image must have identical (C, H, W).
func NewBatchImageTensor(images [][]float32, c, h, w int) (Tensor, error) {
	if len(images) == 0 {
		return Tensor{}, errors.New("empty batch")
	}
	per := c * h * w
	out := make([]float32, per*len(images))
	for i, d := range images {
		if len(d) != per {
			return Tensor{}, fmt.Errorf("batch image %d has length %d, want %d", i, len(d), per)
		}
		copy(out[i*per:(i+1)*per], d)
	}
	return Tensor{Data: out, Shape: []int64{int64(len(images)), int64(c), int64(h), int64(w)}}, nil
}

// ValidateNCHW ensures a shape is rank-4 with positive dimensions.
func ValidateNCHW(shape []int64) error {
	if len(shape) != 4 {
		return fmt.Errorf("shape rank %d != 4", len(shape))
	}
	for i, v := range shape {
		if v <= 0 {
			return fmt.Errorf("dimension %d must be > 0, got %d", i, v)
		}
	}
	return nil
}

// Verify checks the data length against the declared NCHW shape.
func (t Tensor) Verify() error {
	if err := ValidateNCHW(t.Shape); err != nil {
		return err
	}
	expected := int(t.Shape[0] * t.Shape[1] * t.Shape[2] * t.Shape[3])
	if len(t.Data) != expected {
		return fmt.Errorf("tensor data length %d != expected %d for shape %v", len(t.Data), expected, t.Shape)
	}
	return nil
}
