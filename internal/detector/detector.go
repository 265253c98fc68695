package detector

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"

	"github.com/ocrkit-go/ocrkit/internal/onnx"
)

// Detection normalization constants (ImageNet-style, premultiplied by 255).
var (
	detMean  = [3]float32{123.68, 116.28, 103.53}
	detScale = [3]float32{1 / (0.229 * 255), 1 / (0.224 * 255), 1 / (0.225 * 255)}
)

// ProbabilityMap is the raw detection output: per-pixel text probability in
// [0,1], row-major, in detector-input coordinates.
type ProbabilityMap struct {
	Data   []float32
	Width  int
	Height int
}

// Runner is the detection inference boundary. Implementations take the
// source image plus the precomputed scale parameters and return the
// probability map; tests substitute fakes.
type Runner interface {
	DetectMap(img image.Image, sp ScaleParam) (ProbabilityMap, error)
	Close() error
}

// Detector runs text detection through ONNX Runtime.
type Detector struct {
	session *onnx.Session
	mu      sync.Mutex
}

// New opens the detection model. A missing model file is a configuration
// error and fails immediately.
func New(modelPath string, numThreads int) (*Detector, error) {
	slog.Debug("initializing detector", "model_path", modelPath, "num_threads", numThreads)
	session, err := onnx.NewSession(modelPath, numThreads)
	if err != nil {
		return nil, fmt.Errorf("detector init: %w", err)
	}
	return &Detector{session: session}, nil
}

// DetectMap resizes the image to the detector input size, normalizes it and
// runs inference, returning the probability map in input coordinates.
func (d *Detector) DetectMap(img image.Image, sp ScaleParam) (ProbabilityMap, error) {
	resized := ResizeForDetection(img, sp)
	data := onnx.NormalizeNCHW(resized, detMean, detScale)
	tensor, err := onnx.NewImageTensor(data, 3, sp.DstHeight, sp.DstWidth)
	if err != nil {
		return ProbabilityMap{}, fmt.Errorf("detector input: %w", err)
	}

	d.mu.Lock()
	out, err := d.session.Run(tensor)
	d.mu.Unlock()
	if err != nil {
		return ProbabilityMap{}, fmt.Errorf("detector inference: %w", err)
	}
	defer func() {
		if err := out.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying detector output: %v\n", err)
		}
	}()

	shape := out.GetShape()
	if len(shape) != 4 || shape[1] != 1 {
		return ProbabilityMap{}, fmt.Errorf("unexpected detector output shape %v", shape)
	}
	h, w := int(shape[2]), int(shape[3])
	data = make([]float32, w*h)
	copy(data, out.GetData())
	return ProbabilityMap{Data: data, Width: w, Height: h}, nil
}

// Close releases the underlying session.
func (d *Detector) Close() error {
	return d.session.Close()
}
