package angle

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/ocrkit-go/ocrkit/internal/onnx"
)

// Classifier input geometry and normalization. Pixels are mapped from
// [0,255] to [-1,1].
const (
	inputWidth  = 192
	inputHeight = 48
)

var (
	clsMean  = [3]float32{127.5, 127.5, 127.5}
	clsScale = [3]float32{1 / 127.5, 1 / 127.5, 1 / 127.5}
)

// OnnxClassifier runs the two-class orientation model through ONNX Runtime.
type OnnxClassifier struct {
	session *onnx.Session
	mu      sync.Mutex
}

var _ Classifier = (*OnnxClassifier)(nil)

// NewClassifier opens the angle-classification model. A missing model file
// is a configuration error and fails immediately.
func NewClassifier(modelPath string, numThreads int) (*OnnxClassifier, error) {
	slog.Debug("initializing angle classifier", "model_path", modelPath, "num_threads", numThreads)
	session, err := onnx.NewSession(modelPath, numThreads)
	if err != nil {
		return nil, fmt.Errorf("angle classifier init: %w", err)
	}
	return &OnnxClassifier{session: session}, nil
}

// Classify resizes the crop to the fixed classifier input, runs inference
// and returns the argmax class with its softmax confidence.
func (c *OnnxClassifier) Classify(img image.Image) (Angle, error) {
	start := time.Now()

	resized := imaging.Resize(img, inputWidth, inputHeight, imaging.Linear)
	data := onnx.NormalizeNCHW(resized, clsMean, clsScale)
	tensor, err := onnx.NewImageTensor(data, 3, inputHeight, inputWidth)
	if err != nil {
		return Angle{}, fmt.Errorf("angle input: %w", err)
	}

	c.mu.Lock()
	out, err := c.session.Run(tensor)
	c.mu.Unlock()
	if err != nil {
		return Angle{}, fmt.Errorf("angle inference: %w", err)
	}
	defer func() {
		if err := out.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying angle output: %v\n", err)
		}
	}()

	scores := out.GetData()
	if len(scores) < 2 {
		return Angle{}, fmt.Errorf("unexpected angle output length %d", len(scores))
	}
	idx, score := argmaxSoftmax(scores[:2])
	return Angle{Index: idx, Score: score, Elapsed: time.Since(start)}, nil
}

// Close releases the underlying session.
func (c *OnnxClassifier) Close() error {
	return c.session.Close()
}

// argmaxSoftmax returns the index of the largest logit and its softmax
// probability, computed with the max subtracted for stability.
func argmaxSoftmax(logits []float32) (int, float64) {
	best := 0
	for i, v := range logits {
		if v > logits[best] {
			best = i
		}
	}
	var sum float64
	for _, v := range logits {
		sum += math.Exp(float64(v - logits[best]))
	}
	return best, 1 / sum
}
