// Package recognizer turns rectified line crops into text with
// per-character confidences via a CTC-decoded recognition model.
package recognizer

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

// recInputHeight is the fixed line height the recognition model expects.
// Width scales with the crop aspect ratio.
const recInputHeight = 48

var (
	recMean  = [3]float32{127.5, 127.5, 127.5}
	recScale = [3]float32{1 / 127.5, 1 / 127.5, 1 / 127.5}
)

// Result is the recognition output for one line crop.
type Result struct {
	Text       string
	CharScores []float64
	Score      float64
	Elapsed    time.Duration
}

// Recognizer is the text-recognition inference boundary. Tests substitute
// fakes; the production implementation wraps an ONNX session.
type Recognizer interface {
	Recognize(img image.Image) (Result, error)
	Close() error
}

// OnnxRecognizer runs CRNN-style recognition through ONNX Runtime.
type OnnxRecognizer struct {
	session *onnx.Session
	dict    *Dictionary
	mu      sync.Mutex
}

var _ Recognizer = (*OnnxRecognizer)(nil)

// NewRecognizer opens the recognition model and its keys file. Either
// missing is a configuration error and fails immediately.
func NewRecognizer(modelPath, keysPath string, numThreads int) (*OnnxRecognizer, error) {
	slog.Debug("initializing recognizer",
		"model_path", modelPath, "keys_path", keysPath, "num_threads", numThreads)
	dict, err := LoadDictionary(keysPath)
	if err != nil {
		return nil, fmt.Errorf("recognizer init: %w", err)
	}
	session, err := onnx.NewSession(modelPath, numThreads)
	if err != nil {
		return nil, fmt.Errorf("recognizer init: %w", err)
	}
	return &OnnxRecognizer{session: session, dict: dict}, nil
}

// Recognize scales the crop to the model line height, runs inference and
// greedy-decodes the [1, T, C] output.
func (r *OnnxRecognizer) Recognize(img image.Image) (Result, error) {
	start := time.Now()

	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return Result{}, fmt.Errorf("empty recognition crop %dx%d", b.Dx(), b.Dy())
	}
	dstW := int(math.Round(float64(b.Dx()) * recInputHeight / float64(b.Dy())))
	if dstW < 1 {
		dstW = 1
	}
	resized := imaging.Resize(img, dstW, recInputHeight, imaging.Linear)
	data := onnx.NormalizeNCHW(resized, recMean, recScale)
	tensor, err := onnx.NewImageTensor(data, 3, recInputHeight, dstW)
	if err != nil {
		return Result{}, fmt.Errorf("recognizer input: %w", err)
	}

	r.mu.Lock()
	out, err := r.session.Run(tensor)
	r.mu.Unlock()
	if err != nil {
		return Result{}, fmt.Errorf("recognizer inference: %w", err)
	}
	defer func() {
		if err := out.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying recognizer output: %v\n", err)
		}
	}()

	shape := out.GetShape()
	if len(shape) != 3 || shape[0] != 1 {
		return Result{}, fmt.Errorf("unexpected recognizer output shape %v", shape)
	}
	timesteps, classes := int(shape[1]), int(shape[2])
	if classes != r.dict.NumClasses() {
		return Result{}, fmt.Errorf("model classes %d do not match dictionary (%d)",
			classes, r.dict.NumClasses())
	}

	text, charScores := decodeGreedy(out.GetData(), timesteps, classes, r.dict)
	return Result{
		Text:       cleanText(text),
		CharScores: charScores,
		Score:      meanScore(charScores),
		Elapsed:    time.Since(start),
	}, nil
}

// Close releases the underlying session.
func (r *OnnxRecognizer) Close() error {
	return r.session.Close()
}
