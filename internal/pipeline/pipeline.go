// Package pipeline wires detection, rectification, orientation and
// recognition into the full image-to-text flow.
package pipeline

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/ocrkit-go/ocrkit/internal/angle"
	"github.com/ocrkit-go/ocrkit/internal/detector"
	"github.com/ocrkit-go/ocrkit/internal/models"
	"github.com/ocrkit-go/ocrkit/internal/recognizer"
)

// DebugHook receives named intermediate buffers as the pipeline runs.
// Implementations must not retain the values past the call.
type DebugHook func(name string, value any)

// Pipeline runs the OCR stages against pluggable inference backends.
type Pipeline struct {
	det  detector.Runner
	cls  angle.Classifier
	rec  recognizer.Recognizer
	hook DebugHook
}

// Builder assembles a Pipeline from model paths, with overrides for tests
// and embedders that bring their own backends.
type Builder struct {
	modelsDir  string
	detPath    string
	clsPath    string
	recPath    string
	keysPath   string
	numThreads int
	hook       DebugHook

	det detector.Runner
	cls angle.Classifier
	rec recognizer.Recognizer
}

// NewBuilder returns a builder resolving models from the default models
// directory.
func NewBuilder() *Builder {
	return &Builder{modelsDir: models.Dir("")}
}

// WithModelsDir sets the directory the standard model files are loaded from.
func (b *Builder) WithModelsDir(dir string) *Builder {
	if dir != "" {
		b.modelsDir = dir
	}
	return b
}

// WithDetectorModelPath overrides the detection model path.
func (b *Builder) WithDetectorModelPath(path string) *Builder {
	b.detPath = path
	return b
}

// WithAngleModelPath overrides the orientation model path.
func (b *Builder) WithAngleModelPath(path string) *Builder {
	b.clsPath = path
	return b
}

// WithRecognizerModelPath overrides the recognition model path.
func (b *Builder) WithRecognizerModelPath(path string) *Builder {
	b.recPath = path
	return b
}

// WithKeysPath overrides the recognition dictionary path.
func (b *Builder) WithKeysPath(path string) *Builder {
	b.keysPath = path
	return b
}

// WithNumThreads sets the intra-op thread count passed to every session.
func (b *Builder) WithNumThreads(n int) *Builder {
	b.numThreads = n
	return b
}

// WithDebugHook installs a hook receiving intermediate buffers.
func (b *Builder) WithDebugHook(hook DebugHook) *Builder {
	b.hook = hook
	return b
}

// WithDetector substitutes a detection backend, bypassing model loading.
func (b *Builder) WithDetector(det detector.Runner) *Builder {
	b.det = det
	return b
}

// WithClassifier substitutes an orientation backend.
func (b *Builder) WithClassifier(cls angle.Classifier) *Builder {
	b.cls = cls
	return b
}

// WithRecognizer substitutes a recognition backend.
func (b *Builder) WithRecognizer(rec recognizer.Recognizer) *Builder {
	b.rec = rec
	return b
}

// Build opens the model sessions that were not substituted. Any failure is
// a configuration error; nothing is retried.
func (b *Builder) Build() (*Pipeline, error) {
	p := &Pipeline{det: b.det, cls: b.cls, rec: b.rec, hook: b.hook}

	if p.det == nil {
		path := b.detPath
		if path == "" {
			path = models.DetectionModelPath(b.modelsDir)
		}
		det, err := detector.New(path, b.numThreads)
		if err != nil {
			return nil, fmt.Errorf("build pipeline: %w", err)
		}
		p.det = det
	}
	if p.cls == nil {
		path := b.clsPath
		if path == "" {
			path = models.AngleModelPath(b.modelsDir)
		}
		cls, err := angle.NewClassifier(path, b.numThreads)
		if err != nil {
			_ = p.det.Close()
			return nil, fmt.Errorf("build pipeline: %w", err)
		}
		p.cls = cls
	}
	if p.rec == nil {
		path := b.recPath
		if path == "" {
			path = models.RecognitionModelPath(b.modelsDir)
		}
		keys := b.keysPath
		if keys == "" {
			keys = models.RecognitionKeysPath(b.modelsDir)
		}
		rec, err := recognizer.NewRecognizer(path, keys, b.numThreads)
		if err != nil {
			_ = p.det.Close()
			_ = p.cls.Close()
			return nil, fmt.Errorf("build pipeline: %w", err)
		}
		p.rec = rec
	}

	slog.Info("pipeline ready", "models_dir", b.modelsDir)
	return p, nil
}

// Warmup runs each stage once on a small blank input so first-request
// latency does not pay for lazy session initialization.
func (p *Pipeline) Warmup() {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	sp := detector.ScaleParamFor(img, 0)
	if _, err := p.det.DetectMap(img, sp); err != nil {
		slog.Debug("detector warmup", "error", err)
	}
	if _, err := p.cls.Classify(img); err != nil {
		slog.Debug("classifier warmup", "error", err)
	}
	if _, err := p.rec.Recognize(img); err != nil {
		slog.Debug("recognizer warmup", "error", err)
	}
}

// Close releases every backend, returning the first error.
func (p *Pipeline) Close() error {
	var first error
	for _, c := range []interface{ Close() error }{p.det, p.cls, p.rec} {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (p *Pipeline) debug(name string, value any) {
	if p.hook != nil {
		p.hook(name, value)
	}
}
