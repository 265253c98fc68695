package onnx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	onnxrt "github.com/yalue/onnxruntime_go"
)

// Session wraps a dynamic ONNX Runtime session together with its declared
// input/output metadata.
type Session struct {
	Runner     *onnxrt.DynamicAdvancedSession
	InputInfo  onnxrt.InputOutputInfo
	OutputInfo onnxrt.InputOutputInfo
}

// NewSession initializes the runtime (once per process), validates that the
// model declares exactly one input and one output, and opens a session with
// the requested intra-op thread count (0 keeps the runtime default).
func NewSession(modelPath string, numThreads int) (*Session, error) {
	if modelPath == "" {
		return nil, errors.New("empty model path")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}
	if err := ensureRuntime(); err != nil {
		return nil, err
	}

	inputs, outputs, err := onnxrt.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("model io info: %w", err)
	}
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, fmt.Errorf("unexpected model io (in:%d out:%d)", len(inputs), len(outputs))
	}

	opts, err := onnxrt.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer func() {
		if err := opts.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying session options: %v\n", err)
		}
	}()
	if numThreads > 0 {
		_ = opts.SetIntraOpNumThreads(numThreads)
	}

	sess, err := onnxrt.NewDynamicAdvancedSession(modelPath,
		[]string{inputs[0].Name}, []string{outputs[0].Name}, opts)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &Session{Runner: sess, InputInfo: inputs[0], OutputInfo: outputs[0]}, nil
}

// Run executes the session on a single input tensor and returns the first
// output, which the caller owns and must Destroy.
func (s *Session) Run(t Tensor) (*onnxrt.Tensor[float32], error) {
	input, err := onnxrt.NewTensor(onnxrt.NewShape(t.Shape...), t.Data)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	defer func() {
		if err := input.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying input tensor: %v\n", err)
		}
	}()

	outputs := []onnxrt.Value{nil}
	if err := s.Runner.Run([]onnxrt.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("inference run: %w", err)
	}
	out, ok := outputs[0].(*onnxrt.Tensor[float32])
	if !ok {
		for _, o := range outputs {
			if o != nil {
				_ = o.Destroy()
			}
		}
		return nil, fmt.Errorf("unexpected output type %T", outputs[0])
	}
	return out, nil
}

// Close destroys the underlying session. The runtime environment itself is
// left alive; it is torn down only at process exit.
func (s *Session) Close() error {
	if s.Runner == nil {
		return nil
	}
	err := s.Runner.Destroy()
	s.Runner = nil
	return err
}

func ensureRuntime() error {
	if onnxrt.IsInitialized() {
		return nil
	}
	if err := setLibraryPath(); err != nil {
		return fmt.Errorf("onnxruntime library path: %w", err)
	}
	if err := onnxrt.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initialize onnxruntime: %w", err)
	}
	return nil
}

func libraryName() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return "libonnxruntime.so", nil
	case "darwin":
		return "libonnxruntime.dylib", nil
	case "windows":
		return "onnxruntime.dll", nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

// setLibraryPath locates the ONNX Runtime shared library, preferring the
// ONNXRUNTIME_LIB environment variable, then common system paths, then a
// project-relative onnxruntime/lib directory.
func setLibraryPath() error {
	if p := os.Getenv("ONNXRUNTIME_LIB"); p != "" {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("ONNXRUNTIME_LIB set but unreadable: %w", err)
		}
		onnxrt.SetSharedLibraryPath(p)
		return nil
	}

	system := []string{
		"/usr/local/lib/libonnxruntime.so",
		"/usr/lib/libonnxruntime.so",
		"/opt/onnxruntime/cpu/lib/libonnxruntime.so",
	}
	for _, p := range system {
		if _, err := os.Stat(p); err == nil {
			onnxrt.SetSharedLibraryPath(p)
			return nil
		}
	}

	root, err := findProjectRoot()
	if err != nil {
		return err
	}
	name, err := libraryName()
	if err != nil {
		return err
	}
	p := filepath.Join(root, "onnxruntime", "lib", name)
	if _, err := os.Stat(p); err != nil {
		return fmt.Errorf("onnxruntime library not found at %s", p)
	}
	onnxrt.SetSharedLibraryPath(p)
	return nil
}

func findProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root := cwd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root, nil
		}
		parent := filepath.Dir(root)
		if parent == root {
			return "", errors.New("could not find project root")
		}
		root = parent
	}
}
