// Package models resolves model and dictionary file locations.
package models

import (
	"os"
	"path/filepath"
)

// Default model filenames shipped alongside the binary.
const (
	DetectionModel   = "ch_PP-OCRv4_det_infer.onnx"
	AngleModel       = "ch_ppocr_mobile_v2.0_cls_infer.onnx"
	RecognitionModel = "ch_PP-OCRv4_rec_infer.onnx"
	RecognitionKeys  = "ppocr_keys_v1.txt"
)

// EnvModelsDir overrides the models directory when set.
const EnvModelsDir = "OCRKIT_MODELS_DIR"

// Dir returns the models directory: the explicit argument when non-empty,
// then the environment override, then ./models.
func Dir(dir string) string {
	if dir != "" {
		return dir
	}
	if env := os.Getenv(EnvModelsDir); env != "" {
		return env
	}
	return "models"
}

// DetectionModelPath returns the detection model location under dir.
func DetectionModelPath(dir string) string {
	return filepath.Join(Dir(dir), DetectionModel)
}

// AngleModelPath returns the angle classifier model location under dir.
func AngleModelPath(dir string) string {
	return filepath.Join(Dir(dir), AngleModel)
}

// RecognitionModelPath returns the recognition model location under dir.
func RecognitionModelPath(dir string) string {
	return filepath.Join(Dir(dir), RecognitionModel)
}

// RecognitionKeysPath returns the character dictionary location under dir.
func RecognitionKeysPath(dir string) string {
	return filepath.Join(Dir(dir), RecognitionKeys)
}
