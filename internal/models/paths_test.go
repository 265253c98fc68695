package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDir(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv(EnvModelsDir, "/env/models")
		assert.Equal(t, "/explicit", Dir("/explicit"))
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(EnvModelsDir, "/env/models")
		assert.Equal(t, "/env/models", Dir(""))
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvModelsDir, "")
		assert.Equal(t, "models", Dir(""))
	})
}

func TestModelPaths(t *testing.T) {
	t.Setenv(EnvModelsDir, "")
	assert.Equal(t, filepath.Join("m", DetectionModel), DetectionModelPath("m"))
	assert.Equal(t, filepath.Join("m", AngleModel), AngleModelPath("m"))
	assert.Equal(t, filepath.Join("m", RecognitionModel), RecognitionModelPath("m"))
	assert.Equal(t, filepath.Join("m", RecognitionKeys), RecognitionKeysPath("m"))
}
