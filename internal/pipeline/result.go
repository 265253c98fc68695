package pipeline

import (
	"image"
	"strings"
	"time"
)

// TextBlock is one recognized text line with its detection polygon in
// source-image coordinates.
type TextBlock struct {
	// Points are the box corners ordered top-left, top-right,
	// bottom-right, bottom-left.
	Points [4]image.Point `json:"points"`
	// Text is the recognized content, empty when recognition found none.
	Text string `json:"text"`
	// CharScores holds one confidence per decoded character.
	CharScores []float64 `json:"char_scores,omitempty"`
	// RecognitionScore is the mean of CharScores.
	RecognitionScore float64 `json:"recognition_score"`
	// DetectionScore is the mean probability of the detected region.
	DetectionScore float64 `json:"detection_score"`
	// AngleIndex records the orientation decision (-1 skipped, 0 upright,
	// 1 rotated 180 degrees before recognition).
	AngleIndex int `json:"angle_index"`
	// AngleScore is the classifier confidence for AngleIndex.
	AngleScore float64 `json:"angle_score"`

	AngleElapsed     time.Duration `json:"angle_elapsed_ns"`
	RecognizeElapsed time.Duration `json:"recognize_elapsed_ns"`
}

// OcrResult is the output of one pipeline run.
type OcrResult struct {
	TextBlocks []TextBlock `json:"text_blocks"`

	DetectElapsed time.Duration `json:"detect_elapsed_ns"`
	TotalElapsed  time.Duration `json:"total_elapsed_ns"`
}

// Text joins all block texts with newlines, in detection order.
func (r OcrResult) Text() string {
	lines := make([]string, len(r.TextBlocks))
	for i, b := range r.TextBlocks {
		lines[i] = b.Text
	}
	return strings.Join(lines, "\n")
}
