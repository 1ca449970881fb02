// Package inference defines the narrow interfaces through which the service
// consumes external pretrained models. Implementations live in
// internal/integrations; tests inject fakes.
package inference

import (
	"context"
	"errors"
)

var (
	// ErrSpeechNotRecognized is returned when no confident transcription exists.
	ErrSpeechNotRecognized = errors.New("speech not recognized")
	// ErrNoFaceDetected is returned when no face is located in the image.
	ErrNoFaceDetected = errors.New("no face detected")
)

// Score is one (label, score) pair produced by a classifier.
type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// TextClassifier scores a text against a fixed emotion label set.
// Deterministic for identical input and model version.
type TextClassifier interface {
	Classify(ctx context.Context, text string) ([]Score, error)
}

// SpeechTranscriber converts normalized audio (mono 16 kHz WAV on disk)
// into text. Returns ErrSpeechNotRecognized when nothing intelligible
// was found.
type SpeechTranscriber interface {
	Transcribe(ctx context.Context, wavPath string) (string, error)
}

// FaceDetector returns per-face emotion scores for an image. An empty
// slice means no face was located.
type FaceDetector interface {
	Detect(ctx context.Context, imageData []byte, filename string) ([]map[string]float64, error)
}
