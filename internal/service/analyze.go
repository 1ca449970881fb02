package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/moodlens/emotion-service/internal/inference"
	"github.com/moodlens/emotion-service/internal/models"
)

// AnalyzeText classifies the text and reduces the scores into a
// label->score mapping rounded to 3 decimals
func (s *Service) AnalyzeText(ctx context.Context, text string) (models.EmotionResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrEmptyInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.InferenceTimeout)
	defer cancel()

	scores, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return nil, s.inferenceError("classify", err)
	}

	result := make(models.EmotionResult, len(scores))
	for _, sc := range scores {
		result[sc.Label] = round3(sc.Score)
	}
	return result, nil
}

// AnalyzeSpeech normalizes the upload, transcribes it and classifies the
// transcript
func (s *Service) AnalyzeSpeech(ctx context.Context, upload io.Reader) (string, models.EmotionResult, error) {
	wavPath, cleanup, err := s.normalizer.Normalize(ctx, upload)
	if err != nil {
		return "", nil, err
	}
	defer cleanup()

	transcribeCtx, cancel := context.WithTimeout(ctx, s.config.InferenceTimeout)
	defer cancel()

	text, err := s.transcriber.Transcribe(transcribeCtx, wavPath)
	if err != nil {
		return "", nil, s.inferenceError("transcribe", err)
	}

	emotions, err := s.AnalyzeText(ctx, text)
	if err != nil {
		return "", nil, err
	}
	return text, emotions, nil
}

// AnalyzeImage detects faces and returns the first face's emotion scores
func (s *Service) AnalyzeImage(ctx context.Context, imageData []byte, filename string) (models.EmotionResult, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("%w: image is required", ErrEmptyInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.InferenceTimeout)
	defer cancel()

	faces, err := s.detector.Detect(ctx, imageData, filename)
	if err != nil {
		return nil, s.inferenceError("detect", err)
	}
	if len(faces) == 0 {
		return nil, inference.ErrNoFaceDetected
	}

	result := make(models.EmotionResult, len(faces[0]))
	for label, score := range faces[0] {
		result[label] = round3(score)
	}
	return result, nil
}

// inferenceError wraps a model call failure, folding deadline expiry into
// ErrInferenceTimeout.
func (s *Service) inferenceError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		s.log.Warnf("Inference call %s timed out", op)
		return fmt.Errorf("%w: %s", ErrInferenceTimeout, op)
	}
	if errors.Is(err, inference.ErrSpeechNotRecognized) || errors.Is(err, inference.ErrNoFaceDetected) {
		return err
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
