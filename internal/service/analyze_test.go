package service_test

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/moodlens/emotion-service/internal/audio"
	"github.com/moodlens/emotion-service/internal/config"
	"github.com/moodlens/emotion-service/internal/inference"
	"github.com/moodlens/emotion-service/internal/service"
	"github.com/stretchr/testify/require"
)

func newAnalyzeService(deps service.Deps, cfg *config.Config) *service.Service {
	if cfg == nil {
		cfg = testConfig()
	}
	return service.NewService(deps, testLogger(), cfg)
}

func requireRounded3(t *testing.T, scores map[string]float64) {
	t.Helper()
	for label, score := range scores {
		require.GreaterOrEqual(t, score, 0.0, "label %s", label)
		require.LessOrEqual(t, score, 1.0, "label %s", label)
		scaled := score * 1000
		require.InDelta(t, math.Round(scaled), scaled, 1e-9, "label %s not rounded to 3 decimals", label)
	}
}

func TestAnalyzeText(t *testing.T) {
	t.Parallel()

	classifier := &fakeClassifier{scores: []inference.Score{
		{Label: "joy", Score: 0.876543},
		{Label: "sadness", Score: 0.0004},
		{Label: "anger", Score: 0.1235},
	}}
	svc := newAnalyzeService(service.Deps{Classifier: classifier}, nil)

	emotions, err := svc.AnalyzeText(context.Background(), "I am thrilled")
	require.NoError(t, err)

	require.Equal(t, 0.877, emotions["joy"])
	require.Equal(t, 0.0, emotions["sadness"])
	require.Equal(t, 0.124, emotions["anger"])
	requireRounded3(t, emotions)
}

func TestAnalyzeText_Empty(t *testing.T) {
	t.Parallel()

	svc := newAnalyzeService(service.Deps{Classifier: &fakeClassifier{}}, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.AnalyzeText(context.Background(), text)
		require.ErrorIs(t, err, service.ErrEmptyInput, "text %q", text)
	}
}

func TestAnalyzeText_Timeout(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{InferenceTimeout: 10 * time.Millisecond}
	svc := newAnalyzeService(service.Deps{Classifier: &fakeClassifier{block: true}}, cfg)

	_, err := svc.AnalyzeText(context.Background(), "slow model")
	require.ErrorIs(t, err, service.ErrInferenceTimeout)
}

func TestAnalyzeImage(t *testing.T) {
	t.Parallel()

	detector := &fakeDetector{faces: []map[string]float64{
		{"happy": 0.91234, "neutral": 0.08766},
		{"angry": 1.0}, // only the first face counts
	}}
	svc := newAnalyzeService(service.Deps{Detector: detector}, nil)

	emotions, err := svc.AnalyzeImage(context.Background(), []byte{0xFF, 0xD8}, "face.jpg")
	require.NoError(t, err)

	require.Equal(t, 0.912, emotions["happy"])
	require.Equal(t, 0.088, emotions["neutral"])
	require.NotContains(t, emotions, "angry")
	requireRounded3(t, emotions)
}

func TestAnalyzeImage_NoFace(t *testing.T) {
	t.Parallel()

	svc := newAnalyzeService(service.Deps{Detector: &fakeDetector{}}, nil)

	_, err := svc.AnalyzeImage(context.Background(), []byte{0x89, 0x50}, "blank.png")
	require.ErrorIs(t, err, inference.ErrNoFaceDetected)
}

func TestAnalyzeImage_Empty(t *testing.T) {
	t.Parallel()

	svc := newAnalyzeService(service.Deps{Detector: &fakeDetector{}}, nil)

	_, err := svc.AnalyzeImage(context.Background(), nil, "empty.png")
	require.ErrorIs(t, err, service.ErrEmptyInput)
}

func TestAnalyzeSpeech(t *testing.T) {
	t.Parallel()

	normalizer := &fakeNormalizer{}
	svc := newAnalyzeService(service.Deps{
		Normalizer:  normalizer,
		Transcriber: &fakeTranscriber{text: "hello there"},
		Classifier:  &fakeClassifier{scores: []inference.Score{{Label: "joy", Score: 0.5}}},
	}, nil)

	text, emotions, err := svc.AnalyzeSpeech(context.Background(), strings.NewReader("audio-bytes"))
	require.NoError(t, err)
	require.Equal(t, "hello there", text)
	require.Equal(t, 0.5, emotions["joy"])
	require.True(t, normalizer.cleaned, "temp WAV must be removed")
}

func TestAnalyzeSpeech_Unrecognized(t *testing.T) {
	t.Parallel()

	normalizer := &fakeNormalizer{}
	svc := newAnalyzeService(service.Deps{
		Normalizer:  normalizer,
		Transcriber: &fakeTranscriber{err: inference.ErrSpeechNotRecognized},
	}, nil)

	_, _, err := svc.AnalyzeSpeech(context.Background(), strings.NewReader("mumble"))
	require.ErrorIs(t, err, inference.ErrSpeechNotRecognized)
	require.True(t, normalizer.cleaned, "temp WAV must be removed on failure too")
}

func TestAnalyzeSpeech_UnsupportedAudio(t *testing.T) {
	t.Parallel()

	svc := newAnalyzeService(service.Deps{
		Normalizer: &fakeNormalizer{err: audio.ErrUnsupportedAudio},
	}, nil)

	_, _, err := svc.AnalyzeSpeech(context.Background(), strings.NewReader("not audio"))
	require.ErrorIs(t, err, audio.ErrUnsupportedAudio)
}
