// Package audio converts uploaded audio into the mono 16 kHz WAV form the
// speech backend expects, by shelling out to ffmpeg.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ErrUnsupportedAudio is returned when ffmpeg cannot decode the upload.
var ErrUnsupportedAudio = errors.New("unsupported or corrupt audio")

const (
	sampleRate = 16000
	channels   = 1
)

// Normalizer resamples arbitrary audio uploads (WAV/MP3/M4A/OGG) to a
// single-channel fixed-rate WAV file on disk.
type Normalizer struct {
	ffmpegPath string
}

// NewNormalizer initializes a normalizer using the given ffmpeg binary
func NewNormalizer(ffmpegPath string) *Normalizer {
	return &Normalizer{ffmpegPath: ffmpegPath}
}

// Normalize writes the upload to a temp file, converts it and returns the
// path of the converted WAV plus a cleanup func. Both temp files are
// removed on every exit path; cleanup must be called by the caller on
// success.
func (n *Normalizer) Normalize(ctx context.Context, upload io.Reader) (string, func(), error) {
	in, err := os.CreateTemp("", "upload-*.audio")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(in.Name())

	if _, err := io.Copy(in, upload); err != nil {
		in.Close()
		return "", nil, fmt.Errorf("failed to buffer upload: %w", err)
	}
	if err := in.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to flush upload: %w", err)
	}

	out, err := os.CreateTemp("", "normalized-*.wav")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	outPath := out.Name()
	out.Close()

	cmd := exec.CommandContext(ctx, n.ffmpegPath,
		"-y",
		"-i", in.Name(),
		"-ac", fmt.Sprint(channels),
		"-ar", fmt.Sprint(sampleRate),
		"-f", "wav",
		outPath,
	)
	if err := cmd.Run(); err != nil {
		os.Remove(outPath)
		return "", nil, fmt.Errorf("%w: %v", ErrUnsupportedAudio, err)
	}

	return outPath, func() { os.Remove(outPath) }, nil
}
