package modelserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/moodlens/emotion-service/internal/inference"
)

type transcribeResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads a normalized WAV file to the speech backend and
// returns the transcript. An empty transcript maps to
// inference.ErrSpeechNotRecognized.
func (c *Client) Transcribe(ctx context.Context, wavPath string) (string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(wavPath))
	if err != nil {
		return "", err
	}
	fd, err := os.Open(wavPath)
	if err != nil {
		return "", err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return "", err
	}
	if err = w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.speechURL+"/transcribe", &b)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError("transcribe", resp)
	}

	var out transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("transcribe decode: %w", err)
	}
	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", inference.ErrSpeechNotRecognized
	}
	c.log.Debugf("Transcriber returned %d characters", len(text))
	return text, nil
}
