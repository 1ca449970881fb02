// Package modelserver is an HTTP client for the model-serving backends:
// a text-emotion classifier, a speech-to-text transcriber and a facial
// emotion detector, each running behind its own base URL.
package modelserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/moodlens/emotion-service/internal/config"
	"github.com/sirupsen/logrus"
)

// Client calls the model-serving backends. It implements the inference
// interfaces consumed by the service layer.
type Client struct {
	textURL   string
	speechURL string
	visionURL string
	client    *http.Client
	log       *logrus.Logger
}

// NewClient initializes a model-server client from configuration
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		textURL:   cfg.TextModelURL,
		speechURL: cfg.SpeechModelURL,
		visionURL: cfg.VisionModelURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log,
	}
}

// Ping checks a backend's health endpoint. Used by the warmup job.
func (c *Client) Ping(ctx context.Context, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

// Backends returns the configured base URLs keyed by backend name.
func (c *Client) Backends() map[string]string {
	return map[string]string{
		"text":   c.textURL,
		"speech": c.speechURL,
		"vision": c.visionURL,
	}
}

// statusError turns a non-200 backend response into an error carrying the
// status line and body.
func statusError(name string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%s %s: %s", name, resp.Status, string(body))
}
