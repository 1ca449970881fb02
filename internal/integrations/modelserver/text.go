package modelserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/moodlens/emotion-service/internal/inference"
)

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Scores []inference.Score `json:"scores"`
}

// Classify sends the text to the classifier backend and returns its
// (label, score) pairs.
func (c *Client) Classify(ctx context.Context, text string) ([]inference.Score, error) {
	b, _ := json.Marshal(classifyRequest{Text: text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.textURL+"/classify", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("classify", resp)
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("classify decode: %w", err)
	}
	c.log.Debugf("Classifier returned %d scores", len(out.Scores))
	return out.Scores, nil
}
