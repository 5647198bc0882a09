package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"social-post-bot/pkg/apperr"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
			Role  string       `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// Client is a single-shot text completion client for the Gemini
// generateContent endpoint. No streaming, no retries: whatever the API
// returns for one round trip is relayed as-is.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{},
	}
}

// Complete sends promptText and returns the first candidate's text.
func (c *Client) Complete(ctx context.Context, promptText string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: promptText}}},
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperr.GenerationFailed("marshal request", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", apperr.GenerationFailed("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperr.GenerationFailed("call gemini", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.GenerationFailed("read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperr.GenerationFailed(fmt.Sprintf("gemini status %d: %s", resp.StatusCode, body), nil)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperr.GenerationFailed("unmarshal response", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", apperr.GenerationFailed("empty completion", nil)
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
