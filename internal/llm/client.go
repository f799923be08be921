// Package llm wraps the local Ollama-style generation endpoint.
//
// The client sends single synchronous requests and maps failures onto a
// small typed taxonomy (transport, model, empty response). It never
// retries; callers own the retry policy.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const generatePath = "/api/generate"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the generation endpoint rooted at
// baseURL (e.g. http://127.0.0.1:11434). The per-call deadline is the
// caller's context; timeout only bounds calls made without one.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate performs one non-streaming generation call and returns the
// produced text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	payload := generateRequest{
		Model:   req.Model,
		Prompt:  req.Prompt,
		System:  req.System,
		Options: req.Options,
		Stream:  false,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", WrapError(err, ErrTransport, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", WrapError(err, ErrTransport, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", WrapError(err, ErrTransport, "failed to reach generation endpoint")
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", WrapError(err, ErrTransport, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", NewError(ErrTransport, fmt.Sprintf("endpoint returned status %d: %s", resp.StatusCode, truncate(string(responseBody), 400)))
	}

	var genResp generateResponse
	if err := json.Unmarshal(responseBody, &genResp); err != nil {
		return "", WrapError(err, ErrTransport, "failed to parse response")
	}

	if genResp.Error != "" {
		return "", NewError(ErrModel, genResp.Error)
	}
	if strings.TrimSpace(genResp.Response) == "" {
		return "", NewError(ErrEmptyResponse, fmt.Sprintf("endpoint returned empty response, payload preview: %s", truncate(string(responseBody), 400)))
	}

	return genResp.Response, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
