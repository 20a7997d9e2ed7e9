package textgen

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/onsideagency/touchline/internal/metrics"
)

// APIClient is an HTTP client for the text-generation edge service.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	apiKey     string
	metrics    metrics.Metrics
}

// NewClient creates a new text-generation client.
func NewClient(baseURL, apiKey string, m metrics.Metrics) *APIClient {
	return &APIClient{
		// Completions are slow; streams in particular can run for minutes.
		httpClient: &http.Client{Timeout: 120 * time.Second},
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		metrics:    m,
	}
}

// Ensure APIClient implements the Client interface.
var _ Client = (*APIClient)(nil)

// Generate sends one prompt and returns the full completion.
func (c *APIClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	c.metrics.IncTextGenRequests()

	resp, err := c.post(ctx, req, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("textgen returned status %d: %s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode textgen response: %w", err)
	}
	log.Debug("Generated text", "chars", len(out.Text))
	return out.Text, nil
}

// Stream sends one prompt and invokes fn for every token in the SSE stream.
// A non-nil error from fn stops the stream.
func (c *APIClient) Stream(ctx context.Context, req GenerateRequest, fn func(token string) error) error {
	c.metrics.IncTextGenRequests()

	resp, err := c.post(ctx, req, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("textgen returned status %d: %s", resp.StatusCode, string(body))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			if payload == "[DONE]" {
				return nil
			}
			continue
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return fmt.Errorf("failed to decode stream chunk: %w", err)
		}
		if chunk.Done {
			return nil
		}
		if err := fn(chunk.Token); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("textgen stream read failed: %w", err)
	}
	return nil
}

func (c *APIClient) post(ctx context.Context, req GenerateRequest, stream bool) (*http.Response, error) {
	body := struct {
		GenerateRequest
		Stream bool `json:"stream"`
	}{GenerateRequest: req, Stream: stream}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal textgen request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v1/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("textgen request failed: %w", err)
	}
	return resp, nil
}
