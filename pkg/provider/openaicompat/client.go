package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rhuss/aibackend/pkg/api"
	"github.com/rhuss/aibackend/pkg/debug"
	"github.com/rhuss/aibackend/pkg/provider"
)

// ChatCompletionsPath is appended to the base URL for every completion.
const ChatCompletionsPath = "/v1/chat/completions"

// DefaultTimeout bounds a single completion when no timeout is configured.
const DefaultTimeout = 120 * time.Second

// Client performs HTTP requests against an OpenAI-compatible Chat Completions
// backend.
//
// Provider adapters embed this Client and delegate their Complete calls to it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	// ModelMapper is an optional function that transforms the model name
	// before sending it to the backend. If nil, the model name is used as-is.
	ModelMapper func(string) string
}

// NewClient creates a new Client for an OpenAI-compatible backend.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	// Normalize: remove trailing slash from base URL.
	baseURL = strings.TrimRight(baseURL, "/")

	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Complete performs non-streaming inference against the Chat Completions endpoint.
func (c *Client) Complete(ctx context.Context, req *provider.ProviderRequest) (*provider.ProviderResponse, error) {
	reqCopy := *req

	// Apply model mapping if configured.
	if c.ModelMapper != nil {
		reqCopy.Model = c.ModelMapper(reqCopy.Model)
	}

	chatReq := TranslateToChat(&reqCopy)

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to marshal request: %s", err.Error()))
	}

	url := c.baseURL + ChatCompletionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to create HTTP request: %s", err.Error()))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	debug.Log("providers", "completion request",
		"url", url,
		"model", chatReq.Model,
		"messages", len(chatReq.Messages),
	)
	debug.Trace("providers", "completion request body", "body", string(body))

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		debug.Log("providers", "completion transport error", "error", err.Error())
		return nil, MapNetworkError(err)
	}
	defer httpResp.Body.Close()

	debug.Log("providers", "completion response",
		"status", httpResp.StatusCode,
		"duration", time.Since(start),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, MapHTTPError(httpResp)
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, MapNetworkError(err)
	}
	if debug.TraceIsEnabled("providers") {
		debug.Trace("providers", "completion response body", "body", string(respBody))
	} else {
		debug.Log("providers", "completion response body", "body", debug.Truncate(string(respBody), 512))
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to parse backend response: %s", err.Error()))
	}

	return TranslateResponse(&chatResp)
}

// Close releases client resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// MapModels returns a ModelMapper that rewrites names found in mapping and
// passes every other name through unchanged. It returns nil for an empty
// mapping.
func MapModels(mapping map[string]string) func(string) string {
	if len(mapping) == 0 {
		return nil
	}
	m := make(map[string]string, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	return func(model string) string {
		if mapped, ok := m[model]; ok {
			return mapped
		}
		return model
	}
}
