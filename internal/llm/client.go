// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm is the transport layer for the generative AI gateway. It
// issues one chat-completion request per call (no retry, no streaming) and
// classifies failures into structured kinds.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/meshintel/research-gateway/pkg/types"
)

// defaultBaseURL is an OpenAI-compatible chat-completions endpoint.
var defaultBaseURL = "https://ai.gateway.lovable.dev/v1/chat/completions"

const defaultMaxTokens = 1024

// Client calls the AI gateway. Construct one explicitly and pass it to the
// services that need it; there is no package-level client.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewClient builds a Client from config. A nil http.Client falls back to
// http.DefaultClient; tests inject an httptest client and base URL.
func NewClient(cfg types.GatewayConfig, hc *http.Client) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTokens:  maxTokens,
		httpClient: hc,
	}
}

// chatRequest is the request body for the chat-completions endpoint.
type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from the chat-completions endpoint.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one completion exchange and returns the model's text
// verbatim. system may be empty. Failures are *Error values carrying a
// structured Kind.
func (c *Client) Complete(ctx context.Context, system string, msgs []types.Message) (string, error) {
	reqBody := chatRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
	}
	if system != "" {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: "system", Content: system})
	}
	for _, m := range msgs {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: KindTransport, Msg: "calling AI gateway", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", classify(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", &Error{Kind: KindUpstream, Status: resp.StatusCode, Msg: "decoding gateway response", Err: err}
	}
	if len(cResp.Choices) == 0 {
		return "", &Error{Kind: KindUpstream, Status: resp.StatusCode, Msg: "gateway returned no choices"}
	}

	return cResp.Choices[0].Message.Content, nil
}
