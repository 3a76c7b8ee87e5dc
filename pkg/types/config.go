// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-gateway/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetcherConfig holds settings for the paper source fetcher.
type FetcherConfig struct {
	HTTPConfig `yaml:",inline"`

	// Domains is the default topic list queried when a request supplies none.
	Domains []string `json:"domains" yaml:"domains"`

	// MaxResultsPerDomain caps results requested per topic (default 20).
	MaxResultsPerDomain int `json:"max_results_per_domain" yaml:"max_results_per_domain"`

	// Concurrency bounds the per-topic fan-out (default 3). A value of 1
	// degrades to the sequential behavior of the original pipeline.
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// GatewayConfig holds settings for the generative AI gateway client.
type GatewayConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the chat-completions endpoint of the AI gateway.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the model identifier sent with each completion request.
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the gateway.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the completion length (default 1024).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// ServerConfig holds settings for the HTTP API surface.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigin is the CORS origin allowed to call the API ("*" by default).
	AllowedOrigin string `json:"allowed_origin" yaml:"allowed_origin"`

	// RequestTimeout bounds each request's handling, including upstream calls.
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`

	// LogFormat is "json" or "console".
	LogFormat string `json:"log_format" yaml:"log_format"`
}

// ArchiveConfig holds settings for the local fetch-batch archive.
type ArchiveConfig struct {
	// Path is the SQLite database file (e.g. "archive/gateway.db").
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig groups all stage configurations for the gateway.
type PipelineConfig struct {
	Fetcher FetcherConfig `json:"fetcher" yaml:"fetcher"`
	Gateway GatewayConfig `json:"gateway" yaml:"gateway"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}
