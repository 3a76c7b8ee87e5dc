// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/meshintel/research-gateway/pkg/types"
)

// loadPipelineConfig assembles the gateway configuration from viper (config
// file and RESEARCH_GATEWAY_* env vars), with the API key falling back to
// the .secrets/ directory.
func loadPipelineConfig() types.PipelineConfig {
	viper.SetDefault("fetcher.max_results_per_domain", 20)
	viper.SetDefault("fetcher.concurrency", 3)
	viper.SetDefault("fetcher.timeout", 30*time.Second)
	viper.SetDefault("fetcher.user_agent", "research-gateway/"+version)
	viper.SetDefault("gateway.model", "google/gemini-2.5-flash")
	viper.SetDefault("gateway.max_tokens", 1024)
	viper.SetDefault("gateway.timeout", 60*time.Second)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.allowed_origin", "*")
	viper.SetDefault("server.request_timeout", 90*time.Second)
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("server.log_format", "console")
	viper.SetDefault("archive.path", "archive/gateway.db")

	cfg := types.PipelineConfig{
		Fetcher: types.FetcherConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetcher.timeout"),
				UserAgent: viper.GetString("fetcher.user_agent"),
			},
			Domains:             viper.GetStringSlice("fetcher.domains"),
			MaxResultsPerDomain: viper.GetInt("fetcher.max_results_per_domain"),
			Concurrency:         viper.GetInt("fetcher.concurrency"),
		},
		Gateway: types.GatewayConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout: viper.GetDuration("gateway.timeout"),
			},
			BaseURL:   viper.GetString("gateway.base_url"),
			Model:     viper.GetString("gateway.model"),
			APIKey:    secretDefault("gateway-api-key", viper.GetString("gateway.api_key")),
			MaxTokens: viper.GetInt("gateway.max_tokens"),
		},
		Server: types.ServerConfig{
			Addr:           viper.GetString("server.addr"),
			AllowedOrigin:  viper.GetString("server.allowed_origin"),
			RequestTimeout: viper.GetDuration("server.request_timeout"),
			LogLevel:       viper.GetString("server.log_level"),
			LogFormat:      viper.GetString("server.log_format"),
		},
		Archive: types.ArchiveConfig{
			Path: viper.GetString("archive.path"),
		},
	}
	return cfg
}
