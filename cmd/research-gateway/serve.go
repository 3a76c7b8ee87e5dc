// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/meshintel/research-gateway/internal/answer"
	"github.com/meshintel/research-gateway/internal/fetch"
	"github.com/meshintel/research-gateway/internal/llm"
	"github.com/meshintel/research-gateway/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API consumed by the front-end",
	Long: `Serve starts the HTTP API: paper fetching, research query, chat, and
PDF-text analysis endpoints. The server runs until interrupted and shuts
down gracefully.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	log := newLogger(cfg.Server.LogLevel, cfg.Server.LogFormat)
	defer log.Sync()

	fetcher := fetch.NewFetcher(cfg.Fetcher, newHTTPClient(cfg.Fetcher.Timeout), log.Named("fetch"))
	answers := answer.NewService(llm.NewClient(cfg.Gateway, newHTTPClient(cfg.Gateway.Timeout)))

	srv := server.New(cfg.Server, fetcher, answers, log.Named("http"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}

// newHTTPClient builds an http.Client with the configured timeout. A zero
// timeout means no client-side bound; the server's request timeout still
// applies.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// newLogger builds a zap logger from the configured level and format.
func newLogger(levelStr, format string) *zap.Logger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, _ := cfg.Build()
	return logger
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
