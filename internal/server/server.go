// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the fetcher and query pipeline over HTTP for the
// browser front-end. Contracts are JSON request/response pairs; pipeline
// failures map to classified statuses the front-end distinguishes.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/meshintel/research-gateway/internal/answer"
	"github.com/meshintel/research-gateway/internal/fetch"
	"github.com/meshintel/research-gateway/pkg/types"
)

const defaultRequestTimeout = 60 * time.Second

// Server wires the HTTP routes to the core services.
type Server struct {
	Router  *chi.Mux
	fetcher *fetch.Fetcher
	answers *answer.Service
	log     *zap.Logger
	cfg     types.ServerConfig
}

// New builds the router with middleware and routes. Both services must be
// constructed by the caller; the server holds no global state.
func New(cfg types.ServerConfig, fetcher *fetch.Fetcher, answers *answer.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}

	s := &Server{
		Router:  chi.NewRouter(),
		fetcher: fetcher,
		answers: answers,
		log:     log,
		cfg:     cfg,
	}

	s.Router.Use(chimiddleware.RealIP)
	s.Router.Use(requestID)
	s.Router.Use(requestLogger(log))
	s.Router.Use(cors(cfg.AllowedOrigin))
	s.Router.Use(chimiddleware.Recoverer)
	s.Router.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	s.Router.Get("/healthz", s.handleHealth)
	s.Router.Route("/api/v1", func(r chi.Router) {
		r.Post("/papers/fetch", s.handleFetchPapers)
		r.Post("/research/query", s.handleQuery)
		r.Post("/research/chat", s.handleChat)
		r.Post("/pdf/analyze", s.handleAnalyze)
	})

	return s
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
