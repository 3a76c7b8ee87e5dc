// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/meshintel/research-gateway/internal/answer"
	"github.com/meshintel/research-gateway/internal/llm"
	"github.com/meshintel/research-gateway/pkg/types"
)

// User-facing messages for classified pipeline failures. The front-end
// shows these verbatim, so each classification keeps a distinct message.
const (
	msgRateLimited = "Too many requests. Please wait a moment."
	msgQuota       = "Please add credits to your workspace."
	msgGeneric     = "Failed to get a response. Please try again."
)

type fetchRequest struct {
	Domains             []string `json:"domains"`
	MaxResultsPerDomain int      `json:"maxResultsPerDomain"`
}

type fetchResponse struct {
	Papers []types.PaperRecord `json:"papers"`
	Count  int                 `json:"count"`
}

// handleFetchPapers runs the source fetcher. A malformed body is fatal for
// the whole call; a single topic's failure only reduces the result set and
// is never surfaced to the caller.
func (s *Server) handleFetchPapers(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.fetcher.FetchAll(r.Context(), req.Domains, req.MaxResultsPerDomain)
	if err != nil {
		s.log.Error("fetch failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	papers := out.Papers
	if papers == nil {
		papers = []types.PaperRecord{}
	}
	writeJSON(w, http.StatusOK, fetchResponse{Papers: papers, Count: out.Count})
}

type queryRequest struct {
	Query   string `json:"query"`
	Context string `json:"context,omitempty"`
}

type queryResponse struct {
	Answer string `json:"answer"`
}

// handleQuery answers a single research question, optionally biased by a
// free-text context blob.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := s.answers.Answer(r.Context(), req.Query, req.Context)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{Answer: reply})
}

// handleChat answers one chat turn. The transcript lives with the caller;
// the server holds no conversation state, so the contract is identical to
// a context-free query.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := s.answers.Answer(r.Context(), req.Query, "")
	if err != nil {
		s.writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{Answer: reply})
}

type analyzeRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename,omitempty"`
}

type analyzeResponse struct {
	Analysis string `json:"analysis"`
}

// handleAnalyze runs the PDF-analysis variant over text extracted upstream.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := s.answers.Analyze(r.Context(), req.Text)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Analysis: analysis})
}

// writePipelineError maps a pipeline failure to a status and message.
// Validation failures are the caller's to fix and are not logged; every
// other failure is logged and surfaced with its classified message.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, answer.ErrEmptyQuestion), errors.Is(err, answer.ErrEmptyText):
		writeError(w, http.StatusBadRequest, err.Error())
	case llm.IsRateLimited(err):
		s.log.Warn("gateway rate limited", zap.Error(err))
		writeError(w, http.StatusTooManyRequests, msgRateLimited)
	case llm.IsQuotaExhausted(err):
		s.log.Warn("gateway quota exhausted", zap.Error(err))
		writeError(w, http.StatusPaymentRequired, msgQuota)
	default:
		s.log.Error("pipeline call failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, msgGeneric)
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid JSON request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
