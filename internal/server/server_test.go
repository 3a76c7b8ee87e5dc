// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/research-gateway/internal/answer"
	"github.com/meshintel/research-gateway/internal/fetch"
	"github.com/meshintel/research-gateway/internal/llm"
	"github.com/meshintel/research-gateway/pkg/types"
)

const testFeed = `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom">
<entry>
  <id>http://arxiv.org/abs/2400.00001</id>
  <title>Feed Paper</title>
  <summary>A summary.</summary>
  <published>2024-01-01T00:00:00Z</published>
  <author><name>Jane Doe</name></author>
</entry>
</feed>`

// roundTripFunc lets a test serve canned arXiv responses without touching
// package-level endpoints.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func cannedArxivClient(status int, body string) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})}
}

// gatewayStub answers every completion with text, or the given status on
// failure.
func gatewayStub(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		reply, _ := json.Marshal(text)
		w.Write([]byte(`{"choices":[{"message":{"content":` + string(reply) + `}}]}`))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestServer(t *testing.T, arxivClient *http.Client, gatewayStatus int, gatewayText string) *Server {
	t.Helper()
	gw := gatewayStub(t, gatewayStatus, gatewayText)

	fetcher := fetch.NewFetcher(types.FetcherConfig{}, arxivClient, nil)
	answers := answer.NewService(llm.NewClient(types.GatewayConfig{BaseURL: gw.URL, Model: "m"}, gw.Client()))
	return New(types.ServerConfig{}, fetcher, answers, nil)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func TestFetchPapersEndpoint(t *testing.T) {
	s := newTestServer(t, cannedArxivClient(http.StatusOK, testFeed), http.StatusOK, "")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/papers/fetch",
		`{"domains":["robotics","nlp"],"maxResultsPerDomain":5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Papers []types.PaperRecord `json:"papers"`
		Count  int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Papers, 2)
	assert.Equal(t, "robotics", resp.Papers[0].Topic)
	assert.Equal(t, "nlp", resp.Papers[1].Topic)
	assert.Equal(t, "Feed Paper", resp.Papers[0].Title)
	assert.Equal(t, []string{"Jane Doe"}, resp.Papers[0].Authors)
}

func TestFetchPapersPartialFailureNotSurfaced(t *testing.T) {
	// Every arXiv request fails: the aggregate still succeeds with zero papers.
	s := newTestServer(t, cannedArxivClient(http.StatusInternalServerError, "boom"), http.StatusOK, "")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/papers/fetch", `{"domains":["a","b"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"count":0`)
	assert.Contains(t, body, `"papers":[]`)
	assert.NotContains(t, body, "error")
}

func TestFetchPapersMalformedBody(t *testing.T) {
	s := newTestServer(t, cannedArxivClient(http.StatusOK, testFeed), http.StatusOK, "")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/papers/fetch", `{"domains": not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestQueryEndpoint(t *testing.T) {
	const answerText = "Robotics research favors reinforcement learning."
	s := newTestServer(t, nil, http.StatusOK, answerText)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/research/query",
		`{"query":"trends in robotics?","context":"some retrieved abstracts"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Answer string `json:"answer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, answerText, resp.Answer)
}

func TestQueryEmptyQuestion(t *testing.T) {
	s := newTestServer(t, nil, http.StatusOK, "unused")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/research/query", `{"query":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestQueryClassifiedFailures(t *testing.T) {
	tests := []struct {
		name       string
		gwStatus   int
		wantStatus int
		wantMsg    string
	}{
		{"rate limited", http.StatusTooManyRequests, http.StatusTooManyRequests, msgRateLimited},
		{"quota exhausted", http.StatusPaymentRequired, http.StatusPaymentRequired, msgQuota},
		{"upstream failure", http.StatusInternalServerError, http.StatusBadGateway, msgGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, tt.gwStatus, "")

			rec := doJSON(t, s, http.MethodPost, "/api/v1/research/query", `{"query":"q"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}

func TestRateLimitAndQuotaMessagesDiffer(t *testing.T) {
	assert.NotEqual(t, msgRateLimited, msgQuota)
	assert.NotEqual(t, msgRateLimited, msgGeneric)
	assert.NotEqual(t, msgQuota, msgGeneric)
}

func TestChatEndpoint(t *testing.T) {
	s := newTestServer(t, nil, http.StatusOK, "hello there")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/research/chat", `{"query":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hello there")
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(t, nil, http.StatusOK, "The paper contributes X.")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/pdf/analyze",
		`{"text":"Abstract: we present...","filename":"paper.pdf"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Analysis string `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "The paper contributes X.", resp.Analysis)
}

func TestAnalyzeEmptyText(t *testing.T) {
	s := newTestServer(t, nil, http.StatusOK, "unused")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/pdf/analyze", `{"text":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil, http.StatusOK, "")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil, http.StatusOK, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/research/query", nil)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDAssigned(t *testing.T) {
	s := newTestServer(t, nil, http.StatusOK, "")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-chosen")
	rec = httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	assert.Equal(t, "client-chosen", rec.Header().Get("X-Request-ID"))
}
