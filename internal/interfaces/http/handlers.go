package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sawpanic/stockpulse/internal/analysis"
	"github.com/sawpanic/stockpulse/internal/config"
	"github.com/sawpanic/stockpulse/internal/models"
	"github.com/sawpanic/stockpulse/internal/normalize"
)

// Fetcher runs one full collection for a ticker.
type Fetcher interface {
	Fetch(ctx context.Context, ticker, company string) (models.FetchResult, error)
}

// Handlers holds the endpoint implementations and their dependencies.
type Handlers struct {
	fetcher Fetcher
	scorer  analysis.Scorer
	keys    config.Keys
	cache   *ResponseCache
}

// NewHandlers wires the sentiment handlers. cache may be nil to disable
// response caching.
func NewHandlers(fetcher Fetcher, scorer analysis.Scorer, keys config.Keys, cache *ResponseCache) *Handlers {
	return &Handlers{fetcher: fetcher, scorer: scorer, keys: keys, cache: cache}
}

type errorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

type healthResponse struct {
	Status      string          `json:"status"`
	Credentials map[string]bool `json:"credentials"`
	Timestamp   time.Time       `json:"timestamp"`
}

type sentimentResponse struct {
	Ticker       string                      `json:"ticker"`
	Company      string                      `json:"company,omitempty"`
	Items        []analysis.ScoredItem       `json:"items"`
	Summary      analysis.Summary            `json:"summary"`
	ByPlatform   map[string]analysis.Summary `json:"by_platform"`
	Distribution map[string]int              `json:"distribution"`
	Warnings     []string                    `json:"warnings"`
	Finnhub      *models.AggregatedSentiment `json:"finnhub,omitempty"`
	Cached       bool                        `json:"cached"`
	FetchedAt    time.Time                   `json:"fetched_at"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"json_encoding_failed"}`, http.StatusInternalServerError)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.writeJSON(w, status, errorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		RequestID: requestIDFrom(r.Context()),
		Timestamp: time.Now().UTC(),
	})
}

// Health reports process liveness plus which provider credentials are
// configured, without revealing the credentials themselves.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Credentials: h.keys.Status(),
		Timestamp:   time.Now().UTC(),
	})
}

// Sentiment runs the collection pipeline for one ticker and returns the
// scored, aggregated result. Accepts an optional ?company= query for
// broader source queries.
func (h *Handlers) Sentiment(w http.ResponseWriter, r *http.Request) {
	ticker := normalize.Ticker(mux.Vars(r)["ticker"])
	if ticker == "" {
		h.writeError(w, r, http.StatusBadRequest, "invalid_ticker",
			"Ticker must contain at least one of A-Z, 0-9, '.' or '-'")
		return
	}
	company := r.URL.Query().Get("company")

	key := ticker + "|" + company
	if h.cache != nil {
		if resp, ok := h.cache.Get(key); ok {
			resp.Cached = true
			h.writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	result, err := h.fetcher.Fetch(r.Context(), ticker, company)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "fetch_failed", err.Error())
		return
	}

	scored := analysis.Analyze(result.Items, h.scorer)
	resp := sentimentResponse{
		Ticker:       ticker,
		Company:      company,
		Items:        scored,
		Summary:      analysis.Summarize(scored),
		ByPlatform:   analysis.PlatformBreakdown(scored),
		Distribution: analysis.Distribution(scored),
		Warnings:     result.Warnings,
		Finnhub:      result.Finnhub,
		FetchedAt:    time.Now().UTC(),
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}

	if h.cache != nil {
		h.cache.Set(key, resp)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// NotFound handles 404 responses.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeError(w, r, http.StatusNotFound, "endpoint_not_found",
		"The requested endpoint does not exist")
}
