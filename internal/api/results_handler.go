package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/flashmath/internal/api/shared"
	"github.com/phrazzld/flashmath/internal/store"
)

const (
	// DefaultResultsLimit is the number of results listed when no limit is given.
	DefaultResultsLimit = 20
	// MaxResultsLimit caps the limit query parameter.
	MaxResultsLimit = 100
)

// ResultsHandler serves the history of completed sessions.
type ResultsHandler struct {
	results store.ResultStore
	logger  *slog.Logger
}

// NewResultsHandler creates a new ResultsHandler
func NewResultsHandler(results store.ResultStore, logger *slog.Logger) *ResultsHandler {
	if results == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("result store cannot be nil for ResultsHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ResultsHandler")
	}

	return &ResultsHandler{
		results: results,
		logger:  logger.With(slog.String("component", "results_handler")),
	}
}

// ListResults handles GET /results requests, newest first.
// The optional limit query parameter must be between 1 and MaxResultsLimit.
func (h *ResultsHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	limit := DefaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxResultsLimit {
			requestLogger(r, h.logger).Debug("invalid limit", slog.String("limit", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	results, err := h.results.ListRecent(r.Context(), limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list results")
		return
	}

	resp := ResultListResponse{Results: make([]ResultResponse, 0, len(results))}
	for _, res := range results {
		resp.Results = append(resp.Results, resultToResponse(res))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetResult handles GET /results/{id} requests, where id is the run_id
// reported on the session while the run was live.
func (h *ResultsHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	result, err := h.results.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get result")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resultToResponse(result))
}

// GetStats handles GET /results/stats requests.
func (h *ResultsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.results.Stats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Health handles GET /health requests.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
