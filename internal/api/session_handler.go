package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashmath/internal/api/shared"
	"github.com/phrazzld/flashmath/internal/domain"
	"github.com/phrazzld/flashmath/internal/service/practice"
)

// SessionHandler handles practice session HTTP requests.
type SessionHandler struct {
	service practice.Service
	logger  *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(service practice.Service, logger *slog.Logger) *SessionHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("practice service cannot be nil for SessionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		service: service,
		logger:  logger.With(slog.String("component", "session_handler")),
	}
}

// CreateSession handles POST /sessions requests.
// The body is optional; any selections in it are applied immediately.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req CreateSessionRequest
	if !parseAndValidateRequest(w, r, &req, true) {
		return
	}

	view, err := h.service.CreateSession(r.Context(), practice.SessionSetup{
		Operation:  domain.Operation(req.Operation),
		Difficulty: domain.Difficulty(req.Difficulty),
		Count:      req.Count,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create session")
		return
	}

	log.Debug("session created", slog.String("session_id", view.ID.String()))
	w.Header().Set("Location", "/api/sessions/"+view.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(view))
}

// GetSession handles GET /sessions/{id} requests.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	view, err := h.service.GetSession(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view))
}

// SelectOperation handles PUT /sessions/{id}/operation requests.
func (h *SessionHandler) SelectOperation(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SelectOperationRequest
	if !parseAndValidateRequest(w, r, &req, false) {
		return
	}

	op, err := domain.ParseOperation(req.Operation)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.service.SelectOperation(r.Context(), id, op)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to select operation")
		return
	}

	log.Debug("operation selected",
		slog.String("session_id", id.String()),
		slog.String("operation", string(op)))
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view))
}

// SelectDifficulty handles PUT /sessions/{id}/difficulty requests.
func (h *SessionHandler) SelectDifficulty(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SelectDifficultyRequest
	if !parseAndValidateRequest(w, r, &req, false) {
		return
	}

	diff, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.service.SelectDifficulty(r.Context(), id, diff)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to select difficulty")
		return
	}

	log.Debug("difficulty selected",
		slog.String("session_id", id.String()),
		slog.String("difficulty", string(diff)))
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view))
}

// SelectCount handles PUT /sessions/{id}/count requests.
func (h *SessionHandler) SelectCount(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	var req SelectCountRequest
	if !parseAndValidateRequest(w, r, &req, false) {
		return
	}

	view, err := h.service.SelectCount(r.Context(), id, req.Count)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to select question count")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view))
}

// Start handles POST /sessions/{id}/start requests.
// An incomplete setup yields 422 with the notice in the error details.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	view, err := h.service.Start(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start practice")
		return
	}

	log.Debug("practice started",
		slog.String("session_id", id.String()),
		slog.Int("total_questions", view.TotalQuestions))
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view))
}

// SubmitAnswer handles POST /sessions/{id}/answer requests.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if !parseAndValidateRequest(w, r, &req, false) {
		return
	}

	result, err := h.service.SubmitAnswer(r.Context(), id, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, answerToResponse(result))
}

// RecordOutcome handles POST /sessions/{id}/outcome requests.
func (h *SessionHandler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	var req RecordOutcomeRequest
	if !parseAndValidateRequest(w, r, &req, false) {
		return
	}

	view, err := h.service.RecordOutcome(r.Context(), id, *req.Correct)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record outcome")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view))
}

// Advance handles POST /sessions/{id}/advance requests.
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	view, err := h.service.Advance(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to advance")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view))
}

// Reset handles POST /sessions/{id}/reset requests.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	view, err := h.service.Reset(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reset session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view))
}

// GetSummary handles GET /sessions/{id}/summary requests.
func (h *SessionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get summary")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaryToResponse(summary))
}

// DeleteSession handles DELETE /sessions/{id} requests.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.service.DeleteSession(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete session")
		return
	}

	log.Debug("session deleted", slog.String("session_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// GetOptions handles GET /options requests.
func (h *SessionHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.service.Options())
}
