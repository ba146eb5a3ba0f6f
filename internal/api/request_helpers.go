package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/api/shared"
	"github.com/phrazzld/flashmath/internal/domain"
	"github.com/phrazzld/flashmath/internal/platform/logger"
	"github.com/phrazzld/flashmath/internal/service/practice"
)

// ErrInvalidID is returned when a path parameter is not a valid UUID.
var ErrInvalidID = fmt.Errorf("%w: invalid id", domain.ErrValidation)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}

	return id, nil
}

// handlePathUUID extracts a UUID path parameter, writing a 400 response when
// it is missing or malformed.
func handlePathUUID(w http.ResponseWriter, r *http.Request, paramName string, log *slog.Logger) (uuid.UUID, bool) {
	id, err := getPathUUID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, false
	}
	return id, true
}

// parseAndValidateRequest decodes the JSON body into v and validates it,
// writing a 400 response on failure. An empty body is accepted when
// allowEmpty is set; v then keeps its zero value.
func parseAndValidateRequest(w http.ResponseWriter, r *http.Request, v interface{}, allowEmpty bool) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		if !(allowEmpty && errors.Is(err, shared.ErrEmptyBody)) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
			return false
		}
	}

	if err := shared.ValidateRequest(v); err != nil {
		HandleValidationError(w, r, err)
		return false
	}
	return true
}

// HandleAPIError writes the status and safe message for err. For errors that
// map to 500, defaultMsg (when non-empty) replaces the generic message.
// Setup-incomplete errors carry the learner-facing notice as details.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if notice, ok := practice.NoticeFor(err); ok {
		opts = append(opts, shared.WithDetails(notice))
	}
	if status == http.StatusServiceUnavailable {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// HandleValidationError writes a 400 response describing the first invalid field.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

func requestLogger(r *http.Request, fallback *slog.Logger) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), fallback)
}
