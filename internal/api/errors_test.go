package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/flashmath/internal/api/shared"
	"github.com/phrazzld/flashmath/internal/domain"
	"github.com/phrazzld/flashmath/internal/service/practice"
	"github.com/phrazzld/flashmath/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"nil error", nil, http.StatusInternalServerError},
		{"session not found", practice.ErrSessionNotFound, http.StatusNotFound},
		{"result not found", store.ErrResultNotFound, http.StatusNotFound},
		{"setup incomplete", domain.ErrSetupIncomplete, http.StatusUnprocessableEntity},
		{
			"wrapped setup incomplete",
			practice.NewServiceError("start", "cannot start", domain.ErrSetupIncomplete),
			http.StatusUnprocessableEntity,
		},
		{"not in setup", domain.ErrNotInSetup, http.StatusConflict},
		{"not in practice", domain.ErrNotInPractice, http.StatusConflict},
		{"not in summary", practice.ErrNotInSummary, http.StatusConflict},
		{"already answered", practice.ErrAlreadyAnswered, http.StatusConflict},
		{"not answered", practice.ErrNotAnswered, http.StatusConflict},
		{"result exists", store.ErrResultExists, http.StatusConflict},
		{"invalid operation", domain.ErrInvalidOperation, http.StatusBadRequest},
		{"invalid difficulty", domain.ErrInvalidDifficulty, http.StatusBadRequest},
		{"count out of range", fmt.Errorf("select: %w", practice.ErrCountOutOfRange), http.StatusBadRequest},
		{"empty answer", domain.ErrEmptyAnswer, http.StatusBadRequest},
		{"invalid id", ErrInvalidID, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"too many sessions", practice.ErrTooManySessions, http.StatusServiceUnavailable},
		{"unknown error", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"session not found", practice.ErrSessionNotFound, "Session not found"},
		{"result not found", store.ErrResultNotFound, "Result not found"},
		{"setup incomplete", domain.ErrSetupIncomplete, "Setup incomplete"},
		{"not in practice", domain.ErrNotInPractice, "Session is not in practice"},
		{"already answered", practice.ErrAlreadyAnswered, "Question already answered"},
		{"count out of range", practice.ErrCountOutOfRange, "Question count out of range"},
		{"empty answer", domain.ErrEmptyAnswer, "Answer cannot be empty"},
		{"invalid id", ErrInvalidID, "Invalid request"},
		{"too many sessions", practice.ErrTooManySessions, "Too many active sessions, try again later"},
		{"unknown error", errors.New("open /var/lib/flashmath.db: permission denied"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSafeMessagesDoNotLeakWrappedDetail(t *testing.T) {
	err := fmt.Errorf("query file:flashmath?mode=memory failed: %w",
		store.NewStoreError("result", "get", "SELECT * FROM session_results", store.ErrNotFound))

	msg := GetSafeErrorMessage(err)

	assert.Equal(t, "Result not found", msg)
	assert.NotContains(t, msg, "SELECT")
	assert.NotContains(t, msg, "file:")
}

func TestSanitizeValidationError(t *testing.T) {
	tests := []struct {
		name     string
		req      interface{}
		expected string
	}{
		{"required", &SelectOperationRequest{}, "Invalid operation: required field"},
		{"required pointer", &RecordOutcomeRequest{}, "Invalid correct: required field"},
		{
			"oneof lists choices",
			&CreateSessionRequest{Difficulty: "extreme"},
			"Invalid difficulty: must be one of easy, medium, hard",
		},
		{"gte", &CreateSessionRequest{Count: -1}, "Invalid count: too small"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := shared.ValidateRequest(tt.req)
			assert.Equal(t, tt.expected, SanitizeValidationError(err))
		})
	}

	t.Run("non validator error", func(t *testing.T) {
		assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
	})
}
