package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashmath/internal/api/shared"
	"github.com/phrazzld/flashmath/internal/domain"
	"github.com/phrazzld/flashmath/internal/service/practice"
	"github.com/phrazzld/flashmath/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, practice.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Recoverable setup notice
	case errors.Is(err, domain.ErrSetupIncomplete):
		return http.StatusUnprocessableEntity

	// Wrong-state and conflict errors
	case errors.Is(err, domain.ErrNotInSetup),
		errors.Is(err, domain.ErrNotInPractice),
		errors.Is(err, practice.ErrNotInSummary),
		errors.Is(err, practice.ErrAlreadyAnswered),
		errors.Is(err, practice.ErrNotAnswered),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidOperation),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidQuestionCount),
		errors.Is(err, domain.ErrEmptyAnswer),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, practice.ErrCountOutOfRange),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Capacity
	case errors.Is(err, practice.ErrTooManySessions):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, practice.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, store.ErrNotFound):
		return "Result not found"

	case errors.Is(err, domain.ErrSetupIncomplete):
		return "Setup incomplete"

	case errors.Is(err, domain.ErrNotInSetup):
		return "Session is not in setup"
	case errors.Is(err, domain.ErrNotInPractice):
		return "Session is not in practice"
	case errors.Is(err, practice.ErrNotInSummary):
		return "Session has not finished"
	case errors.Is(err, practice.ErrAlreadyAnswered):
		return "Question already answered"
	case errors.Is(err, practice.ErrNotAnswered):
		return "Question has not been answered"
	case errors.Is(err, store.ErrDuplicate):
		return "Result already exists"

	case errors.Is(err, domain.ErrInvalidOperation):
		return "Invalid operation"
	case errors.Is(err, domain.ErrInvalidDifficulty):
		return "Invalid difficulty"
	case errors.Is(err, practice.ErrCountOutOfRange),
		errors.Is(err, domain.ErrInvalidQuestionCount):
		return "Question count out of range"
	case errors.Is(err, domain.ErrEmptyAnswer):
		return "Answer cannot be empty"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"

	case errors.Is(err, practice.ErrTooManySessions):
		return "Too many active sessions, try again later"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a user-friendly message
// naming the first offending field. Anything else yields a generic message.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	msg := getValidationTagMessage(fe.Tag())
	if fe.Tag() == "oneof" && fe.Param() != "" {
		msg = fmt.Sprintf("must be one of %s", strings.Join(strings.Fields(fe.Param()), ", "))
	}
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), msg)
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
