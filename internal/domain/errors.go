// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidOperation is returned when an operation value is not one of
	// the known operations.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidDifficulty is returned when a difficulty value is not one of
	// the known difficulties.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidQuestionCount is returned when a session is asked to hold
	// fewer than one question.
	ErrInvalidQuestionCount = errors.New("question count must be at least 1")

	// ErrQuestionInconsistent is returned when a question's answer does not
	// follow from its operands and operation.
	ErrQuestionInconsistent = errors.New("question answer does not match its operands")

	// ErrEmptyAnswer is returned when an answer is submitted without any text.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrSetupIncomplete is returned when practice is started before both an
	// operation and a difficulty have been selected. It is recoverable: the
	// session stays in setup with its selections untouched.
	ErrSetupIncomplete = errors.New("setup incomplete")

	// ErrNotInSetup is returned when a setup selection is made outside the
	// setup state.
	ErrNotInSetup = errors.New("session is not in setup")

	// ErrNotInPractice is returned when an outcome is recorded or the session
	// is advanced outside the practice state.
	ErrNotInPractice = errors.New("session is not in practice")
)
