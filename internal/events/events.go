package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Practice session lifecycle event types.
const (
	TypeSessionStarted   = "session.started"
	TypeSessionCompleted = "session.completed"
	TypeSessionReset     = "session.reset"
)

// SessionEvent records a lifecycle change of a practice session.
type SessionEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// SessionID identifies the practice session the event belongs to
	SessionID uuid.UUID `json:"session_id"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *SessionEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewSessionEvent creates a new SessionEvent with the specified type and payload.
func NewSessionEvent(eventType string, sessionID uuid.UUID, payload interface{}) (*SessionEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return &SessionEvent{
		ID:        uuid.New(),
		Type:      eventType,
		SessionID: sessionID,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SessionStartedPayload accompanies TypeSessionStarted.
type SessionStartedPayload struct {
	// RunID identifies this setup → practice → summary run. A session that
	// is reset and started again gets a new RunID.
	RunID          uuid.UUID `json:"run_id"`
	Operation      string    `json:"operation"`
	Difficulty     string    `json:"difficulty"`
	TotalQuestions int       `json:"total_questions"`
}

// QuestionOutcome is one question of a finished session and what the learner
// reported for it.
type QuestionOutcome struct {
	Position     int    `json:"position"`
	QuestionText string `json:"question_text"`
	Answer       int    `json:"answer"`
	Answered     bool   `json:"answered"`
	Correct      bool   `json:"correct"`
}

// SessionCompletedPayload accompanies TypeSessionCompleted.
type SessionCompletedPayload struct {
	// RunID is the RunID of the matching session.started event.
	RunID          uuid.UUID         `json:"run_id"`
	Operation      string            `json:"operation"`
	Difficulty     string            `json:"difficulty"`
	TotalQuestions int               `json:"total_questions"`
	Correct        int               `json:"correct"`
	Attempted      int               `json:"attempted"`
	Percentage     int               `json:"percentage"`
	Questions      []QuestionOutcome `json:"questions"`
}

// SessionResetPayload accompanies TypeSessionReset.
type SessionResetPayload struct {
	// PreviousState is the state the session was in before the reset.
	PreviousState string `json:"previous_state"`
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *SessionEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *SessionEvent) error
}
