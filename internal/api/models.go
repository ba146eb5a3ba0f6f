package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/domain"
	"github.com/phrazzld/flashmath/internal/service/practice"
	"github.com/phrazzld/flashmath/internal/store"
)

// Requests

// CreateSessionRequest defines the optional payload for POST /sessions.
// Any selection given is applied in order: operation, difficulty, count.
type CreateSessionRequest struct {
	Operation  string `json:"operation"  validate:"omitempty,oneof=addition subtraction multiplication division all"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Count      int    `json:"count"      validate:"omitempty,gte=1"`
}

// SelectOperationRequest defines the payload for PUT /sessions/{id}/operation.
type SelectOperationRequest struct {
	Operation string `json:"operation" validate:"required"`
}

// SelectDifficultyRequest defines the payload for PUT /sessions/{id}/difficulty.
type SelectDifficultyRequest struct {
	Difficulty string `json:"difficulty" validate:"required"`
}

// SelectCountRequest defines the payload for PUT /sessions/{id}/count.
type SelectCountRequest struct {
	Count int `json:"count" validate:"required"`
}

// SubmitAnswerRequest defines the payload for POST /sessions/{id}/answer.
// Blank answers pass validation and are rejected by the session itself.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"max=32"`
}

// RecordOutcomeRequest defines the payload for POST /sessions/{id}/outcome.
// Correct is a pointer so that an explicit false is distinguishable from a missing field.
type RecordOutcomeRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// Responses

// QuestionResponse is a question as shown on a flash card. Answer and
// AnswerText are left out until the question has an outcome.
type QuestionResponse struct {
	ID           int    `json:"id"`
	Operand1     int    `json:"operand1"`
	Operand2     int    `json:"operand2"`
	Operation    string `json:"operation"`
	Symbol       string `json:"symbol"`
	QuestionText string `json:"question_text"`
	Answer       *int   `json:"answer,omitempty"`
	AnswerText   string `json:"answer_text,omitempty"`
}

// SessionResponse is the observable state of a practice session.
type SessionResponse struct {
	ID                 string            `json:"id"`
	RunID              string            `json:"run_id,omitempty"`
	State              string            `json:"state"`
	SetupStep          string            `json:"setup_step"`
	Operation          string            `json:"operation,omitempty"`
	OperationName      string            `json:"operation_name,omitempty"`
	Difficulty         string            `json:"difficulty,omitempty"`
	DifficultyName     string            `json:"difficulty_name,omitempty"`
	Count              int               `json:"count"`
	CurrentIndex       int               `json:"current_index"`
	QuestionNumber     int               `json:"question_number,omitempty"`
	TotalQuestions     int               `json:"total_questions"`
	Correct            int               `json:"correct"`
	Attempted          int               `json:"attempted"`
	Answered           bool              `json:"answered"`
	AutoAdvancePending bool              `json:"auto_advance_pending"`
	Current            *QuestionResponse `json:"current,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// AnswerResponse reports the result of checking a typed answer.
type AnswerResponse struct {
	Correct       bool            `json:"correct"`
	CorrectAnswer int             `json:"correct_answer"`
	AnswerText    string          `json:"answer_text"`
	Session       SessionResponse `json:"session"`
}

// SummaryResponse is the final report of a finished session.
type SummaryResponse struct {
	Operation      string             `json:"operation"`
	OperationName  string             `json:"operation_name"`
	Difficulty     string             `json:"difficulty"`
	DifficultyName string             `json:"difficulty_name"`
	TotalQuestions int                `json:"total_questions"`
	Correct        int                `json:"correct"`
	Attempted      int                `json:"attempted"`
	Percentage     int                `json:"percentage"`
	Message        string             `json:"message"`
	Questions      []QuestionResponse `json:"questions"`
}

// ResultResponse is a completed session as recorded in the result history.
type ResultResponse struct {
	ID             string                 `json:"id"`
	SessionID      string                 `json:"session_id"`
	Operation      string                 `json:"operation"`
	OperationName  string                 `json:"operation_name"`
	Difficulty     string                 `json:"difficulty"`
	TotalQuestions int                    `json:"total_questions"`
	Correct        int                    `json:"correct"`
	Attempted      int                    `json:"attempted"`
	Percentage     int                    `json:"percentage"`
	Message        string                 `json:"message"`
	CompletedAt    time.Time              `json:"completed_at"`
	Questions      []store.QuestionRecord `json:"questions,omitempty"`
}

// ResultListResponse wraps the recent results.
type ResultListResponse struct {
	Results []ResultResponse `json:"results"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

func questionToResponse(q domain.Question, reveal bool) QuestionResponse {
	resp := QuestionResponse{
		ID:           q.ID,
		Operand1:     q.Operand1,
		Operand2:     q.Operand2,
		Operation:    string(q.Operation),
		Symbol:       q.Operation.Symbol(),
		QuestionText: q.QuestionText,
	}
	if reveal {
		answer := q.Answer
		resp.Answer = &answer
		resp.AnswerText = q.AnswerText
	}
	return resp
}

func sessionToResponse(v *practice.SessionView) SessionResponse {
	resp := SessionResponse{
		ID:                 v.ID.String(),
		State:              string(v.State),
		SetupStep:          string(v.SetupStep),
		Operation:          string(v.Operation),
		OperationName:      v.Operation.DisplayName(),
		Difficulty:         string(v.Difficulty),
		DifficultyName:     v.Difficulty.DisplayName(),
		Count:              v.Count,
		CurrentIndex:       v.CurrentIndex,
		TotalQuestions:     v.TotalQuestions,
		Correct:            v.Correct,
		Attempted:          v.Attempted,
		Answered:           v.Answered,
		AutoAdvancePending: v.AutoAdvancePending,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
	if v.RunID != uuid.Nil {
		resp.RunID = v.RunID.String()
	}
	if v.Current != nil {
		q := questionToResponse(*v.Current, v.Answered)
		resp.Current = &q
		resp.QuestionNumber = v.CurrentIndex + 1
	}
	return resp
}

func answerToResponse(a *practice.AnswerResult) AnswerResponse {
	resp := AnswerResponse{
		Correct:       a.Correct,
		CorrectAnswer: a.CorrectAnswer,
		AnswerText:    a.AnswerText,
	}
	if a.Session != nil {
		resp.Session = sessionToResponse(a.Session)
	}
	return resp
}

func summaryToResponse(s *domain.Summary) SummaryResponse {
	questions := make([]QuestionResponse, 0, len(s.Questions))
	for _, q := range s.Questions {
		questions = append(questions, questionToResponse(q, true))
	}
	return SummaryResponse{
		Operation:      string(s.Operation),
		OperationName:  s.OperationName,
		Difficulty:     string(s.Difficulty),
		DifficultyName: s.DifficultyName,
		TotalQuestions: s.TotalQuestions,
		Correct:        s.Correct,
		Attempted:      s.Attempted,
		Percentage:     s.Percentage,
		Message:        s.Message,
		Questions:      questions,
	}
}

func resultToResponse(r *store.SessionResult) ResultResponse {
	return ResultResponse{
		ID:             r.ID.String(),
		SessionID:      r.SessionID.String(),
		Operation:      r.Operation,
		OperationName:  domain.Operation(r.Operation).DisplayName(),
		Difficulty:     r.Difficulty,
		TotalQuestions: r.TotalQuestions,
		Correct:        r.Correct,
		Attempted:      r.Attempted,
		Percentage:     r.Percentage,
		Message:        domain.FeedbackMessage(r.Percentage),
		CompletedAt:    r.CompletedAt,
		Questions:      r.Questions,
	}
}
