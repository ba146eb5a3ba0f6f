package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Question is a single generated arithmetic question.
// It is immutable once created; the session only ever reads it.
type Question struct {
	ID           int       `json:"id"`
	Operand1     int       `json:"operand1"`
	Operand2     int       `json:"operand2"`
	Operation    Operation `json:"operation"`
	Answer       int       `json:"answer"`
	QuestionText string    `json:"question_text"`
	AnswerText   string    `json:"answer_text"`
}

// NewQuestion builds a Question and formats its display texts.
// It returns an error if op is not concrete or the answer does not follow
// from the operands.
func NewQuestion(id, operand1, operand2 int, op Operation, answer int) (Question, error) {
	symbol := op.Symbol()
	q := Question{
		ID:           id,
		Operand1:     operand1,
		Operand2:     operand2,
		Operation:    op,
		Answer:       answer,
		QuestionText: fmt.Sprintf("%d %s %d = ?", operand1, symbol, operand2),
		AnswerText:   fmt.Sprintf("%d %s %d = %d", operand1, symbol, operand2, answer),
	}

	if err := q.Validate(); err != nil {
		return Question{}, err
	}

	return q, nil
}

// Validate checks the question's arithmetic invariant.
// Subtraction must not go negative and division must be exact.
func (q Question) Validate() error {
	if q.ID < 1 {
		return fmt.Errorf("%w: question id must be at least 1", ErrValidation)
	}

	if !q.Operation.Concrete() {
		return fmt.Errorf("%w: %q is not a concrete operation", ErrInvalidOperation, string(q.Operation))
	}

	switch q.Operation {
	case OperationSubtraction:
		if q.Operand2 > q.Operand1 {
			return fmt.Errorf("%w: %d − %d is negative", ErrQuestionInconsistent, q.Operand1, q.Operand2)
		}
	case OperationDivision:
		if q.Operand2 == 0 || q.Operand1%q.Operand2 != 0 {
			return fmt.Errorf("%w: %d ÷ %d is not exact", ErrQuestionInconsistent, q.Operand1, q.Operand2)
		}
	}

	expected, err := q.Operation.Apply(q.Operand1, q.Operand2)
	if err != nil {
		return err
	}
	if expected != q.Answer {
		return fmt.Errorf("%w: expected %d, got %d", ErrQuestionInconsistent, expected, q.Answer)
	}

	return nil
}

// CheckAnswer reports whether raw is the correct answer to q.
// Surrounding whitespace is ignored. Text that is not a base-10 integer is
// an incorrect answer, not an error; only empty input is rejected.
func CheckAnswer(q Question, raw string) (bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false, ErrEmptyAnswer
	}

	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return false, nil
	}

	return parsed == q.Answer, nil
}
