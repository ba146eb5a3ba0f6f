package domain

import "math"

// Feedback messages shown with the final score.
const (
	MessageExcellent = "Excellent work!"
	MessageGreat     = "Great job!"
	MessageGood      = "Good effort!"
	MessageKeepGoing = "Keep practicing!"
)

// Summary is the read-only report of a session.
type Summary struct {
	Operation      Operation  `json:"operation"`
	Difficulty     Difficulty `json:"difficulty"`
	OperationName  string     `json:"operation_name"`
	DifficultyName string     `json:"difficulty_name"`
	TotalQuestions int        `json:"total_questions"`
	Correct        int        `json:"correct"`
	Attempted      int        `json:"attempted"`
	Percentage     int        `json:"percentage"`
	Message        string     `json:"message"`
	Questions      []Question `json:"questions"`
}

// Percentage returns correct as a whole-number share of total, rounded half
// away from zero. A total of zero yields zero.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// FeedbackMessage returns the encouragement shown for a percentage.
func FeedbackMessage(percentage int) string {
	switch {
	case percentage >= 90:
		return MessageExcellent
	case percentage >= 70:
		return MessageGreat
	case percentage >= 50:
		return MessageGood
	default:
		return MessageKeepGoing
	}
}

// Summary builds the report from the session's current data.
func (s *Session) Summary() Summary {
	pct := Percentage(s.correct, len(s.questions))
	return Summary{
		Operation:      s.operation,
		Difficulty:     s.difficulty,
		OperationName:  s.operation.DisplayName(),
		DifficultyName: s.difficulty.DisplayName(),
		TotalQuestions: len(s.questions),
		Correct:        s.correct,
		Attempted:      s.attempted,
		Percentage:     pct,
		Message:        FeedbackMessage(pct),
		Questions:      s.Questions(),
	}
}

// Snapshot is a value copy of a session's observable state.
type Snapshot struct {
	State          State      `json:"state"`
	SetupStep      SetupStep  `json:"setup_step"`
	Operation      Operation  `json:"operation,omitempty"`
	Difficulty     Difficulty `json:"difficulty,omitempty"`
	Count          int        `json:"count"`
	CurrentIndex   int        `json:"current_index"`
	TotalQuestions int        `json:"total_questions"`
	Correct        int        `json:"correct"`
	Attempted      int        `json:"attempted"`
	Current        *Question  `json:"current,omitempty"`
}

// Snapshot captures the session's observable state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:          s.state,
		SetupStep:      s.setupStep,
		Operation:      s.operation,
		Difficulty:     s.difficulty,
		Count:          s.count,
		CurrentIndex:   s.current,
		TotalQuestions: len(s.questions),
		Correct:        s.correct,
		Attempted:      s.attempted,
	}
	if q, ok := s.CurrentQuestion(); ok {
		snap.Current = &q
	}
	return snap
}
