package mocks

import (
	"sync"

	"github.com/phrazzld/flashmath/internal/domain"
)

var _ domain.QuestionGenerator = (*MockGenerator)(nil)

// MockGenerator implements domain.QuestionGenerator for testing.
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(op domain.Operation, diff domain.Difficulty, count int) ([]domain.Question, error)

	// Err is returned when GenerateFn is nil and Err is set
	Err error

	// Call tracking for verification
	GenerateCalls struct {
		mu           sync.Mutex
		Count        int
		Operations   []domain.Operation
		Difficulties []domain.Difficulty
		Counts       []int
	}
}

// Generate implements domain.QuestionGenerator. Without GenerateFn or Err it
// returns count additions of the form i + i = 2i.
func (m *MockGenerator) Generate(op domain.Operation, diff domain.Difficulty, count int) ([]domain.Question, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Operations = append(m.GenerateCalls.Operations, op)
	m.GenerateCalls.Difficulties = append(m.GenerateCalls.Difficulties, diff)
	m.GenerateCalls.Counts = append(m.GenerateCalls.Counts, count)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(op, diff, count)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	questions := make([]domain.Question, count)
	for i := range questions {
		n := i + 1
		q, err := domain.NewQuestion(n, n, n, domain.OperationAddition, 2*n)
		if err != nil {
			return nil, err
		}
		questions[i] = q
	}
	return questions, nil
}

// CallCount returns how many times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}
