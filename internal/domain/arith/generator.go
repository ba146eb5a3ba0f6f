package arith

import (
	"errors"
	"fmt"

	"github.com/phrazzld/flashmath/internal/domain"
)

// Common errors
var (
	ErrInvalidCount = errors.New("question count cannot be negative")
)

// Generator produces question sequences.
type Generator interface {
	// Generate returns exactly count questions with ids 1..count in order.
	// OperationAll is resolved independently for every question.
	Generate(op domain.Operation, diff domain.Difficulty, count int) ([]domain.Question, error)
}

// Verify interface compliance at compile time
var (
	_ Generator                = (*defaultGenerator)(nil)
	_ domain.QuestionGenerator = (*defaultGenerator)(nil)
)

// defaultGenerator draws operands from the range table using its Source.
type defaultGenerator struct {
	src Source
}

// NewGenerator creates a Generator that draws from src.
func NewGenerator(src Source) Generator {
	if src == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("src cannot be nil for Generator")
	}
	return &defaultGenerator{src: src}
}

// NewDefaultGenerator creates a Generator backed by a non-deterministic source.
func NewDefaultGenerator() Generator {
	return NewGenerator(NewSource())
}

var defaultGen = NewDefaultGenerator()

// Generate produces questions with the package's default generator.
func Generate(op domain.Operation, diff domain.Difficulty, count int) ([]domain.Question, error) {
	return defaultGen.Generate(op, diff, count)
}

// Generate implements the Generator interface.
func (g *defaultGenerator) Generate(
	op domain.Operation,
	diff domain.Difficulty,
	count int,
) ([]domain.Question, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidOperation, string(op))
	}
	if !diff.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDifficulty, string(diff))
	}
	if count < 0 {
		return nil, ErrInvalidCount
	}

	questions := make([]domain.Question, 0, count)
	for i := 1; i <= count; i++ {
		q, err := g.question(i, g.resolve(op), diff)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// resolve picks a concrete operation for OperationAll.
func (g *defaultGenerator) resolve(op domain.Operation) domain.Operation {
	if op != domain.OperationAll {
		return op
	}
	ops := domain.ConcreteOperations()
	return ops[g.src.IntRange(0, len(ops)-1)]
}

// question draws one question for a concrete operation.
func (g *defaultGenerator) question(
	id int,
	op domain.Operation,
	diff domain.Difficulty,
) (domain.Question, error) {
	r := RangeFor(op, diff)

	var operand1, operand2, answer int
	switch op {
	case domain.OperationSubtraction:
		operand1 = g.src.IntRange(r.Min1, r.Max1)
		operand2 = g.src.IntRange(r.Min2, min(operand1, r.Max2))
		answer = operand1 - operand2
	case domain.OperationDivision:
		divisor := g.src.IntRange(r.Min1, r.Max1)
		quotient := g.src.IntRange(r.Min2, r.Max2)
		operand1 = divisor * quotient
		operand2 = divisor
		answer = quotient
	case domain.OperationMultiplication:
		operand1 = g.src.IntRange(r.Min1, r.Max1)
		operand2 = g.src.IntRange(r.Min2, r.Max2)
		answer = operand1 * operand2
	default:
		operand1 = g.src.IntRange(r.Min1, r.Max1)
		operand2 = g.src.IntRange(r.Min2, r.Max2)
		answer = operand1 + operand2
	}

	q, err := domain.NewQuestion(id, operand1, operand2, op, answer)
	if err != nil {
		return domain.Question{}, fmt.Errorf("failed to build question %d: %w", id, err)
	}
	return q, nil
}
