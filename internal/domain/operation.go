package domain

import (
	"fmt"
	"strings"
)

// Operation identifies the arithmetic operation a question uses.
// OperationAll is a selector only: it is resolved to one of the concrete
// operations for every generated question and never stored on a Question.
type Operation string

// Valid operations.
const (
	OperationAddition       Operation = "addition"
	OperationSubtraction    Operation = "subtraction"
	OperationMultiplication Operation = "multiplication"
	OperationDivision       Operation = "division"
	OperationAll            Operation = "all"
)

// ConcreteOperations returns the operations a question can actually carry,
// in a stable order.
func ConcreteOperations() []Operation {
	return []Operation{
		OperationAddition,
		OperationSubtraction,
		OperationMultiplication,
		OperationDivision,
	}
}

// Operations returns every selectable operation, including OperationAll.
func Operations() []Operation {
	return append(ConcreteOperations(), OperationAll)
}

// ParseOperation converts a string to an Operation.
// Returns ErrInvalidOperation if the value is unknown.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	if !op.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOperation, s)
	}
	return op, nil
}

// Valid reports whether o is one of the known operations.
func (o Operation) Valid() bool {
	return o.Concrete() || o == OperationAll
}

// Concrete reports whether o can be stored on a question.
func (o Operation) Concrete() bool {
	switch o {
	case OperationAddition, OperationSubtraction, OperationMultiplication, OperationDivision:
		return true
	default:
		return false
	}
}

// Symbol returns the display symbol for a concrete operation.
// Subtraction uses U+2212 MINUS SIGN rather than a hyphen.
func (o Operation) Symbol() string {
	switch o {
	case OperationAddition:
		return "+"
	case OperationSubtraction:
		return "−"
	case OperationMultiplication:
		return "×"
	case OperationDivision:
		return "÷"
	default:
		return ""
	}
}

// DisplayName returns the human label for the operation.
// The empty operation has an empty label.
func (o Operation) DisplayName() string {
	switch o {
	case OperationAddition:
		return "Addition"
	case OperationSubtraction:
		return "Subtraction"
	case OperationMultiplication:
		return "Multiplication"
	case OperationDivision:
		return "Division"
	case OperationAll:
		return "Mixed Operations"
	default:
		return ""
	}
}

// Apply computes a op b for a concrete operation.
// Division is integer division; callers are expected to only divide exactly.
func (o Operation) Apply(a, b int) (int, error) {
	switch o {
	case OperationAddition:
		return a + b, nil
	case OperationSubtraction:
		return a - b, nil
	case OperationMultiplication:
		return a * b, nil
	case OperationDivision:
		if b == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrQuestionInconsistent)
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: %q is not a concrete operation", ErrInvalidOperation, string(o))
	}
}

// Difficulty selects the operand ranges questions are drawn from.
type Difficulty string

// Valid difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns every difficulty in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty converts a string to a Difficulty.
// Returns ErrInvalidDifficulty if the value is unknown.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return d, nil
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// DisplayName returns the difficulty with its first letter capitalised.
func (d Difficulty) DisplayName() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}
