package arith

import "github.com/phrazzld/flashmath/internal/domain"

// Range bounds the two operand draws for one operation and difficulty.
// Both bounds are inclusive.
//
// For division, the first pair bounds the divisor and the second pair bounds
// the quotient; the displayed dividend is their product.
type Range struct {
	Min1, Max1 int
	Min2, Max2 int
}

// DefaultRange is used for any operation and difficulty pair missing from the
// table.
var DefaultRange = Range{Min1: 1, Max1: 10, Min2: 1, Max2: 10}

type rangeKey struct {
	op   domain.Operation
	diff domain.Difficulty
}

var rangeTable = map[rangeKey]Range{
	{domain.OperationAddition, domain.DifficultyEasy}:   {Min1: 1, Max1: 10, Min2: 1, Max2: 10},
	{domain.OperationAddition, domain.DifficultyMedium}: {Min1: 10, Max1: 50, Min2: 10, Max2: 50},
	{domain.OperationAddition, domain.DifficultyHard}:   {Min1: 50, Max1: 100, Min2: 50, Max2: 100},

	{domain.OperationSubtraction, domain.DifficultyEasy}:   {Min1: 5, Max1: 20, Min2: 1, Max2: 5},
	{domain.OperationSubtraction, domain.DifficultyMedium}: {Min1: 25, Max1: 50, Min2: 5, Max2: 25},
	{domain.OperationSubtraction, domain.DifficultyHard}:   {Min1: 50, Max1: 100, Min2: 25, Max2: 50},

	{domain.OperationMultiplication, domain.DifficultyEasy}:   {Min1: 1, Max1: 5, Min2: 1, Max2: 5},
	{domain.OperationMultiplication, domain.DifficultyMedium}: {Min1: 2, Max1: 10, Min2: 2, Max2: 10},
	{domain.OperationMultiplication, domain.DifficultyHard}:   {Min1: 4, Max1: 12, Min2: 4, Max2: 12},

	{domain.OperationDivision, domain.DifficultyEasy}:   {Min1: 1, Max1: 5, Min2: 1, Max2: 10},
	{domain.OperationDivision, domain.DifficultyMedium}: {Min1: 2, Max1: 10, Min2: 2, Max2: 10},
	{domain.OperationDivision, domain.DifficultyHard}:   {Min1: 4, Max1: 12, Min2: 4, Max2: 12},
}

// RangeFor returns the operand range for a concrete operation and difficulty,
// falling back to DefaultRange for anything not in the table.
func RangeFor(op domain.Operation, diff domain.Difficulty) Range {
	if r, ok := rangeTable[rangeKey{op, diff}]; ok {
		return r
	}
	return DefaultRange
}
