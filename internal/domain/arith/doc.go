// Package arith generates arithmetic practice questions.
//
// Operands are drawn uniformly from a fixed range table keyed by operation and
// difficulty. Every generated question satisfies its operation's invariant:
// subtraction never goes negative and division is always exact. The random
// source is injectable so tests can script every draw.
package arith
