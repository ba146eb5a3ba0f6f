// Package domain contains the core entities of arithmetic practice: the
// operation and difficulty selections, the generated questions, and the
// practice session state machine that sequences setup, practice, and summary.
// It is independent of any specific transport or storage mechanism.
package domain
