// Package mocks provides centralized mock implementations for testing.
//
// Each mock has function fields for custom behavior, default return values,
// and call tracking for verification:
//
//	gen := &mocks.MockGenerator{
//	    GenerateFn: func(op domain.Operation, diff domain.Difficulty, count int) ([]domain.Question, error) {
//	        return nil, errors.New("boom")
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
