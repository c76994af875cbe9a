package search

import "errors"

var (
	// ErrNilProblem is returned when the engine is built without a
	// compiled problem.
	ErrNilProblem = errors.New("nil problem")

	// ErrNilEvaluator is returned when the engine is built without an
	// objective evaluator.
	ErrNilEvaluator = errors.New("nil evaluator")
)
