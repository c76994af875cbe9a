package materialize

import "errors"

var (
	// ErrNilProblem is returned when no compiled problem is given.
	ErrNilProblem = errors.New("nil problem")

	// ErrAssignmentSize is returned when the assignment length does not
	// match the problem's variable count.
	ErrAssignmentSize = errors.New("assignment length does not match variable count")
)
