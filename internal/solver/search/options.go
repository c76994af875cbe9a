package search

import (
	"time"

	"roster-solver/pkg/logger"
)

// Option configures the engine.
type Option func(*Engine)

// WithBranchTrueFirst sets whether the assigned branch is explored before
// the skipped branch. Default true.
func WithBranchTrueFirst(v bool) Option {
	return func(e *Engine) {
		e.branchTrueFirst = v
	}
}

// WithMaxNodes bounds the number of explored nodes; 0 means unlimited.
// Hitting the bound truncates the search and the result is not exhausted.
func WithMaxNodes(n int64) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxNodes = n
		}
	}
}

// WithMaxDuration bounds the wall-clock search time; 0 means unlimited.
func WithMaxDuration(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.maxDuration = d
		}
	}
}

// WithWorkerCount sets the size of the search worker pool. Default 1.
func WithWorkerCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}
