package solver

import (
	"time"

	"roster-solver/internal/config"
	"roster-solver/pkg/logger"
)

// Option applies a configuration option to the Solver.
type Option func(*Solver)

// WithWeights sets the objective weights: weekly hour deviation, staffing
// shortfall below opt, and the optional daily deviation term (0 disables
// it). Negative weights are ignored.
func WithWeights(hours, staffing, daily float64) Option {
	return func(s *Solver) {
		if hours >= 0 {
			s.hoursWeight = hours
		}
		if staffing >= 0 {
			s.staffingWeight = staffing
		}
		if daily >= 0 {
			s.dailyHoursWeight = daily
		}
	}
}

// WithMaxNodes bounds the number of search nodes; 0 means unlimited.
func WithMaxNodes(n int64) Option {
	return func(s *Solver) {
		if n >= 0 {
			s.maxNodes = n
		}
	}
}

// WithMaxDuration bounds the wall-clock search time; 0 means unlimited.
func WithMaxDuration(d time.Duration) Option {
	return func(s *Solver) {
		if d >= 0 {
			s.maxDuration = d
		}
	}
}

// WithBranchOrder sets which branch the search explores first.
func WithBranchOrder(order string) Option {
	return func(s *Solver) {
		if order == config.BranchTrueFirst || order == config.BranchFalseFirst {
			s.branchOrder = order
		}
	}
}

// WithWorkerCount sets the search worker pool size.
func WithWorkerCount(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithHourBounds toggles the daily and weekly hour-bound constraints.
func WithHourBounds(enforce bool) Option {
	return func(s *Solver) {
		s.enforceHourBounds = enforce
	}
}

// WithWorkloadMin toggles the workload-minimum constraints.
func WithWorkloadMin(enforce bool) Option {
	return func(s *Solver) {
		s.enforceWorkloadMin = enforce
	}
}

// WithContiguousShifts toggles the contiguous-shift constraint.
func WithContiguousShifts(enforce bool) Option {
	return func(s *Solver) {
		s.enforceContiguity = enforce
	}
}

// WithLogger sets a custom logger for the solver.
func WithLogger(l logger.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}
