// Package solver wires the solving pipeline: validate the input into a
// snapshot, compile the constraint problem, search for the minimum-cost
// assignment, and materialize the winning schedule.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roster-solver/internal/config"
	"roster-solver/internal/domain/model"
	"roster-solver/internal/domain/objective"
	"roster-solver/internal/solver/compile"
	"roster-solver/internal/solver/materialize"
	"roster-solver/internal/solver/search"
	"roster-solver/pkg/logger"
	"roster-solver/pkg/metrics"
)

// Stats summarizes the work one solve performed.
type Stats struct {
	Variables  int           `json:"variables"`
	Nodes      int64         `json:"nodes"`
	Backtracks int64         `json:"backtracks"`
	Pruned     int64         `json:"pruned"`
	Forced     int64         `json:"forced"`
	Workers    int           `json:"workers"`
	Duration   time.Duration `json:"duration"`
}

// Result is the outcome of one solve.
type Result struct {
	RunID    string  `json:"run_id"`
	Feasible bool    `json:"feasible"`
	Optimal  bool    `json:"optimal"`
	Cost     float64 `json:"cost"`

	Schedule   *materialize.Schedule `json:"schedule,omitempty"`
	Violations []compile.Violation   `json:"violations,omitempty"`

	Stats Stats `json:"stats"`
}

// Solver runs solves with a fixed configuration. It holds no per-run
// state, so one Solver may serve concurrent Solve calls.
type Solver struct {
	hoursWeight      float64
	staffingWeight   float64
	dailyHoursWeight float64

	maxNodes    int64
	maxDuration time.Duration
	branchOrder string
	workerCount int

	enforceHourBounds  bool
	enforceWorkloadMin bool
	enforceContiguity  bool

	logger logger.Logger
}

// New creates a Solver with default settings.
func New(opts ...Option) *Solver {
	s := &Solver{
		hoursWeight:        1,
		staffingWeight:     1,
		branchOrder:        config.BranchTrueFirst,
		workerCount:        1,
		enforceHourBounds:  true,
		enforceWorkloadMin: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("app")
	}
	return s
}

// FromConfig translates a loaded configuration into solver options.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithWeights(cfg.HoursWeight, cfg.StaffingWeight, cfg.DailyHoursWeight),
		WithMaxNodes(cfg.MaxNodes),
		WithMaxDuration(cfg.MaxDuration()),
		WithBranchOrder(cfg.BranchOrder),
		WithWorkerCount(cfg.WorkerCount),
		WithHourBounds(cfg.EnforceHourBounds),
		WithWorkloadMin(cfg.EnforceWorkloadMin),
		WithContiguousShifts(cfg.EnforceContiguousShifts),
	}
}

// Solve validates the input and searches for its minimum-cost roster.
//
// Invalid input returns an error. A valid but unsatisfiable instance is
// not an error: the result reports Feasible false with the structural
// violations that explain it, when any exist.
func (s *Solver) Solve(ctx context.Context, in model.Input) (*Result, error) {
	runID := uuid.NewString()
	started := time.Now()
	metrics.RecordSolveStarted()

	s.logger.Info(ctx, "starting solve",
		logger.String("runID", runID),
		logger.Int("employees", len(in.Employees)),
		logger.Int("timeslots", len(in.Timeslots)),
		logger.Int("workloads", len(in.Workloads)))

	snap, err := model.NewSnapshot(in)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			metrics.RecordValidationError(verr.Entity)
		}
		s.logger.Error(ctx, "input rejected",
			logger.String("runID", runID),
			logger.Error(err))
		return nil, fmt.Errorf("validating input: %w", err)
	}

	prob := compile.Compile(snap,
		compile.WithHourBounds(s.enforceHourBounds),
		compile.WithWorkloadMin(s.enforceWorkloadMin),
		compile.WithContiguousShifts(s.enforceContiguity),
	)
	metrics.ObserveVariablesCompiled(len(prob.Vars))

	if violations := prob.StructuralViolations(); len(violations) > 0 {
		for range violations {
			metrics.RecordStructuralConflict()
		}
		s.logger.Warn(ctx, "instance is structurally infeasible",
			logger.String("runID", runID),
			logger.Int("violations", len(violations)))
		metrics.RecordSolveCompleted(false, true, time.Since(started).Seconds())
		return &Result{
			RunID:      runID,
			Violations: violations,
			Stats:      Stats{Variables: len(prob.Vars), Duration: time.Since(started)},
		}, nil
	}

	eng, err := search.New(prob, s.evaluator(),
		search.WithBranchTrueFirst(s.branchOrder != config.BranchFalseFirst),
		search.WithMaxNodes(s.maxNodes),
		search.WithMaxDuration(s.maxDuration),
		search.WithWorkerCount(s.workerCount),
		search.WithLogger(s.logger.Named("search")),
	)
	if err != nil {
		return nil, fmt.Errorf("building search engine: %w", err)
	}

	sr, err := eng.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	res := &Result{
		RunID:    runID,
		Feasible: sr.Feasible,
		Optimal:  sr.Feasible && sr.Exhausted,
		Cost:     sr.Cost,
		Stats: Stats{
			Variables:  len(prob.Vars),
			Nodes:      sr.Stats.Nodes,
			Backtracks: sr.Stats.Backtracks,
			Pruned:     sr.Stats.Pruned,
			Forced:     sr.Stats.Forced,
			Workers:    sr.Stats.Workers,
			Duration:   time.Since(started),
		},
	}

	if sr.Feasible {
		sched, err := materialize.Build(prob, sr.Assignment)
		if err != nil {
			return nil, fmt.Errorf("materializing schedule: %w", err)
		}
		res.Schedule = sched
	}

	metrics.RecordSolveCompleted(sr.Feasible, sr.Exhausted, time.Since(started).Seconds())
	s.logger.Info(ctx, "solve finished",
		logger.String("runID", runID),
		logger.Bool("feasible", res.Feasible),
		logger.Bool("optimal", res.Optimal),
		logger.Float64("cost", res.Cost),
		logger.Int64("nodes", res.Stats.Nodes),
		logger.Duration("duration", res.Stats.Duration))

	return res, nil
}

func (s *Solver) evaluator() *objective.Evaluator {
	return objective.New(
		objective.WithHoursWeight(s.hoursWeight),
		objective.WithStaffingWeight(s.staffingWeight),
		objective.WithDailyHoursWeight(s.dailyHoursWeight),
	)
}
