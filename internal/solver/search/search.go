// Package search explores the compiled constraint problem with a
// propagation-driven branch-and-bound depth-first search.
//
// Each node binds one decision variable, propagates forced consequences to
// a fixpoint, and prunes when the admissible cost lower bound exceeds the
// shared incumbent. The result is deterministic for a given problem and
// configuration regardless of worker count: pruning is strictly-greater
// only, and equal-cost solutions are ordered by assignment signature.
package search

import (
	"context"
	"sync/atomic"
	"time"

	"roster-solver/internal/domain/objective"
	"roster-solver/internal/solver/compile"
	"roster-solver/pkg/logger"
	"roster-solver/pkg/metrics"
)

// Stats counts the work a search performed.
type Stats struct {
	Nodes      int64
	Backtracks int64
	Pruned     int64
	Forced     int64
	Workers    int
	Duration   time.Duration
}

// Result is the outcome of a search run.
type Result struct {
	// Feasible reports whether any complete assignment satisfies the
	// hard constraints.
	Feasible bool
	// Exhausted reports that the search space was fully explored (or
	// proven), so the answer is final: the assignment is optimal, or
	// infeasibility is proven.
	Exhausted bool
	// Cost is the objective value of Assignment; meaningless unless
	// Feasible.
	Cost float64
	// Assignment holds, per compiled variable, whether it is set.
	Assignment []bool

	Stats Stats
}

// Engine runs branch-and-bound searches over one compiled problem. It is
// safe for concurrent Run calls; each run builds its own state.
type Engine struct {
	prob *compile.Problem
	eval *objective.Evaluator
	log  logger.Logger

	dailyTerm       bool
	branchTrueFirst bool
	maxNodes        int64
	maxDuration     time.Duration
	workers         int

	// empDays[e] lists the EmpDay indices of employee e.
	empDays [][]int
}

// New builds an engine for a compiled problem.
func New(prob *compile.Problem, eval *objective.Evaluator, opts ...Option) (*Engine, error) {
	if prob == nil {
		return nil, ErrNilProblem
	}
	if eval == nil {
		return nil, ErrNilEvaluator
	}
	e := &Engine{
		prob:            prob,
		eval:            eval,
		branchTrueFirst: true,
		workers:         1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Named("search")
	}
	if e.workers < 1 {
		e.workers = 1
	}
	e.dailyTerm = eval.DailyTermEnabled()
	e.empDays = make([][]int, len(prob.Employees))
	for i := range prob.EmpDays {
		emp := prob.EmpDays[i].Emp
		e.empDays[emp] = append(e.empDays[emp], i)
	}
	return e, nil
}

// run bundles the shared pieces of one search invocation.
type run struct {
	best      *incumbent
	nodes     atomic.Int64
	truncated atomic.Bool

	backtracks atomic.Int64
	pruned     atomic.Int64
	forced     atomic.Int64
}

// Run searches for the minimum-cost assignment. It returns an unfeasible
// exhausted result when propagation proves there is none, and a truncated
// (non-exhausted) result when the node budget, deadline, or context cuts
// the search short.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.maxDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.maxDuration)
		defer cancel()
	}

	started := time.Now()
	r := &run{best: newIncumbent()}

	root := newState(e)
	if !e.rootPropagate(root) {
		e.log.Debug(ctx, "root propagation contradicted; no assignment exists")
		return e.finish(r, started, true), nil
	}
	r.forced.Add(root.forced)
	root.forced = 0
	if root.unboundCount() == 0 {
		r.best.offer(root.lowerBound(), root.val)
		return e.finish(r, started, true), nil
	}

	if e.workers == 1 {
		e.dfs(ctx, r, root)
	} else {
		e.runParallel(ctx, r, root)
	}

	return e.finish(r, started, !r.truncated.Load()), nil
}

func (e *Engine) finish(r *run, started time.Time, exhausted bool) *Result {
	cost, assign := r.best.snapshot()
	res := &Result{
		Feasible:   assign != nil,
		Exhausted:  exhausted,
		Cost:       cost,
		Assignment: assign,
		Stats: Stats{
			Nodes:      r.nodes.Load(),
			Backtracks: r.backtracks.Load(),
			Pruned:     r.pruned.Load(),
			Forced:     r.forced.Load(),
			Workers:    e.workers,
			Duration:   time.Since(started),
		},
	}
	metrics.RecordNodesExplored(res.Stats.Nodes)
	metrics.RecordBacktracks(res.Stats.Backtracks)
	metrics.RecordBranchesPruned(res.Stats.Pruned)
	metrics.RecordForcedBindings(res.Stats.Forced)
	return res
}

// rootPropagate seeds the queue with forcings that hold before any
// branching: workloads whose minimum needs every candidate, and days whose
// minimum needs every workable slot.
func (e *Engine) rootPropagate(s *state) bool {
	p := e.prob
	if p.EnforceWorkloadMin {
		for wi := range p.Workloads {
			wl := &p.Workloads[wi]
			if len(wl.Cands) < wl.Min {
				return false
			}
			if wl.Min > 0 && len(wl.Cands) == wl.Min {
				for _, c := range wl.Cands {
					s.enqueue(int32(c), boundTrue)
				}
			}
		}
	}
	if p.EnforceHourBounds {
		for ed := range p.EmpDays {
			day := &p.EmpDays[ed]
			if len(day.Slots) < day.Daily.Min {
				return false
			}
			if day.Daily.Min > 0 && len(day.Slots) == day.Daily.Min {
				s.forceOpenSingles(ed)
			}
		}
	}
	return s.propagate()
}

// dfs explores the subtree under the state's current partial assignment.
func (e *Engine) dfs(ctx context.Context, r *run, s *state) {
	if r.truncated.Load() {
		return
	}
	if ctx.Err() != nil {
		r.truncated.Store(true)
		return
	}
	n := r.nodes.Add(1)
	if e.maxNodes > 0 && n > e.maxNodes {
		r.truncated.Store(true)
		return
	}

	lb := s.lowerBound()
	if best, ok := r.best.bound(); ok && lb > best {
		r.pruned.Add(1)
		return
	}

	v := e.selectVar(s)
	if v < 0 {
		if r.best.offer(lb, s.val) {
			metrics.UpdateBestCost(lb)
			e.log.Debug(ctx, "new incumbent",
				logger.Float64("cost", lb),
				logger.Int64("nodes", n))
		}
		return
	}

	for _, val := range e.branchValues() {
		mark := s.mark()
		forcedBefore := s.forced
		if s.assign(v, val) {
			e.dfs(ctx, r, s)
		} else {
			r.backtracks.Add(1)
		}
		r.forced.Add(s.forced - forcedBefore)
		s.forced = forcedBefore
		s.undoTo(mark)
		if r.truncated.Load() {
			return
		}
	}
}

func (e *Engine) branchValues() [2]int8 {
	if e.branchTrueFirst {
		return [2]int8{boundTrue, boundFalse}
	}
	return [2]int8{boundFalse, boundTrue}
}

// selectVar picks the next decision variable: the lowest-indexed unbound
// candidate of the workload furthest under its minimum, then under its
// optimum; when every workload is settled, the lowest-indexed unbound
// variable. Variable index order is (employee, timeslot, skill), so index
// ties are id-order ties.
func (e *Engine) selectVar(s *state) int32 {
	p := e.prob
	bestMin, bestOpt := 0, 0
	for wi := range p.Workloads {
		if s.wlOpen[wi] == 0 {
			continue
		}
		wl := &p.Workloads[wi]
		dMin := wl.Min - int(s.wlFulfilled[wi])
		dOpt := wl.Opt - int(s.wlFulfilled[wi])
		if dMin < 0 {
			dMin = 0
		}
		if dOpt < 0 {
			dOpt = 0
		}
		if dMin > bestMin || (dMin == bestMin && dOpt > bestOpt) {
			bestMin, bestOpt = dMin, dOpt
		}
	}

	if bestMin > 0 || bestOpt > 0 {
		pick := int32(-1)
		for wi := range p.Workloads {
			if s.wlOpen[wi] == 0 {
				continue
			}
			wl := &p.Workloads[wi]
			dMin := wl.Min - int(s.wlFulfilled[wi])
			dOpt := wl.Opt - int(s.wlFulfilled[wi])
			if dMin < 0 {
				dMin = 0
			}
			if dOpt < 0 {
				dOpt = 0
			}
			if dMin != bestMin || dOpt != bestOpt {
				continue
			}
			for _, c := range wl.Cands {
				if s.val[c] == unbound {
					if pick < 0 || int32(c) < pick {
						pick = int32(c)
					}
					break
				}
			}
		}
		if pick >= 0 {
			return pick
		}
	}

	for i := range s.val {
		if s.val[i] == unbound {
			return int32(i)
		}
	}
	return -1
}
