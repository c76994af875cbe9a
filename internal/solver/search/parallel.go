package search

import (
	"context"
	"math/bits"
	"sync"

	"roster-solver/pkg/metrics"
)

// decision is one replayable branching step.
type decision struct {
	v   int32
	val int8
}

// runParallel fans the search out over a worker pool. The root subtree is
// expanded into a frontier of decision prefixes; each worker replays a
// prefix on its own private state and searches the subtree below it. All
// workers share the incumbent and the node budget.
func (e *Engine) runParallel(ctx context.Context, r *run, root *state) {
	frontier := e.buildFrontier(ctx, r, root)
	if len(frontier) == 0 || r.truncated.Load() {
		return
	}

	metrics.UpdateActiveWorkers(e.workers)
	defer metrics.UpdateActiveWorkers(0)

	jobs := make(chan []decision)
	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.searchWorker(ctx, r, jobs)
		}()
	}

	for _, pfx := range frontier {
		select {
		case jobs <- pfx:
		case <-ctx.Done():
			r.truncated.Store(true)
			close(jobs)
			wg.Wait()
			return
		}
	}
	close(jobs)
	wg.Wait()
}

func (e *Engine) searchWorker(ctx context.Context, r *run, jobs <-chan []decision) {
	s := newState(e)
	if !e.rootPropagate(s) {
		// Root contradiction was ruled out before fan-out.
		return
	}
	s.forced = 0
	base := s.mark()

	for pfx := range jobs {
		ok := true
		for _, d := range pfx {
			if s.val[d.v] != unbound {
				if s.val[d.v] != d.val {
					ok = false
				}
				continue
			}
			if !s.assign(d.v, d.val) {
				ok = false
			}
			if !ok {
				break
			}
		}
		if ok {
			e.dfs(ctx, r, s)
		}
		r.forced.Add(s.forced)
		s.forced = 0
		s.undoTo(base)
		if r.truncated.Load() {
			return
		}
	}
}

// buildFrontier expands the shallow top of the tree into enough prefixes to
// keep the pool busy. Complete assignments met during expansion are offered
// directly.
func (e *Engine) buildFrontier(ctx context.Context, r *run, root *state) [][]decision {
	depth := bits.Len(uint(e.workers*4 - 1))
	if n := len(e.prob.Vars); depth > n {
		depth = n
	}
	var out [][]decision
	e.expand(ctx, r, root, depth, nil, &out)
	return out
}

func (e *Engine) expand(ctx context.Context, r *run, s *state, depth int, pfx []decision, out *[][]decision) {
	if ctx.Err() != nil {
		r.truncated.Store(true)
		return
	}
	v := e.selectVar(s)
	if v < 0 {
		if r.best.offer(s.lowerBound(), s.val) {
			metrics.UpdateBestCost(s.lowerBound())
		}
		return
	}
	if depth == 0 {
		cp := make([]decision, len(pfx))
		copy(cp, pfx)
		*out = append(*out, cp)
		return
	}
	for _, val := range e.branchValues() {
		mark := s.mark()
		if s.assign(v, val) {
			e.expand(ctx, r, s, depth-1, append(pfx, decision{v: v, val: val}), out)
		} else {
			r.backtracks.Add(1)
		}
		s.undoTo(mark)
	}
}
