package search

import (
	"roster-solver/internal/domain/objective"
)

// Variable values.
const (
	unbound    int8 = -1
	boundFalse int8 = 0
	boundTrue  int8 = 1
)

// state is one worker's mutable search state. All counter updates are exact
// integer operations with exact inverses, so undoTo restores any earlier
// trail mark bit for bit.
type state struct {
	eng *Engine

	val   []int8
	trail []int32

	// Per (employee, timeslot) group: the variable bound true (-1 if none)
	// and the number of still-unbound variables.
	esTrue    []int32
	esUnbound []int32

	// Per (employee, day) group: worked slots and still-workable slots.
	edWorked []int32
	edOpen   []int32

	// Per employee, across the whole horizon.
	ewWorked []int32
	ewOpen   []int32

	// Per workload: assigned candidates and still-unbound candidates.
	wlFulfilled []int32
	wlOpen      []int32

	// Incremental objective lower-bound aggregates and their per-entity
	// terms. The aggregates equal the exact deviations once no variable
	// is unbound.
	weeklyDevLB  int
	dailyDevLB   int
	staffShortLB int
	empTerm      []int32
	empDayTerm   []int32
	workloadTerm []int32

	// Propagation queue.
	queue []forcedBind
	qHead int

	forced int64
}

type forcedBind struct {
	v   int32
	val int8
}

func newState(eng *Engine) *state {
	p := eng.prob
	s := &state{
		eng:          eng,
		val:          make([]int8, len(p.Vars)),
		esTrue:       make([]int32, len(p.EmpSlots)),
		esUnbound:    make([]int32, len(p.EmpSlots)),
		edWorked:     make([]int32, len(p.EmpDays)),
		edOpen:       make([]int32, len(p.EmpDays)),
		ewWorked:     make([]int32, len(p.Employees)),
		ewOpen:       make([]int32, len(p.Employees)),
		wlFulfilled:  make([]int32, len(p.Workloads)),
		wlOpen:       make([]int32, len(p.Workloads)),
		empTerm:      make([]int32, len(p.Employees)),
		empDayTerm:   make([]int32, len(p.EmpDays)),
		workloadTerm: make([]int32, len(p.Workloads)),
	}

	for i := range s.val {
		s.val[i] = unbound
	}
	for i := range p.EmpSlots {
		s.esTrue[i] = -1
		s.esUnbound[i] = int32(len(p.EmpSlots[i].Vars))
	}
	for i := range p.EmpDays {
		s.edOpen[i] = int32(len(p.EmpDays[i].Slots))
		s.ewOpen[p.EmpDays[i].Emp] += s.edOpen[i]
	}
	for i := range p.Workloads {
		s.wlOpen[i] = int32(len(p.Workloads[i].Cands))
	}

	for e := range p.Employees {
		s.refreshEmpTerm(e)
	}
	if eng.dailyTerm {
		for ed := range p.EmpDays {
			s.refreshEmpDayTerm(ed)
		}
	}
	for w := range p.Workloads {
		s.refreshWorkloadTerm(w)
	}
	return s
}

// weeklyCap returns the highest weekly total worth considering for the
// objective bound: the hard maximum when hour bounds are enforced,
// otherwise whatever the open slots allow.
func (s *state) weeklyCap(e int) int {
	if s.eng.prob.EnforceHourBounds {
		return s.eng.prob.Employees[e].Weekly.Max
	}
	return int(s.ewWorked[e] + s.ewOpen[e])
}

func (s *state) dailyCap(ed int) int {
	if s.eng.prob.EnforceHourBounds {
		return s.eng.prob.EmpDays[ed].Daily.Max
	}
	return int(s.edWorked[ed] + s.edOpen[ed])
}

func (s *state) refreshEmpTerm(e int) {
	emp := &s.eng.prob.Employees[e]
	term := int32(objective.HoursDeviationBound(int(s.ewWorked[e]), int(s.ewOpen[e]), emp.Weekly.Opt, s.weeklyCap(e)))
	s.weeklyDevLB += int(term - s.empTerm[e])
	s.empTerm[e] = term
}

func (s *state) refreshEmpDayTerm(ed int) {
	day := &s.eng.prob.EmpDays[ed]
	term := int32(objective.HoursDeviationBound(int(s.edWorked[ed]), int(s.edOpen[ed]), day.Daily.Opt, s.dailyCap(ed)))
	s.dailyDevLB += int(term - s.empDayTerm[ed])
	s.empDayTerm[ed] = term
}

func (s *state) refreshWorkloadTerm(w int) {
	wl := &s.eng.prob.Workloads[w]
	term := int32(objective.StaffingShortfallBound(int(s.wlFulfilled[w]), int(s.wlOpen[w]), wl.Opt))
	s.staffShortLB += int(term - s.workloadTerm[w])
	s.workloadTerm[w] = term
}

// mark returns the current trail position for a later undoTo.
func (s *state) mark() int { return len(s.trail) }

// undoTo unwinds all bindings made since the given mark.
func (s *state) undoTo(mark int) {
	p := s.eng.prob
	for len(s.trail) > mark {
		v := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		val := s.val[v]
		s.val[v] = unbound

		vr := &p.Vars[v]
		es, ed, e, w := vr.EmpSlot, vr.EmpDay, vr.Emp, vr.Workload

		if val == boundTrue {
			s.esTrue[es] = -1
			s.esUnbound[es]++
			s.edWorked[ed]--
			s.edOpen[ed]++
			s.ewWorked[e]--
			s.ewOpen[e]++
			if w >= 0 {
				s.wlFulfilled[w]--
				s.wlOpen[w]++
				s.refreshWorkloadTerm(w)
			}
		} else {
			s.esUnbound[es]++
			if s.esUnbound[es] == 1 && s.esTrue[es] == -1 {
				// The slot had been closed by this binding; reopen it.
				s.edOpen[ed]++
				s.ewOpen[e]++
			}
			if w >= 0 {
				s.wlOpen[w]++
				s.refreshWorkloadTerm(w)
			}
		}
		s.refreshEmpTerm(e)
		if s.eng.dailyTerm {
			s.refreshEmpDayTerm(ed)
		}
	}
	s.resetQueue()
}

func (s *state) resetQueue() {
	s.queue = s.queue[:0]
	s.qHead = 0
}

func (s *state) enqueue(v int32, val int8) {
	s.queue = append(s.queue, forcedBind{v: v, val: val})
}

// assign binds a variable and runs propagation to a fixpoint. It reports
// false on a contradiction; the caller is responsible for undoTo.
func (s *state) assign(v int32, val int8) bool {
	if !s.bind(v, val) {
		s.resetQueue()
		return false
	}
	return s.propagate()
}

// propagate processes the forced-binding queue until empty or contradicted.
func (s *state) propagate() bool {
	for s.qHead < len(s.queue) {
		f := s.queue[s.qHead]
		s.qHead++
		switch s.val[f.v] {
		case f.val:
			continue
		case unbound:
			s.forced++
			if !s.bind(f.v, f.val) {
				s.resetQueue()
				return false
			}
		default:
			// Forced to both values by different constraints.
			s.resetQueue()
			return false
		}
	}
	s.resetQueue()
	return true
}

// bind applies one binding and enqueues its consequences. Counter updates
// are always fully applied before any contradiction is reported, so the
// state stays exactly undoable.
func (s *state) bind(v int32, val int8) bool {
	p := s.eng.prob
	vr := &p.Vars[v]
	es, ed, e, w := vr.EmpSlot, vr.EmpDay, vr.Emp, vr.Workload

	if val == boundTrue && s.esTrue[es] != -1 {
		// Would double-book the employee at this timeslot.
		return false
	}

	s.val[v] = val
	s.trail = append(s.trail, v)

	if val == boundTrue {
		s.esTrue[es] = v
		s.esUnbound[es]--
		s.edWorked[ed]++
		s.edOpen[ed]--
		s.ewWorked[e]++
		s.ewOpen[e]--
		if w >= 0 {
			s.wlFulfilled[w]++
			s.wlOpen[w]--
			s.refreshWorkloadTerm(w)
		}
		s.refreshEmpTerm(e)
		if s.eng.dailyTerm {
			s.refreshEmpDayTerm(ed)
		}

		// The remaining skills at this slot are excluded.
		for _, o := range p.EmpSlots[es].Vars {
			if int32(o) != v && s.val[o] == unbound {
				s.enqueue(int32(o), boundFalse)
			}
		}

		if p.EnforceHourBounds {
			daily := p.EmpDays[ed].Daily
			weekly := p.Employees[e].Weekly
			if int(s.edWorked[ed]) > daily.Max || int(s.ewWorked[e]) > weekly.Max {
				return false
			}
			if int(s.edWorked[ed]) == daily.Max {
				s.closeDay(ed)
			}
			if int(s.ewWorked[e]) == weekly.Max {
				s.closeEmployee(e)
			}
		}
		if p.EnforceContiguity && !s.dayContiguous(ed) {
			return false
		}
		return true
	}

	s.esUnbound[es]--
	closed := s.esUnbound[es] == 0 && s.esTrue[es] == -1
	if closed {
		s.edOpen[ed]--
		s.ewOpen[e]--
	}
	if w >= 0 {
		s.wlOpen[w]--
		s.refreshWorkloadTerm(w)
	}
	s.refreshEmpTerm(e)
	if s.eng.dailyTerm {
		s.refreshEmpDayTerm(ed)
	}

	if w >= 0 && p.EnforceWorkloadMin {
		wl := &p.Workloads[w]
		reachable := int(s.wlFulfilled[w] + s.wlOpen[w])
		if reachable < wl.Min {
			return false
		}
		if int(s.wlFulfilled[w]) < wl.Min && reachable == wl.Min {
			// Every remaining candidate is needed.
			for _, c := range wl.Cands {
				if s.val[c] == unbound {
					s.enqueue(int32(c), boundTrue)
				}
			}
		}
	}

	if closed {
		if p.EnforceHourBounds {
			daily := p.EmpDays[ed].Daily
			weekly := p.Employees[e].Weekly
			if int(s.edWorked[ed]+s.edOpen[ed]) < daily.Min {
				return false
			}
			if int(s.ewWorked[e]+s.ewOpen[e]) < weekly.Min {
				return false
			}
			if int(s.edWorked[ed]) < daily.Min && int(s.edWorked[ed]+s.edOpen[ed]) == daily.Min {
				s.forceOpenSingles(ed)
			}
		}
		if p.EnforceContiguity && !s.dayContiguous(ed) {
			return false
		}
	}
	return true
}

// closeDay forces false every unbound variable of slots not yet worked on
// the employee's day.
func (s *state) closeDay(ed int) {
	p := s.eng.prob
	for _, es := range p.EmpDays[ed].Slots {
		if s.esTrue[es] != -1 {
			continue
		}
		for _, o := range p.EmpSlots[es].Vars {
			if s.val[o] == unbound {
				s.enqueue(int32(o), boundFalse)
			}
		}
	}
}

// closeEmployee forces false every unbound variable of the employee.
func (s *state) closeEmployee(e int) {
	for _, ed := range s.eng.empDays[e] {
		s.closeDay(ed)
	}
}

// forceOpenSingles forces true the last unbound variable of each still-open
// slot on the day. Slots with several unbound skills are left to branching;
// the contradiction checks above keep the search sound either way.
func (s *state) forceOpenSingles(ed int) {
	p := s.eng.prob
	for _, es := range p.EmpDays[ed].Slots {
		if s.esTrue[es] != -1 || s.esUnbound[es] != 1 {
			continue
		}
		for _, o := range p.EmpSlots[es].Vars {
			if s.val[o] == unbound {
				s.enqueue(int32(o), boundTrue)
				break
			}
		}
	}
}

// dayContiguous reports whether the day's worked slots can still form one
// contiguous block: no slot strictly between the first and last worked slot
// may be closed without being worked.
func (s *state) dayContiguous(ed int) bool {
	p := s.eng.prob
	slots := p.EmpDays[ed].Slots
	first, last := -1, -1
	for i, es := range slots {
		if s.esTrue[es] != -1 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	for i := first + 1; i < last; i++ {
		es := slots[i]
		if s.esTrue[es] == -1 && s.esUnbound[es] == 0 {
			return false
		}
	}
	return true
}

// unboundCount reports how many variables remain unbound.
func (s *state) unboundCount() int {
	return len(s.val) - len(s.trail)
}

// lowerBound returns the admissible cost bound of the current partial
// assignment; it is the exact cost once the assignment is complete.
func (s *state) lowerBound() float64 {
	return s.eng.eval.Cost(s.weeklyDevLB, s.staffShortLB, s.dailyDevLB)
}
