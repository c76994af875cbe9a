// Package compile translates a domain snapshot into the constraint problem
// consumed by the search engine: decision variables, constraint groups, and
// a structural feasibility analysis.
//
// A decision variable exists only for (employee, timeslot, skill) triples
// where the employee holds the skill and has an availability record for the
// timeslot. All other combinations are omitted entirely to bound problem
// size; this pre-filter is part of the compiler's contract.
package compile

import (
	"time"

	"roster-solver/internal/domain/model"
)

// Var is a boolean decision variable: employee works timeslot fulfilling
// skill. Dense indices refer into the owning Problem's tables.
type Var struct {
	Employee model.EmployeeID
	Timeslot model.TimeslotID
	Skill    model.SkillID

	Emp      int // index into Problem.Employees
	Slot     int // index into Problem.Slots
	EmpSlot  int // index into Problem.EmpSlots
	EmpDay   int // index into Problem.EmpDays
	Workload int // index into Problem.Workloads, -1 if the pair has no requirement
}

// EmployeeInfo is the per-employee data the engine needs.
type EmployeeInfo struct {
	ID     model.EmployeeID
	Daily  model.HourBounds
	Weekly model.HourBounds
}

// SlotInfo is the per-timeslot data the engine needs.
type SlotInfo struct {
	ID   model.TimeslotID
	Day  int // index into Problem.Days
	Hour int
}

// EmpSlotGroup holds one employee's variables at one timeslot; at most one
// of them may be true (single-booking).
type EmpSlotGroup struct {
	Emp    int
	Slot   int
	EmpDay int
	Vars   []int // var indices, ascending skill id
}

// EmpDayGroup holds one employee's workable timeslots on one day; the
// daily hour bounds apply to it. A group exists only where the employee
// has at least one available timeslot that day, so an employee with no
// availability on a day vacuously satisfies the daily minimum.
type EmpDayGroup struct {
	Emp   int
	Day   int
	Slots []int // EmpSlot indices, ascending hour then slot id
	Daily model.HourBounds
}

// WorkloadInfo is a staffing requirement with its candidate variables.
type WorkloadInfo struct {
	Timeslot model.TimeslotID
	Skill    model.SkillID
	Min      int
	Opt      int
	Cands    []int // var indices, ascending employee id
}

// Problem is the compiled constraint problem. It is read-only once built
// and may be shared across search workers.
type Problem struct {
	Snapshot *model.Snapshot

	Employees []EmployeeInfo
	Slots     []SlotInfo
	Days      []time.Weekday
	Vars      []Var
	EmpSlots  []EmpSlotGroup
	EmpDays   []EmpDayGroup
	Workloads []WorkloadInfo

	EnforceHourBounds  bool
	EnforceWorkloadMin bool
	EnforceContiguity  bool
}

// Compile builds the constraint problem for a snapshot. Variable order is
// the deterministic (employee id, timeslot id, skill id) total order, which
// the engine also uses for tie-breaking.
func Compile(snap *model.Snapshot, opts ...Option) *Problem {
	p := &Problem{
		Snapshot:           snap,
		EnforceHourBounds:  true,
		EnforceWorkloadMin: true,
	}

	for _, opt := range opts {
		opt(p)
	}

	dayIdx := make(map[time.Weekday]int)
	for i, d := range snap.Days() {
		p.Days = append(p.Days, d)
		dayIdx[d] = i
	}

	slotIdx := make(map[model.TimeslotID]int, len(snap.Timeslots()))
	for i, t := range snap.Timeslots() {
		p.Slots = append(p.Slots, SlotInfo{ID: t.ID, Day: dayIdx[t.Day], Hour: t.Hour})
		slotIdx[t.ID] = i
	}

	workloadIdx := make(map[[2]int]int, len(snap.Workloads()))
	for i, w := range snap.Workloads() {
		p.Workloads = append(p.Workloads, WorkloadInfo{
			Timeslot: w.Timeslot,
			Skill:    w.Skill,
			Min:      w.MinAmount,
			Opt:      w.OptAmount,
		})
		workloadIdx[[2]int{int(w.Timeslot), int(w.Skill)}] = i
	}

	empDayIdx := make(map[[2]int]int) // (emp, day) -> EmpDay index
	for ei, e := range snap.Employees() {
		p.Employees = append(p.Employees, EmployeeInfo{ID: e.ID, Daily: e.Daily, Weekly: e.Weekly})

		for _, t := range snap.Timeslots() {
			if !snap.IsAvailable(e.ID, t.ID) {
				continue
			}
			si := slotIdx[t.ID]
			day := p.Slots[si].Day

			edKey := [2]int{ei, day}
			ed, ok := empDayIdx[edKey]
			if !ok {
				ed = len(p.EmpDays)
				empDayIdx[edKey] = ed
				p.EmpDays = append(p.EmpDays, EmpDayGroup{Emp: ei, Day: day, Daily: e.Daily})
			}

			es := -1
			for _, sk := range snap.Skills() {
				if !snap.HasSkill(e.ID, sk.ID) {
					continue
				}
				if es < 0 {
					es = len(p.EmpSlots)
					p.EmpSlots = append(p.EmpSlots, EmpSlotGroup{Emp: ei, Slot: si, EmpDay: ed})
					p.EmpDays[ed].Slots = append(p.EmpDays[ed].Slots, es)
				}

				wl := -1
				if wi, ok := workloadIdx[[2]int{int(t.ID), int(sk.ID)}]; ok {
					wl = wi
				}

				vi := len(p.Vars)
				p.Vars = append(p.Vars, Var{
					Employee: e.ID,
					Timeslot: t.ID,
					Skill:    sk.ID,
					Emp:      ei,
					Slot:     si,
					EmpSlot:  es,
					EmpDay:   ed,
					Workload: wl,
				})
				p.EmpSlots[es].Vars = append(p.EmpSlots[es].Vars, vi)
				if wl >= 0 {
					p.Workloads[wl].Cands = append(p.Workloads[wl].Cands, vi)
				}
			}
		}
	}

	p.sortDaySlots()
	return p
}

// sortDaySlots orders each day group's slots by hour then slot id, which
// the contiguity check relies on. Slots were appended in ascending slot-id
// order, so a stable insertion pass on hour suffices.
func (p *Problem) sortDaySlots() {
	for i := range p.EmpDays {
		slots := p.EmpDays[i].Slots
		for j := 1; j < len(slots); j++ {
			for k := j; k > 0; k-- {
				a, b := p.EmpSlots[slots[k-1]], p.EmpSlots[slots[k]]
				ha, hb := p.Slots[a.Slot].Hour, p.Slots[b.Slot].Hour
				if ha < hb || (ha == hb && p.Slots[a.Slot].ID < p.Slots[b.Slot].ID) {
					break
				}
				slots[k-1], slots[k] = slots[k], slots[k-1]
			}
		}
	}
}

// FindVar returns the index of the variable for the given triple, or -1.
func (p *Problem) FindVar(emp model.EmployeeID, slot model.TimeslotID, skill model.SkillID) int {
	for i, v := range p.Vars {
		if v.Employee == emp && v.Timeslot == slot && v.Skill == skill {
			return i
		}
	}
	return -1
}
