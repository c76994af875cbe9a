// Package materialize turns a complete variable assignment back into a
// human-facing schedule: who works which timeslot under which skill, with
// per-employee hour totals and per-requirement fulfillment.
package materialize

import (
	"sort"
	"time"

	"roster-solver/internal/domain/model"
	"roster-solver/internal/domain/objective"
	"roster-solver/internal/solver/compile"
)

// Assignment is one employee working one timeslot under one skill.
type Assignment struct {
	Employee  model.EmployeeID `json:"employee" yaml:"employee"`
	Timeslot  model.TimeslotID `json:"timeslot" yaml:"timeslot"`
	Skill     model.SkillID    `json:"skill" yaml:"skill"`
	SkillName string           `json:"skill_name" yaml:"skill_name"`
	Day       time.Weekday     `json:"day" yaml:"day"`
	Hour      int              `json:"hour" yaml:"hour"`
}

// EmployeeHours totals one employee's worked timeslots for the horizon.
type EmployeeHours struct {
	Employee  model.EmployeeID `json:"employee" yaml:"employee"`
	Worked    int              `json:"worked" yaml:"worked"`
	Opt       int              `json:"opt" yaml:"opt"`
	Deviation int              `json:"deviation" yaml:"deviation"`
}

// WorkloadFulfillment compares one staffing requirement with the schedule.
type WorkloadFulfillment struct {
	Timeslot  model.TimeslotID `json:"timeslot" yaml:"timeslot"`
	Skill     model.SkillID    `json:"skill" yaml:"skill"`
	SkillName string           `json:"skill_name" yaml:"skill_name"`
	Assigned  int              `json:"assigned" yaml:"assigned"`
	Min       int              `json:"min" yaml:"min"`
	Opt       int              `json:"opt" yaml:"opt"`
	Shortfall int              `json:"shortfall" yaml:"shortfall"`
}

// Schedule is the materialized roster.
type Schedule struct {
	Store       model.StoreID         `json:"store" yaml:"store"`
	Assignments []Assignment          `json:"assignments" yaml:"assignments"`
	Hours       []EmployeeHours       `json:"hours" yaml:"hours"`
	Fulfillment []WorkloadFulfillment `json:"fulfillment" yaml:"fulfillment"`
}

// Build materializes an assignment into a schedule. It is a pure function
// of its inputs: the same problem and assignment always yield the same
// schedule.
func Build(p *compile.Problem, assignment []bool) (*Schedule, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	if len(assignment) != len(p.Vars) {
		return nil, ErrAssignmentSize
	}

	sched := &Schedule{Store: p.Snapshot.Store()}

	worked := make([]int, len(p.Employees))
	for vi, set := range assignment {
		if !set {
			continue
		}
		v := &p.Vars[vi]
		slot := p.Slots[v.Slot]
		sched.Assignments = append(sched.Assignments, Assignment{
			Employee:  v.Employee,
			Timeslot:  v.Timeslot,
			Skill:     v.Skill,
			SkillName: p.Snapshot.SkillName(v.Skill),
			Day:       p.Days[slot.Day],
			Hour:      slot.Hour,
		})
		worked[v.Emp]++
	}

	// Slot-major order reads as a day plan; variable order is
	// employee-major.
	sort.Slice(sched.Assignments, func(i, j int) bool {
		a, b := sched.Assignments[i], sched.Assignments[j]
		if a.Timeslot != b.Timeslot {
			return a.Timeslot < b.Timeslot
		}
		if a.Employee != b.Employee {
			return a.Employee < b.Employee
		}
		return a.Skill < b.Skill
	})

	for e := range p.Employees {
		emp := &p.Employees[e]
		sched.Hours = append(sched.Hours, EmployeeHours{
			Employee:  emp.ID,
			Worked:    worked[e],
			Opt:       emp.Weekly.Opt,
			Deviation: objective.HoursDeviation(worked[e], emp.Weekly.Opt),
		})
	}

	for w := range p.Workloads {
		wl := &p.Workloads[w]
		got := 0
		for _, vi := range wl.Cands {
			if assignment[vi] {
				got++
			}
		}
		sched.Fulfillment = append(sched.Fulfillment, WorkloadFulfillment{
			Timeslot:  wl.Timeslot,
			Skill:     wl.Skill,
			SkillName: p.Snapshot.SkillName(wl.Skill),
			Assigned:  got,
			Min:       wl.Min,
			Opt:       wl.Opt,
			Shortfall: objective.StaffingShortfall(got, wl.Opt),
		})
	}

	return sched, nil
}
