package compile

import (
	"fmt"
	"time"

	"roster-solver/internal/domain/model"
)

// ConstraintKind identifies a hard-constraint family for reporting.
type ConstraintKind string

// Constraint kinds.
const (
	SingleBooking   ConstraintKind = "single-booking"
	DailyBound      ConstraintKind = "daily-bound"
	WeeklyBound     ConstraintKind = "weekly-bound"
	WorkloadMinimum ConstraintKind = "workload-minimum"
)

// Violation identifies an unsatisfiable or violated hard constraint and the
// entity keys involved. Zero-valued keys mean "not applicable" for the kind.
type Violation struct {
	Kind     ConstraintKind    `json:"kind"`
	Employee model.EmployeeID  `json:"employee,omitempty"`
	Timeslot model.TimeslotID  `json:"timeslot,omitempty"`
	Skill    model.SkillID     `json:"skill,omitempty"`
	Day      time.Weekday      `json:"day,omitempty"`
	Detail   string            `json:"detail"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
}

// StructuralViolations analyzes the compiled problem for constraints that
// no assignment can satisfy. A non-empty result proves infeasibility before
// any search starts and names the exact entities involved.
func (p *Problem) StructuralViolations() []Violation {
	var out []Violation

	if p.EnforceWorkloadMin {
		for _, w := range p.Workloads {
			if len(w.Cands) < w.Min {
				out = append(out, Violation{
					Kind:     WorkloadMinimum,
					Timeslot: w.Timeslot,
					Skill:    w.Skill,
					Detail: fmt.Sprintf("timeslot %d skill %d requires %d employees, only %d qualified and available",
						w.Timeslot, w.Skill, w.Min, len(w.Cands)),
				})
			}
		}
	}

	if p.EnforceHourBounds {
		for _, ed := range p.EmpDays {
			if len(ed.Slots) < ed.Daily.Min {
				emp := p.Employees[ed.Emp]
				day := p.Days[ed.Day]
				out = append(out, Violation{
					Kind:     DailyBound,
					Employee: emp.ID,
					Day:      day,
					Detail: fmt.Sprintf("employee %d must work at least %d timeslots on %s but only %d are available",
						emp.ID, ed.Daily.Min, day, len(ed.Slots)),
				})
			}
		}

		availPerEmp := make([]int, len(p.Employees))
		minPerEmp := make([]int, len(p.Employees))
		for _, ed := range p.EmpDays {
			availPerEmp[ed.Emp] += len(ed.Slots)
			minPerEmp[ed.Emp] += ed.Daily.Min
		}
		for ei, emp := range p.Employees {
			if availPerEmp[ei] == 0 {
				// No availability at all: weekly bounds are vacuous.
				continue
			}
			if availPerEmp[ei] < emp.Weekly.Min {
				out = append(out, Violation{
					Kind:     WeeklyBound,
					Employee: emp.ID,
					Detail: fmt.Sprintf("employee %d must work at least %d timeslots per week but only %d are available",
						emp.ID, emp.Weekly.Min, availPerEmp[ei]),
				})
			}
			if minPerEmp[ei] > emp.Weekly.Max {
				out = append(out, Violation{
					Kind:     WeeklyBound,
					Employee: emp.ID,
					Detail: fmt.Sprintf("employee %d daily minimums sum to %d, above the weekly maximum %d",
						emp.ID, minPerEmp[ei], emp.Weekly.Max),
				})
			}
		}
	}

	return out
}
