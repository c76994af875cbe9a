package compile_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"roster-solver/internal/domain/model"
	"roster-solver/internal/solver/compile"
)

func mustSnapshot(in model.Input) *model.Snapshot {
	snap, err := model.NewSnapshot(in)
	if err != nil {
		panic(err)
	}
	return snap
}

func twoEmployeeInput() model.Input {
	return model.Input{
		Store:    1,
		Roles:    []model.Role{{ID: 1, Name: "Senior Employee"}},
		Statuses: []model.Status{{ID: 1, Name: "Full-time"}},
		Codes:    []model.Code{{ID: 1, Name: "Regular"}},
		Skills:   []model.Skill{{ID: 1, Name: "Cashier"}, {ID: 2, Name: "Customer Service"}},
		Employees: []model.Employee{
			{ID: 1, Role: 1, Status: 1, Daily: model.HourBounds{Min: 0, Opt: 2, Max: 8}, Weekly: model.HourBounds{Min: 0, Opt: 10, Max: 40}},
			{ID: 2, Role: 1, Status: 1, Daily: model.HourBounds{Min: 0, Opt: 2, Max: 8}, Weekly: model.HourBounds{Min: 0, Opt: 10, Max: 40}},
		},
		EmployeeSkills: []model.EmployeeSkill{
			{Employee: 1, Skill: 1},
			{Employee: 1, Skill: 2},
			{Employee: 2, Skill: 1},
		},
		Timeslots: []model.Timeslot{
			{ID: 1, Code: 1, Day: time.Monday, Hour: 8},
			{ID: 2, Code: 1, Day: time.Monday, Hour: 9},
		},
		Availability: []model.Availability{
			{Employee: 1, Timeslot: 1},
			{Employee: 1, Timeslot: 2},
			{Employee: 2, Timeslot: 2},
		},
		Workloads: []model.Workload{
			{Timeslot: 1, Skill: 1, Store: 1, MinAmount: 1, OptAmount: 1},
			{Timeslot: 2, Skill: 1, Store: 1, MinAmount: 1, OptAmount: 2},
		},
	}
}

func TestCompileVariables(t *testing.T) {
	Convey("Given a snapshot with two employees and two timeslots", t, func() {
		snap := mustSnapshot(twoEmployeeInput())

		Convey("When compiling the constraint problem", func() {
			p := compile.Compile(snap)

			Convey("Then variables exist only for skill-and-availability matches", func() {
				// Employee 1: two skills at two slots; employee 2: one skill at one slot.
				So(len(p.Vars), ShouldEqual, 5)
				So(p.FindVar(2, 1, 1), ShouldEqual, -1) // not available at slot 1
				So(p.FindVar(2, 2, 2), ShouldEqual, -1) // does not hold skill 2
				So(p.FindVar(1, 1, 1), ShouldNotEqual, -1)
			})

			Convey("Then variables follow (employee, timeslot, skill) order", func() {
				prev := -1
				for _, v := range p.Vars {
					cur := int(v.Employee)*1_000_000 + int(v.Timeslot)*1_000 + int(v.Skill)
					So(cur, ShouldBeGreaterThan, prev)
					prev = cur
				}
			})

			Convey("Then single-booking groups span one employee's skills at one slot", func() {
				vi := p.FindVar(1, 1, 1)
				vj := p.FindVar(1, 1, 2)
				So(p.Vars[vi].EmpSlot, ShouldEqual, p.Vars[vj].EmpSlot)
				group := p.EmpSlots[p.Vars[vi].EmpSlot]
				So(len(group.Vars), ShouldEqual, 2)
			})

			Convey("Then workload candidates are linked both ways", func() {
				So(len(p.Workloads), ShouldEqual, 2)
				// Workload at slot 2 for skill 1 has both employees as candidates.
				var w compile.WorkloadInfo
				for _, cand := range p.Workloads {
					if cand.Timeslot == 2 && cand.Skill == 1 {
						w = cand
					}
				}
				So(len(w.Cands), ShouldEqual, 2)
				So(p.Vars[w.Cands[0]].Employee, ShouldEqual, model.EmployeeID(1))
				So(p.Vars[w.Cands[1]].Employee, ShouldEqual, model.EmployeeID(2))
			})

			Convey("Then variables without a staffing requirement carry no workload", func() {
				vi := p.FindVar(1, 1, 2) // no workload for (slot 1, skill 2)
				So(p.Vars[vi].Workload, ShouldEqual, -1)
			})

			Convey("Then day groups collect the employee's workable slots", func() {
				vi := p.FindVar(1, 1, 1)
				ed := p.EmpDays[p.Vars[vi].EmpDay]
				So(len(ed.Slots), ShouldEqual, 2)
				So(p.Days[ed.Day], ShouldEqual, time.Monday)
			})
		})
	})
}

func TestStructuralViolations(t *testing.T) {
	Convey("Given a workload requiring a skill held by no employee", t, func() {
		in := twoEmployeeInput()
		in.Skills = append(in.Skills, model.Skill{ID: 3, Name: "Department Specialist"})
		in.Workloads = append(in.Workloads, model.Workload{Timeslot: 1, Skill: 3, Store: 1, MinAmount: 1, OptAmount: 1})
		p := compile.Compile(mustSnapshot(in))

		Convey("When analyzing structural feasibility", func() {
			violations := p.StructuralViolations()

			Convey("Then the exact (timeslot, skill) pair is cited", func() {
				So(len(violations), ShouldEqual, 1)
				So(violations[0].Kind, ShouldEqual, compile.WorkloadMinimum)
				So(violations[0].Timeslot, ShouldEqual, model.TimeslotID(1))
				So(violations[0].Skill, ShouldEqual, model.SkillID(3))
			})
		})

		Convey("When workload minimums are not enforced", func() {
			p := compile.Compile(mustSnapshot(in), compile.WithWorkloadMin(false))

			Convey("Then no structural violation is reported", func() {
				So(p.StructuralViolations(), ShouldBeEmpty)
			})
		})
	})

	Convey("Given an employee whose daily minimum exceeds the day's availability", t, func() {
		in := twoEmployeeInput()
		in.Employees[1].Daily = model.HourBounds{Min: 2, Opt: 4, Max: 8}
		// Employee 2 is available for a single Monday slot.
		p := compile.Compile(mustSnapshot(in))

		Convey("When analyzing structural feasibility", func() {
			violations := p.StructuralViolations()

			Convey("Then a daily-bound violation names the employee and day", func() {
				So(len(violations), ShouldEqual, 1)
				So(violations[0].Kind, ShouldEqual, compile.DailyBound)
				So(violations[0].Employee, ShouldEqual, model.EmployeeID(2))
				So(violations[0].Day, ShouldEqual, time.Monday)
			})
		})
	})

	Convey("Given an employee whose weekly minimum exceeds total availability", t, func() {
		in := twoEmployeeInput()
		in.Employees[1].Weekly = model.HourBounds{Min: 3, Opt: 10, Max: 40}
		p := compile.Compile(mustSnapshot(in))

		Convey("When analyzing structural feasibility", func() {
			violations := p.StructuralViolations()

			Convey("Then a weekly-bound violation names the employee", func() {
				So(len(violations), ShouldEqual, 1)
				So(violations[0].Kind, ShouldEqual, compile.WeeklyBound)
				So(violations[0].Employee, ShouldEqual, model.EmployeeID(2))
			})
		})
	})

	Convey("Given a feasible problem", t, func() {
		p := compile.Compile(mustSnapshot(twoEmployeeInput()))

		Convey("Then no structural violations are reported", func() {
			So(p.StructuralViolations(), ShouldBeEmpty)
		})
	})
}
