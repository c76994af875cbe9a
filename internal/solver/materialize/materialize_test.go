package materialize_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"roster-solver/internal/domain/model"
	"roster-solver/internal/solver/compile"
	"roster-solver/internal/solver/materialize"
)

func compiled() *compile.Problem {
	in := model.Input{
		Store:    7,
		Roles:    []model.Role{{ID: 1, Name: "Senior Employee"}},
		Statuses: []model.Status{{ID: 1, Name: "Full-time"}},
		Codes:    []model.Code{{ID: 1, Name: "Regular"}},
		Skills:   []model.Skill{{ID: 1, Name: "Cashier"}, {ID: 2, Name: "Customer Service"}},
		Employees: []model.Employee{
			{ID: 1, Role: 1, Status: 1, Daily: model.HourBounds{Min: 0, Opt: 2, Max: 8}, Weekly: model.HourBounds{Min: 0, Opt: 2, Max: 40}},
			{ID: 2, Role: 1, Status: 1, Daily: model.HourBounds{Min: 0, Opt: 1, Max: 8}, Weekly: model.HourBounds{Min: 0, Opt: 1, Max: 40}},
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
			{Timeslot: 1, Skill: 1, Store: 7, MinAmount: 1, OptAmount: 2},
			{Timeslot: 2, Skill: 1, Store: 7, MinAmount: 1, OptAmount: 1},
		},
	}
	snap, err := model.NewSnapshot(in)
	if err != nil {
		panic(err)
	}
	return compile.Compile(snap)
}

func TestBuildSchedule(t *testing.T) {
	Convey("Given a complete assignment", t, func() {
		p := compiled()
		assignment := make([]bool, len(p.Vars))
		// Employee 1 works slot 1 as cashier, employee 2 works slot 2.
		assignment[p.FindVar(1, 1, 1)] = true
		assignment[p.FindVar(2, 2, 1)] = true

		Convey("When materializing", func() {
			sched, err := materialize.Build(p, assignment)
			So(err, ShouldBeNil)

			Convey("Then assignments come out in slot-major order with names", func() {
				So(sched.Store, ShouldEqual, 7)
				So(sched.Assignments, ShouldHaveLength, 2)
				So(sched.Assignments[0].Timeslot, ShouldEqual, 1)
				So(sched.Assignments[0].Employee, ShouldEqual, 1)
				So(sched.Assignments[0].SkillName, ShouldEqual, "Cashier")
				So(sched.Assignments[0].Day, ShouldEqual, time.Monday)
				So(sched.Assignments[0].Hour, ShouldEqual, 8)
				So(sched.Assignments[1].Timeslot, ShouldEqual, 2)
				So(sched.Assignments[1].Employee, ShouldEqual, 2)
			})

			Convey("Then hour totals cover every employee", func() {
				So(sched.Hours, ShouldHaveLength, 2)
				So(sched.Hours[0].Worked, ShouldEqual, 1)
				So(sched.Hours[0].Opt, ShouldEqual, 2)
				So(sched.Hours[0].Deviation, ShouldEqual, 1)
				So(sched.Hours[1].Worked, ShouldEqual, 1)
				So(sched.Hours[1].Deviation, ShouldEqual, 0)
			})

			Convey("Then fulfillment compares assigned counts with demand", func() {
				So(sched.Fulfillment, ShouldHaveLength, 2)
				So(sched.Fulfillment[0].Assigned, ShouldEqual, 1)
				So(sched.Fulfillment[0].Opt, ShouldEqual, 2)
				So(sched.Fulfillment[0].Shortfall, ShouldEqual, 1)
				So(sched.Fulfillment[1].Shortfall, ShouldEqual, 0)
			})

			Convey("Then materializing again yields the same schedule", func() {
				again, err := materialize.Build(p, assignment)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, sched)
			})
		})
	})
}

func TestBuildRejectsBadInputs(t *testing.T) {
	Convey("Given mismatched inputs", t, func() {
		p := compiled()

		Convey("Then a nil problem is rejected", func() {
			_, err := materialize.Build(nil, nil)
			So(err, ShouldEqual, materialize.ErrNilProblem)
		})

		Convey("Then a short assignment is rejected", func() {
			_, err := materialize.Build(p, make([]bool, 1))
			So(err, ShouldEqual, materialize.ErrAssignmentSize)
		})
	})
}
