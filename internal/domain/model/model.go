// Package model contains the domain entities for one store's planning run
// and the validated snapshot handed to the solver.
//
// Every timeslot contributes exactly one hour unit to daily and weekly
// totals, regardless of its code. Worked hours are counts of assigned
// timeslots.
package model

import "time"

// Opaque integer identifiers, unique within their table.
type (
	EmployeeID int
	SkillID    int
	TimeslotID int
	StoreID    int
	RoleID     int
	StatusID   int
	CodeID     int
)

// HourBounds holds a min/opt/max triple of hour counts.
// Invariant: Min <= Opt <= Max.
type HourBounds struct {
	Min int `yaml:"min"`
	Opt int `yaml:"opt"`
	Max int `yaml:"max"`
}

// Role is a named employee role, e.g. "Manager".
type Role struct {
	ID   RoleID
	Name string
}

// Status is a named employment status, e.g. "Full-time".
type Status struct {
	ID   StatusID
	Name string
}

// Code is the semantic category of a timeslot, e.g. "Regular" or "Holiday".
type Code struct {
	ID          CodeID
	Name        string
	Description string
}

// Skill is a named capability, e.g. "Cashier".
type Skill struct {
	ID   SkillID
	Name string
}

// Employee is immutable during a solve.
type Employee struct {
	ID     EmployeeID
	Role   RoleID
	Status StatusID
	Daily  HourBounds
	Weekly HourBounds
}

// Timeslot is the atomic unit of assignment. When At is set, Day and Hour
// are derived from it during snapshot construction.
type Timeslot struct {
	ID   TimeslotID
	Code CodeID
	At   time.Time
	Day  time.Weekday
	Hour int
}

// EmployeeSkill states that an employee holds a skill.
type EmployeeSkill struct {
	Employee EmployeeID
	Skill    SkillID
}

// Availability states that an employee may work a timeslot. Absence of a
// record means unavailable; availability is an explicit allow-list.
type Availability struct {
	Employee EmployeeID
	Timeslot TimeslotID
}

// Workload is the required staffing level for a skill at a timeslot.
// Invariant: MinAmount <= OptAmount.
type Workload struct {
	Timeslot  TimeslotID
	Skill     SkillID
	Store     StoreID
	MinAmount int
	OptAmount int
}

// Input carries the raw entity records for one store and one planning
// horizon, as supplied by an external loader.
type Input struct {
	Store          StoreID
	Roles          []Role
	Statuses       []Status
	Codes          []Code
	Skills         []Skill
	Employees      []Employee
	EmployeeSkills []EmployeeSkill
	Timeslots      []Timeslot
	Availability   []Availability
	Workloads      []Workload
}
