package model

import (
	"sort"
	"time"
)

// Snapshot is the validated, cross-referenced view of one store's entities
// for one planning horizon. It is read-only after construction and may be
// shared freely across solver workers.
type Snapshot struct {
	store StoreID

	roles    map[RoleID]Role
	statuses map[StatusID]Status
	codes    map[CodeID]Code

	skills    []Skill
	employees []Employee
	timeslots []Timeslot
	workloads []Workload

	skillNames       map[SkillID]string
	slotByID         map[TimeslotID]Timeslot
	employeeByID     map[EmployeeID]Employee
	skillsByEmployee map[EmployeeID]map[SkillID]bool
	availByEmployee  map[EmployeeID]map[TimeslotID]bool
	workloadsBySlot  map[TimeslotID][]Workload

	days       []time.Weekday
	slotsByDay map[time.Weekday][]Timeslot
}

// NewSnapshot validates the input records and builds the read-only indices.
// It returns a *ValidationError (wrapping ErrValidation) on the first
// inconsistency found; no partial snapshot is ever returned.
func NewSnapshot(in Input) (*Snapshot, error) {
	s := &Snapshot{
		store:            in.Store,
		roles:            make(map[RoleID]Role, len(in.Roles)),
		statuses:         make(map[StatusID]Status, len(in.Statuses)),
		codes:            make(map[CodeID]Code, len(in.Codes)),
		skillNames:       make(map[SkillID]string, len(in.Skills)),
		slotByID:         make(map[TimeslotID]Timeslot, len(in.Timeslots)),
		employeeByID:     make(map[EmployeeID]Employee, len(in.Employees)),
		skillsByEmployee: make(map[EmployeeID]map[SkillID]bool, len(in.Employees)),
		availByEmployee:  make(map[EmployeeID]map[TimeslotID]bool, len(in.Employees)),
		workloadsBySlot:  make(map[TimeslotID][]Workload),
		slotsByDay:       make(map[time.Weekday][]Timeslot),
	}

	if err := s.loadLookups(in); err != nil {
		return nil, err
	}
	if err := s.loadEmployees(in.Employees); err != nil {
		return nil, err
	}
	if err := s.loadTimeslots(in.Timeslots); err != nil {
		return nil, err
	}
	if err := s.loadRelations(in); err != nil {
		return nil, err
	}
	if err := s.loadWorkloads(in.Workloads); err != nil {
		return nil, err
	}

	s.buildDayIndex()
	return s, nil
}

func (s *Snapshot) loadLookups(in Input) error {
	for _, r := range in.Roles {
		if _, dup := s.roles[r.ID]; dup {
			return validationErr("role", int(r.ID), "duplicate id")
		}
		s.roles[r.ID] = r
	}
	for _, st := range in.Statuses {
		if _, dup := s.statuses[st.ID]; dup {
			return validationErr("status", int(st.ID), "duplicate id")
		}
		s.statuses[st.ID] = st
	}
	for _, c := range in.Codes {
		if _, dup := s.codes[c.ID]; dup {
			return validationErr("code", int(c.ID), "duplicate id")
		}
		s.codes[c.ID] = c
	}
	for _, sk := range in.Skills {
		if _, dup := s.skillNames[sk.ID]; dup {
			return validationErr("skill", int(sk.ID), "duplicate id")
		}
		s.skillNames[sk.ID] = sk.Name
		s.skills = append(s.skills, sk)
	}
	sort.Slice(s.skills, func(i, j int) bool { return s.skills[i].ID < s.skills[j].ID })
	return nil
}

func (s *Snapshot) loadEmployees(employees []Employee) error {
	for _, e := range employees {
		if _, dup := s.employeeByID[e.ID]; dup {
			return validationErr("employee", int(e.ID), "duplicate id")
		}
		if err := checkBounds("employee", int(e.ID), "daily", e.Daily); err != nil {
			return err
		}
		if err := checkBounds("employee", int(e.ID), "weekly", e.Weekly); err != nil {
			return err
		}
		if _, ok := s.roles[e.Role]; !ok {
			return validationErr("employee", int(e.ID), "unknown role %d", e.Role)
		}
		if _, ok := s.statuses[e.Status]; !ok {
			return validationErr("employee", int(e.ID), "unknown status %d", e.Status)
		}
		s.employeeByID[e.ID] = e
		s.employees = append(s.employees, e)
		s.skillsByEmployee[e.ID] = make(map[SkillID]bool)
		s.availByEmployee[e.ID] = make(map[TimeslotID]bool)
	}
	sort.Slice(s.employees, func(i, j int) bool { return s.employees[i].ID < s.employees[j].ID })
	return nil
}

func checkBounds(entity string, key int, scope string, b HourBounds) error {
	if b.Min < 0 {
		return validationErr(entity, key, "%s min hours must not be negative", scope)
	}
	if b.Min > b.Opt || b.Opt > b.Max {
		return validationErr(entity, key, "%s hour bounds must satisfy min <= opt <= max (%d/%d/%d)",
			scope, b.Min, b.Opt, b.Max)
	}
	return nil
}

func (s *Snapshot) loadTimeslots(timeslots []Timeslot) error {
	codeAt := make(map[[2]int]CodeID, len(timeslots))
	for _, t := range timeslots {
		if _, dup := s.slotByID[t.ID]; dup {
			return validationErr("timeslot", int(t.ID), "duplicate id")
		}
		if _, ok := s.codes[t.Code]; !ok {
			return validationErr("timeslot", int(t.ID), "unknown code %d", t.Code)
		}
		// The timestamp is authoritative for day and hour when present.
		if !t.At.IsZero() {
			t.Day = t.At.Weekday()
			t.Hour = t.At.Hour()
		}
		if t.Hour < 0 || t.Hour > 23 {
			return validationErr("timeslot", int(t.ID), "hour %d out of range", t.Hour)
		}
		// Two slots at the same (day, hour) under different codes would make
		// daily and weekly hour aggregation ambiguous.
		key := [2]int{int(t.Day), t.Hour}
		if code, seen := codeAt[key]; seen && code != t.Code {
			return validationErr("timeslot", int(t.ID),
				"(%s, %02d:00) already mapped to code %d", t.Day, t.Hour, code)
		}
		codeAt[key] = t.Code
		s.slotByID[t.ID] = t
		s.timeslots = append(s.timeslots, t)
	}
	sort.Slice(s.timeslots, func(i, j int) bool { return s.timeslots[i].ID < s.timeslots[j].ID })
	return nil
}

func (s *Snapshot) loadRelations(in Input) error {
	for _, es := range in.EmployeeSkills {
		held, ok := s.skillsByEmployee[es.Employee]
		if !ok {
			return validationErr("employee_skill", int(es.Employee), "unknown employee")
		}
		if _, ok := s.skillNames[es.Skill]; !ok {
			return validationErr("employee_skill", int(es.Employee), "unknown skill %d", es.Skill)
		}
		held[es.Skill] = true
	}
	for _, av := range in.Availability {
		avail, ok := s.availByEmployee[av.Employee]
		if !ok {
			return validationErr("availability", int(av.Employee), "unknown employee")
		}
		if _, ok := s.slotByID[av.Timeslot]; !ok {
			return validationErr("availability", int(av.Employee), "unknown timeslot %d", av.Timeslot)
		}
		avail[av.Timeslot] = true
	}
	return nil
}

func (s *Snapshot) loadWorkloads(workloads []Workload) error {
	seen := make(map[[2]int]bool, len(workloads))
	for _, w := range workloads {
		if _, ok := s.slotByID[w.Timeslot]; !ok {
			return validationErr("workload", int(w.Timeslot), "unknown timeslot")
		}
		if _, ok := s.skillNames[w.Skill]; !ok {
			return validationErr("workload", int(w.Timeslot), "unknown skill %d", w.Skill)
		}
		if w.Store != s.store {
			return validationErr("workload", int(w.Timeslot), "store %d does not match snapshot store %d", w.Store, s.store)
		}
		if w.MinAmount < 0 {
			return validationErr("workload", int(w.Timeslot), "min amount must not be negative")
		}
		if w.MinAmount > w.OptAmount {
			return validationErr("workload", int(w.Timeslot),
				"min amount %d exceeds opt amount %d for skill %d", w.MinAmount, w.OptAmount, w.Skill)
		}
		key := [2]int{int(w.Timeslot), int(w.Skill)}
		if seen[key] {
			return validationErr("workload", int(w.Timeslot), "duplicate workload for skill %d", w.Skill)
		}
		seen[key] = true
		s.workloads = append(s.workloads, w)
		s.workloadsBySlot[w.Timeslot] = append(s.workloadsBySlot[w.Timeslot], w)
	}
	sort.Slice(s.workloads, func(i, j int) bool {
		if s.workloads[i].Timeslot != s.workloads[j].Timeslot {
			return s.workloads[i].Timeslot < s.workloads[j].Timeslot
		}
		return s.workloads[i].Skill < s.workloads[j].Skill
	})
	for _, ws := range s.workloadsBySlot {
		sort.Slice(ws, func(i, j int) bool { return ws[i].Skill < ws[j].Skill })
	}
	return nil
}

func (s *Snapshot) buildDayIndex() {
	for _, t := range s.timeslots {
		if _, seen := s.slotsByDay[t.Day]; !seen {
			s.days = append(s.days, t.Day)
		}
		s.slotsByDay[t.Day] = append(s.slotsByDay[t.Day], t)
	}
	sort.Slice(s.days, func(i, j int) bool { return s.days[i] < s.days[j] })
	for _, slots := range s.slotsByDay {
		sort.Slice(slots, func(i, j int) bool {
			if slots[i].Hour != slots[j].Hour {
				return slots[i].Hour < slots[j].Hour
			}
			return slots[i].ID < slots[j].ID
		})
	}
}

// Store returns the snapshot's store id.
func (s *Snapshot) Store() StoreID { return s.store }

// Employees returns all employees sorted by id.
func (s *Snapshot) Employees() []Employee { return s.employees }

// Employee returns the employee with the given id.
func (s *Snapshot) Employee(id EmployeeID) (Employee, bool) {
	e, ok := s.employeeByID[id]
	return e, ok
}

// Timeslots returns all timeslots sorted by id.
func (s *Snapshot) Timeslots() []Timeslot { return s.timeslots }

// Timeslot returns the timeslot with the given id.
func (s *Snapshot) Timeslot(id TimeslotID) (Timeslot, bool) {
	t, ok := s.slotByID[id]
	return t, ok
}

// Skills returns all skills sorted by id.
func (s *Snapshot) Skills() []Skill { return s.skills }

// SkillName returns the name of a skill, or "" if unknown.
func (s *Snapshot) SkillName(id SkillID) string { return s.skillNames[id] }

// Workloads returns all workloads sorted by (timeslot, skill).
func (s *Snapshot) Workloads() []Workload { return s.workloads }

// WorkloadsAt returns the workloads for one timeslot sorted by skill.
func (s *Snapshot) WorkloadsAt(slot TimeslotID) []Workload { return s.workloadsBySlot[slot] }

// HasSkill reports whether the employee holds the skill.
func (s *Snapshot) HasSkill(emp EmployeeID, skill SkillID) bool {
	return s.skillsByEmployee[emp][skill]
}

// IsAvailable reports whether the employee may work the timeslot.
func (s *Snapshot) IsAvailable(emp EmployeeID, slot TimeslotID) bool {
	return s.availByEmployee[emp][slot]
}

// AvailabilityCount returns the number of timeslots the employee may work.
func (s *Snapshot) AvailabilityCount(emp EmployeeID) int {
	return len(s.availByEmployee[emp])
}

// Days returns the distinct weekdays in the horizon, ascending.
func (s *Snapshot) Days() []time.Weekday { return s.days }

// SlotsOn returns the timeslots of one day sorted by hour then id.
func (s *Snapshot) SlotsOn(day time.Weekday) []Timeslot { return s.slotsByDay[day] }
