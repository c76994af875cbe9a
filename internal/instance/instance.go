// Package instance reads and writes solver instances as YAML files and
// generates synthetic instances for testing and benchmarking.
package instance

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"roster-solver/internal/domain/model"
)

// File is the YAML schema of one instance. Employee skill and availability
// records nest under the employee; ToInput flattens them into the domain
// model's relation tables.
type File struct {
	ID        string          `yaml:"id,omitempty"`
	Store     int             `yaml:"store"`
	Roles     []Lookup        `yaml:"roles"`
	Statuses  []Lookup        `yaml:"statuses"`
	Codes     []CodeEntry     `yaml:"codes"`
	Skills    []Lookup        `yaml:"skills"`
	Employees []EmployeeEntry `yaml:"employees"`
	Timeslots []TimeslotEntry `yaml:"timeslots"`
	Workloads []WorkloadEntry `yaml:"workloads"`
}

// Lookup is an id/name pair.
type Lookup struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// CodeEntry is a timeslot code with an optional description.
type CodeEntry struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// EmployeeEntry is one employee with the skills they hold and the
// timeslots they are available for.
type EmployeeEntry struct {
	ID           int              `yaml:"id"`
	Role         int              `yaml:"role"`
	Status       int              `yaml:"status"`
	Daily        model.HourBounds `yaml:"daily"`
	Weekly       model.HourBounds `yaml:"weekly"`
	Skills       []int            `yaml:"skills"`
	Availability []int            `yaml:"availability"`
}

// TimeslotEntry is one timeslot, located either by an absolute timestamp
// or by a weekday name and hour.
type TimeslotEntry struct {
	ID   int       `yaml:"id"`
	Code int       `yaml:"code"`
	At   time.Time `yaml:"at,omitempty"`
	Day  string    `yaml:"day,omitempty"`
	Hour int       `yaml:"hour,omitempty"`
}

// WorkloadEntry is one staffing requirement.
type WorkloadEntry struct {
	Timeslot int `yaml:"timeslot"`
	Skill    int `yaml:"skill"`
	Min      int `yaml:"min"`
	Opt      int `yaml:"opt"`
}

// Decode parses YAML into a File. Unknown fields are rejected so typos in
// hand-written instances surface instead of silently dropping data.
func Decode(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &f, nil
}

// Load reads and decodes an instance file into a domain model input.
func Load(path string) (model.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Input{}, fmt.Errorf("reading instance file: %w", err)
	}
	f, err := Decode(data)
	if err != nil {
		return model.Input{}, err
	}
	return f.ToInput()
}

// Encode marshals a File as YAML.
func (f *File) Encode() ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding instance: %w", err)
	}
	return data, nil
}

// ToInput flattens the file into the domain model's input tables. Deep
// validation (reference resolution, bound ordering) is the snapshot's job;
// only file-level concerns are checked here.
func (f *File) ToInput() (model.Input, error) {
	in := model.Input{Store: model.StoreID(f.Store)}

	for _, r := range f.Roles {
		in.Roles = append(in.Roles, model.Role{ID: model.RoleID(r.ID), Name: r.Name})
	}
	for _, s := range f.Statuses {
		in.Statuses = append(in.Statuses, model.Status{ID: model.StatusID(s.ID), Name: s.Name})
	}
	for _, c := range f.Codes {
		in.Codes = append(in.Codes, model.Code{ID: model.CodeID(c.ID), Name: c.Name, Description: c.Description})
	}
	for _, s := range f.Skills {
		in.Skills = append(in.Skills, model.Skill{ID: model.SkillID(s.ID), Name: s.Name})
	}

	for _, e := range f.Employees {
		in.Employees = append(in.Employees, model.Employee{
			ID:     model.EmployeeID(e.ID),
			Role:   model.RoleID(e.Role),
			Status: model.StatusID(e.Status),
			Daily:  e.Daily,
			Weekly: e.Weekly,
		})
		for _, sk := range e.Skills {
			in.EmployeeSkills = append(in.EmployeeSkills, model.EmployeeSkill{
				Employee: model.EmployeeID(e.ID),
				Skill:    model.SkillID(sk),
			})
		}
		for _, ts := range e.Availability {
			in.Availability = append(in.Availability, model.Availability{
				Employee: model.EmployeeID(e.ID),
				Timeslot: model.TimeslotID(ts),
			})
		}
	}

	for _, t := range f.Timeslots {
		slot := model.Timeslot{
			ID:   model.TimeslotID(t.ID),
			Code: model.CodeID(t.Code),
			At:   t.At,
			Hour: t.Hour,
		}
		if t.At.IsZero() {
			if t.Day == "" {
				return model.Input{}, fmt.Errorf("%w: timeslot %d needs either at or day", ErrSchema, t.ID)
			}
			day, ok := parseWeekday(t.Day)
			if !ok {
				return model.Input{}, fmt.Errorf("%w: timeslot %d has unknown day %q", ErrSchema, t.ID, t.Day)
			}
			slot.Day = day
		}
		in.Timeslots = append(in.Timeslots, slot)
	}

	for _, w := range f.Workloads {
		in.Workloads = append(in.Workloads, model.Workload{
			Timeslot:  model.TimeslotID(w.Timeslot),
			Skill:     model.SkillID(w.Skill),
			Store:     model.StoreID(f.Store),
			MinAmount: w.Min,
			OptAmount: w.Opt,
		})
	}

	return in, nil
}

func parseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, true
		}
	}
	return 0, false
}
