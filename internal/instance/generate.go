package instance

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"roster-solver/internal/domain/model"
)

// Fixed lookup tables for generated retail instances.
var (
	genSkills   = []string{"Cashier", "Stock Management", "Customer Service", "Department Specialist"}
	genRoles    = []string{"Manager", "Senior Employee", "Junior Employee"}
	genStatuses = []string{"Full-time", "Part-time", "Student"}
	genCodes    = []CodeEntry{
		{ID: 1, Name: "Regular", Description: "standard opening hours"},
		{ID: 2, Name: "Holiday", Description: "public holiday"},
		{ID: 3, Name: "Special", Description: "special event"},
	}
)

// genBase anchors generated timeslot timestamps; it is a Monday.
var genBase = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Two-hour slots from opening to closing.
const (
	genOpenHour  = 8
	genCloseHour = 20
	genSlotStep  = 2
)

type generator struct {
	seed         int64
	store        int
	employees    int
	days         int
	availability float64
	workloadMin  int
	workloadOpt  int
}

// GenOption configures the instance generator.
type GenOption func(*generator)

// WithSeed fixes the random seed; the same seed always yields the same
// instance.
func WithSeed(seed int64) GenOption {
	return func(g *generator) {
		g.seed = seed
	}
}

// WithStore sets the store id.
func WithStore(store int) GenOption {
	return func(g *generator) {
		if store > 0 {
			g.store = store
		}
	}
}

// WithEmployeeCount sets the number of generated employees.
func WithEmployeeCount(n int) GenOption {
	return func(g *generator) {
		if n > 0 {
			g.employees = n
		}
	}
}

// WithDayCount sets the number of horizon days, up to a week.
func WithDayCount(n int) GenOption {
	return func(g *generator) {
		if n > 0 && n <= 7 {
			g.days = n
		}
	}
}

// WithAvailabilityRate sets the probability that an employee is available
// for a given timeslot.
func WithAvailabilityRate(rate float64) GenOption {
	return func(g *generator) {
		if rate >= 0 && rate <= 1 {
			g.availability = rate
		}
	}
}

// WithWorkloadBounds sets the min/opt staffing amounts of every generated
// requirement.
func WithWorkloadBounds(min, opt int) GenOption {
	return func(g *generator) {
		if min >= 0 && opt >= min {
			g.workloadMin = min
			g.workloadOpt = opt
		}
	}
}

// Generate builds a synthetic retail instance: a week of two-hour
// timeslots, four skills, and a staffing requirement for every
// (timeslot, skill) pair. Identical options yield identical instances
// apart from the instance id.
func Generate(opts ...GenOption) *File {
	g := &generator{
		seed:         1,
		store:        1,
		employees:    8,
		days:         7,
		availability: 0.8,
		workloadMin:  1,
		workloadOpt:  2,
	}
	for _, opt := range opts {
		opt(g)
	}
	rng := rand.New(rand.NewSource(g.seed))

	f := &File{
		ID:    uuid.NewString(),
		Store: g.store,
		Codes: genCodes,
	}
	for i, name := range genRoles {
		f.Roles = append(f.Roles, Lookup{ID: i + 1, Name: name})
	}
	for i, name := range genStatuses {
		f.Statuses = append(f.Statuses, Lookup{ID: i + 1, Name: name})
	}
	for i, name := range genSkills {
		f.Skills = append(f.Skills, Lookup{ID: i + 1, Name: name})
	}

	for day := 0; day < g.days; day++ {
		for hour := genOpenHour; hour < genCloseHour; hour += genSlotStep {
			id := len(f.Timeslots) + 1
			f.Timeslots = append(f.Timeslots, TimeslotEntry{
				ID:   id,
				Code: 1,
				At:   genBase.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour),
			})
			for skill := 1; skill <= len(genSkills); skill++ {
				f.Workloads = append(f.Workloads, WorkloadEntry{
					Timeslot: id,
					Skill:    skill,
					Min:      g.workloadMin,
					Opt:      g.workloadOpt,
				})
			}
		}
	}

	for e := 1; e <= g.employees; e++ {
		emp := EmployeeEntry{
			ID:     e,
			Role:   1 + rng.Intn(len(genRoles)),
			Status: 1 + rng.Intn(len(genStatuses)),
			Daily:  model.HourBounds{Min: 0, Opt: 4, Max: 8},
			Weekly: model.HourBounds{Min: 0, Opt: 3 * g.days, Max: 8 * g.days},
		}

		// One or two distinct skills per employee.
		first := 1 + rng.Intn(len(genSkills))
		emp.Skills = append(emp.Skills, first)
		if rng.Float64() < 0.5 {
			second := 1 + rng.Intn(len(genSkills))
			if second != first {
				emp.Skills = append(emp.Skills, second)
			}
		}

		for _, t := range f.Timeslots {
			if rng.Float64() < g.availability {
				emp.Availability = append(emp.Availability, t.ID)
			}
		}
		f.Employees = append(f.Employees, emp)
	}

	return f
}
