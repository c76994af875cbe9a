package compile

// Option applies a configuration option to the Problem being compiled.
type Option func(*Problem)

// WithHourBounds toggles the daily and weekly hour-bound constraints.
func WithHourBounds(enforce bool) Option {
	return func(p *Problem) {
		p.EnforceHourBounds = enforce
	}
}

// WithWorkloadMin toggles the workload-minimum constraints. The objective
// still steers toward opt amounts when disabled.
func WithWorkloadMin(enforce bool) Option {
	return func(p *Problem) {
		p.EnforceWorkloadMin = enforce
	}
}

// WithContiguousShifts requires each employee's worked timeslots on a day
// to form one contiguous block of hours.
func WithContiguousShifts(enforce bool) Option {
	return func(p *Problem) {
		p.EnforceContiguity = enforce
	}
}
