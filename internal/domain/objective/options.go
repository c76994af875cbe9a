package objective

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithHoursWeight sets the weight of the weekly opt-hours deviation term.
func WithHoursWeight(w float64) Option {
	return func(e *Evaluator) {
		if w >= 0 {
			e.hoursWeight = w
		}
	}
}

// WithStaffingWeight sets the weight of the understaffing term.
func WithStaffingWeight(w float64) Option {
	return func(e *Evaluator) {
		if w >= 0 {
			e.staffingWeight = w
		}
	}
}

// WithDailyHoursWeight sets the weight of the secondary daily opt-hours
// deviation term. Zero disables the term.
func WithDailyHoursWeight(w float64) Option {
	return func(e *Evaluator) {
		if w >= 0 {
			e.dailyHoursWeight = w
		}
	}
}
