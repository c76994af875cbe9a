// Package objective computes the scalar cost of a (possibly partial)
// assignment: weighted deviation from opt hours plus weighted understaffing
// below opt amounts. Overstaffing above opt is free.
//
// Deviations are kept as exact integer aggregates so the search engine can
// maintain them incrementally per variable flip and revert them exactly on
// backtracking; weights are applied only when a scalar cost is needed.
package objective

// Default objective weights.
const (
	defaultHoursWeight    = 1.0
	defaultStaffingWeight = 1.0
)

// Evaluator turns integer deviation aggregates into a scalar cost. This is
// the single place where the two objectives are traded off.
type Evaluator struct {
	hoursWeight      float64
	staffingWeight   float64
	dailyHoursWeight float64
}

// New creates an Evaluator with default weights (both 1, daily term off).
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		hoursWeight:      defaultHoursWeight,
		staffingWeight:   defaultStaffingWeight,
		dailyHoursWeight: 0,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Cost returns the scalar cost for the given integer aggregates:
// weekly opt-hours deviation summed over employees, understaffing below opt
// summed over workloads, and the optional daily opt-hours deviation.
func (e *Evaluator) Cost(weeklyDev, staffShortfall, dailyDev int) float64 {
	return e.hoursWeight*float64(weeklyDev) +
		e.staffingWeight*float64(staffShortfall) +
		e.dailyHoursWeight*float64(dailyDev)
}

// DailyTermEnabled reports whether the secondary daily deviation term
// contributes to the cost.
func (e *Evaluator) DailyTermEnabled() bool { return e.dailyHoursWeight > 0 }

// HoursDeviation returns |worked - opt| for a completed hour total.
func HoursDeviation(worked, opt int) int {
	if worked < opt {
		return opt - worked
	}
	return worked - opt
}

// HoursDeviationBound returns the smallest achievable |final - opt| given
// that the final total lies in [worked, min(worked+open, max)]. It is an
// admissible lower bound: never larger than the deviation of any completion.
func HoursDeviationBound(worked, open, opt, max int) int {
	hi := worked + open
	if hi > max {
		hi = max
	}
	switch {
	case opt < worked:
		return worked - opt
	case opt > hi:
		return opt - hi
	default:
		return 0
	}
}

// StaffingShortfall returns max(0, opt - fulfilled) for a completed workload.
func StaffingShortfall(fulfilled, opt int) int {
	if fulfilled >= opt {
		return 0
	}
	return opt - fulfilled
}

// StaffingShortfallBound returns the smallest achievable shortfall given
// the unbound candidate count: max(0, opt - fulfilled - candidates).
func StaffingShortfallBound(fulfilled, candidates, opt int) int {
	return StaffingShortfall(fulfilled+candidates, opt)
}
