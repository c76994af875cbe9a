// Package config defines solver configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with documented defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"
)

// Branch order values for BranchOrder.
const (
	BranchTrueFirst  = "true_first"
	BranchFalseFirst = "false_first"
)

// Tie break values for TieBreak. Only id ordering is defined; the field
// exists so a different policy can be introduced without breaking configs.
const (
	TieBreakIDOrder = "id_order"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures an optional Prometheus listen address,
	// e.g. ":9090". Empty disables the metrics endpoint.
	MetricsAddr string `koanf:"metrics_addr"`

	// HoursWeight scales the per-employee deviation from weekly opt hours.
	HoursWeight float64 `koanf:"hours_weight"`

	// StaffingWeight scales understaffing below a workload's opt amount.
	StaffingWeight float64 `koanf:"staffing_weight"`

	// DailyHoursWeight scales the secondary daily-opt deviation term.
	// Zero disables it.
	DailyHoursWeight float64 `koanf:"daily_hours_weight"`

	// MaxNodes bounds the number of search-tree nodes explored.
	// Zero or negative means unbounded.
	MaxNodes int64 `koanf:"max_nodes"`

	// MaxDurationMS bounds the wall-clock search time in milliseconds.
	// Zero or negative means unbounded.
	MaxDurationMS int `koanf:"max_duration_ms"`

	// BranchOrder selects which value a branch tries first: true_first
	// or false_first.
	BranchOrder string `koanf:"branch_order"`

	// TieBreak selects the deterministic tie-break policy: id_order.
	TieBreak string `koanf:"tie_break"`

	// WorkerCount sets the number of parallel search workers.
	WorkerCount int `koanf:"worker_count"`

	// EnforceHourBounds toggles the daily and weekly hour-bound constraints.
	EnforceHourBounds bool `koanf:"enforce_hour_bounds"`

	// EnforceWorkloadMin toggles the workload-minimum constraints.
	EnforceWorkloadMin bool `koanf:"enforce_workload_min"`

	// EnforceContiguousShifts requires each employee's worked timeslots
	// on a day to form one contiguous block.
	EnforceContiguousShifts bool `koanf:"enforce_contiguous_shifts"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		MetricsAddr:             "",
		HoursWeight:             1,
		StaffingWeight:          1,
		DailyHoursWeight:        0,
		MaxNodes:                5_000_000,
		MaxDurationMS:           30_000,
		BranchOrder:             BranchTrueFirst,
		TieBreak:                TieBreakIDOrder,
		WorkerCount:             1,
		EnforceHourBounds:       true,
		EnforceWorkloadMin:      true,
		EnforceContiguousShifts: false,
	}
}

// MaxDuration returns the search time budget as a duration.
func (c *Config) MaxDuration() time.Duration {
	if c.MaxDurationMS <= 0 {
		return 0
	}
	return time.Duration(c.MaxDurationMS) * time.Millisecond
}
