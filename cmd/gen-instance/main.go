// Command gen-instance generates a synthetic retail rostering instance as
// YAML, for demos, tests, and benchmarks.
package main

import (
	"flag"
	"os"

	"roster-solver/internal/instance"
)

// Default generation parameters.
const (
	defaultSeed      = 1
	defaultStore     = 1
	defaultEmployees = 8
	defaultDays      = 7
	defaultAvailRate = 0.8
	defaultMin       = 1
	defaultOpt       = 2
)

func main() {
	var (
		seed      = flag.Int64("seed", defaultSeed, "Random seed; the same seed yields the same instance")
		store     = flag.Int("store", defaultStore, "Store id")
		employees = flag.Int("employees", defaultEmployees, "Number of employees")
		days      = flag.Int("days", defaultDays, "Number of horizon days (1-7)")
		availRate = flag.Float64("availability", defaultAvailRate, "Probability an employee is available for a timeslot")
		minAmount = flag.Int("min", defaultMin, "Minimum staffing amount per requirement")
		optAmount = flag.Int("opt", defaultOpt, "Optimal staffing amount per requirement")
		output    = flag.String("output", "", "Output file (default: stdout)")
	)
	flag.Parse()

	f := instance.Generate(
		instance.WithSeed(*seed),
		instance.WithStore(*store),
		instance.WithEmployeeCount(*employees),
		instance.WithDayCount(*days),
		instance.WithAvailabilityRate(*availRate),
		instance.WithWorkloadBounds(*minAmount, *optAmount),
	)

	data, err := f.Encode()
	if err != nil {
		os.Stderr.WriteString("failed to encode instance: " + err.Error() + "\n")
		os.Exit(1)
	}

	if *output == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*output, data, 0o600); err != nil {
		os.Stderr.WriteString("failed to write instance: " + err.Error() + "\n")
		os.Exit(1)
	}
}
