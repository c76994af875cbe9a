// Package format renders solve results for the CLI, as a human-readable
// report or as JSON.
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	solver "roster-solver/internal/app"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Render renders a result in the named format.
func Render(res *solver.Result, format string) (string, error) {
	switch format {
	case FormatText, "":
		return Text(res), nil
	case FormatJSON:
		out, err := JSON(res)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// JSON renders a result as indented JSON.
func JSON(res *solver.Result) ([]byte, error) {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return out, nil
}

// Text renders a result as a human-readable report.
func Text(res *solver.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "run %s: ", res.RunID)
	switch {
	case !res.Feasible:
		b.WriteString("infeasible\n")
	case res.Optimal:
		fmt.Fprintf(&b, "optimal, cost %.3f\n", res.Cost)
	default:
		fmt.Fprintf(&b, "feasible (search truncated), cost %.3f\n", res.Cost)
	}

	if len(res.Violations) > 0 {
		b.WriteString("\nviolations:\n")
		for _, v := range res.Violations {
			fmt.Fprintf(&b, "  - %s\n", v)
		}
	}

	if s := res.Schedule; s != nil {
		fmt.Fprintf(&b, "\nschedule for store %d:\n", s.Store)
		for _, a := range s.Assignments {
			fmt.Fprintf(&b, "  %-9s %02d:00  slot %-4d employee %-4d %s\n",
				a.Day, a.Hour, a.Timeslot, a.Employee, a.SkillName)
		}

		b.WriteString("\nhours:\n")
		for _, h := range s.Hours {
			fmt.Fprintf(&b, "  employee %-4d worked %2d  opt %2d  deviation %d\n",
				h.Employee, h.Worked, h.Opt, h.Deviation)
		}

		b.WriteString("\nfulfillment:\n")
		for _, f := range s.Fulfillment {
			line := fmt.Sprintf("  slot %-4d %-22s %d of min %d / opt %d",
				f.Timeslot, f.SkillName, f.Assigned, f.Min, f.Opt)
			if f.Shortfall > 0 {
				line += fmt.Sprintf("  (short %d)", f.Shortfall)
			}
			b.WriteString(line + "\n")
		}
	}

	fmt.Fprintf(&b, "\nstats: variables=%d nodes=%d backtracks=%d pruned=%d forced=%d workers=%d duration=%s\n",
		res.Stats.Variables, res.Stats.Nodes, res.Stats.Backtracks,
		res.Stats.Pruned, res.Stats.Forced, res.Stats.Workers, res.Stats.Duration)

	return b.String()
}
