package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"roster-solver/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.HoursWeight, convey.ShouldEqual, 1)
				convey.So(cfg.StaffingWeight, convey.ShouldEqual, 1)
				convey.So(cfg.MaxNodes, convey.ShouldEqual, 5_000_000)
				convey.So(cfg.BranchOrder, convey.ShouldEqual, config.BranchTrueFirst)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ROSTER_HOURS_WEIGHT", "2.5")
			_ = os.Setenv("ROSTER_STAFFING_WEIGHT", "3")
			_ = os.Setenv("ROSTER_MAX_NODES", "1000")
			_ = os.Setenv("ROSTER_BRANCH_ORDER", "false_first")
			_ = os.Setenv("ROSTER_WORKER_COUNT", "4")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.HoursWeight, convey.ShouldEqual, 2.5)
				convey.So(cfg.StaffingWeight, convey.ShouldEqual, 3)
				convey.So(cfg.MaxNodes, convey.ShouldEqual, 1000)
				convey.So(cfg.BranchOrder, convey.ShouldEqual, config.BranchFalseFirst)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
hours_weight: 2
staffing_weight: 4
max_nodes: 250000
max_duration_ms: 5000
worker_count: 8
enforce_contiguous_shifts: true
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ROSTER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.HoursWeight, convey.ShouldEqual, 2)
				convey.So(cfg.StaffingWeight, convey.ShouldEqual, 4)
				convey.So(cfg.MaxNodes, convey.ShouldEqual, 250000)
				convey.So(cfg.MaxDurationMS, convey.ShouldEqual, 5000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
				convey.So(cfg.EnforceContiguousShifts, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
max_nodes: 250000
worker_count: 8
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ROSTER_CONFIG", tmpFile)
			_ = os.Setenv("ROSTER_WORKER_COUNT", "2")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MaxNodes, convey.ShouldEqual, 250000) // From file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 2)   // Overridden by env
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ROSTER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ROSTER_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative weight", func() {
			_ = os.Setenv("ROSTER_HOURS_WEIGHT", "-1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "weights must not be negative")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown branch order", func() {
			_ = os.Setenv("ROSTER_BRANCH_ORDER", "random")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "branch_order")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown tie break policy", func() {
			_ = os.Setenv("ROSTER_TIE_BREAK", "alphabetical")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "tie_break")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a partial YAML file", func() {
			tmpFile := createTempConfigFile("worker_count: 16\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ROSTER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)        // From file
				convey.So(cfg.MaxNodes, convey.ShouldEqual, 5_000_000)    // From defaults
				convey.So(cfg.EnforceHourBounds, convey.ShouldBeTrue)     // From defaults
				convey.So(cfg.EnforceWorkloadMin, convey.ShouldBeTrue)    // From defaults
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"ROSTER_CONFIG",
		"ROSTER_LOG_LEVEL",
		"ROSTER_METRICS_ADDR",
		"ROSTER_HOURS_WEIGHT",
		"ROSTER_STAFFING_WEIGHT",
		"ROSTER_DAILY_HOURS_WEIGHT",
		"ROSTER_MAX_NODES",
		"ROSTER_MAX_DURATION_MS",
		"ROSTER_BRANCH_ORDER",
		"ROSTER_TIE_BREAK",
		"ROSTER_WORKER_COUNT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "roster-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
