package config_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"roster-solver/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.HoursWeight, convey.ShouldEqual, 1)
			convey.So(cfg.StaffingWeight, convey.ShouldEqual, 1)
			convey.So(cfg.DailyHoursWeight, convey.ShouldEqual, 0)
			convey.So(cfg.MaxNodes, convey.ShouldEqual, 5_000_000)
			convey.So(cfg.MaxDurationMS, convey.ShouldEqual, 30_000)
			convey.So(cfg.BranchOrder, convey.ShouldEqual, config.BranchTrueFirst)
			convey.So(cfg.TieBreak, convey.ShouldEqual, config.TieBreakIDOrder)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 1)
			convey.So(cfg.EnforceHourBounds, convey.ShouldBeTrue)
			convey.So(cfg.EnforceWorkloadMin, convey.ShouldBeTrue)
			convey.So(cfg.EnforceContiguousShifts, convey.ShouldBeFalse)
		})

		convey.Convey("Then the duration budget should convert to a duration", func() {
			convey.So(cfg.MaxDuration().Milliseconds(), convey.ShouldEqual, 30_000)

			cfg.MaxDurationMS = 0
			convey.So(cfg.MaxDuration(), convey.ShouldEqual, 0)
		})
	})
}
