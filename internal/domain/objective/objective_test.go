package objective_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"roster-solver/internal/domain/objective"
)

func TestEvaluatorCost(t *testing.T) {
	Convey("Given an evaluator with default weights", t, func() {
		ev := objective.New()

		Convey("When computing a cost from integer aggregates", func() {
			Convey("Then both primary terms should weigh 1", func() {
				So(ev.Cost(3, 2, 0), ShouldEqual, 5)
				So(ev.Cost(0, 0, 0), ShouldEqual, 0)
			})

			Convey("And the daily term should be off", func() {
				So(ev.DailyTermEnabled(), ShouldBeFalse)
				So(ev.Cost(0, 0, 7), ShouldEqual, 0)
			})
		})
	})

	Convey("Given an evaluator with custom weights", t, func() {
		ev := objective.New(
			objective.WithHoursWeight(2),
			objective.WithStaffingWeight(0.5),
			objective.WithDailyHoursWeight(0.25),
		)

		Convey("When computing a cost", func() {
			Convey("Then each term should carry its weight", func() {
				So(ev.Cost(3, 4, 8), ShouldEqual, 2*3+0.5*4+0.25*8)
				So(ev.DailyTermEnabled(), ShouldBeTrue)
			})
		})

		Convey("When a negative weight is supplied", func() {
			neg := objective.New(objective.WithHoursWeight(-1))

			Convey("Then the default should be kept", func() {
				So(neg.Cost(1, 0, 0), ShouldEqual, 1)
			})
		})
	})
}

func TestHoursDeviation(t *testing.T) {
	Convey("Given weekly hour totals", t, func() {
		Convey("When the total equals opt", func() {
			So(objective.HoursDeviation(20, 20), ShouldEqual, 0)
		})
		Convey("When the total is below opt", func() {
			So(objective.HoursDeviation(15, 20), ShouldEqual, 5)
		})
		Convey("When the total is above opt", func() {
			So(objective.HoursDeviation(26, 20), ShouldEqual, 6)
		})
	})
}

func TestHoursDeviationBound(t *testing.T) {
	Convey("Given a partial assignment", t, func() {
		Convey("When opt is still reachable", func() {
			// worked 2, up to 4 more possible, opt 5, max 8
			So(objective.HoursDeviationBound(2, 4, 5, 8), ShouldEqual, 0)
		})

		Convey("When opt is above the reachable range", func() {
			// at most 2+2=4 worked, opt 7
			So(objective.HoursDeviationBound(2, 2, 7, 8), ShouldEqual, 3)
		})

		Convey("When the max bound caps the reachable range", func() {
			// open slots abound but max 5 caps the total
			So(objective.HoursDeviationBound(3, 10, 7, 5), ShouldEqual, 2)
		})

		Convey("When already past opt", func() {
			So(objective.HoursDeviationBound(6, 3, 4, 8), ShouldEqual, 2)
		})

		Convey("Then it should never exceed the deviation of any completion", func() {
			worked, open, opt, max := 1, 3, 4, 6
			lb := objective.HoursDeviationBound(worked, open, opt, max)
			for extra := 0; extra <= open; extra++ {
				final := worked + extra
				if final > max {
					break
				}
				So(lb, ShouldBeLessThanOrEqualTo, objective.HoursDeviation(final, opt))
			}
		})
	})
}

func TestStaffingShortfall(t *testing.T) {
	Convey("Given workload fulfillment counts", t, func() {
		Convey("When fulfilled meets or exceeds opt", func() {
			So(objective.StaffingShortfall(2, 2), ShouldEqual, 0)
			// Overstaffing above opt is not penalized.
			So(objective.StaffingShortfall(5, 2), ShouldEqual, 0)
		})

		Convey("When fulfilled is below opt", func() {
			So(objective.StaffingShortfall(1, 3), ShouldEqual, 2)
		})
	})
}

func TestStaffingShortfallBound(t *testing.T) {
	Convey("Given partial workload fulfillment", t, func() {
		Convey("When unbound candidates can still close the gap", func() {
			So(objective.StaffingShortfallBound(1, 2, 3), ShouldEqual, 0)
		})

		Convey("When candidates cannot close the gap", func() {
			So(objective.StaffingShortfallBound(0, 1, 3), ShouldEqual, 2)
		})
	})
}
