package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aikyam/site/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.WeekStart, convey.ShouldEqual, "sunday")
			convey.So(cfg.CountdownTickMS, convey.ShouldEqual, 1000)
			convey.So(cfg.DonationPresets, convey.ShouldResemble, []float64{25, 50, 100, 250})
			convey.So(cfg.LeaderboardThreshold, convey.ShouldEqual, 250.0)
			convey.So(cfg.DefaultCategoryColor, convey.ShouldEqual, "#607D8B")
			convey.So(cfg.CategoryColors["Food"], convey.ShouldEqual, "#FF9800")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then durations are derived from the millisecond fields", func() {
			convey.So(cfg.CountdownTick(), convey.ShouldEqual, time.Second)
			convey.So(cfg.DataTimeout(), convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, time.Duration(0))
		})
	})
}

func TestConfig_Resolvers(t *testing.T) {
	convey.Convey("Given config resolvers", t, func() {
		cfg := config.New()

		convey.Convey("When week_start is monday", func() {
			cfg.WeekStart = "Monday"
			day, err := cfg.FirstWeekday()

			convey.So(err, convey.ShouldBeNil)
			convey.So(day, convey.ShouldEqual, time.Monday)
		})

		convey.Convey("When week_start is unknown", func() {
			cfg.WeekStart = "friday"
			_, err := cfg.FirstWeekday()

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the timezone is UTC", func() {
			cfg.Timezone = "UTC"
			loc, err := cfg.Location()

			convey.So(err, convey.ShouldBeNil)
			convey.So(loc, convey.ShouldEqual, time.UTC)
		})

		convey.Convey("When the timezone does not exist", func() {
			cfg.Timezone = "Mars/Olympus_Mons"

			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the goal is not positive", func() {
			cfg.DonationGoal = 0

			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When a preset is negative", func() {
			cfg.DonationPresets = []float64{25, -1}

			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})
	})
}
