package model_test

import (
	"encoding/json"
	"testing"
	"time"

	model "github.com/aikyam/site/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTimestamp(t *testing.T) {
	convey.Convey("Given dataset timestamps", t, func() {
		loc := time.FixedZone("CST", -6*3600)

		convey.Convey("When the value is local wall time without seconds", func() {
			ts, ok := model.Timestamp("2025-03-10T10:00").In(loc)

			convey.Convey("Then it is read in the configured location", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(ts.Equal(time.Date(2025, 3, 10, 10, 0, 0, 0, loc)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the value carries an explicit offset", func() {
			ts, ok := model.Timestamp("2025-03-10T10:00:00Z").In(loc)

			convey.Convey("Then the offset wins", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(ts.Equal(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the value is a bare date", func() {
			ts, ok := model.Timestamp("2024-11-02").In(loc)

			convey.So(ok, convey.ShouldBeTrue)
			convey.So(ts.Day(), convey.ShouldEqual, 2)
			convey.So(ts.Hour(), convey.ShouldEqual, 0)
		})

		convey.Convey("When the value is empty or garbage", func() {
			_, okEmpty := model.Timestamp("").In(loc)
			_, okBad := model.Timestamp("next tuesday").In(loc)

			convey.So(okEmpty, convey.ShouldBeFalse)
			convey.So(okBad, convey.ShouldBeFalse)
			convey.So(model.Timestamp("  ").IsZero(), convey.ShouldBeTrue)
		})
	})
}

func TestEvent(t *testing.T) {
	convey.Convey("Given events decoded from JSON", t, func() {
		raw := `[
			{"id":"diwali","title":"Diwali Mela","start":"2025-11-01T17:00","end":"2025-11-01T21:30","location":"Park","price":10},
			{"id":"picnic","title":"Summer Picnic","tbd":true},
			{"id":"broken","title":"Broken","start":"soon"}
		]`
		var events []model.Event
		convey.So(json.Unmarshal([]byte(raw), &events), convey.ShouldBeNil)
		loc := time.UTC

		convey.Convey("Then a dated event exposes start and end", func() {
			start, ok := events[0].StartIn(loc)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(start.Hour(), convey.ShouldEqual, 17)

			end, ok := events[0].EndIn(loc, 2*time.Hour)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(end.Sub(start), convey.ShouldEqual, 4*time.Hour+30*time.Minute)
			convey.So(events[0].Invalid(loc), convey.ShouldBeFalse)
		})

		convey.Convey("Then a TBD event has no start and is not invalid", func() {
			_, ok := events[1].StartIn(loc)
			convey.So(ok, convey.ShouldBeFalse)
			convey.So(events[1].Invalid(loc), convey.ShouldBeFalse)
		})

		convey.Convey("Then a dated event with an unparsable start is invalid", func() {
			_, ok := events[2].StartIn(loc)
			convey.So(ok, convey.ShouldBeFalse)
			convey.So(events[2].Invalid(loc), convey.ShouldBeTrue)
		})

		convey.Convey("When the end is missing the fallback duration applies", func() {
			e := model.Event{Start: "2025-11-01T17:00"}
			start, _ := e.StartIn(loc)
			end, ok := e.EndIn(loc, 2*time.Hour)

			convey.So(ok, convey.ShouldBeTrue)
			convey.So(end.Sub(start), convey.ShouldEqual, 2*time.Hour)
		})
	})
}

func TestBoard(t *testing.T) {
	convey.Convey("Given a board document without a chairman", t, func() {
		var b model.Board
		err := json.Unmarshal([]byte(`{"members":[{"name":"Asha Rao","role":"Treasurer"}]}`), &b)

		convey.So(err, convey.ShouldBeNil)
		convey.So(b.Chairman, convey.ShouldBeNil)
		convey.So(b.Members, convey.ShouldHaveLength, 1)
		convey.So(b.Members[0].Role, convey.ShouldEqual, "Treasurer")
	})
}
