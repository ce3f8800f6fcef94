package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/aikyam/site/internal/app"
	"github.com/aikyam/site/internal/domain/addtocal"
	"github.com/aikyam/site/internal/domain/countdown"
	"github.com/aikyam/site/internal/domain/vendors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestService_Views(t *testing.T) {
	Convey("Given a started service over the fixture datasets", t, func() {
		svc := newFixtureService()
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When rendering people", func() {
			team := svc.Team(ctx)
			board := svc.Board(ctx)

			Convey("Then the team keeps dataset order", func() {
				So(team, ShouldHaveLength, 2)
				So(team[0].Title, ShouldEqual, "Asha Rao")
				So(team[1].Image.Placeholder.Text, ShouldEqual, "VI")
			})

			Convey("And the chairman is rendered apart from the members", func() {
				So(board.Chairman, ShouldNotBeNil)
				So(board.Chairman.Title, ShouldEqual, "Ravi Kumar")
				So(board.Members, ShouldHaveLength, 1)
			})
		})

		Convey("When rendering the event loops", func() {
			up := svc.Upcoming(ctx)
			past := svc.Past(ctx)

			Convey("Then each track holds every card twice and wraps at half its extent", func() {
				So(up.Count, ShouldEqual, 4)
				So(up.Cards, ShouldHaveLength, 8)
				So(up.Threshold, ShouldEqual, up.Extent/2)
				So(up.Cards[4], ShouldResemble, up.Cards[0])
				So(past.Cards, ShouldHaveLength, 2)
				So(past.Cards[0].Pill, ShouldEqual, "Completed")
				So(past.Cards[0].When, ShouldEqual, "Nov 1, 2024")
			})

			Convey("And TBD or unusable starts carry no actions", func() {
				So(up.Cards[0].Actions, ShouldHaveLength, 2)
				So(up.Cards[1].Pill, ShouldEqual, "TBD")
				So(up.Cards[1].Actions, ShouldBeEmpty)
				So(up.Cards[3].When, ShouldEqual, "To be announced")
			})
		})

		Convey("When building the calendar", func() {
			month := svc.Calendar(ctx, time.Time{})

			Convey("Then it lays out March 2025 starting on Saturday", func() {
				So(month.Label, ShouldEqual, "March 2025")
				So(month.StartDow, ShouldEqual, 6)
				So(len(month.Cells)%7, ShouldEqual, 0)
				So(month.Cells, ShouldHaveLength, 42)
			})

			Convey("And marks event days and today", func() {
				day := func(d int) int { return month.StartDow + d - 1 }
				So(month.Cells[day(14)].HasEvent, ShouldBeTrue)
				So(month.Cells[day(30)].HasEvent, ShouldBeTrue)
				So(month.Cells[day(15)].HasEvent, ShouldBeFalse)
				So(month.Cells[day(5)].IsToday, ShouldBeTrue)
			})
		})

		Convey("When listing the schedule", func() {
			items := svc.Schedule(ctx)

			Convey("Then dated events come first by start and the rest keep their order", func() {
				So(items, ShouldHaveLength, 4)
				So(items[0].ID, ShouldEqual, "holi")
				So(items[1].ID, ShouldEqual, "ugadi")
				So(items[2].ID, ShouldEqual, "fest")
				So(items[3].ID, ShouldEqual, "broken")
				So(items[2].When, ShouldEqual, "Date TBD")
			})
		})

		Convey("When reading the countdown", func() {
			d := svc.Countdown(ctx)

			Convey("Then it counts towards the nearest dated event", func() {
				So(d.State, ShouldEqual, countdown.StateCounting)
				So(d.EventID, ShouldEqual, "holi")
				So(d.Title, ShouldEqual, "Holi • Mar 14")
				So(d.Days, ShouldEqual, int64(9))
				So(d.Hours, ShouldEqual, int64(8))
			})

			Convey("And the broker has already seen a display", func() {
				latest, ok := svc.Broker().Latest()
				So(ok, ShouldBeTrue)
				So(latest.EventID, ShouldEqual, "holi")
			})
		})

		Convey("When filtering vendors", func() {
			Convey("Then All returns everything with the category buttons", func() {
				v := svc.Vendors(ctx, vendors.All)
				So(v.Cards, ShouldHaveLength, 3)
				So(v.Categories, ShouldResemble, []string{"All", "Food", "Education"})
			})

			Convey("Then a category matches exactly", func() {
				v := svc.Vendors(ctx, "Food")
				So(v.Cards, ShouldHaveLength, 2)
				So(v.Empty, ShouldBeFalse)
			})

			Convey("Then an unknown category shows the empty state", func() {
				v := svc.Vendors(ctx, "food")
				So(v.Cards, ShouldBeEmpty)
				So(v.Empty, ShouldBeTrue)
				So(v.Message, ShouldEqual, vendors.EmptyMessage)
			})

			Convey("Then the marquee loops every vendor", func() {
				m := svc.VendorMarquee(ctx)
				So(m.Cards, ShouldHaveLength, 6)
				So(m.Speed, ShouldEqual, 0.5)
			})
		})

		Convey("When building add-to-calendar links", func() {
			Convey("Then a dated event gets every provider", func() {
				links, err := svc.Links(ctx, "holi")
				So(err, ShouldBeNil)
				So(links.Google, ShouldStartWith, "https://calendar.google.com/")
				So(links.End.Sub(links.Start), ShouldEqual, 3*time.Hour)
			})

			Convey("Then a TBD event is refused", func() {
				_, err := svc.Links(ctx, "fest")
				So(errors.Is(err, addtocal.ErrUndated), ShouldBeTrue)
			})

			Convey("Then an unknown event is not found", func() {
				_, err := svc.Links(ctx, "nope")
				So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When writing iCalendar files", func() {
			var buf bytes.Buffer

			Convey("Then one event is written with its file name", func() {
				name, err := svc.WriteEventICS(ctx, &buf, "ugadi")
				So(err, ShouldBeNil)
				So(name, ShouldEqual, "ugadi.ics")
				So(buf.String(), ShouldContainSubstring, "SUMMARY:Ugadi\r\n")
			})

			Convey("Then the full calendar skips undated events", func() {
				So(svc.WriteCalendarICS(ctx, &buf), ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "UID:holi@aikyam.community")
				So(buf.String(), ShouldNotContainSubstring, "Summer Fest")
			})
		})

		Convey("When rendering the whole page", func() {
			page, err := svc.Page(ctx)

			Convey("Then every section is present", func() {
				So(err, ShouldBeNil)
				So(page.Team, ShouldHaveLength, 2)
				So(page.Schedule, ShouldHaveLength, 4)
				So(page.Donations.Goal, ShouldEqual, 10_000.0)
				So(page.Datasets["gallery.json"], ShouldBeFalse)
				So(page.Datasets["vendors.json"], ShouldBeTrue)
			})
		})
	})
}
