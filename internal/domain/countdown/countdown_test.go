package countdown_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aikyam/site/internal/domain/countdown"
	"github.com/aikyam/site/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestSelect(t *testing.T) {
	convey.Convey("Given upcoming events", t, func() {
		loc := time.UTC
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, loc)
		events := []model.Event{
			{ID: "past", Start: "2025-02-20T10:00"},
			{ID: "now", Start: "2025-03-01T12:00"},
			{ID: "tbd-dated", TBD: true, Start: "2025-03-01T13:00"},
			{ID: "later", Start: "2025-04-01T10:00"},
			{ID: "soon", Title: "Ugadi", Start: "2025-03-02T10:00"},
			{ID: "garbage", Start: "whenever"},
		}

		convey.Convey("When selecting the countdown target", func() {
			target, ok := countdown.Select(events, now, loc)

			convey.Convey("Then the nearest strictly-future dated event wins", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(target.Event.ID, convey.ShouldEqual, "soon")
				convey.So(target.Start.After(now), convey.ShouldBeTrue)
				convey.So(target.Heading(), convey.ShouldEqual, "Ugadi • Mar 2")
			})
		})

		convey.Convey("When nothing is in the future", func() {
			_, ok := countdown.Select(events[:3], now, loc)

			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When the list is empty", func() {
			_, ok := countdown.Select(nil, now, loc)

			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestCompute(t *testing.T) {
	convey.Convey("Given a countdown target", t, func() {
		start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
		target := &countdown.Target{Event: model.Event{ID: "holi", Title: "Holi"}, Start: start}

		convey.Convey("When time is left", func() {
			left := 26*time.Hour + 3*time.Minute + 4*time.Second + 500*time.Millisecond
			d := countdown.Compute(target, start.Add(-left))

			convey.Convey("Then it splits on day, hour, minute and second boundaries", func() {
				convey.So(d.State, convey.ShouldEqual, countdown.StateCounting)
				convey.So(d.Days, convey.ShouldEqual, 1)
				convey.So(d.Hours, convey.ShouldEqual, 2)
				convey.So(d.Minutes, convey.ShouldEqual, 3)
				convey.So(d.Seconds, convey.ShouldEqual, 4)
				convey.So(d.Title, convey.ShouldEqual, "Holi • Mar 10")
				convey.So(d.EventID, convey.ShouldEqual, "holi")
			})
		})

		convey.Convey("When less than a second is left", func() {
			d := countdown.Compute(target, start.Add(-999*time.Millisecond))

			convey.So(d.State, convey.ShouldEqual, countdown.StateCounting)
			convey.So(d.Seconds, convey.ShouldEqual, 0)
		})

		convey.Convey("When the start has been reached", func() {
			atStart := countdown.Compute(target, start)
			after := countdown.Compute(target, start.Add(time.Hour))

			convey.So(atStart.State, convey.ShouldEqual, countdown.StateLive)
			convey.So(atStart.Label, convey.ShouldEqual, "Happening now")
			convey.So(after.State, convey.ShouldEqual, countdown.StateLive)
		})

		convey.Convey("When there is no target", func() {
			d := countdown.Compute(nil, start)

			convey.So(d.State, convey.ShouldEqual, countdown.StateNone)
			convey.So(d.Title, convey.ShouldEqual, "Stay tuned")
			convey.So(d.Target, convey.ShouldBeNil)
		})
	})
}

// steppingClock advances by step on every call.
func steppingClock(base time.Time, step time.Duration) func() time.Time {
	var n atomic.Int64
	return func() time.Time {
		return base.Add(time.Duration(n.Add(1)-1) * step)
	}
}

type recorder struct {
	mu       sync.Mutex
	displays []countdown.Display
}

func (r *recorder) publish(d countdown.Display) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.displays = append(r.displays, d)
}

func (r *recorder) snapshot() []countdown.Display {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]countdown.Display(nil), r.displays...)
}

func waitStopped(tm *countdown.Timer) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !tm.Running() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func TestTimer(t *testing.T) {
	convey.Convey("Given a countdown timer", t, func() {
		base := time.Date(2025, 3, 10, 9, 59, 57, 500_000_000, time.UTC)
		target := &countdown.Target{Event: model.Event{ID: "holi", Title: "Holi"}, Start: base.Add(2500 * time.Millisecond)}

		convey.Convey("When it runs to the event start", func() {
			tm := countdown.NewTimer(countdown.WithTick(time.Millisecond), countdown.WithClock(steppingClock(base, time.Second)))
			rec := &recorder{}
			tm.Start(context.Background(), target, rec.publish)

			convey.Convey("Then it ticks down and stops after going live", func() {
				convey.So(waitStopped(tm), convey.ShouldBeTrue)
				got := rec.snapshot()
				convey.So(got, convey.ShouldHaveLength, 4)
				convey.So(got[0].Seconds, convey.ShouldEqual, 2)
				convey.So(got[1].Seconds, convey.ShouldEqual, 1)
				convey.So(got[2].Seconds, convey.ShouldEqual, 0)
				convey.So(got[2].State, convey.ShouldEqual, countdown.StateCounting)
				convey.So(got[3].State, convey.ShouldEqual, countdown.StateLive)
			})
		})

		convey.Convey("When there is no target", func() {
			tm := countdown.NewTimer(countdown.WithTick(time.Millisecond))
			rec := &recorder{}
			tm.Start(context.Background(), nil, rec.publish)

			convey.Convey("Then it publishes once and no loop runs", func() {
				convey.So(tm.Running(), convey.ShouldBeFalse)
				got := rec.snapshot()
				convey.So(got, convey.ShouldHaveLength, 1)
				convey.So(got[0].State, convey.ShouldEqual, countdown.StateNone)
			})
		})

		convey.Convey("When it is restarted", func() {
			frozen := func() time.Time { return base }
			tm := countdown.NewTimer(countdown.WithTick(time.Millisecond), countdown.WithClock(frozen))
			first := &recorder{}
			second := &recorder{}
			tm.Start(context.Background(), target, first.publish)
			time.Sleep(10 * time.Millisecond)
			tm.Start(context.Background(), target, second.publish)
			stale := len(first.snapshot())
			time.Sleep(20 * time.Millisecond)

			convey.Convey("Then the previous loop no longer publishes", func() {
				convey.So(len(first.snapshot()), convey.ShouldEqual, stale)
				convey.So(len(second.snapshot()), convey.ShouldBeGreaterThan, 1)
				convey.So(tm.Running(), convey.ShouldBeTrue)
			})

			tm.Stop()
			convey.So(tm.Running(), convey.ShouldBeFalse)
		})

		convey.Convey("When the parent context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			tm := countdown.NewTimer(countdown.WithTick(time.Millisecond), countdown.WithClock(func() time.Time { return base }))
			tm.Start(ctx, target, func(countdown.Display) {})
			cancel()

			convey.So(waitStopped(tm), convey.ShouldBeTrue)
		})
	})
}
