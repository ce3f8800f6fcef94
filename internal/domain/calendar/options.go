package calendar

import "time"

// Option configures month and schedule builds.
type Option func(*options)

type options struct {
	loc          *time.Location
	firstWeekday time.Weekday
}

func newOptions(opts []Option) options {
	o := options{loc: time.Local, firstWeekday: time.Sunday}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLocation sets the zone the grid and event dates are bucketed in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithFirstWeekday sets the weekday shown in the first grid column.
func WithFirstWeekday(d time.Weekday) Option {
	return func(o *options) {
		if d >= time.Sunday && d <= time.Saturday {
			o.firstWeekday = d
		}
	}
}
