package sitecheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/aikyam/site/internal/adapters/http/api"
	"github.com/aikyam/site/internal/adapters/loader"
	service "github.com/aikyam/site/internal/app"
	"github.com/aikyam/site/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		loader.CoreTeam:        {Data: []byte(`[{"name": "Asha Rao", "role": "President"}]`)},
		loader.BoardMembers:    {Data: []byte(`{"members": []}`)},
		loader.UpcomingEvents:  {Data: []byte(`[{"id": "holi", "title": "Holi", "start": "2099-03-14T18:00"}]`)},
		loader.CompletedEvents: {Data: []byte(`[]`)},
		loader.Vendors:         {Data: []byte(`[{"name": "Spice Route", "cat": "Food"}]`)},
		loader.Gallery:         {Data: []byte(`[]`)},
	}
}

func startSite(t *testing.T) *httptest.Server {
	svc := service.New(
		service.WithFetcher(loader.NewFSFetcher(fixtureFS())),
		service.WithLocation(time.UTC),
		service.WithDonationGoal(1_000_000),
		service.WithLogger(logger.Nop()),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc, svc.Broker()).Register(context.Background(), mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(func() {
		ts.Close()
		svc.Stop()
	})
	return ts
}

func TestGenerateDonations(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		cfg := &Config{NumDonations: 500, DuplicateRate: 0.2, Seed: 42}
		stats := &Stats{}
		donations := generateDonations(context.Background(), cfg, []float64{25, 50}, stats)

		Convey("Then every donation has a positive amount", func() {
			So(donations, ShouldHaveLength, 500)
			So(stats.Generated, ShouldEqual, 500)
			for _, d := range donations {
				So(d.amount, ShouldBeGreaterThan, 0)
				So(d.Preset != "" || d.Custom != "", ShouldBeTrue)
			}
		})

		Convey("Then resubmissions count once in the expected total", func() {
			_, distinct := expectedTotal(donations)
			So(distinct, ShouldBeLessThan, 500)
			So(distinct, ShouldBeGreaterThan, 0)
		})

		Convey("Then the same seed gives the same amounts", func() {
			again := generateDonations(context.Background(), cfg, []float64{25, 50}, &Stats{})
			for i := range donations {
				So(again[i].amount, ShouldEqual, donations[i].amount)
			}
		})
	})

	Convey("Given whole dollar amounts", t, func() {
		So(groupThousands(5), ShouldEqual, "5")
		So(groupThousands(1000), ShouldEqual, "1,000")
		So(groupThousands(1234567), ShouldEqual, "1,234,567")
	})
}

func TestVerifyLedger(t *testing.T) {
	Convey("Given a ledger before and after a run", t, func() {
		ctx := context.Background()
		before := Panel{Goal: 1000, Raised: 100, Donors: 2, Threshold: 250}
		after := Panel{Goal: 1000, Raised: 400, Donors: 4, Progress: 40, Threshold: 250,
			Leaderboard: []Entry{{Rank: 1, Amount: 300}, {Rank: 2, Amount: 250}}}

		Convey("When the totals match", func() {
			So(verifyLedger(ctx, before, after, 2, 300), ShouldBeNil)
		})

		Convey("When a donation was applied twice", func() {
			err := verifyLedger(ctx, before, after, 1, 300)
			So(errors.Is(err, ErrLedgerMismatch), ShouldBeTrue)
		})

		Convey("When the leaderboard is out of order", func() {
			after.Leaderboard = []Entry{{Amount: 250}, {Amount: 300}}
			err := verifyLedger(ctx, before, after, 2, 300)
			So(errors.Is(err, ErrLeaderboard), ShouldBeTrue)
		})

		Convey("When an entry is below the threshold", func() {
			after.Leaderboard = []Entry{{Amount: 100}}
			err := verifyLedger(ctx, before, after, 2, 300)
			So(errors.Is(err, ErrLeaderboard), ShouldBeTrue)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running site", t, func() {
		ts := startSite(t)

		Convey("When running the check with resubmissions", func() {
			err := Run(context.Background(), &Config{
				BaseURL:       ts.URL,
				NumDonations:  100,
				DuplicateRate: 0.2,
				Workers:       8,
				Timeout:       5 * time.Second,
				Settle:        10 * time.Second,
				Seed:          7,
			})

			Convey("Then it passes", func() {
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given nothing listening", t, func() {
		err := Run(context.Background(), &Config{
			BaseURL: "http://127.0.0.1:1",
			Timeout: time.Second,
		})
		So(err, ShouldNotBeNil)
	})
}
