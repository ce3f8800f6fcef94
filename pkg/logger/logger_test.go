package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a usable logger", func() {
				l := Get()
				So(l, ShouldNotBeNil)
				So(func() { l.Info(context.Background(), "hello", String("k", "v")) }, ShouldNotPanic)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialized with an unknown format", func() {
			err := InitWithWriter(&bytes.Buffer{}, "xml")

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown log format")
			})
		})

		Convey("When initialized with a nil writer", func() {
			So(InitWithWriter(nil, "text"), ShouldNotBeNil)
		})
	})
}

func TestLoggerJSONOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf, "json"), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Named("loader").With(String("dataset", "vendors.json")).Warn(ctx, "load failed", Error(errors.New("boom")), Int("status", 404))

			Convey("Then the record carries every field", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "load failed")
				So(rec["level"], ShouldEqual, "WARN")
				So(rec["component"], ShouldEqual, "loader")
				So(rec["dataset"], ShouldEqual, "vendors.json")
				So(rec["error"], ShouldEqual, "boom")
				So(rec["status"], ShouldEqual, float64(404))
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given a text logger", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf, "text"), ShouldBeNil)
		ctx := context.Background()

		Convey("When the level is raised to error", func() {
			So(SetLevelString("ERROR"), ShouldBeNil)
			Get().Info(ctx, "dropped")
			Get().Error(ctx, "kept")

			Convey("Then only error records are written", func() {
				So(buf.String(), ShouldNotContainSubstring, "dropped")
				So(buf.String(), ShouldContainSubstring, "kept")
			})
		})

		Convey("When the level string is invalid", func() {
			err := SetLevelString("verbose")

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the level string has surrounding spaces", func() {
			So(SetLevelString("  warning "), ShouldBeNil)
			Get().Info(ctx, "quiet")
			So(strings.Contains(buf.String(), "quiet"), ShouldBeFalse)
		})

		Reset(func() { _ = SetLevelString("info") })
	})
}

func TestNop(t *testing.T) {
	Convey("Nop never panics", t, func() {
		l := Nop().Named("x").With(Bool("b", true))
		So(func() { l.Debug(context.Background(), "ignored") }, ShouldNotPanic)
	})
}
