package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then Get should return a usable logger", func() {
			So(Get(), ShouldNotBeNil)
			So(Named("test"), ShouldNotBeNil)
			So(Sync(), ShouldBeNil)
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing JSON to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(), ShouldBeNil)
		So(SetOutput(&buf), ShouldBeNil)
		So(SetFormat("json"), ShouldBeNil)
		defer func() {
			_ = SetFormat("text")
			_ = SetOutput(os.Stdout)
		}()

		Convey("When logging with a request id in the context", func() {
			ctx := WithRequestID(context.Background(), "req-1")
			Named("weather").Info(ctx, "upstream call", String("city", "London"), Error(errors.New("boom")))

			var line map[string]any
			So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)

			Convey("Then the line carries the fields, component and request id", func() {
				So(line["msg"], ShouldEqual, "upstream call")
				So(line["city"], ShouldEqual, "London")
				So(line["component"], ShouldEqual, "weather")
				So(line["request_id"], ShouldEqual, "req-1")
				So(line["error"], ShouldEqual, "boom")
				So(line["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised to error", func() {
			So(SetLevelString("error"), ShouldBeNil)
			defer func() { _ = SetLevelString("info") }()
			Get().Info(context.Background(), "dropped")

			Convey("Then info lines are suppressed", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When With attaches fields", func() {
			Get().With(String("provider", "owm")).Warn(context.Background(), "slow")

			Convey("Then they appear on the line", func() {
				So(buf.String(), ShouldContainSubstring, `"provider":"owm"`)
			})
		})
	})
}

func TestLoggerSettings(t *testing.T) {
	Convey("Given logger settings", t, func() {
		Convey("Unknown levels are rejected", func() {
			So(SetLevelString("loud"), ShouldNotBeNil)
			So(SetLevelString("WARNING"), ShouldBeNil)
			So(SetLevelString(""), ShouldBeNil)
		})

		Convey("Unknown formats are rejected", func() {
			So(SetFormat("xml"), ShouldNotBeNil)
			So(SetFormat("TEXT"), ShouldBeNil)
		})

		Convey("RequestID on a bare context is empty", func() {
			So(RequestID(context.Background()), ShouldEqual, "")
		})

		Convey("Nop never panics", func() {
			So(func() { Nop().Error(context.Background(), "x") }, ShouldNotPanic)
		})
	})
}
