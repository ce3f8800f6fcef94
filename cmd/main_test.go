package main

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aikyam/site/internal/adapters/http/site"
	app "github.com/aikyam/site/internal/app"
	"github.com/aikyam/site/internal/config"
	"github.com/aikyam/site/pkg/logger"
	"github.com/aikyam/site/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("AIKYAM_ADDR", ":8080")
			_ = os.Setenv("AIKYAM_QUEUE_SIZE", "1000")
			_ = os.Setenv("AIKYAM_TIMEZONE", "UTC")
			defer func() {
				_ = os.Unsetenv("AIKYAM_ADDR")
				_ = os.Unsetenv("AIKYAM_QUEUE_SIZE")
				_ = os.Unsetenv("AIKYAM_TIMEZONE")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
			})
		})

		convey.Convey("When building service options from the defaults", func() {
			cfg := config.New()
			cfg.Timezone = "UTC"
			opts, err := app.OptionsFromConfig(cfg, site.Files())

			convey.Convey("Then the embedded datasets are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(opts, convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			manager := metrics.NewManager()
			convey.So(manager, convey.ShouldNotBeNil)
		})
	})
}

func TestMainMux(t *testing.T) {
	convey.Convey("Given a service started on the embedded datasets", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cfg := config.New()
		cfg.Timezone = "UTC"
		opts, err := app.OptionsFromConfig(cfg, site.Files())
		convey.So(err, convey.ShouldBeNil)
		svc := app.New(append(opts, app.WithLogger(logger.Nop()))...)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := newMux(ctx, cfg, svc)

		convey.Convey("Then the page, the API and the docs are all served", func() {
			for _, path := range []string{"/", "/api/bootstrap", "/api/team", "/api/vendors", "/openapi.yaml", "/api-docs", "/healthz"} {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("And every embedded dataset loaded", func() {
			report, err := svc.Bootstrap(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(report.Failed, convey.ShouldEqual, 0)
		})
	})
}

func TestMainServerShutdown(t *testing.T) {
	convey.Convey("Given a server with an open countdown stream", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cfg := config.New()
		cfg.Timezone = "UTC"
		opts, err := app.OptionsFromConfig(cfg, site.Files())
		convey.So(err, convey.ShouldBeNil)
		svc := app.New(append(opts, app.WithLogger(logger.Nop()))...)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		srv := newServer(ctx, ln.Addr().String(), newMux(ctx, cfg, svc))
		served := make(chan error, 1)
		go func() { served <- srv.Serve(ln) }()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+ln.Addr().String()+"/api/countdown/stream", http.NoBody)
		convey.So(err, convey.ShouldBeNil)
		resp, err := http.DefaultClient.Do(req)
		convey.So(err, convey.ShouldBeNil)
		defer resp.Body.Close()

		line, err := bufio.NewReader(resp.Body).ReadString('\n')
		convey.So(err, convey.ShouldBeNil)
		convey.So(strings.TrimSpace(line), convey.ShouldEqual, "event: countdown")

		convey.Convey("When the server shuts down", func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			begin := time.Now()
			err := srv.Shutdown(shutdownCtx)

			convey.Convey("Then the stream is closed and shutdown returns promptly", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(time.Since(begin), convey.ShouldBeLessThan, 2*time.Second)
				convey.So(errors.Is(<-served, http.ErrServerClosed), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(ctx)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When testing service metrics updater", func() {
			svc := app.New(app.WithLogger(logger.Nop()))
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startServiceMetricsUpdater(ctx, svc)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When testing system metrics update", func() {
			convey.So(func() {
				updateSystemMetrics()
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When testing service metrics update", func() {
			svc := app.New(app.WithLogger(logger.Nop()))

			convey.So(func() {
				updateServiceMetrics(svc)
			}, convey.ShouldNotPanic)
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When the address is empty", func() {
			_ = os.Setenv("AIKYAM_ADDR", "")
			defer func() { _ = os.Unsetenv("AIKYAM_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When no data source is available", func() {
			cfg := config.New()
			cfg.Timezone = "UTC"
			_, err := app.OptionsFromConfig(cfg, nil)

			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
