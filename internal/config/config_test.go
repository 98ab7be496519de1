package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/MaryEddythe/tabulator/internal/config"
)

func TestNew(t *testing.T) {
	Convey("Given default configuration", t, func() {
		cfg := config.New()

		Convey("Then sensible defaults are set", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":8090")
			So(cfg.RecomputeQueueSize, ShouldEqual, 1024)
			So(cfg.AutoRecompute, ShouldBeTrue)
			So(cfg.DedupeSize, ShouldEqual, 10_000)
			So(cfg.RosterPath, ShouldBeEmpty)
		})

		Convey("Then the overall weights sum to one", func() {
			w := cfg.OverallWeights
			So(w.Interview+w.Sports+w.Gown+w.Impact, ShouldAlmostEqual, 1.0)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		t.Setenv("TABULATOR_CONFIG", "")

		// t.Setenv only restores the environment when the whole test
		// function ends, so values set in one Convey branch would leak
		// into its siblings; clear them after each branch.
		Reset(func() {
			os.Unsetenv("TABULATOR_ADDR")
			os.Unsetenv("TABULATOR_LOG_LEVEL")
			os.Unsetenv("TABULATOR_RECOMPUTE_QUEUE_SIZE")
			os.Unsetenv("TABULATOR_AUTO_RECOMPUTE")
		})

		Convey("When loading with no overrides", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults come back", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8090")
				So(cfg.AutoRecompute, ShouldBeTrue)
			})
		})

		Convey("When environment variables override defaults", func() {
			t.Setenv("TABULATOR_ADDR", ":9999")
			t.Setenv("TABULATOR_LOG_LEVEL", "debug")
			t.Setenv("TABULATOR_RECOMPUTE_QUEUE_SIZE", "64")
			t.Setenv("TABULATOR_AUTO_RECOMPUTE", "false")

			cfg, err := config.Load(context.Background())

			Convey("Then the overrides win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9999")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.RecomputeQueueSize, ShouldEqual, 64)
				So(cfg.AutoRecompute, ShouldBeFalse)
			})
		})

		Convey("When a YAML file provides values and env overrides one", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			yaml := "addr: \":7070\"\nlog_level: warn\ndedupe_size: 5\n"
			So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
			t.Setenv("TABULATOR_CONFIG", path)
			t.Setenv("TABULATOR_LOG_LEVEL", "error")

			cfg, err := config.Load(context.Background())

			Convey("Then env takes precedence over the file", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "error")
				So(cfg.DedupeSize, ShouldEqual, 5)
			})
		})

		Convey("When the config file does not exist", func() {
			t.Setenv("TABULATOR_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(context.Background())

			Convey("Then loading fails with the load kind", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})

		Convey("When an override violates validation", func() {
			t.Setenv("TABULATOR_RECOMPUTE_QUEUE_SIZE", "0")

			_, err := config.Load(context.Background())

			Convey("Then loading fails with the invalid kind", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}

func TestRoster(t *testing.T) {
	Convey("Given the built-in roster", t, func() {
		roster := config.DefaultRoster()

		Convey("Then it lists five numbered contestants", func() {
			So(roster, ShouldHaveLength, 5)
			for i, c := range roster {
				So(c.Number, ShouldEqual, i+1)
				So(c.Name, ShouldNotBeEmpty)
				So(c.Department, ShouldNotBeEmpty)
			}
		})
	})

	Convey("Given roster loading", t, func() {
		Convey("When the path is empty", func() {
			roster, err := config.LoadRoster("")

			Convey("Then the default roster is used", func() {
				So(err, ShouldBeNil)
				So(roster, ShouldResemble, config.DefaultRoster())
			})
		})

		Convey("When a valid roster file is given", func() {
			path := filepath.Join(t.TempDir(), "roster.yaml")
			data := "- number: 1\n  name: Ana Cruz\n  department: HR\n- number: 2\n  name: Ben Ramos\n  department: IT\n"
			So(os.WriteFile(path, []byte(data), 0o600), ShouldBeNil)

			roster, err := config.LoadRoster(path)

			Convey("Then the file contents are used", func() {
				So(err, ShouldBeNil)
				So(roster, ShouldHaveLength, 2)
				So(roster[0].Name, ShouldEqual, "Ana Cruz")
				So(roster[1].Department, ShouldEqual, "IT")
			})
		})

		Convey("When the roster file is missing", func() {
			_, err := config.LoadRoster(filepath.Join(t.TempDir(), "nope.yaml"))

			Convey("Then loading fails", func() {
				So(err, ShouldWrap, config.ErrLoadRoster)
			})
		})

		Convey("When the roster file is empty", func() {
			path := filepath.Join(t.TempDir(), "empty.yaml")
			So(os.WriteFile(path, nil, 0o600), ShouldBeNil)

			_, err := config.LoadRoster(path)

			Convey("Then loading fails", func() {
				So(err, ShouldWrap, config.ErrLoadRoster)
			})
		})
	})
}
