package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	config "github.com/okian/rumble/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given no configuration sources", t, func() {
		os.Unsetenv("RUMBLE_CONFIG")

		Convey("Then defaults apply", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.QueueSize, ShouldEqual, 10_000)
			So(cfg.MaxLeaderboardLimit, ShouldEqual, 100)
			So(cfg.PrimaryPromotion, ShouldEqual, "WWE")
			So(cfg.PointWeights["winner"], ShouldEqual, 12)
		})
	})

	Convey("Given environment overrides", t, func() {
		os.Setenv("RUMBLE_ADDR", ":7070")
		os.Setenv("RUMBLE_LOG_LEVEL", "debug")
		defer os.Unsetenv("RUMBLE_ADDR")
		defer os.Unsetenv("RUMBLE_LOG_LEVEL")

		Convey("Then env values win over defaults", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.LogLevel, ShouldEqual, "debug")
		})
	})

	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "rumble.yaml")
		body := []byte("addr: \":6060\"\nqueue_size: 42\npoint_weights:\n  winner: 20\n")
		So(os.WriteFile(path, body, 0o600), ShouldBeNil)
		os.Setenv("RUMBLE_CONFIG", path)
		defer os.Unsetenv("RUMBLE_CONFIG")

		Convey("Then file values layer over defaults", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.QueueSize, ShouldEqual, 42)
			So(cfg.PointWeights["winner"], ShouldEqual, 20)
		})

		Convey("And env still wins over the file", func() {
			os.Setenv("RUMBLE_ADDR", ":5050")
			defer os.Unsetenv("RUMBLE_ADDR")

			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5050")
		})
	})

	Convey("Given a missing config file", t, func() {
		os.Setenv("RUMBLE_CONFIG", "/nonexistent/rumble.yaml")
		defer os.Unsetenv("RUMBLE_CONFIG")

		Convey("Then loading fails with a load error", func() {
			_, err := config.Load(context.Background())
			So(err, ShouldWrap, config.ErrLoadConfig)
		})
	})

	Convey("Given an invalid configuration", t, func() {
		Convey("When the addr is blanked out", func() {
			os.Setenv("RUMBLE_ADDR", "")
			defer os.Unsetenv("RUMBLE_ADDR")

			_, err := config.Load(context.Background())
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})

		Convey("When a point weight is negative", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "rumble.yaml")
			So(os.WriteFile(path, []byte("point_weights:\n  winner: -1\n"), 0o600), ShouldBeNil)
			os.Setenv("RUMBLE_CONFIG", path)
			defer os.Unsetenv("RUMBLE_CONFIG")

			_, err := config.Load(context.Background())
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
