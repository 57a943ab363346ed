package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"os/signal"

	"coverflow/app"
	"coverflow/hal"
	"coverflow/hal/window"
	"coverflow/internal/buildinfo"
	"coverflow/internal/config"
	"coverflow/internal/logging"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("exit", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	mode, err := cfg.Mode()
	if err != nil {
		return err
	}
	acfg := app.Config{
		Carousel: cfg.Carousel(),
		Start:    cfg.StartIndex(),
		Mode:     mode,
		Assets:   cfg.Assets,
		Watch:    cfg.Watch,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("starting", append(buildinfo.Fields(),
		zap.String("assets", cfg.Assets),
		zap.Int("slides", cfg.Slides),
		zap.Bool("headless", cfg.Headless.Enabled))...)

	var a *app.App
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("close", zap.Error(err))
		}
	}()
	newApp := func(h hal.HAL) (func() error, error) {
		var err error
		a, err = app.New(ctx, h, acfg, log)
		if err != nil {
			return nil, err
		}
		return a.Step, nil
	}

	if cfg.Headless.Enabled {
		err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Enabled: true,
			Width:   cfg.Width,
			Height:  cfg.Height,
			Hz:      cfg.Headless.Hz,
			Ticks:   cfg.Headless.Ticks,
			Finish:  snapshot(cfg.Headless.Snapshot, log),
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return window.Run(newApp, window.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Scale:  cfg.Scale,
		TPS:    cfg.TPS,
	})
}

// snapshot returns a Finish hook that writes the last frame to path as PNG.
func snapshot(path string, log *zap.Logger) func(hal.Framebuffer) error {
	if path == "" {
		return nil
	}
	return func(fb hal.Framebuffer) error {
		img := hal.Snapshot(fb)
		if img == nil {
			return errors.New("snapshot: unsupported framebuffer")
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return fmt.Errorf("snapshot: encode %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		log.Info("snapshot written", zap.String("path", path))
		return nil
	}
}
