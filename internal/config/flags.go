package config

import (
	"github.com/spf13/pflag"
)

// Parse builds the configuration from args (without the program name).
//
// The --config file is read first; flags given explicitly override it.
// It returns pflag.ErrHelp when --help was requested.
func Parse(args []string) (Config, error) {
	var path string
	fv := Default()

	fs := pflag.NewFlagSet("coverflow", pflag.ContinueOnError)
	fs.StringVar(&path, "config", "", "YAML config file")
	fs.StringVar(&fv.Assets, "assets", fv.Assets, "directory with <index>.jpg slides and bg.png")
	fs.IntVar(&fv.Slides, "slides", fv.Slides, "number of slides")
	fs.IntVar(&fv.Start, "start", fv.Start, "initially selected slide (-1 = middle)")
	fs.IntVar(&fv.Width, "width", fv.Width, "framebuffer width")
	fs.IntVar(&fv.Height, "height", fv.Height, "framebuffer height")
	fs.IntVar(&fv.Scale, "scale", fv.Scale, "initial window scale")
	fs.StringVar(&fv.RenderMode, "render-mode", fv.RenderMode, "textured|flat|wireframe")
	fs.BoolVar(&fv.Watch, "watch", fv.Watch, "reload slide images when they change on disk")
	fs.BoolVar(&fv.Debug, "debug", fv.Debug, "development logging at debug level")
	fs.BoolVar(&fv.Headless.Enabled, "headless", fv.Headless.Enabled, "run without a window")
	fs.IntVar(&fv.Headless.Hz, "hz", fv.Headless.Hz, "tick rate in headless mode")
	fs.Uint64Var(&fv.Headless.Ticks, "ticks", fv.Headless.Ticks, "stop after N ticks in headless mode (0 = run forever)")
	fs.StringVar(&fv.Headless.Snapshot, "snapshot", fv.Headless.Snapshot, "write the last headless frame to this PNG file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "assets":
			cfg.Assets = fv.Assets
		case "slides":
			cfg.Slides = fv.Slides
		case "start":
			cfg.Start = fv.Start
		case "width":
			cfg.Width = fv.Width
		case "height":
			cfg.Height = fv.Height
		case "scale":
			cfg.Scale = fv.Scale
		case "render-mode":
			cfg.RenderMode = fv.RenderMode
		case "watch":
			cfg.Watch = fv.Watch
		case "debug":
			cfg.Debug = fv.Debug
		case "headless":
			cfg.Headless.Enabled = fv.Headless.Enabled
		case "hz":
			cfg.Headless.Hz = fv.Headless.Hz
		case "ticks":
			cfg.Headless.Ticks = fv.Headless.Ticks
		case "snapshot":
			cfg.Headless.Snapshot = fv.Headless.Snapshot
		}
	})
	return cfg, cfg.Validate()
}
