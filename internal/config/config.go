// Package config loads carousel settings from defaults, an optional YAML file
// and command-line flags, in that order of precedence (flags win).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"coverflow/coverflow"
	"coverflow/quarkgl"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Config is the full set of runtime settings.
type Config struct {
	Assets     string `yaml:"assets"`
	Slides     int    `yaml:"slides"`
	Start      int    `yaml:"start"` // -1 selects the middle slide
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Scale      int    `yaml:"scale"`
	TPS        int    `yaml:"tps"`
	RenderMode string `yaml:"render_mode"`
	Watch      bool   `yaml:"watch"`
	Debug      bool   `yaml:"debug"`

	Layout     Layout     `yaml:"layout"`
	Transition Transition `yaml:"transition"`
	Input      Input      `yaml:"input"`
	Headless   Headless   `yaml:"headless"`
}

type Layout struct {
	MarginX      float32 `yaml:"margin_x"`
	ItemWidth    float32 `yaml:"item_width"`
	ItemHeight   float32 `yaml:"item_height"`
	SideShift    float32 `yaml:"side_shift"`
	DepthStep    float32 `yaml:"depth_step"`
	SideAngleDeg float32 `yaml:"side_angle_deg"`
}

type Transition struct {
	PositionDuration time.Duration `yaml:"position_duration"`
	RotationDuration time.Duration `yaml:"rotation_duration"`
}

type Input struct {
	WheelStep float64 `yaml:"wheel_step"`
}

type Headless struct {
	Enabled  bool   `yaml:"enabled"`
	Hz       int    `yaml:"hz"`
	Ticks    uint64 `yaml:"ticks"`
	Snapshot string `yaml:"snapshot"`
}

// Default returns the built-in settings: 44 slides of 256px from ./imgs.
func Default() Config {
	return Config{
		Assets:     "imgs",
		Slides:     44,
		Start:      -1,
		Width:      960,
		Height:     540,
		Scale:      1,
		TPS:        60,
		RenderMode: "textured",
		Layout: Layout{
			MarginX:      80,
			ItemWidth:    256,
			ItemHeight:   256,
			SideShift:    0.6,
			DepthStep:    10,
			SideAngleDeg: 45,
		},
		Transition: Transition{
			PositionDuration: 1800 * time.Millisecond,
			RotationDuration: 900 * time.Millisecond,
		},
		Input: Input{WheelStep: coverflow.DefaultWheelStep},
		Headless: Headless{
			Hz: 60,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Slides <= 0:
		return fmt.Errorf("config: slides must be positive, got %d", c.Slides)
	case c.Start >= c.Slides:
		return fmt.Errorf("config: start %d out of range for %d slides", c.Start, c.Slides)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	case c.Layout.ItemWidth <= 0 || c.Layout.ItemHeight <= 0:
		return fmt.Errorf("config: invalid item size %vx%v", c.Layout.ItemWidth, c.Layout.ItemHeight)
	case c.Transition.PositionDuration <= 0 || c.Transition.RotationDuration <= 0:
		return errors.New("config: transition durations must be positive")
	case c.Input.WheelStep <= 0:
		return fmt.Errorf("config: input.wheel_step must be positive, got %v", c.Input.WheelStep)
	case c.Headless.Hz <= 0:
		return fmt.Errorf("config: headless hz must be positive, got %d", c.Headless.Hz)
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	return nil
}

// StartIndex resolves Start, mapping -1 to the middle slide.
func (c Config) StartIndex() int {
	if c.Start < 0 {
		return c.Slides / 2
	}
	return c.Start
}

// Mode parses RenderMode.
func (c Config) Mode() (quarkgl.RenderMode, error) {
	switch strings.ToLower(c.RenderMode) {
	case "", "textured":
		return quarkgl.RenderTextured, nil
	case "flat":
		return quarkgl.RenderSolidFlat, nil
	case "wireframe":
		return quarkgl.RenderWireframe, nil
	default:
		return 0, fmt.Errorf("config: unknown render mode %q", c.RenderMode)
	}
}

// Carousel converts the settings into a carousel configuration.
func (c Config) Carousel() coverflow.Config {
	t := coverflow.DefaultTiming()
	t.Position = c.Transition.PositionDuration
	t.Rotation = c.Transition.RotationDuration
	return coverflow.Config{
		Slides: c.Slides,
		Layout: coverflow.Layout{
			MarginX:    c.Layout.MarginX,
			ItemWidth:  c.Layout.ItemWidth,
			ItemHeight: c.Layout.ItemHeight,
			SideShift:  c.Layout.SideShift,
			DepthStep:  c.Layout.DepthStep,
			SideAngle:  mgl32.DegToRad(c.Layout.SideAngleDeg),
		},
		Timing:    t,
		WheelStep: c.Input.WheelStep,
	}
}
