// Package app wires the carousel, renderer, HUD and assets into a step
// function driven by the hal runners.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coverflow/assets"
	"coverflow/coverflow"
	"coverflow/hal"
	"coverflow/hud"
	"coverflow/quarkgl"

	"go.uber.org/zap"
)

// Config holds what the app needs beyond the hal.
type Config struct {
	Carousel coverflow.Config
	Start    int // initial selection, clamped to the slide range
	Mode     quarkgl.RenderMode

	// Assets is the texture directory. Empty uses placeholders only.
	Assets string
	Watch  bool
}

// App is one running carousel. Step renders one frame.
type App struct {
	h        hal.HAL
	fb       hal.Framebuffer
	target   *quarkgl.RGBATarget
	renderer *quarkgl.Renderer
	stage    *stage
	carousel *coverflow.Carousel
	overlay  *hud.Overlay
	display  *hud.Display
	watcher  *assets.Watcher
	log      *zap.Logger
	halted   bool
}

// New loads textures, builds the scene and selects cfg.Start. The returned
// App must be closed to stop the asset watcher.
func New(ctx context.Context, h hal.HAL, cfg Config, log *zap.Logger) (*App, error) {
	if h == nil || h.Display() == nil {
		return nil, errors.New("app: no display")
	}
	fb := h.Display().Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGBA8888 {
		return nil, errors.New("app: RGBA framebuffer required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	c, err := coverflow.New(cfg.Carousel, log.Named("carousel"))
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	l := c.Layout()
	loader := assets.NewLoader(cfg.Assets, int(l.ItemWidth), int(l.ItemHeight), log)
	var bgTex *quarkgl.Texture
	if cfg.Assets != "" {
		texs, err := loader.LoadSlides(ctx, c.Len())
		if err != nil {
			return nil, fmt.Errorf("app: load slides: %w", err)
		}
		for i, tex := range texs {
			c.SetTexture(i, tex)
		}
		bgTex = loader.LoadBackground()
	} else {
		for i := 0; i < c.Len(); i++ {
			c.SetTexture(i, quarkgl.NewTexture(assets.Placeholder(i, int(l.ItemWidth), int(l.ItemHeight))))
		}
		bgTex = quarkgl.NewTexture(assets.BackgroundPlaceholder(assets.BackgroundWidth, assets.BackgroundHeight))
	}

	a := &App{
		h:        h,
		fb:       fb,
		target:   &quarkgl.RGBATarget{Buf: fb.Buffer(), Stride: fb.StrideBytes(), W: fb.Width(), H: fb.Height()},
		renderer: quarkgl.NewRenderer(fb.Width(), fb.Height(), true),
		stage:    newStage(c, bgTex),
		carousel: c,
		overlay:  hud.New(fb.Width(), fb.Height()),
		display:  hud.NewFramebufferDisplay(fb),
		log:      log,
	}
	a.renderer.SetRenderMode(cfg.Mode)
	// Reflections are drawn only in textured mode.
	a.stage.showReflections(cfg.Mode == quarkgl.RenderTextured)

	if cfg.Watch && cfg.Assets != "" {
		w, err := loader.Watch(c.Len(), assets.DefaultDebounce)
		if err != nil {
			log.Warn("asset watch disabled", zap.String("dir", cfg.Assets), zap.Error(err))
		} else {
			a.watcher = w
		}
	}

	c.Jump(a.now(), cfg.Start)
	log.Info("carousel ready",
		zap.Int("slides", c.Len()),
		zap.Int("selected", c.Selected()),
		zap.Int("width", fb.Width()),
		zap.Int("height", fb.Height()))
	return a, nil
}

// Carousel exposes the controller, mainly for tests.
func (a *App) Carousel() *coverflow.Carousel { return a.carousel }

// Step handles input, advances every transition and renders one frame.
// It returns hal.ErrQuit when the user asks to leave.
func (a *App) Step() (err error) {
	if a.halted {
		return a.haltedStep()
	}
	defer a.recoverStep(&err)

	now := a.now()
	if err := a.handleInput(now); err != nil {
		return err
	}
	a.applyReloads()

	a.carousel.Update(now)
	a.stage.sync(a.carousel.Cards())
	a.renderer.Render(a.target, a.stage.scene)
	a.overlay.Draw(a.display, a.carousel.Value(), a.carousel.Selected(), a.carousel.Len())
	return a.fb.Present()
}

// Close stops the asset watcher.
func (a *App) Close() error {
	if a == nil || a.watcher == nil {
		return nil
	}
	return a.watcher.Close()
}

func (a *App) now() time.Duration {
	if t := a.h.Time(); t != nil {
		return t.Now()
	}
	return 0
}

func (a *App) applyReloads() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case r := <-a.watcher.Reloads():
			if r.Index == assets.BackgroundIndex {
				a.stage.setBackground(r.Texture)
				continue
			}
			a.carousel.SetTexture(r.Index, r.Texture)
			a.stage.setCardTexture(r.Index, r.Texture)
		default:
			return
		}
	}
}
