//go:build cgo

package window

import (
	"errors"
	"time"

	"coverflow/hal"
	"coverflow/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Run starts a desktop window that displays the framebuffer and forwards input.
// It blocks until the window closes or the step function returns hal.ErrQuit.
func Run(newApp func(hal.HAL) (func() error, error), cfg Config) error {
	cfg.defaults()

	h := hal.NewHost(cfg.Width, cfg.Height)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &game{
		h:    h,
		w:    cfg.Width,
		hgt:  cfg.Height,
		step: step,
		dt:   time.Second / time.Duration(cfg.TPS),
	}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	h       *hal.Host
	w, hgt  int
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
	dt      time.Duration
}

func (g *game) Update() error {
	pollKeys(g.h)
	pollPointer(g.h)
	g.h.Advance(g.dt)
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, hal.ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.scratch = make([]byte, g.w*g.hgt*4)
		g.fbImg = ebiten.NewImage(g.w, g.hgt)
	}
	g.h.CopyPixels(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.hgt
}

var keyMap = []struct {
	key  ebiten.Key
	code hal.KeyCode
}{
	{ebiten.KeyArrowLeft, hal.KeyLeft},
	{ebiten.KeyArrowRight, hal.KeyRight},
	{ebiten.KeyArrowUp, hal.KeyUp},
	{ebiten.KeyArrowDown, hal.KeyDown},
	{ebiten.KeyHome, hal.KeyHome},
	{ebiten.KeyEnd, hal.KeyEnd},
	{ebiten.KeyPageUp, hal.KeyPageUp},
	{ebiten.KeyPageDown, hal.KeyPageDown},
	{ebiten.KeyEscape, hal.KeyEscape},
}

// pollKeys must run on the ebiten update goroutine.
func pollKeys(h *hal.Host) {
	tps := ebiten.TPS()
	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.key) || repeatDue(inpututil.KeyPressDuration(m.key), tps) {
			h.PushKey(hal.KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			h.PushKey(hal.KeyEvent{Code: m.code, Press: false})
		}
	}
}

func pollPointer(h *hal.Host) {
	x, y := ebiten.CursorPosition()
	wx, wy := ebiten.Wheel()
	h.SetPointer(hal.PointerState{
		X:      x,
		Y:      y,
		Down:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelX: wx,
		WheelY: wy,
	})
}
