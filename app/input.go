package app

import (
	"time"

	"coverflow/hal"
)

// handleInput drains the keyboard queue and applies this tick's pointer
// state. Slider drags win over the wheel in the same tick.
func (a *App) handleInput(now time.Duration) error {
	in := a.h.Input()
	if in == nil {
		return nil
	}

	if kbd := in.Keyboard(); kbd != nil {
		if ch := kbd.Events(); ch != nil {
		drain:
			for {
				select {
				case ev := <-ch:
					if err := a.handleKey(now, ev); err != nil {
						return err
					}
				default:
					break drain
				}
			}
		}
	}

	if ptr := in.Pointer(); ptr != nil {
		st := ptr.State()
		if v, ok := a.overlay.HandlePointer(st); ok {
			a.carousel.SetValue(now, v)
		} else if st.WheelY != 0 {
			// Positive WheelY scrolls up; down moves toward later slides.
			a.carousel.Wheel(now, -st.WheelY)
		}
	}
	return nil
}

func (a *App) handleKey(now time.Duration, ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	switch ev.Code {
	case hal.KeyEscape:
		return hal.ErrQuit
	case hal.KeyLeft, hal.KeyUp:
		a.carousel.Step(now, -1)
	case hal.KeyRight, hal.KeyDown:
		a.carousel.Step(now, 1)
	case hal.KeyPageUp:
		a.carousel.Step(now, -pageStep)
	case hal.KeyPageDown:
		a.carousel.Step(now, pageStep)
	case hal.KeyHome:
		a.carousel.Jump(now, 0)
	case hal.KeyEnd:
		a.carousel.Jump(now, a.carousel.Len()-1)
	}
	return nil
}

const pageStep = 5
