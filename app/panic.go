package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"coverflow/hal"
	"coverflow/hud"

	"go.uber.org/zap"
)

const panicLineHeight = 11

// recoverStep turns a panic inside Step into a frozen panic screen. After a
// panic the app only waits for Escape.
func (a *App) recoverStep(err *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := debug.Stack()
	a.halted = true
	a.log.Error("step panicked", zap.Any("panic", v), zap.ByteString("stack", stack))
	a.drawPanic(v, stack)
	*err = a.fb.Present()
}

// haltedStep is Step after a panic: the panic screen stays up until Escape.
func (a *App) haltedStep() error {
	in := a.h.Input()
	if in == nil {
		return nil
	}
	kbd := in.Keyboard()
	if kbd == nil || kbd.Events() == nil {
		return nil
	}
	for {
		select {
		case ev := <-kbd.Events():
			if ev.Press && ev.Code == hal.KeyEscape {
				return hal.ErrQuit
			}
		default:
			return nil
		}
	}
}

func (a *App) drawPanic(v any, stack []byte) {
	d := a.display
	if d == nil {
		return
	}
	a.fb.ClearRGB(0xff, 0xff, 0xff)

	lines := []string{
		"Cover Flow panic (Esc to quit)",
		fmt.Sprintf("panic: %v", v),
		"stack:",
	}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	}

	fg := color.RGBA{A: 0xff}
	cols := max(a.fb.Width()/max(hud.TextWidth("0"), 1), 1)
	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+panicLineHeight > a.fb.Height() {
				return
			}
			chunk, rest := takeRunes(line, cols)
			hud.WriteText(d, 0, y, chunk, fg)
			y += panicLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
}

// takeRunes splits s after n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i := 0
	for count := 0; i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
