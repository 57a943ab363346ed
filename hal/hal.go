package hal

import (
	"errors"
	"time"
)

// ErrQuit is returned from a step function to stop the runner without an error.
var ErrQuit = errors.New("quit")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, byte order R, G, B, A.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEscape
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerState is the pointer snapshot for one tick.
//
// X and Y are framebuffer coordinates. WheelX/WheelY are the wheel deltas
// accumulated since the previous tick; positive WheelY means scroll up.
type PointerState struct {
	X, Y   int
	Down   bool
	WheelX float64
	WheelY float64
}

// Pointer provides the mouse (or touch) state.
type Pointer interface {
	State() PointerState
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time is the frame clock.
//
// Now is the simulated time since the runner started. It advances by one
// fixed step per tick so animation stays deterministic at any frame rate.
type Time interface {
	Now() time.Duration
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Display() Display
	Input() Input
	Time() Time
}
