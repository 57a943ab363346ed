package hal

import (
	"sync"
	"time"
)

// Host is the in-memory HAL behind both runners. A window backend feeds it
// input and advances its clock; the app only sees the HAL interfaces.
type Host struct {
	fb  *hostFramebuffer
	kbd *hostKeyboard
	ptr *hostPointer
	t   *hostTime
}

// New returns a host HAL implementation with a width x height framebuffer.
func New(width, height int) HAL {
	return NewHost(width, height)
}

// NewHost returns a host with a width x height RGBA framebuffer.
func NewHost(width, height int) *Host {
	return &Host{
		fb:  newHostFramebuffer(width, height),
		kbd: newHostKeyboard(),
		ptr: &hostPointer{},
		t:   newHostTime(),
	}
}

func (h *Host) Display() Display { return hostDisplay{fb: h.fb} }
func (h *Host) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *Host) Time() Time       { return h.t }

// Advance moves the frame clock forward by d. Non-positive d is ignored.
func (h *Host) Advance(d time.Duration) { h.t.step(d) }

// PushKey queues a key event. Events are dropped while the queue is full.
func (h *Host) PushKey(ev KeyEvent) { h.kbd.emit(ev.Code, ev.Press) }

// SetPointer replaces the pointer state seen by the app.
func (h *Host) SetPointer(st PointerState) { h.ptr.set(st) }

// CopyPixels copies the framebuffer into dst under the framebuffer lock.
func (h *Host) CopyPixels(dst []byte) { h.fb.snapshot(dst) }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(code KeyCode, press bool) {
	select {
	case k.ch <- KeyEvent{Code: code, Press: press}:
	default:
	}
}

type hostPointer struct {
	mu sync.Mutex
	st PointerState
}

func (p *hostPointer) State() PointerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st
}

func (p *hostPointer) set(st PointerState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st = st
}
