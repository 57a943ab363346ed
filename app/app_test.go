package app

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"coverflow/coverflow"
	"coverflow/hal"
	"coverflow/quarkgl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeHAL struct {
	fb   hal.Framebuffer
	keys chan hal.KeyEvent
	ptr  hal.PointerState
	now  time.Duration
}

func newFakeHAL(w, h int) *fakeHAL {
	return &fakeHAL{
		fb:   hal.New(w, h).Display().Framebuffer(),
		keys: make(chan hal.KeyEvent, 16),
	}
}

func (f *fakeHAL) Display() hal.Display { return f }
func (f *fakeHAL) Input() hal.Input     { return f }
func (f *fakeHAL) Time() hal.Time       { return f }

func (f *fakeHAL) Framebuffer() hal.Framebuffer { return f.fb }
func (f *fakeHAL) Keyboard() hal.Keyboard       { return f }
func (f *fakeHAL) Pointer() hal.Pointer         { return f }
func (f *fakeHAL) Events() <-chan hal.KeyEvent  { return f.keys }
func (f *fakeHAL) State() hal.PointerState      { return f.ptr }
func (f *fakeHAL) Now() time.Duration           { return f.now }

func (f *fakeHAL) press(code hal.KeyCode) {
	f.keys <- hal.KeyEvent{Code: code, Press: true}
	f.keys <- hal.KeyEvent{Code: code, Press: false}
}

// step advances the clock by one 60Hz frame and runs the app.
func (f *fakeHAL) step(t *testing.T, a *App) {
	t.Helper()
	f.now += time.Second / 60
	require.NoError(t, a.Step())
}

func testConfig(slides int) Config {
	return Config{
		Carousel: coverflow.Config{Slides: slides},
		Start:    slides / 2,
		Mode:     quarkgl.RenderTextured,
	}
}

func newTestApp(t *testing.T, h *fakeHAL, cfg Config) *App {
	t.Helper()
	a, err := New(context.Background(), h, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, a.Close()) })
	return a
}

func TestNewSelectsStartAndAnimates(t *testing.T) {
	h := newFakeHAL(320, 200)
	a := newTestApp(t, h, testConfig(9))

	c := a.Carousel()
	assert.Equal(t, 4, c.Selected())
	assert.Equal(t, 0.5, c.Value())
	assert.True(t, c.Animating())

	for h.now < 2*time.Second {
		h.step(t, a)
	}
	assert.False(t, c.Animating())
	for i, card := range c.Cards() {
		assert.True(t, card.AtRest(c.Layout().ComputeTarget(i, 4)), "card %d", i)
	}
}

func TestStepRendersCentreCard(t *testing.T) {
	h := newFakeHAL(320, 200)
	a := newTestApp(t, h, testConfig(3))
	for h.now < 2*time.Second {
		h.step(t, a)
	}

	img := hal.Snapshot(h.fb)
	card := brightness(img, image.Rect(150, 80, 170, 120))
	reflection := brightness(img, image.Rect(150, 136, 170, 156))
	background := brightness(img, image.Rect(0, 90, 10, 110))

	assert.Greater(t, card, reflection)
	assert.Greater(t, reflection, background)
}

// brightness is the mean R+G+B over r.
func brightness(img *image.RGBA, r image.Rectangle) float64 {
	var sum, n float64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			sum += float64(c.R) + float64(c.G) + float64(c.B)
			n++
		}
	}
	return sum / n
}

func TestReflectionsOnlyInTexturedMode(t *testing.T) {
	for _, tc := range []struct {
		mode quarkgl.RenderMode
		want bool
	}{
		{quarkgl.RenderTextured, true},
		{quarkgl.RenderSolidFlat, false},
		{quarkgl.RenderWireframe, false},
	} {
		cfg := testConfig(3)
		cfg.Mode = tc.mode
		a := newTestApp(t, newFakeHAL(64, 48), cfg)
		for i := 0; i < 3; i++ {
			m, ok := a.stage.scene.Mesh(a.stage.reflect[i])
			require.True(t, ok)
			assert.Equal(t, tc.want, m.Enabled, "mode %d card %d", tc.mode, i)
			m, ok = a.stage.scene.Mesh(a.stage.front[i])
			require.True(t, ok)
			assert.True(t, m.Enabled)
		}
	}
}

func TestKeyboardNavigation(t *testing.T) {
	h := newFakeHAL(160, 100)
	a := newTestApp(t, h, testConfig(9))
	c := a.Carousel()

	h.press(hal.KeyRight)
	h.step(t, a)
	assert.Equal(t, 5, c.Selected())

	h.press(hal.KeyEnd)
	h.step(t, a)
	assert.Equal(t, 8, c.Selected())
	assert.Equal(t, 1.0, c.Value())

	h.press(hal.KeyRight)
	h.step(t, a)
	assert.Equal(t, 8, c.Selected())

	h.press(hal.KeyHome)
	h.press(hal.KeyPageDown)
	h.step(t, a)
	assert.Equal(t, 5, c.Selected())

	h.press(hal.KeyLeft)
	h.step(t, a)
	assert.Equal(t, 4, c.Selected())
}

func TestEscapeQuits(t *testing.T) {
	h := newFakeHAL(160, 100)
	a := newTestApp(t, h, testConfig(3))
	h.press(hal.KeyEscape)
	h.now += time.Second / 60
	assert.ErrorIs(t, a.Step(), hal.ErrQuit)
}

func TestWheelScrollsTowardLaterSlides(t *testing.T) {
	h := newFakeHAL(160, 100)
	a := newTestApp(t, h, testConfig(9))
	c := a.Carousel()

	for i := 0; i < 3; i++ {
		h.ptr = hal.PointerState{X: 80, Y: 10, WheelY: -1}
		h.step(t, a)
	}
	h.ptr = hal.PointerState{}
	assert.InDelta(t, 0.65, c.Value(), 1e-9)
	assert.Equal(t, 5, c.Selected())

	h.ptr = hal.PointerState{WheelY: 100}
	h.step(t, a)
	assert.Zero(t, c.Value())
	assert.Equal(t, 0, c.Selected())
}

func TestSliderDrag(t *testing.T) {
	h := newFakeHAL(200, 100)
	a := newTestApp(t, h, testConfig(9))
	c := a.Carousel()
	track := a.overlay.Track()

	h.ptr = hal.PointerState{X: track.Min.X, Y: track.Min.Y, Down: true}
	h.step(t, a)
	assert.Equal(t, 0, c.Selected())

	// Still held: follows the pointer past the end of the track.
	h.ptr = hal.PointerState{X: track.Max.X + 50, Y: 0, Down: true, WheelY: 5}
	h.step(t, a)
	assert.Equal(t, 8, c.Selected())
	assert.Equal(t, 1.0, c.Value())

	h.ptr = hal.PointerState{}
	h.step(t, a)
	assert.Equal(t, 8, c.Selected())
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(context.Background(), newFakeHAL(16, 16), Config{}, nil)
	assert.Error(t, err)

	_, err = New(context.Background(), nil, testConfig(3), nil)
	assert.Error(t, err)
}

func TestWatchAppliesReloadedTexture(t *testing.T) {
	dir := t.TempDir()
	h := newFakeHAL(160, 100)
	cfg := testConfig(3)
	cfg.Assets = dir
	cfg.Watch = true
	a := newTestApp(t, h, cfg)
	require.NotNil(t, a.watcher)

	before := a.Carousel().Card(1).Texture
	require.NotNil(t, before)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []byte{0xff, 0x80, 0x00, 0xff})
	}
	f, err := os.Create(filepath.Join(dir, "1.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	deadline := time.Now().Add(5 * time.Second)
	for a.Carousel().Card(1).Texture == before {
		require.True(t, time.Now().Before(deadline), "texture not reloaded")
		h.step(t, a)
		time.Sleep(10 * time.Millisecond)
	}

	got := a.Carousel().Card(1).Texture.Sample(0.5, 0.5)
	assert.InDelta(t, 0xff, got.R, 2)
	assert.InDelta(t, 0x80, got.G, 2)
	assert.InDelta(t, 0x00, got.B, 2)
	m, ok := a.stage.scene.Mesh(a.stage.reflect[1])
	require.True(t, ok)
	assert.Same(t, a.Carousel().Card(1).Texture, m.Material.Texture)
}

func TestPanicFreezesOnPanicScreen(t *testing.T) {
	h := newFakeHAL(200, 100)
	a := newTestApp(t, h, testConfig(3))
	a.stage = nil

	h.step(t, a)
	assert.True(t, a.halted)

	img := hal.Snapshot(h.fb)
	assert.Equal(t, uint8(0xff), img.RGBAAt(199, 0).R)
	var ink int
	for x := 0; x < 200; x++ {
		for y := 0; y < 11; y++ {
			if img.RGBAAt(x, y).R == 0 {
				ink++
			}
		}
	}
	assert.Greater(t, ink, 0, "panic heading")

	// Frozen: further steps leave the frame alone until Escape.
	h.press(hal.KeyRight)
	h.step(t, a)
	h.press(hal.KeyEscape)
	h.now += time.Second / 60
	assert.ErrorIs(t, a.Step(), hal.ErrQuit)
}

type noInputHAL struct{ *fakeHAL }

func (noInputHAL) Input() hal.Input { return nil }

func TestHaltedStepWithoutInput(t *testing.T) {
	h := newFakeHAL(64, 48)
	a := newTestApp(t, h, testConfig(3))
	a.h = noInputHAL{h}
	a.stage = nil

	require.NoError(t, a.Step())
	require.True(t, a.halted)
	assert.NotPanics(t, func() { require.NoError(t, a.Step()) })
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo", 2)
	assert.Equal(t, "hé", p)
	assert.Equal(t, "llo", r)

	p, r = takeRunes("ab", 5)
	assert.Equal(t, "ab", p)
	assert.Empty(t, r)
}
