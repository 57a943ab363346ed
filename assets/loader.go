// Package assets loads slide and background textures from a directory laid out
// as <dir>/<index>.jpg plus <dir>/bg.png.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"coverflow/quarkgl"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const (
	BackgroundName = "bg.png"

	// Background textures are resampled to this size (3:1 like the plane).
	BackgroundWidth  = 960
	BackgroundHeight = 320

	maxImageBytes = 32 << 20
)

// Loader decodes textures from a directory. Failures are logged and replaced
// by placeholders.
type Loader struct {
	dir     string
	texW    int
	texH    int
	workers int
	log     *zap.Logger
}

// NewLoader returns a loader that resamples slides to texW x texH.
func NewLoader(dir string, texW, texH int, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		dir:     dir,
		texW:    max(texW, 1),
		texH:    max(texH, 1),
		workers: runtime.GOMAXPROCS(0),
		log:     log.Named("assets"),
	}
}

func (l *Loader) Dir() string { return l.dir }

// SlidePath returns the primary path for slide i.
func (l *Loader) SlidePath(i int) string {
	return filepath.Join(l.dir, strconv.Itoa(i)+".jpg")
}

// BackgroundPath returns the background image path.
func (l *Loader) BackgroundPath() string {
	return filepath.Join(l.dir, BackgroundName)
}

// LoadSlide decodes slide i, trying <i>.jpg and then <i>.png.
func (l *Loader) LoadSlide(i int) (*quarkgl.Texture, error) {
	img, err := decodeFile(l.SlidePath(i))
	if errors.Is(err, os.ErrNotExist) {
		img, err = decodeFile(filepath.Join(l.dir, strconv.Itoa(i)+".png"))
	}
	if err != nil {
		return nil, err
	}
	return quarkgl.NewTexture(resample(img, l.texW, l.texH)), nil
}

// LoadSlides loads n slides in parallel. Slots that fail to load get a
// placeholder; only context cancellation is returned as an error.
func (l *Loader) LoadSlides(ctx context.Context, n int) ([]*quarkgl.Texture, error) {
	out := make([]*quarkgl.Texture, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tex, err := l.LoadSlide(i)
			if err != nil {
				l.log.Debug("slide unavailable, using placeholder",
					zap.Int("index", i), zap.String("path", l.SlidePath(i)), zap.Error(err))
				tex = quarkgl.NewTexture(Placeholder(i, l.texW, l.texH))
			}
			out[i] = tex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadBackground decodes the background image, falling back to a generated
// gradient.
func (l *Loader) LoadBackground() *quarkgl.Texture {
	tex, err := l.loadBackground()
	if err != nil {
		l.log.Debug("background unavailable, using placeholder",
			zap.String("path", l.BackgroundPath()), zap.Error(err))
		return quarkgl.NewTexture(BackgroundPlaceholder(BackgroundWidth, BackgroundHeight))
	}
	return tex
}

func (l *Loader) loadBackground() (*quarkgl.Texture, error) {
	img, err := decodeFile(l.BackgroundPath())
	if err != nil {
		return nil, err
	}
	return quarkgl.NewTexture(resample(img, BackgroundWidth, BackgroundHeight)), nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("assets: stat %s: %w", path, err)
	}
	if st.Size() > maxImageBytes {
		return nil, fmt.Errorf("assets: %s too large (%d bytes)", path, st.Size())
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

func resample(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
