// Command mkslides writes a numbered set of placeholder slides plus a
// background image, laid out the way the carousel loads them.
package main

import (
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"coverflow/assets"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

type options struct {
	out     string
	count   int
	size    int
	quality int
	force   bool
}

func main() {
	var o options
	fs := pflag.NewFlagSet("mkslides", pflag.ContinueOnError)
	fs.StringVarP(&o.out, "out", "o", "imgs", "output directory")
	fs.IntVarP(&o.count, "count", "n", 44, "number of slides")
	fs.IntVar(&o.size, "size", 256, "slide width and height in pixels")
	fs.IntVar(&o.quality, "quality", 90, "JPEG quality (1-100)")
	fs.BoolVarP(&o.force, "force", "f", false, "overwrite existing files")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fatalf("%v", err)
	}

	if err := generate(o); err != nil {
		fatalf("mkslides: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func generate(o options) error {
	if o.count <= 0 {
		return fmt.Errorf("count must be positive, got %d", o.count)
	}
	if o.size <= 0 || o.size > 4096 {
		return fmt.Errorf("size out of range: %d", o.size)
	}
	if o.quality < 1 || o.quality > 100 {
		return fmt.Errorf("quality out of range: %d", o.quality)
	}
	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < o.count; i++ {
		i := i
		g.Go(func() error {
			path := filepath.Join(o.out, strconv.Itoa(i)+".jpg")
			img := assets.Placeholder(i, o.size, o.size)
			return writeFile(path, o.force, func(w io.Writer) error {
				return jpeg.Encode(w, img, &jpeg.Options{Quality: o.quality})
			})
		})
	}
	g.Go(func() error {
		path := filepath.Join(o.out, assets.BackgroundName)
		img := assets.BackgroundPlaceholder(assets.BackgroundWidth, assets.BackgroundHeight)
		return writeFile(path, o.force, func(w io.Writer) error {
			return png.Encode(w, img)
		})
	})
	return g.Wait()
}

// writeFile creates path and fills it with encode. Existing files are kept
// unless force is set.
func writeFile(path string, force bool, encode func(io.Writer) error) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
