package headless

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// frameDelay is the GIF delay between frames in hundredths of a second.
const frameDelay = 3

// maxGIFFrames bounds the memory a long recording can take.
const maxGIFFrames = 1800

type recorder struct {
	path   string
	frames []*image.Paletted
	last   *image.RGBA
}

func newRecorder(path string) *recorder {
	return &recorder{path: path}
}

func (r *recorder) animated() bool {
	return strings.EqualFold(filepath.Ext(r.path), ".gif")
}

func (r *recorder) add(frame *image.RGBA) {
	if r.path == "" {
		return
	}
	if !r.animated() {
		if r.last == nil || r.last.Bounds() != frame.Bounds() {
			r.last = image.NewRGBA(frame.Bounds())
		}
		copy(r.last.Pix, frame.Pix)
		return
	}
	if len(r.frames) >= maxGIFFrames {
		return
	}
	r.frames = append(r.frames, paletted(frame))
}

// paletted reduces a frame to at most 256 colors with a median cut palette
// and Floyd-Steinberg dithering.
func paletted(img image.Image) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 256), img)
	out := image.NewPaletted(img.Bounds(), p)
	xdraw.FloydSteinberg.Draw(out, img.Bounds(), img, img.Bounds().Min)
	return out
}

func (r *recorder) write() error {
	if r.path == "" || (r.last == nil && len(r.frames) == 0) {
		return nil
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("headless: record: %w", err)
		}
	}
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("headless: record: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".gif":
		delays := make([]int, len(r.frames))
		for i := range delays {
			delays[i] = frameDelay
		}
		err = gif.EncodeAll(f, &gif.GIF{Image: r.frames, Delay: delays})
	case ".bmp":
		err = bmp.Encode(f, r.last)
	default:
		err = png.Encode(f, r.last)
	}
	if err != nil {
		return fmt.Errorf("headless: record %s: %w", r.path, err)
	}
	return f.Close()
}
