package headless

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // png textures
	"os"
	"path/filepath"
	"strings"

	"github.com/fzipp/bmfont"
	_ "golang.org/x/image/bmp" // bmp textures
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// Texture is the raw texture of the headless backend: an RGBA image at its
// final size.
type Texture struct {
	img      *image.RGBA
	released bool
	d        *Display
}

// Release drops the pixels. Releasing twice panics.
func (t *Texture) Release() {
	if t.released {
		panic("headless: texture released twice")
	}
	t.released = true
	t.img = nil
	t.d.live--
}

// Image returns the pixels, or nil after Release.
func (t *Texture) Image() *image.RGBA {
	return t.img
}

func rgba(c core.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// size returns the recipe size, falling back to one cell.
func (d *Display) size(r core.Recipe) (int, int) {
	w, h := int(r.Width), int(r.Height)
	if w == 0 {
		w = int(d.cellSize)
	}
	if h == 0 {
		h = int(d.cellSize)
	}
	return w, h
}

func (d *Display) loadTexture(r core.Recipe) (*image.RGBA, error) {
	w, h := d.size(r)
	switch {
	case r.Path == "":
		face, err := d.defaultFace(h)
		if err != nil {
			return nil, err
		}
		return renderGlyph(face, r, w, h), nil
	case r.Kind() == core.RecipeGlyph && strings.EqualFold(filepath.Ext(r.Path), ".fnt"):
		return renderBitmapGlyph(r, w, h)
	case r.Kind() == core.RecipeGlyph:
		face, err := loadFace(r.Path, h)
		if err != nil {
			return nil, err
		}
		return renderGlyph(face, r, w, h), nil
	default:
		return decodeImage(r.Path, w, h)
	}
}

// decodeImage reads a png or bmp file and scales it to w x h. A zero size
// keeps the file's own.
func decodeImage(path string, w, h int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if w == 0 || h == 0 {
		w, h = src.Bounds().Dx(), src.Bounds().Dy()
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		xdraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, xdraw.Src)
	} else {
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	}
	return dst, nil
}

func (d *Display) defaultFace(h int) (font.Face, error) {
	if d.opts.Font != "" {
		return loadFace(d.opts.Font, h)
	}
	if h <= basicfont.Face7x13.Height {
		return basicfont.Face7x13, nil
	}
	return parseFace(gomono.TTF, h)
}

func loadFace(path string, h int) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	face, err := parseFace(data, h)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	return face, nil
}

func parseFace(data []byte, h int) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(h) * 0.85,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// renderGlyph paints the recipe character centered on its background.
func renderGlyph(face font.Face, r core.Recipe, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(rgba(r.Background)), image.Point{}, xdraw.Src)
	if r.Character == 0 || r.Character == ' ' {
		return dst
	}

	adv, ok := face.GlyphAdvance(r.Character)
	if !ok {
		adv, _ = face.GlyphAdvance('?')
	}
	m := face.Metrics()
	drawer := font.Drawer{Dst: dst, Src: image.NewUniform(rgba(r.Foreground)), Face: face}
	x := (fixed.I(w) - adv) / 2
	y := (fixed.I(h) + m.Ascent - m.Descent) / 2
	drawer.Dot = fixed.Point26_6{X: x, Y: y}
	drawer.DrawString(string(r.Character))
	return dst
}

// renderBitmapGlyph cuts the recipe character out of an AngelCode bitmap font
// page and tints it with the foreground color.
func renderBitmapGlyph(r core.Recipe, w, h int) (*image.RGBA, error) {
	bf, err := bmfont.Load(r.Path)
	if err != nil {
		return nil, fmt.Errorf("bitmap font %s: %w", r.Path, err)
	}

	found := false
	var gx, gy, gw, gh, page int
	for _, ch := range bf.Descriptor.Chars {
		if rune(ch.ID) == r.Character {
			gx, gy, gw, gh, page = int(ch.X), int(ch.Y), int(ch.Width), int(ch.Height), int(ch.Page)
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("bitmap font %s: no glyph for %q", r.Path, r.Character)
	}

	var sheet string
	for _, p := range bf.Descriptor.Pages {
		if int(p.ID) == page {
			sheet = filepath.Join(filepath.Dir(r.Path), p.File)
		}
	}
	if sheet == "" {
		return nil, fmt.Errorf("bitmap font %s: missing page %d", r.Path, page)
	}
	pageImg, err := decodeImage(sheet, 0, 0)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(rgba(r.Background)), image.Point{}, xdraw.Src)
	if gw == 0 || gh == 0 {
		return dst, nil
	}
	// The page's alpha is the glyph mask.
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(mask, mask.Bounds(), pageImg, image.Rect(gx, gy, gx+gw, gy+gh), xdraw.Src, nil)
	xdraw.DrawMask(dst, dst.Bounds(), image.NewUniform(rgba(r.Foreground)), image.Point{}, mask, image.Point{}, xdraw.Over)
	return dst, nil
}
