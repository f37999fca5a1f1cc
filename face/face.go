// Package face adapts an ssfn2.Context into a golang.org/x/exp/shiny/font.Face,
// so SSFN2 glyphs can be drawn by any layout engine that already knows how
// to walk that interface (golang.org/x/image/font/.../drawer and friends).
package face

import (
	"image"
	"image/color"

	shinyfont "golang.org/x/exp/shiny/font"
	"golang.org/x/image/math/fixed"

	"github.com/gossfn/ssfn2"
	"github.com/gossfn/ssfn2/blit"
)

// Options selects which face of a loaded font collection to bind to.
// Size is an integer pixel size (spec.md §6's size argument, 8..192),
// not a point size — SSFN2 has no DPI concept to convert through.
type Options struct {
	Family ssfn2.Family
	Name   string
	Style  ssfn2.Style
	Size   int
}

// NewFace selects a face on ctx and returns a font.Face backed by it.
// ctx must already have fonts loaded via Load. The returned Face shares
// ctx's glyph cache; calling ctx.Select again invalidates glyphs this
// Face has already measured.
func NewFace(ctx *ssfn2.Context, opts Options) (shinyfont.Face, error) {
	if errc := ctx.Select(opts.Family, opts.Name, opts.Style, opts.Size); errc != ssfn2.Ok {
		return nil, errc
	}
	return &face{ctx: ctx}, nil
}

type face struct {
	ctx *ssfn2.Context
}

func (f *face) Close() error { return nil }

// Kern always returns zero. SSFN2 resolves kerning internally as part of
// Render (spec.md §4.7), between whatever pair of codepoints actually
// ends up adjacent in the cursor's advance; a font.Face.Kern call here
// would have to re-run that same resolution speculatively for a pair the
// caller may never render adjacently. Layout engines that need kerning
// ahead of drawing should call ctx.Render directly instead of going
// through this adapter.
func (f *face) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

// Glyph rasterizes r at dot and returns it as an alpha mask, the way
// font.Face.Glyph documents. SSFN2 has no sub-pixel dot model — dot is
// rounded to the nearest whole pixel before rendering — so the returned
// mask is always pixel-aligned.
func (f *face) Glyph(dot fixed.Point26_6, r rune) (newDot fixed.Point26_6, dr image.Rectangle, mask image.Image, maskp image.Point, ok bool) {
	s := string(r)
	buf, errc := f.ctx.Text(s, 0xFFFFFFFF)
	if errc != ssfn2.Ok || buf.W == 0 || buf.H == 0 {
		return dot, image.Rectangle{}, nil, image.Point{}, false
	}

	ix, iy := dot.X.Round(), dot.Y.Round()
	dr = image.Rect(ix-buf.X, iy-buf.Y, ix-buf.X+buf.W, iy-buf.Y+buf.H)

	adv, ok := f.GlyphAdvance(r)
	if !ok {
		return dot, image.Rectangle{}, nil, image.Point{}, false
	}
	newDot = fixed.Point26_6{X: dot.X + adv, Y: dot.Y}
	return newDot, dr, alphaMask(buf), image.Point{}, true
}

func (f *face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	w, h, left, top, errc := f.ctx.BBox(string(r))
	if errc != ssfn2.Ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	adv, ok := f.GlyphAdvance(r)
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	return fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: fixed.I(-left), Y: fixed.I(-top)},
		Max: fixed.Point26_6{X: fixed.I(w - left), Y: fixed.I(h - top)},
	}, adv, true
}

// GlyphAdvance measures r's advance width without compositing any
// pixels, by driving ctx.Render with a destination whose Pix is nil
// (blit.Buf's documented dry-run mode).
func (f *face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	dst := &blit.Buf{}
	n, errc := f.ctx.Render(dst, string(r))
	if n == 0 || (errc != ssfn2.Ok && errc != ssfn2.NoGlyph) {
		return 0, false
	}
	return fixed.I(dst.X), true
}

// alphaMask turns a rendered ARGB blit.Buf into an image.Alpha mask,
// discarding color (font.Face.Glyph masks are always alpha-only) and
// taking only the alpha channel each pixel already carries.
func alphaMask(buf *blit.Buf) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, buf.W, buf.H))
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			off := y*buf.Pitch + x*4
			a := buf.Pix[off+3]
			m.SetAlpha(x, y, color.Alpha{A: a})
		}
	}
	return m
}
