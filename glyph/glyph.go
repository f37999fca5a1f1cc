// Package glyph rasterizes a character record's fragment list into an
// 8-bit color-indexed cache bitmap, and memoizes the result by
// codepoint. It is the composition stage between the font package's
// binary decoding and the blit package's scaling/blending.
package glyph

import (
	"github.com/gossfn/ssfn2/font"
	"github.com/gossfn/ssfn2/raster"
)

// Color index sentinels (spec.md §3, §4.4).
const (
	Background = 0xFF
	Foreground = 0xFE
	aaTagA     = 0xFD
	aaTagB     = 0xFC
)

// ItalicDiv is the divisor for synthetic italic shear: a pixel at
// destination row b is shifted right by (height-b)/ItalicDiv columns.
const ItalicDiv = 4

// Glyph is a rasterized cache bitmap: an 8-bit color-indexed buffer at
// the font's chosen render height, plus the metrics the blitter needs
// to place and scale it. Pitch, Height, Descent and Data are in
// cache-bitmap pixel units; Overlap, AdvX, AdvY and Ascent come from the
// unscaled font metrics (Overlap and AdvX plus any synthetic italic
// shift), and the blitter scales them by display height over font height.
type Glyph struct {
	Pitch   int // bytes per row
	Height  int
	Overlap int // leftward cell extension (italic inflated)
	AdvX    int
	AdvY    int
	Ascent  int
	Descent int
	Data    []byte // Pitch*Height bytes
}

// Params controls how a character record is rasterized: the target
// cache height and whether bold/italic are being synthesized (i.e.
// requested but not already baked into the font's stored glyphs).
type Params struct {
	Height       int
	SynthItalic  bool
	SynthBold    bool
	NoAA         bool

	// Scratch, if non-nil, is reused as the contour edge-point buffer
	// instead of allocating a fresh one per call — the renderer context
	// owns one and passes it in so its backing capacity persists across
	// glyphs for Mem's accounting, mirroring spec.md §3's context-owned
	// scratch edge buffer. Callers that don't care (tests, one-off use)
	// may leave it nil.
	Scratch *raster.Buffer
}

// Compose rasterizes rec's fragment list at the given parameters into a
// fresh Glyph. f is the font rec was looked up in (needed for
// font.Height/scale math and fragment byte access).
func Compose(f *font.Font, rec *font.CharRecord, p Params) (*Glyph, error) {
	h := p.Height
	cb := 0
	if p.SynthBold {
		cb = (int(f.Height) + 64) >> 6
	}
	italicShift := 0
	if p.SynthItalic {
		italicShift = (int(f.Height) - int(f.Baseline)) * h / ItalicDiv / int(f.Height)
	}
	w := int(rec.W) * h / int(f.Height)
	pitch := w + cb
	if p.SynthItalic {
		pitch += h / ItalicDiv
	}
	g := &Glyph{
		Pitch:  pitch,
		Height: h,
		Data:   make([]byte, pitch*h),
	}
	for i := range g.Data {
		g.Data[i] = Background
	}
	advShift := 0
	if rec.AdvX != 0 {
		advShift = italicShift
	}
	g.AdvX = int(rec.AdvX) + advShift
	g.AdvY = int(rec.AdvY)
	g.Overlap = int(rec.Overlap()) + italicShift

	color := byte(Foreground)
	buf := p.Scratch
	if buf == nil {
		buf = &raster.Buffer{}
	}
	scanRow := make([]int32, 0, 16)

	for i := 0; i < rec.Len(); i++ {
		e := rec.Entry(i)
		if e.IsColor {
			color = byte(e.Offset)
			continue
		}
		if int(e.Offset) >= len(f.Bytes) {
			return nil, font.FormatError("fragment offset out of range")
		}
		frg := f.Bytes[e.Offset:]
		x := ((int(e.XOffs)+cb)<<raster.Prec)*h/int(f.Height)
		y := (int(e.YOffs)<<raster.Prec)*h/int(f.Height)
		switch {
		case frg[0]&0x80 == 0: // contour
			if err := composeContour(g, buf, scanRow, f, frg, h, x, y, cb, p.SynthItalic, color); err != nil {
				return nil, err
			}
		case frg[0]&0x60 == 0x00: // bitmap
			composeBitmap(g, f, frg, h, x>>raster.Prec, y>>raster.Prec, cb, p.SynthItalic, p.NoAA, color)
		case frg[0]&0x60 == 0x20: // pixmap
			if err := composePixmap(g, f, frg, h, x>>raster.Prec, y>>raster.Prec); err != nil {
				return nil, err
			}
		}
	}
	// Ascent is stored unscaled; the blitter scales it by h/font.Height at
	// placement time (spec.md §4.6), the same way the original keeps a
	// single raw baseline value shared across every requested size.
	g.Ascent = int(f.Baseline)
	return g, nil
}
