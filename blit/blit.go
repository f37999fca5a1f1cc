// Package blit box-filter downscales a glyph package cache bitmap to a
// requested display size, resolves its 8-bit color indices through a
// font's color map, and alpha-blends the result into a 32bpp destination
// framebuffer (spec.md §4.6). It never touches the font/fragment byte
// format; it only consumes an already-rasterized glyph.Glyph.
package blit

import "github.com/gossfn/ssfn2/glyph"

// Buf is the destination framebuffer descriptor (spec.md §6). Pix may be
// nil to run every size/advance computation below without writing any
// pixel — the dry-run mode the face adapter's GlyphAdvance uses.
type Buf struct {
	Pix   []byte // 4 bytes/pixel, Pitch*H bytes, nil for a dry run
	W     int    // signed: |W| is the clip width, sign selects ARGB (>0) or ABGR (<0)
	H     int
	Pitch int // bytes per row
	X, Y  int // cursor; advanced in place by Draw
	FG    uint32
	BG    uint32
}

func (b *Buf) clipWidth() int {
	if b.W < 0 {
		return -b.W
	}
	return b.W
}

// Source bundles a rasterized glyph with the font metrics needed to scale
// it: the font's native cache height (for the h/font.Height ratios spec.md
// §4.6 uses throughout) and baseline, plus an optional 256-entry color map.
type Source struct {
	Glyph      *glyph.Glyph
	CMap       []uint32 // nil if the font has no color map
	FontHeight int
	Baseline   int
	Underline  int
	Monospace  bool
}

// Options selects style bits relevant to the blitter (the rest of the
// style mask — bold/italic synthesis, no-cache, no-kerning — is consumed
// upstream by the glyph/kerning resolvers).
type Options struct {
	Size          int
	AbsSize       bool
	NoAA          bool
	Underline     bool
	StrikeThrough bool
}

// DisplayHeight implements spec.md §4.6's h_display rule: the scaled
// pixel height a glyph is drawn at for the given size/style and font
// metrics. Callers that need the same size->display scale factor outside
// Draw — kerning adjustment — call this directly.
func DisplayHeight(o Options, src *Source) int {
	if o.AbsSize || src.Monospace || src.Baseline == 0 {
		return o.Size
	}
	return o.Size * src.FontHeight / src.Baseline
}

// Draw scales src into dst at the current cursor and advances the cursor
// by the glyph's scaled advance. When dst.Pix is nil, no pixel is written
// but the cursor still advances (dry-run mode). Underline fill skips the columns that already received ink
// on the underline row, producing the descender break spec.md §4.6
// describes.
func Draw(dst *Buf, src *Source, o Options) {
	g := src.Glyph
	h := DisplayHeight(o, src)
	w := g.Pitch
	if !o.NoAA {
		w = g.Pitch * h / g.Height
	}
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	s := (g.AdvX - g.Overlap) * h / src.FontHeight

	if dst.Pix != nil {
		var ox, oy int
		if g.AdvX != 0 {
			ox = g.Overlap * h / src.FontHeight
			oy = g.Ascent * h / src.FontHeight
		} else {
			ox = w / 2
		}
		cb := (h + 64) >> 6
		uix, uax := w, 0
		if s > uix {
			uix = s
		}
		underlineRow := src.Underline * h / src.FontHeight

		clip := dst.clipWidth()
		for y := 0; y < h; y++ {
			dy := dst.Y + y - oy
			if dy < 0 || dy >= dst.H {
				continue
			}
			for x := 0; x < w; x++ {
				dx := dst.X + x - ox
				if dx < 0 || dx >= clip {
					continue
				}
				var r, gr, b, a uint32
				if o.StrikeThrough && y >= h/2-cb && y <= h/2 {
					r, gr, b, a = argbChannels(dst.FG)
				} else {
					r, gr, b, a = boxFilter(g, src.CMap, dst, x, y, w, h)
				}
				if a <= 15 {
					continue
				}
				blendPixel(dst, dx, dy, r, gr, b, a)
				if y == underlineRow {
					if x < uix {
						uix = x
					}
					if x > uax {
						uax = x
					}
				}
			}
		}
		if o.Underline {
			uix -= cb + 1
			uax += cb + 1
			if uax < uix {
				uax = uix + 1
			}
			r, gr, b, a := argbChannels(dst.FG)
			for y := underlineRow; y < underlineRow+cb; y++ {
				dy := dst.Y + y - oy
				if dy < 0 || dy >= dst.H {
					continue
				}
				top := w
				if s > top {
					top = s
				}
				for x := 0; x <= top; x++ {
					dx := dst.X + x - ox
					if dx < 0 || dx >= clip || (x > uix && x < uax) {
						continue
					}
					blendPixel(dst, dx, dy, r, gr, b, a)
				}
			}
		}
	}

	dst.X += s
	dst.Y += g.AdvY * h / src.FontHeight
}

// resolveColor maps an 8-bit cache index to an ARGB word per spec.md
// §4.6: 0xFF is the destination's background, 0xFE (or no color map) is
// the destination's foreground, anything else is a color-map lookup.
func resolveColor(index byte, cmap []uint32, dst *Buf) uint32 {
	switch {
	case index == glyph.Background:
		return dst.BG
	case index == glyph.Foreground || cmap == nil:
		return dst.FG
	default:
		if int(index) < len(cmap) {
			return cmap[index]
		}
		return dst.FG
	}
}

func argbChannels(p uint32) (r, g, b, a uint32) {
	return (p >> 16) & 0xFF, (p >> 8) & 0xFF, p & 0xFF, (p >> 24) & 0xFF
}

// boxFilter averages the source cache pixels that overlap destination
// pixel (x, y)'s footprint, weighting each by the fractional pixel
// overlap and by source alpha (premultiplied accumulation, spec.md
// §4.6).
func boxFilter(g *glyph.Glyph, cmap []uint32, dst *Buf, x, y, w, h int) (r, gr, b, a uint32) {
	var sr, sg, sb, sa, weight uint32
	y0 := (y << 8) * g.Height / h
	y1 := ((y + 1) << 8) * g.Height / h
	for ys := y0; ys < y1; ys += 256 {
		yp := rowWeight(ys, y0, y1)
		x0 := (x << 8) * g.Pitch / w
		x1 := ((x + 1) << 8) * g.Pitch / w
		for xs := x0; xs < x1; xs += 256 {
			xp := rowWeight(xs, x0, x1)
			pc := (xp * yp) >> 8
			idx := g.Data[(ys>>8)*g.Pitch+(xs>>8)]
			p := resolveColor(idx, cmap, dst)
			pr, pg, pb, pa := argbChannels(p)
			af := pa * uint32(pc)
			sr += pr * af
			sg += pg * af
			sb += pb * af
			sa += pa * uint32(pc)
			weight += uint32(pc)
		}
	}
	if weight == 0 || sa == 0 {
		return 0, 0, 0, 0
	}
	// sa is the sum of the alpha weights applied to sr/sg/sb
	r = clamp255(sr / sa)
	gr = clamp255(sg / sa)
	b = clamp255(sb / sa)
	a = clamp255((sa << 8) / weight >> 8)
	return
}

func rowWeight(s, lo, hi int) int {
	switch {
	case s>>8 == lo>>8:
		yp := 256 - (s & 0xFF)
		if yp > hi-lo {
			yp = hi - lo
		}
		return yp
	case s>>8 == hi>>8:
		return hi & 0xFF
	default:
		return 256
	}
}

func clamp255(v uint32) uint32 {
	if v > 255 {
		return 255
	}
	return v
}

func blendPixel(dst *Buf, x, y int, r, g, b, a uint32) {
	off := y*dst.Pitch + x*4
	pix := dst.Pix[off : off+4 : off+4]
	m := 0
	if dst.W < 0 {
		m = 2
	}
	pix[m] = byte((b*a + (256-a)*uint32(pix[m])) >> 8)
	pix[1] = byte((g*a + (256-a)*uint32(pix[1])) >> 8)
	pix[2-m] = byte((r*a + (256-a)*uint32(pix[2-m])) >> 8)
	pix[3] = byte(a)
}
