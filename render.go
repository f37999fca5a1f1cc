package ssfn2

import (
	"github.com/gossfn/ssfn2/blit"
	"github.com/gossfn/ssfn2/font"
	"github.com/gossfn/ssfn2/glyph"
)

// cacheHeight picks the rasterization height passed to glyph.Compose
// (spec.md §4.6 / original_source/ssfn.h line 989): no-AA renders at the
// exact requested size; otherwise a size above the font's native height
// renders at the next multiple of 4 strictly above size (16 gives 20),
// and any other size renders at the native height.
func cacheHeight(style Style, size, fontHeight int) int {
	if style&NoAA != 0 {
		return size
	}
	if size > fontHeight {
		return (size + 4) &^ 3
	}
	return fontHeight
}

func styleMatches(have, want font.Style, exact bool) bool {
	if want == 0 {
		return true
	}
	if exact {
		return have&(font.StyleBold|font.StyleItalic) == want
	}
	return have&want != 0
}

// searchBuckets tries each font in buckets, in order, as a candidate for
// str: each font resolves its own codepoint and byte length via
// font.Resolve (ligature prefixes are font-specific, so the same input
// bytes can decode differently under different candidates — spec.md
// §4.1 / original_source/ssfn.h lines 947-964), then looks the result
// up in its own character table. The first font with both a style match
// and a table entry wins.
func (c *Context) searchBuckets(buckets [][]*font.Font, str string, want font.Style, exact bool) (*font.CharRecord, *font.Font, uint32, int, bool) {
	for _, bucket := range buckets {
		for _, f := range bucket {
			if !styleMatches(f.Style(), want, exact) {
				continue
			}
			cp, n := f.Resolve(str)
			if n == 0 {
				continue
			}
			rec, err := f.Lookup(cp)
			if err != nil || rec == nil {
				continue
			}
			return rec, f, cp, n, true
		}
	}
	return nil, nil, 0, 0, false
}

func (c *Context) allBuckets() [][]*font.Font {
	return [][]*font.Font{c.fonts[0], c.fonts[1], c.fonts[2], c.fonts[3], c.fonts[4]}
}

// defaultGlyph walks the family buckets in order looking for a font whose
// very first character-table entry is a real record, and returns that
// record as the substitute glyph for an otherwise-unmatched string
// (spec.md §4.1 step 5). It is the renderer's last resort before
// NoGlyph. The byte length is still resolved through the chosen font's
// own decoder so the caller makes forward progress through str.
func (c *Context) defaultGlyph(str string) (*font.CharRecord, *font.Font, uint32, int, Error) {
	if c.style&NoDefGlyph != 0 {
		return nil, nil, 0, 0, NoGlyph
	}
	for _, bucket := range c.allBuckets() {
		for _, f := range bucket {
			if !f.FirstIsDefaultGlyph() {
				continue
			}
			rec, err := f.DefaultGlyph()
			if err != nil {
				continue
			}
			_, n := f.Resolve(str)
			if n == 0 {
				n = 1
			}
			return rec, f, 0, n, Ok
		}
	}
	return nil, nil, 0, 0, NoGlyph
}

// match resolves the next codepoint of str to a character record and the
// font it came from, following the best-match fallback chain spec.md
// §4.1 and SPEC_FULL.md §3 describe: an explicitly-selected-by-name font
// decodes and looks up directly, with no further search; otherwise the
// search tries an exact style match, then any shared style bit, then any
// glyph at all — each restricted to the selected family, and retried
// across every family if that first restricted search comes up empty —
// before falling back to a font's default glyph.
func (c *Context) match(str string) (*font.CharRecord, *font.Font, uint32, int, Error) {
	if c.selected != nil {
		cp, n := c.selected.Resolve(str)
		if n > 0 {
			if rec, err := c.selected.Lookup(cp); err == nil && rec != nil {
				return rec, c.selected, cp, n, Ok
			}
		}
		return c.defaultGlyph(str)
	}

	var want font.Style
	if c.style&Bold != 0 {
		want |= font.StyleBold
	}
	if c.style&Italic != 0 {
		want |= font.StyleItalic
	}

	buckets := c.allBuckets()
	if c.family <= font.FamilyHand {
		buckets = [][]*font.Font{c.fonts[c.family]}
	}

	if rec, f, cp, n, ok := c.searchBuckets(buckets, str, want, true); ok {
		return rec, f, cp, n, Ok
	}
	if want != 0 {
		if rec, f, cp, n, ok := c.searchBuckets(buckets, str, want, false); ok {
			return rec, f, cp, n, Ok
		}
	}
	if rec, f, cp, n, ok := c.searchBuckets(buckets, str, 0, false); ok {
		return rec, f, cp, n, Ok
	}

	if c.family <= font.FamilyHand {
		all := c.allBuckets()
		if rec, f, cp, n, ok := c.searchBuckets(all, str, want, true); ok {
			return rec, f, cp, n, Ok
		}
		if want != 0 {
			if rec, f, cp, n, ok := c.searchBuckets(all, str, want, false); ok {
				return rec, f, cp, n, Ok
			}
		}
		if rec, f, cp, n, ok := c.searchBuckets(all, str, 0, false); ok {
			return rec, f, cp, n, Ok
		}
	}

	return c.defaultGlyph(str)
}

// composeOrCached returns cp's rasterized glyph at the current style/size,
// reusing the glyph cache unless NoCache is set. With NoCache, every call
// composes a fresh glyph; the result is still kept in c.scratch so Mem
// and Free account for it like any other owned buffer.
func (c *Context) composeOrCached(cp uint32, rec *font.CharRecord, f *font.Font) (*glyph.Glyph, Error) {
	if c.style&NoCache == 0 {
		if g := c.cache.Get(cp); g != nil {
			return g, Ok
		}
	}

	fstyle := f.Style()
	params := glyph.Params{
		Height:      cacheHeight(c.style, c.size, int(f.Height)),
		SynthBold:   c.style&Bold != 0 && fstyle&font.StyleBold == 0,
		SynthItalic: c.style&Italic != 0 && fstyle&font.StyleItalic == 0,
		NoAA:        c.style&NoAA != 0,
		Scratch:     &c.edgeScratch,
	}
	g, err := glyph.Compose(f, rec, params)
	if err != nil {
		return nil, BadFile
	}

	if c.style&NoCache == 0 {
		c.cache.Put(cp, g)
	} else {
		c.scratch = g
	}
	return g, Ok
}

// Render draws the next codepoint (or ligature) of str at dst's current
// cursor, advancing the cursor past it, and returns the number of bytes
// consumed. dst may be nil to resolve and cache the glyph without
// drawing it.
//
// A size/style has to be selected first with Select, or Render returns
// NoFace. An empty str returns (0, Ok) without consuming anything.
func (c *Context) Render(dst *blit.Buf, str string) (int, Error) {
	if c.size == 0 {
		return 0, NoFace
	}
	if str == "" {
		return 0, Ok
	}

	rec, f, cp, n, errc := c.match(str)
	if errc != Ok {
		return n, errc
	}

	g, errc := c.composeOrCached(cp, rec, f)
	if errc != Ok {
		return n, errc
	}

	if dst == nil {
		return n, Ok
	}

	src := &blit.Source{
		Glyph:      g,
		CMap:       f.ColorMap(),
		FontHeight: int(f.Height),
		Baseline:   int(f.Baseline),
		Underline:  int(f.Underline),
		Monospace:  f.Family() == font.FamilyMonospace,
	}
	opts := blit.Options{
		Size:          c.size,
		AbsSize:       c.style&AbsSize != 0,
		NoAA:          c.style&NoAA != 0,
		Underline:     c.style&Underline != 0,
		StrikeThrough: c.style&StrikeThrough != 0,
	}
	blit.Draw(dst, src, opts)
	c.applyKerning(dst, f, rec, str[n:], src, opts)

	return n, Ok
}

// applyKerning peeks at the next codepoint in rest through f's own
// decoder (same font only, as the original resolver does) and, if f
// carries a kerning table covering that pair, nudges dst's cursor by the
// kerning value scaled to display size (spec.md §4.7). Control
// characters (next <= 32) and NoKern both silently skip this step.
func (c *Context) applyKerning(dst *blit.Buf, f *font.Font, rec *font.CharRecord, rest string, src *blit.Source, opts blit.Options) {
	if c.style&NoKern != 0 || f.KerningOffs == 0 || rest == "" {
		return
	}
	next, n := f.Resolve(rest)
	if n == 0 || next <= 32 {
		return
	}
	k, found, err := f.Kerning(rec, next)
	if err != nil || !found {
		return
	}
	h := blit.DisplayHeight(opts, src)
	v := int(k.Value) * h / src.FontHeight
	if k.Horizontal {
		dst.X += v
	} else {
		dst.Y += v
	}
}
