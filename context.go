package ssfn2

import (
	"github.com/gossfn/ssfn2/font"
	"github.com/gossfn/ssfn2/glyph"
	"github.com/gossfn/ssfn2/inflate"
	"github.com/gossfn/ssfn2/raster"
)

// ctxHeaderSize is the fixed, hardcodable stand-in for the original
// renderer context's own sizeof(ssfn_t) (SPEC_FULL.md §3's Mem
// accounting detail) — the header fields (selected face/style/size,
// bucket/registry slice headers) that exist regardless of how much is
// loaded or cached.
const ctxHeaderSize = 32

// Context is a renderer instance: a registry of loaded fonts bucketed by
// family, the currently selected face/style/size, and the glyph cache
// that face fills as text is rendered. The zero value is ready to use.
type Context struct {
	fonts    [5][]*font.Font // bucketed by Family; FamilyByName/FamilyAny select across these
	byName   map[string]*font.Font
	selected *font.Font
	family   font.Family
	style    Style
	size     int

	cache       glyph.Cache
	scratch     *glyph.Glyph  // single-slot reuse when NoCache is set
	edgeScratch raster.Buffer // reused contour edge-point buffer across glyphs

	inflated int // bytes owned by gunzip'd images, for Mem
}

// Load decodes a font image — gzip-wrapped, a raw collection, or a single
// SSFN2 image, tried in that order — and registers every font it
// contains into the family buckets (SPEC_FULL.md §3). A collection that
// fails partway still registers the fonts that parsed before the
// failure.
func (c *Context) Load(data []byte) Error {
	b := data
	owned := false
	if inflate.IsGzip(b) {
		out, err := inflate.Gunzip(b)
		if err != nil {
			return BadFile
		}
		c.inflated += len(out)
		b = out
		owned = true
	}

	var fonts []*font.Font
	if font.IsCollection(b) {
		parsed, err := font.ParseCollection(b)
		fonts = parsed
		if len(parsed) == 0 && err != nil {
			return BadFile
		}
	} else {
		f, err := font.Parse(b)
		if err != nil {
			return BadFile
		}
		fonts = []*font.Font{f}
	}

	for _, f := range fonts {
		f.Owned = owned
		c.register(f)
	}
	return Ok
}

func (c *Context) register(f *font.Font) {
	fam := f.Family()
	if fam > font.FamilyHand {
		return
	}
	c.fonts[fam] = append(c.fonts[fam], f)
	if c.byName == nil {
		c.byName = make(map[string]*font.Font)
	}
	if name := f.Name(); name != "" {
		c.byName[name] = f
	}
}

// Select picks the face used by subsequent Render/BBox/Text calls. It
// always resets the glyph cache first — even if the style/size/name
// arguments below turn out to be invalid — mirroring the original
// renderer's unconditional cache invalidation on any face change
// (SPEC_FULL.md §3).
func (c *Context) Select(family font.Family, name string, style Style, size int) Error {
	c.cache.Reset()
	c.scratch = nil
	c.selected = nil

	if style&^styleMask != 0 {
		return BadStyle
	}
	if size < SizeMin || size > SizeMax {
		return BadSize
	}

	if family == font.FamilyByName {
		f, ok := c.byName[name]
		if !ok {
			return NoFace
		}
		c.selected = f
	} else if family != font.FamilyAny && len(c.fonts[family]) == 0 {
		return NoFace
	} else if family == font.FamilyAny && c.totalFonts() == 0 {
		return NoFace
	}

	c.family = family
	c.style = style
	c.size = size
	return Ok
}

func (c *Context) totalFonts() int {
	n := 0
	for _, bucket := range c.fonts {
		n += len(bucket)
	}
	return n
}

// Free releases every reference this context holds — loaded fonts,
// cached glyphs, and the gunzip scratch buffer — so the Context can be
// reused as if freshly zeroed, or simply dropped for the garbage
// collector.
func (c *Context) Free() {
	for i := range c.fonts {
		c.fonts[i] = nil
	}
	c.byName = nil
	c.selected = nil
	c.scratch = nil
	c.edgeScratch = raster.Buffer{}
	c.inflated = 0
	c.cache.Reset()
}

// Mem reports this context's memory footprint using the same fixed-cost
// accounting shape as the original's sizeof-based struct walk
// (SPEC_FULL.md §3): a constant context-header size, plus the glyph
// cache's per-level array overhead and per-glyph cost (glyph.Cache.Mem),
// plus the NoCache scratch glyph if one is held (accounted the same way
// a cached glyph is, 8 bytes of struct overhead plus its pixel buffer),
// plus gunzip'd font bytes, plus the loaded font byte slices themselves,
// plus the reused contour edge-point buffer's current backing capacity.
func (c *Context) Mem() int {
	n := ctxHeaderSize + c.cache.Mem() + c.inflated + c.edgeScratch.Cap()
	if c.scratch != nil {
		n += 8 + len(c.scratch.Data)
	}
	for _, bucket := range c.fonts {
		for _, f := range bucket {
			n += len(f.Bytes)
		}
	}
	return n
}
