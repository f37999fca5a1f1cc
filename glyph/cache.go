package glyph

// ptrSize stands in for the original's sizeof(void*) in its per-level
// cache array cost (SPEC_FULL.md §3's Mem accounting detail): a fixed,
// hardcodable constant, not a platform sizeof trick.
const ptrSize = 8

// Cache memoizes composed glyphs by codepoint, using a three-level sparse
// index (plane, mid byte, low byte) so the common case — a font that only
// ever renders a few hundred codepoints out of the 0x110000 possible —
// allocates only the buckets actually touched, mirroring the original
// renderer's sparse `cache[plane][mid][low]` table.
type Cache struct {
	planes [17]*[256]*[256]*Glyph
}

// Get returns the cached glyph for cp, or nil if it hasn't been composed
// yet.
func (c *Cache) Get(cp uint32) *Glyph {
	plane, mid, low := split(cp)
	p := c.planes[plane]
	if p == nil {
		return nil
	}
	l := p[mid]
	if l == nil {
		return nil
	}
	return l[low]
}

// Put stores g as the cached glyph for cp, allocating any intermediate
// levels that don't exist yet.
func (c *Cache) Put(cp uint32, g *Glyph) {
	plane, mid, low := split(cp)
	if c.planes[plane] == nil {
		c.planes[plane] = &[256]*[256]*Glyph{}
	}
	p := c.planes[plane]
	if p[mid] == nil {
		p[mid] = &[256]*Glyph{}
	}
	p[mid][low] = g
}

// Reset drops every cached glyph, releasing their backing buffers. Called
// whenever font selection changes, since cached glyphs are rasterized at a
// specific font+style+size and have no way to identify themselves as
// stale otherwise.
func (c *Cache) Reset() {
	for i := range c.planes {
		c.planes[i] = nil
	}
}

// Mem returns the cache's byte footprint using the original's exact
// accounting shape (SPEC_FULL.md §3): 256*ptrSize for each allocated mid
// level, 256*ptrSize for each allocated low level beneath it, plus
// 8+pitch*height for each cached glyph (the 8 standing in for the
// glyph's own small struct header, the rest its pixel buffer).
func (c *Cache) Mem() int {
	n := 0
	for _, mid := range c.planes {
		if mid == nil {
			continue
		}
		n += 256 * ptrSize
		for _, low := range mid {
			if low == nil {
				continue
			}
			n += 256 * ptrSize
			for _, g := range low {
				if g != nil {
					n += 8 + len(g.Data)
				}
			}
		}
	}
	return n
}

func split(cp uint32) (plane, mid, low byte) {
	return byte(cp >> 16), byte(cp >> 8), byte(cp)
}
