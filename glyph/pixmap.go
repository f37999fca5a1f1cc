package glyph

import "github.com/gossfn/ssfn2/font"

// composePixmap decodes an RLE-packed 8-bit pixmap fragment (already
// color-mapped indices, spec.md §3) and nearest-neighbor-scales it into g.
// x, y are already in destination (cache) pixel units.
func composePixmap(g *Glyph, f *font.Font, frg []byte, h, x, y int) error {
	if len(frg) < 4 {
		return font.FormatError("truncated pixmap fragment")
	}
	srcW := int(frg[2]) + 1
	srcH := int(frg[3]) + 1
	pixels := make([]byte, srcW*srcH)

	// The RLE stream is bounded by its own declared 16-bit length, not by
	// however much data happens to follow the fragment in the image
	// (spec.md §3, "16-bit length = (((b0 & 0x1F) << 8) | b1) + 1"); a
	// run that under-produces pixels stops at that boundary rather than
	// reading into the next fragment or table.
	k := (int(frg[0]&0x1F)<<8 | int(frg[1])) + 1
	end := 4 + k
	if end > len(frg) {
		return font.FormatError("pixmap RLE stream truncated")
	}

	pos := 4
	n := 0
	for n < len(pixels) && pos < end {
		c := frg[pos]
		pos++
		run := int(c&0x7F) + 1
		if n+run > len(pixels) {
			run = len(pixels) - n
		}
		if c&0x80 != 0 {
			if pos >= end {
				return font.FormatError("pixmap RLE stream truncated")
			}
			v := frg[pos]
			pos++
			for i := 0; i < run; i++ {
				pixels[n+i] = v
			}
		} else {
			if pos+run > end {
				return font.FormatError("pixmap RLE literal run truncated")
			}
			copy(pixels[n:n+run], frg[pos:pos+run])
			pos += run
		}
		n += run
	}

	dstW := srcW * h / int(f.Height)
	dstH := srcH * h / int(f.Height)
	if dstW == 0 {
		dstW = 1
	}
	if dstH == 0 {
		dstH = 1
	}
	for dy := 0; dy < dstH; dy++ {
		py := y + dy
		if py < 0 || py >= g.Height {
			continue
		}
		sy := dy * srcH / dstH
		base := py * g.Pitch
		for dx := 0; dx < dstW; dx++ {
			px := x + dx
			if px < 0 || px >= g.Pitch {
				continue
			}
			v := pixels[sy*srcW+dx*srcW/dstW]
			if v != Background {
				g.Data[base+px] = v
			}
		}
	}
	if ink := y + dstH - 1; ink > g.Descent {
		g.Descent = ink
	}
	return nil
}
