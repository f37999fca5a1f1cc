// Package console implements the minimal console-bitmap renderer
// (spec.md §6 "Minimal console variant"): one glyph, one codepoint, the
// bitmap fragment kind only, no allocation, no cache, no AA, no styles.
// It is a struct-based façade rather than the original's ssfn_src/
// ssfn_dst process globals (spec.md §9's design note).
package console

import "github.com/gossfn/ssfn2/font"

// Framebuffer is the console variant's destination descriptor: a raw
// pixel buffer addressed at a fixed bit depth, with no color-map
// resolution — every ink pixel is FG, every background pixel is left
// untouched.
type Framebuffer struct {
	Ptr   []byte
	W, H  int
	Pitch int // bytes per row
	BPP   int // 8, 16, or 32
	FG    uint32
}

// Screen pairs one source font with one destination framebuffer and a
// cursor, the struct-based analogue of the original's two process-wide
// globals.
type Screen struct {
	Src  *font.Font
	Dst  Framebuffer
	X, Y int
}

// PutC draws the glyph for codepoint cp at the screen's current cursor
// using only bitmap-kind fragments (contour, pixmap, and kerning-group
// fragment entries are silently skipped, matching the console variant's
// reduced scope), then advances the cursor by the character's stored
// advance. A codepoint with no character-table entry is a silent no-op,
// since the console variant has no default-glyph fallback to perform.
func (s *Screen) PutC(cp uint32) error {
	if s.Src == nil {
		return font.FormatError("no source font")
	}
	rec, err := s.Src.Lookup(cp)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}

	for i := 0; i < rec.Len(); i++ {
		e := rec.Entry(i)
		if e.IsColor {
			continue
		}
		if int(e.Offset) >= len(s.Src.Bytes) {
			continue
		}
		frg := s.Src.Bytes[e.Offset:]
		if len(frg) < 2 || frg[0]&0xE0 != 0x80 {
			continue // only the bitmap fragment kind (100xxxxx) is supported
		}
		s.blitBitmap(frg, int(e.XOffs), int(e.YOffs))
	}

	s.X += int(rec.AdvX)
	s.Y += int(rec.AdvY)
	return nil
}

// blitBitmap writes a packed 1-bpp bitmap fragment into the framebuffer
// at native size: no scaling, no AA, no color map — every set source bit
// becomes one FG pixel.
func (s *Screen) blitBitmap(frg []byte, xoffs, yoffs int) {
	srcW := (int(frg[0]&0x1F) + 1) * 8
	srcH := int(frg[1]) + 1
	rowBytes := (srcW + 7) / 8
	bits := frg[2:]
	if len(bits) < rowBytes*srcH {
		return
	}

	for sy := 0; sy < srcH; sy++ {
		py := s.Y + yoffs + sy
		if py < 0 || py >= s.Dst.H {
			continue
		}
		for sx := 0; sx < srcW; sx++ {
			if bits[sy*rowBytes+sx/8]&(1<<uint(sx%8)) == 0 {
				continue
			}
			px := s.X + xoffs + sx
			if px < 0 || px >= s.Dst.W {
				continue
			}
			s.setPixel(px, py, s.Dst.FG)
		}
	}
}

// setPixel writes c into the framebuffer at (x, y), truncated to the
// configured bit depth. Depths other than 8/16/32 write nothing.
func (s *Screen) setPixel(x, y int, c uint32) {
	off := y*s.Dst.Pitch
	switch s.Dst.BPP {
	case 8:
		s.Dst.Ptr[off+x] = byte(c)
	case 16:
		o := off + x*2
		s.Dst.Ptr[o] = byte(c)
		s.Dst.Ptr[o+1] = byte(c >> 8)
	case 32:
		o := off + x*4
		s.Dst.Ptr[o] = byte(c)
		s.Dst.Ptr[o+1] = byte(c >> 8)
		s.Dst.Ptr[o+2] = byte(c >> 16)
		s.Dst.Ptr[o+3] = byte(c >> 24)
	}
}
