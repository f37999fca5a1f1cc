package glyph

import "github.com/gossfn/ssfn2/font"

// composeBitmap nearest-neighbor-scales a packed-bitmap fragment into g.
// frg[0]&0x1F encodes source width in bytes-1, frg[1] source height-1; rows
// are packed LSB-first. x, y are already in destination (cache) pixel
// units, not fixed-point.
func composeBitmap(g *Glyph, f *font.Font, frg []byte, h, x, y, cb int, italic, noAA bool, color byte) {
	if len(frg) < 2 {
		return
	}
	srcW := (int(frg[0]&0x1F) + 1) * 8
	srcH := int(frg[1]) + 1
	rowBytes := (srcW + 7) / 8
	bits := frg[2:]
	if len(bits) < rowBytes*srcH {
		return
	}

	dstW := srcW * h / int(f.Height)
	dstH := srcH * h / int(f.Height)
	if dstW == 0 {
		dstW = 1
	}
	if dstH == 0 {
		dstH = 1
	}

	get := func(sx, sy int) bool {
		if sx < 0 || sx >= srcW || sy < 0 || sy >= srcH {
			return false
		}
		b := bits[sy*rowBytes+sx/8]
		return b&(1<<uint(sx%8)) != 0
	}

	for dy := 0; dy < dstH; dy++ {
		py := y + dy
		if py < 0 || py >= g.Height {
			continue
		}
		sy := dy * srcH / dstH
		shift := 0
		if italic {
			shift = (h - py) / ItalicDiv
		}
		base := py * g.Pitch
		for dx := 0; dx < dstW; dx++ {
			if !get(dx*srcW/dstW, sy) {
				continue
			}
			px := x + dx + shift
			for k := 0; k <= cb; k++ {
				pxk := px + k
				if pxk >= 0 && pxk < g.Pitch {
					g.Data[base+pxk] = color
				}
			}
		}
	}
	if ink := y + dstH - 1; ink > g.Descent {
		g.Descent = ink
	}
	if noAA || h <= int(f.Height)+4 {
		return
	}
	antialiasEdges(g, x, y, dstW, dstH, color)
}

// antialiasEdges runs a two-pass outline smoothing step over a just-drawn
// bitmap fragment's destination rect: first it tags a background cell
// only when it has both a vertical neighbor (row above or below) and a
// horizontal neighbor (column left or right) already equal to color —
// an AND of both axes, so only diagonal corners get smoothed, not
// straight edges — then promotes tagged cells to color. The scan stays
// strictly inside the fragment rect so it never reacts to ink left by a
// different fragment or the fragment's own boundary. This softens the
// stairstep edges nearest-neighbor upscaling produces at large
// magnifications (spec.md §4.4).
func antialiasEdges(g *Glyph, x, y, w, h int, color byte) {
	tag := byte(aaTagA)
	if color == aaTagA {
		tag = aaTagB
	}
	inBounds := func(px, py int) bool {
		return px >= 0 && px < g.Pitch && py >= 0 && py < g.Height
	}
	at := func(px, py int) byte {
		if !inBounds(px, py) {
			return Background
		}
		return g.Data[py*g.Pitch+px]
	}
	for py := y + 1; py <= y+h-2; py++ {
		for px := x + 1; px <= x+w-2; px++ {
			if !inBounds(px, py) || at(px, py) != Background {
				continue
			}
			vert := at(px, py-1) == color || at(px, py+1) == color
			horiz := at(px-1, py) == color || at(px+1, py) == color
			if vert && horiz {
				g.Data[py*g.Pitch+px] = tag
			}
		}
	}
	for py := y + 1; py <= y+h-2; py++ {
		for px := x + 1; px <= x+w-2; px++ {
			if inBounds(px, py) && g.Data[py*g.Pitch+px] == tag {
				g.Data[py*g.Pitch+px] = color
			}
		}
	}
}
