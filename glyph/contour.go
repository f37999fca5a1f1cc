package glyph

import (
	"github.com/gossfn/ssfn2/font"
	"github.com/gossfn/ssfn2/raster"
)

// composeContour rasterizes one vector-contour fragment into g, using buf
// as scratch edge-point storage and scanRow as scratch crossing storage
// (both reused across fragments by the caller to avoid per-fragment
// allocation). x, y are the fragment's placement offset in fixed-point
// units already scaled to the cache height h; cb is the bold-dilation
// slack in pixels.
func composeContour(g *Glyph, buf *raster.Buffer, scanRow []int32, f *font.Font, frg []byte, h, x, y, cb int, italic bool, color byte) error {
	if len(frg) < 1 {
		return font.FormatError("truncated contour fragment")
	}
	pos := 1
	j := int(frg[0] & 0x3F)
	if frg[0]&0x40 != 0 {
		if pos >= len(frg) {
			return font.FormatError("truncated contour fragment")
		}
		j = j<<8 | int(frg[pos])
		pos++
	}
	j++ // point_count
	cmdBytes := (j + 3) / 4
	if pos+cmdBytes > len(frg) {
		return font.FormatError("truncated contour command bytes")
	}
	cmds := frg[pos : pos+cmdBytes]
	coords := frg[pos+cmdBytes:]

	buf.Reset(raster.Fixed(g.Pitch<<raster.Prec), raster.Fixed(h<<raster.Prec))

	scale := func(v uint8) int { return (int(v)<<raster.Prec)*h/int(f.Height) }

	cpos := 0
	for i := 0; i < j; i++ {
		cmd := (cmds[i>>2] >> uint((i&3)*2)) & 3
		if cpos+2 > len(coords) {
			return font.FormatError("truncated contour coordinates")
		}
		k := scale(coords[cpos]) + x
		m := scale(coords[cpos+1]) + y
		switch cmd {
		case 0: // move
			buf.MoveTo(raster.Point{X: raster.Fixed(k), Y: raster.Fixed(m)})
			cpos += 2
		case 1: // line
			buf.Line(raster.Point{X: raster.Fixed(k), Y: raster.Fixed(m)})
			cpos += 2
		case 2: // quad
			if cpos+4 > len(coords) {
				return font.FormatError("truncated quad control point")
			}
			a := scale(coords[cpos+2]) + x
			A := scale(coords[cpos+3]) + y
			buf.QuadTo(raster.Point{X: raster.Fixed(a), Y: raster.Fixed(A)}, raster.Point{X: raster.Fixed(k), Y: raster.Fixed(m)})
			cpos += 4
		case 3: // cubic
			if cpos+6 > len(coords) {
				return font.FormatError("truncated cubic control points")
			}
			a := scale(coords[cpos+2]) + x
			A := scale(coords[cpos+3]) + y
			b := scale(coords[cpos+4]) + x
			B := scale(coords[cpos+5]) + y
			buf.CubicTo(
				raster.Point{X: raster.Fixed(a), Y: raster.Fixed(A)},
				raster.Point{X: raster.Fixed(b), Y: raster.Fixed(B)},
				raster.Point{X: raster.Fixed(k), Y: raster.Fixed(m)},
			)
			cpos += 6
		}
	}
	buf.Close()
	if !buf.Fillable() {
		return nil
	}

	yPix := y >> raster.Prec
	var o, dilateRight int
	dilated := false
	for b := 0; b < h; b++ {
		row := buf.Crossings(b, scanRow[:0])
		if italic {
			shift := int32((h - b) / ItalicDiv)
			for i := range row {
				row[i] += shift
			}
		}
		if len(row) == 0 {
			continue
		}
		if ink := yPix + b; ink > g.Descent {
			g.Descent = ink
		}
		base := b * g.Pitch
		if cb != 0 && !dilated {
			x0 := int(row[0])
			if x0 >= 0 && x0 < g.Pitch && g.Data[base+x0] == Background {
				o, dilateRight = -cb, cb
			} else {
				o, dilateRight = cb, -cb
			}
			dilated = true
		}
		prevRight := 0
		for i := 0; i+1 < len(row); i += 2 {
			l := int(row[i]) + o
			m := int(row[i+1]) + dilateRight
			if l < 0 {
				l = 0
			}
			if m > g.Pitch {
				m = g.Pitch
			}
			if i > 0 && l < prevRight {
				l = prevRight
			}
			for ; l < m; l++ {
				if g.Data[base+l] == Background {
					g.Data[base+l] = color
				} else {
					g.Data[base+l] = Background
				}
			}
			prevRight = m
		}
	}
	return nil
}
