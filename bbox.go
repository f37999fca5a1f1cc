package ssfn2

import (
	"github.com/gossfn/ssfn2/blit"
	"github.com/gossfn/ssfn2/font"
)

// BBox measures the bounding box str would occupy if rendered at the
// current size/style: overall width and height, plus the (left, top)
// offset from the nominal origin (the baseline start point) to the
// box's top-left corner.
//
// This accumulates raw, unscaled glyph metrics across the string and
// scales the result once at the end, rather than looping Render calls
// through a live destination the way the original implementation does.
// The original's ssfn_bbox reuses the same buffer fields Render's cursor
// advance writes to, which — for left-to-right horizontal text — ends up
// scaling the left offset twice; that reads as an artifact of reusing
// ssfn_buf_t's fields across two unrelated purposes rather than an
// intended result, so this measures the four accumulators independently
// instead (see DESIGN.md).
func (c *Context) BBox(str string) (w, h, left, top int, err Error) {
	if c.size == 0 {
		return 0, 0, 0, 0, NoFace
	}
	if str == "" {
		return 0, 0, 0, 0, Ok
	}

	var accW, accH, accY int
	var lastF *font.Font
	var lastAdvX, lastW int
	first := true

	rest := str
	for rest != "" {
		rec, f, _, n, errc := c.match(rest)
		if n == 0 {
			break
		}
		rest = rest[n:]
		if errc != Ok {
			continue
		}
		lastF = f
		lastAdvX = int(rec.AdvX)
		lastW = int(rec.W)

		if first {
			accW = int(rec.Overlap())
			first = false
		}
		if rec.AdvX != 0 {
			if asc := int(f.Baseline); asc > accY {
				accY = asc
			}
			if int(rec.H) > accH {
				accH = int(rec.H)
			}
			accW += int(rec.AdvX)
		} else {
			if int(rec.W) > accW {
				accW = int(rec.W)
			}
			accH += int(rec.AdvY)
		}
	}

	if lastF == nil {
		return 0, 0, 0, 0, NoGlyph
	}

	accX := 0
	if lastAdvX != 0 {
		// the last glyph's own width widens the box past its advance point
		accW += lastW
	} else {
		accH += int(lastF.Height)
		accX = accW / 2
	}

	s := c.size
	if c.style&AbsSize == 0 && lastF.Family() != font.FamilyMonospace && lastF.Baseline != 0 {
		s = c.size * int(lastF.Height) / int(lastF.Baseline)
	}
	fh := int(lastF.Height)

	w = accW * s / fh
	h = accH * s / fh
	left = accX * s / fh
	top = accY * s / fh
	return w, h, left, top, Ok
}

// Text renders str into a freshly allocated, tightly-sized ARGB buffer
// and returns it. An empty str returns a zero-sized, non-nil buffer and
// Ok, not an error.
func (c *Context) Text(str string, fg uint32) (*blit.Buf, Error) {
	w, h, left, top, errc := c.BBox(str)
	if errc != Ok {
		return nil, errc
	}
	if str == "" {
		return &blit.Buf{W: 0, H: 0}, Ok
	}

	buf := &blit.Buf{
		Pix:   make([]byte, w*h*4),
		W:     w,
		H:     h,
		Pitch: w * 4,
		X:     left,
		Y:     top,
		FG:    fg,
		BG:    0,
	}

	rest := str
	for rest != "" {
		n, errc := c.Render(buf, rest)
		if n == 0 {
			break
		}
		rest = rest[n:]
		if errc != Ok && errc != NoGlyph {
			return buf, errc
		}
	}
	return buf, Ok
}
