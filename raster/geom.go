// Package raster builds and scans the flat edge-point polyline used to
// fill a glyph's vector contours. Coordinates are fixed-point with Prec
// fractional bits, matching the SSFN2 rendering pipeline's internal
// precision.
package raster

import "fmt"

// Prec is the number of fractional bits used by all coordinates that pass
// through this package.
const Prec = 4

// A Fixed is a signed fixed-point number with Prec fractional bits.
type Fixed int32

// String renders x as "i:f", the floored integer part followed by the
// raw fraction in sixteenths (0-15).
func (x Fixed) String() string {
	i, f := x>>Prec, x&(1<<Prec-1)
	return fmt.Sprintf("%d:%d", int32(i), int32(f))
}

// A Point is a coordinate pair in Fixed units.
type Point struct {
	X, Y Fixed
}

// Buffer accumulates the flat (x, y) polyline that a contour fragment
// compiles down to: a sequence of closed, deduplicated edge points ready
// for even-odd scanline filling. It is the Go analogue of the ssfn_t
// scratch fields mx/my/lx/ly/p/np from the original renderer context,
// restructured as a reusable, independently testable value.
type Buffer struct {
	pts      []Point
	moveTo   Point
	last     Point
	hasPoint bool
	maxX     Fixed
	maxY     Fixed
}

// Reset discards any accumulated points and sets the clamp bounds for
// subsequent Line calls. w and h are the destination bounds in Fixed units
// (i.e. already shifted left by Prec).
func (b *Buffer) Reset(w, h Fixed) {
	b.pts = b.pts[:0]
	b.hasPoint = false
	b.maxX = w
	b.maxY = h
}

// MoveTo starts a new subpath at p without emitting a point.
func (b *Buffer) MoveTo(p Point) {
	b.moveTo, b.last = p, p
}

// Line appends a line from the current point to p, deduplicating against
// the last emitted point at integer-pixel resolution and clamping to the
// bounds passed to Reset. The first point emitted after Reset prepends
// the pending move-to point, closing the gap between MoveTo and the first
// Line; a later MoveTo in the same buffer gets no such prefix.
func (b *Buffer) Line(p Point) {
	if p.X < 0 {
		p.X = 0
	} else if p.X >= b.maxX {
		p.X = b.maxX - 1
	}
	if p.Y < 0 {
		p.Y = 0
	} else if p.Y >= b.maxY {
		p.Y = b.maxY - 1
	}
	half := Fixed(1 << (Prec - 1))
	if ((b.last.X+half)>>Prec) == ((p.X+half)>>Prec) && ((b.last.Y+half)>>Prec) == ((p.Y+half)>>Prec) {
		return
	}
	if !b.hasPoint {
		b.pts = append(b.pts, b.moveTo)
		b.hasPoint = true
	}
	b.pts = append(b.pts, p)
	b.last = p
}

// Close emits a final line back to the subpath's move-to point if the
// current point hasn't already returned there.
func (b *Buffer) Close() {
	if b.last != b.moveTo {
		b.Line(b.moveTo)
	}
}

// Len returns the number of accumulated edge points.
func (b *Buffer) Len() int { return len(b.pts) }

// Point returns the i'th accumulated edge point.
func (b *Buffer) Point(i int) Point { return b.pts[i] }

// Fillable reports whether the buffer holds enough points (spec.md requires
// at least 3, i.e. 6 flat values) to produce a fill.
func (b *Buffer) Fillable() bool { return len(b.pts) > 2 }

// Cap returns the buffer's current backing capacity in bytes (two Fixed
// values per point), for the renderer context's memory accounting.
func (b *Buffer) Cap() int { return cap(b.pts) * 8 }
