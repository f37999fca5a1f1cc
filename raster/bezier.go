package raster

// maxBezierDepth bounds the recursive subdivision depth for both quadratic
// and cubic segments, per spec.md's "depth-limited to 4 levels".
const maxBezierDepth = 4

// QuadTo appends a quadratic Bézier segment from the current point through
// control c to endpoint p. It is promoted to a cubic by the mid-point
// construction (the cubic's controls are the midpoints of current-point/c
// and c/p) and handed to the cubic subdivider.
func (b *Buffer) QuadTo(c, p Point) {
	x0, y0 := b.last.X, b.last.Y
	c1 := Point{x0 + (c.X-x0)/2, y0 + (c.Y-y0)/2}
	c2 := Point{c.X + (p.X-c.X)/2, c.Y + (p.Y-c.Y)/2}
	b.CubicTo(c1, c2, p)
}

// CubicTo appends a cubic Bézier segment from the current point through
// control points c1, c2 to endpoint p, via recursive de Casteljau
// subdivision. Each level computes the midpoints of the three control
// segments (and of the segments between those) and recurses into both
// halves; leaves emit a line to their endpoint.
func (b *Buffer) CubicTo(c1, c2, p Point) {
	b.subdivide(b.last, c1, c2, p, 0)
}

func (b *Buffer) subdivide(p0, p1, p2, p3 Point, depth int) {
	if depth < maxBezierDepth && (p0.X != p3.X || p0.Y != p3.Y) {
		m0 := mid(p0, p1)
		m1 := mid(p1, p2)
		m2 := mid(p2, p3)
		m3 := mid(m0, m1)
		m4 := mid(m1, m2)
		m5 := mid(m3, m4)
		b.subdivide(p0, m0, m3, m5, depth+1)
		b.subdivide(m5, m4, m2, p3, depth+1)
		return
	}
	b.Line(p3)
}

func mid(a, c Point) Point {
	return Point{a.X + (c.X-a.X)/2, a.Y + (c.Y-a.Y)/2}
}
