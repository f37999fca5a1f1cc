package raster

import "sort"

// Crossings returns the sorted, even-odd-corrected list of integer pixel
// x-coordinates where the horizontal line y = row (in destination pixel
// space) crosses the buffer's edges. Each consecutive pair of points in
// the buffer is treated as one edge of a single, possibly multi-subpath,
// polyline — exactly as accumulated by MoveTo/Line/Close.
//
// When a segment's two endpoints round to the same destination row, the
// crossing falls back to the midpoint of the two endpoint x-coordinates
// (spec.md's "fall back to the midpoint of the two x's" case for a
// near-horizontal segment at fixed-point rounding).
//
// dst is reused as scratch space and returned, to avoid an allocation per
// row during glyph rasterization.
func (buf *Buffer) Crossings(row int, dst []int32) []int32 {
	dst = dst[:0]
	a := Fixed(row) << Prec
	n := len(buf.pts)
	for i := 0; i < n-1; i++ {
		p0, p1 := buf.pts[i], buf.pts[i+1]
		if (p0.Y < a && p1.Y >= a) || (p1.Y < a && p0.Y >= a) {
			var x Fixed
			if p0.Y>>Prec == p1.Y>>Prec {
				x = (p0.X + p1.X) / 2
			} else {
				x = p0.X + (a-p0.Y)*(p1.X-p0.X)/(p1.Y-p0.Y)
			}
			dst = insertSorted(dst, int32(x>>Prec))
		}
	}
	if len(dst) > 1 && len(dst)&1 == 1 {
		dst = dst[:len(dst)-1]
	}
	return dst
}

func insertSorted(xs []int32, x int32) []int32 {
	i := sort.Search(len(xs), func(i int) bool { return xs[i] > x })
	xs = append(xs, 0)
	copy(xs[i+1:], xs[i:])
	xs[i] = x
	return xs
}
