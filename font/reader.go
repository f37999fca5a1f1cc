// Package font decodes the SSFN2 binary font image: header validation,
// the sparse character table, ligature table, and kerning groups. It
// never rasterizes; it only turns byte offsets into typed records for
// the glyph package to consume.
package font

import "fmt"

// FormatError reports that an SSFN2 image is structurally invalid: a bad
// magic, an out-of-range offset, or a truncated table.
type FormatError string

func (e FormatError) Error() string { return "ssfn2: invalid font: " + string(e) }

// UnsupportedError reports a well-formed feature this decoder doesn't
// implement.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "ssfn2: unsupported font: " + string(e) }

// data is a little-endian byte-stream cursor over a borrowed font image,
// with bounds-checked fixed-width reads. Mirrors the reader idiom used
// throughout a TrueType-style binary decoder: a slice plus an explicit
// read position, rather than an io.Reader, since every offset in an
// SSFN2 image is also addressable at random (fragment pointers, table
// offsets) and the whole image is already resident in memory.
type data struct {
	b   []byte
	pos int
}

func (d *data) u8() (uint8, error) {
	if d.pos+1 > len(d.b) {
		return 0, FormatError("unexpected end of data")
	}
	v := d.b[d.pos]
	d.pos++
	return v, nil
}

func (d *data) u16() (uint16, error) {
	if d.pos+2 > len(d.b) {
		return 0, FormatError("unexpected end of data")
	}
	v := uint16(d.b[d.pos]) | uint16(d.b[d.pos+1])<<8
	d.pos += 2
	return v, nil
}

// u24 reads a 3-byte little-endian unsigned integer, used by SSFN2's
// compact 24-bit fragment and kerning offsets.
func (d *data) u24() (uint32, error) {
	if d.pos+3 > len(d.b) {
		return 0, FormatError("unexpected end of data")
	}
	v := uint32(d.b[d.pos]) | uint32(d.b[d.pos+1])<<8 | uint32(d.b[d.pos+2])<<16
	d.pos += 3
	return v, nil
}

func (d *data) u32() (uint32, error) {
	if d.pos+4 > len(d.b) {
		return 0, FormatError("unexpected end of data")
	}
	v := uint32(d.b[d.pos]) | uint32(d.b[d.pos+1])<<8 | uint32(d.b[d.pos+2])<<16 | uint32(d.b[d.pos+3])<<24
	d.pos += 4
	return v, nil
}

func (d *data) skip(n int) error {
	if d.pos+n > len(d.b) || d.pos+n < 0 {
		return FormatError("seek out of range")
	}
	d.pos += n
	return nil
}

// bytesAt returns a sub-slice of length n starting at offset off, without
// moving the cursor. Used for fragment/record payloads addressed by
// absolute offset rather than sequential read.
func (d *data) bytesAt(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(d.b) {
		return nil, FormatError(fmt.Sprintf("offset %d+%d out of range (size %d)", off, n, len(d.b)))
	}
	return d.b[off : off+n], nil
}
