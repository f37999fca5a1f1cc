package font

// FragEntry is one fragment pointer inside a character record: an
// (xoffs, yoffs) placement offset plus the fragment's byte offset into
// the font image, or — when XOffs and YOffs both read 0xFF — a color
// sentinel carried in Offset's low byte instead of a real pointer.
type FragEntry struct {
	XOffs, YOffs uint8
	Offset       uint32 // 24- or 32-bit fragment offset, or a color index when IsColor
	IsColor      bool
}

// CharRecord is a character's metrics plus its raw fragment-pointer
// bytes, as found by walking the sparse character table.
type CharRecord struct {
	Type uint8 // overlap (low 6 bits) | wide-pointer flag (bit 6)
	N    uint8
	W, H uint8
	AdvX uint8
	AdvY uint8

	entries []byte
}

// Overlap returns the number of pixels the glyph extends back into the
// previous cell.
func (c *CharRecord) Overlap() uint8 { return c.Type & 0x3F }

// wide reports whether fragment pointers in this record are 6 bytes
// (32-bit offset) instead of the default 5 (24-bit offset).
func (c *CharRecord) wide() bool { return c.Type&0x40 != 0 }

func (c *CharRecord) entrySize() int {
	if c.wide() {
		return 6
	}
	return 5
}

// Len returns the number of fragment entries (spec.md's n), including
// color-sentinel entries.
func (c *CharRecord) Len() int { return int(c.N) }

// Entry decodes the i'th fragment entry.
func (c *CharRecord) Entry(i int) FragEntry {
	sz := c.entrySize()
	e := c.entries[i*sz : i*sz+sz]
	if e[0] == 0xFF && e[1] == 0xFF {
		return FragEntry{XOffs: 0xFF, YOffs: 0xFF, Offset: uint32(e[2]), IsColor: true}
	}
	var off uint32
	if c.wide() {
		off = uint32(e[2]) | uint32(e[3])<<8 | uint32(e[4])<<16 | uint32(e[5])<<24
	} else {
		off = uint32(e[2]) | uint32(e[3])<<8 | uint32(e[4])<<16
	}
	return FragEntry{XOffs: e[0], YOffs: e[1], Offset: off}
}

// recordLength returns 6 + n*(5|6), the byte span of the record
// including its fixed 6-byte header.
func (c *CharRecord) recordLength() int { return 6 + c.Len()*c.entrySize() }

// readCharRecord decodes the fixed 6-byte header plus its N fragment
// entries starting at offset off in b.
func readCharRecord(b []byte, off int) (*CharRecord, error) {
	if off+6 > len(b) {
		return nil, FormatError("truncated character record header")
	}
	c := &CharRecord{
		Type: b[off],
		N:    b[off+1],
		W:    b[off+2],
		H:    b[off+3],
		AdvX: b[off+4],
		AdvY: b[off+5],
	}
	end := off + c.recordLength()
	if end > len(b) {
		return nil, FormatError("truncated character record entries")
	}
	c.entries = b[off+6 : end]
	return c, nil
}

// Lookup walks the sparse character table starting at f.CharactersOffs,
// following the three-case skip-run encoding (spec.md §3), and returns
// the record for codepoint cp, or nil if the table has no entry for it.
func (f *Font) Lookup(cp uint32) (*CharRecord, error) {
	if f.CharactersOffs == 0 || cp >= 0x110000 {
		return nil, nil
	}
	b := f.Bytes
	ptr := int(f.CharactersOffs)
	// The table ends where the next table starts, or at the trailing magic.
	end := len(b) - 4
	for _, o := range []uint32{f.LigatureOffs, f.KerningOffs, f.CmapOffs} {
		if o > f.CharactersOffs && int(o) < end {
			end = int(o)
		}
	}
	for i := uint32(0); i < 0x110000 && ptr < end; {
		if ptr >= len(b) {
			return nil, FormatError("character table runs past end of image")
		}
		switch {
		case b[ptr] == 0xFF:
			i += 65536
			ptr++
		case b[ptr]&0xC0 == 0xC0:
			if ptr+1 >= len(b) {
				return nil, FormatError("truncated 2-byte skip")
			}
			i += (uint32(b[ptr]&0x3F)<<8 | uint32(b[ptr+1])) + 1
			ptr += 2
		case b[ptr]&0xC0 == 0x80:
			i += uint32(b[ptr]&0x3F) + 1
			ptr++
		default:
			if i == cp {
				return readCharRecord(b, ptr)
			}
			rec, err := readCharRecord(b, ptr)
			if err != nil {
				return nil, err
			}
			ptr += rec.recordLength()
			i++
		}
	}
	return nil, nil
}

// FirstIsDefaultGlyph reports whether the very first character-table
// entry is a real record rather than a skip sentinel, i.e. whether this
// font has a usable default glyph (spec.md §4.1 step 5 / SPEC_FULL.md
// §3's family-bucket fallback).
func (f *Font) FirstIsDefaultGlyph() bool {
	if f.CharactersOffs == 0 || int(f.CharactersOffs) >= len(f.Bytes) {
		return false
	}
	return f.Bytes[f.CharactersOffs]&0x80 == 0
}

// DefaultGlyph returns the character record at the very start of the
// character table, used as the last-resort substitute glyph when a
// codepoint has no entry of its own and NODEFGLYPH is not set. Callers
// must check FirstIsDefaultGlyph first.
func (f *Font) DefaultGlyph() (*CharRecord, error) {
	return readCharRecord(f.Bytes, int(f.CharactersOffs))
}
