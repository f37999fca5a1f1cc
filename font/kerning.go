package font

// Kern is a resolved kerning adjustment: a signed offset value (still in
// font grid units — the caller scales it to display height) and whether
// it applies to the horizontal or vertical advance.
type Kern struct {
	Value      int8
	Horizontal bool
}

// Kerning looks for a kerning-group fragment among rec's fragment
// entries and, if one covers codepoint next, decodes its RLE offset
// table and returns the adjustment. found is false (no error) when no
// fragment entry is a kerning descriptor, or none of its ranges cover
// next — both are silent non-matches per spec.md §7.
func (f *Font) Kerning(rec *CharRecord, next uint32) (k Kern, found bool, err error) {
	if f.KerningOffs == 0 {
		return Kern{}, false, nil
	}
	b := f.Bytes
	for i := 0; i < rec.Len(); i++ {
		e := rec.Entry(i)
		if e.IsColor {
			continue
		}
		if int(e.Offset)+1 >= len(b) {
			continue
		}
		frg := b[e.Offset:]
		if len(frg) < 3 || frg[0]&0xE0 != 0xC0 {
			continue
		}
		count := int(frg[0]&0x1F)<<8 | int(frg[1])
		count++
		entries := frg[3:]
		for g := 0; g < count; g++ {
			base := g * 8
			if base+8 > len(entries) {
				return Kern{}, false, FormatError("kerning group runs past end of image")
			}
			en := entries[base : base+8]
			lo := uint32(en[2]&0x0F)<<16 | uint32(en[1])<<8 | uint32(en[0])
			hi := uint32(en[5]&0x0F)<<16 | uint32(en[4])<<8 | uint32(en[3])
			if next < lo || next > hi {
				continue
			}
			p := next - lo
			koffs := f.KerningOffs + (uint32(en[2]>>4)<<24 | uint32(en[5]>>4)<<16 | uint32(en[7])<<8 | uint32(en[6]))
			v, err := decodeKerningRLE(b, int(koffs), int(p))
			if err != nil {
				return Kern{}, false, err
			}
			return Kern{Value: v, Horizontal: e.XOffs != 0}, true, nil
		}
	}
	return Kern{}, false, nil
}

// decodeKerningRLE walks the RLE offset stream starting at off, looking
// for the value covering relative index p (spec.md §4.7 step 3).
func decodeKerningRLE(b []byte, off, p int) (int8, error) {
	for off < len(b)-4 {
		run := int(b[off] & 0x7F)
		if run < p {
			p -= run + 1
			if b[off]&0x80 != 0 {
				off += 2
			} else {
				off += 2 + run
			}
			continue
		}
		idx := off + 1
		if b[off]&0x80 == 0 {
			idx += p
		}
		if idx >= len(b) {
			return 0, FormatError("kerning value offset out of range")
		}
		return int8(b[idx]), nil
	}
	return 0, FormatError("kerning RLE stream ran off the end of the image")
}
