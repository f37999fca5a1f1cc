package inflate

// bitReader pulls bits LSB-first out of a byte slice, the order DEFLATE
// packs them in.
type bitReader struct {
	src    []byte
	pos    int
	buf    uint32
	nbits  uint
}

func (r *bitReader) fill(n uint) error {
	for r.nbits < n {
		if r.pos >= len(r.src) {
			// Allow reading past the end with zero bits; a well-formed
			// stream never actually consumes them (the final block ends
			// exactly at a decodable point), but table-driven decode
			// speculatively looks ahead by a fixed window.
			r.buf |= 0
			r.nbits += 8
			continue
		}
		r.buf |= uint32(r.src[r.pos]) << r.nbits
		r.pos++
		r.nbits += 8
	}
	return nil
}

func (r *bitReader) bits(n uint) (uint32, error) {
	if err := r.fill(n); err != nil {
		return 0, err
	}
	v := r.buf & (1<<n - 1)
	r.buf >>= n
	r.nbits -= n
	return v, nil
}

func (r *bitReader) bit() (uint32, error) { return r.bits(1) }

// align discards any partial byte in the bit buffer, used before a
// stored (uncompressed) block.
func (r *bitReader) align() {
	drop := r.nbits % 8
	r.buf >>= drop
	r.nbits -= drop
}

func (r *bitReader) byte() (byte, error) {
	v, err := r.bits(8)
	return byte(v), err
}

// decodeSymbol reads one Huffman-coded symbol using h, trying the
// fast table first and falling back to the canonical bit-by-bit walk
// for codes longer than fastBits.
func decodeSymbol(r *bitReader, h *huffman) (int, error) {
	if err := r.fill(fastBits); err != nil {
		return 0, err
	}
	v := h.fast[r.buf&fastMask]
	if v != 0 {
		l := uint(v >> 12)
		r.buf >>= l
		r.nbits -= l
		return int(v & 0xFFF), nil
	}
	// Slow path: consume bits one at a time, matching the canonical code
	// assignment built in buildHuffman.
	var code uint32
	for l := uint(1); l < 16; l++ {
		bit, err := r.bit()
		if err != nil {
			return 0, err
		}
		code |= bit << (l - 1)
		// Compare against the MSB-first canonical code of this length:
		// reverse the l bits read so far for comparison against firstCode.
		rev := uint32(reverseBits(uint16(code), uint8(l)))
		count := uint32(h.counts[l])
		if count != 0 && rev-uint32(h.firstCode[l]) < count {
			idx := int(h.firstSym[l]) + int(rev-uint32(h.firstCode[l]))
			return int(h.value[idx]), nil
		}
	}
	return 0, FormatError("invalid Huffman code")
}

var lengthBase = [29]uint16{3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31, 35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258}
var lengthExtra = [29]uint8{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0}
var distBase = [30]uint16{1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577}
var distExtra = [30]uint8{0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13}
var codeLengthOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

var fixedLit, fixedDist *huffman

func init() {
	lit := make([]uint8, 288)
	for i := 0; i < 144; i++ {
		lit[i] = 8
	}
	for i := 144; i < 256; i++ {
		lit[i] = 9
	}
	for i := 256; i < 280; i++ {
		lit[i] = 7
	}
	for i := 280; i < 288; i++ {
		lit[i] = 8
	}
	var err error
	fixedLit, err = buildHuffman(lit)
	if err != nil {
		panic("inflate: bad fixed literal table: " + err.Error())
	}
	dist := make([]uint8, 30)
	for i := range dist {
		dist[i] = 5
	}
	fixedDist, err = buildHuffman(dist)
	if err != nil {
		panic("inflate: bad fixed distance table: " + err.Error())
	}
}

// buf is an expandable output buffer that doubles its capacity on
// demand, per spec.md §4.2.
type buf struct {
	b []byte
}

func (o *buf) append(p ...byte) {
	o.b = append(o.b, p...)
}

func (o *buf) copyBack(dist, length int) error {
	if dist <= 0 || dist > len(o.b) {
		return FormatError("back-reference distance out of range")
	}
	start := len(o.b) - dist
	for i := 0; i < length; i++ {
		o.b = append(o.b, o.b[start+i])
	}
	return nil
}

// Inflate decompresses a raw RFC 1951 DEFLATE stream (no zlib or gzip
// wrapper) and returns the decompressed bytes.
func Inflate(src []byte) ([]byte, error) {
	r := &bitReader{src: src}
	out := &buf{}
	for {
		final, err := r.bit()
		if err != nil {
			return nil, err
		}
		btype, err := r.bits(2)
		if err != nil {
			return nil, err
		}
		switch btype {
		case 0:
			if err := inflateStored(r, out); err != nil {
				return nil, err
			}
		case 1:
			if err := inflateBlock(r, out, fixedLit, fixedDist); err != nil {
				return nil, err
			}
		case 2:
			lit, dist, err := readDynamicTables(r)
			if err != nil {
				return nil, err
			}
			if err := inflateBlock(r, out, lit, dist); err != nil {
				return nil, err
			}
		default:
			return nil, FormatError("reserved block type")
		}
		if final != 0 {
			break
		}
	}
	return out.b, nil
}

func inflateStored(r *bitReader, out *buf) error {
	r.align()
	lenLo, err := r.byte()
	if err != nil {
		return err
	}
	lenHi, err := r.byte()
	if err != nil {
		return err
	}
	nlenLo, err := r.byte()
	if err != nil {
		return err
	}
	nlenHi, err := r.byte()
	if err != nil {
		return err
	}
	length := int(lenLo) | int(lenHi)<<8
	nlength := int(nlenLo) | int(nlenHi)<<8
	if length^nlength != 0xFFFF {
		return FormatError("stored block length check failed")
	}
	for i := 0; i < length; i++ {
		b, err := r.byte()
		if err != nil {
			return err
		}
		out.append(b)
	}
	return nil
}

func inflateBlock(r *bitReader, out *buf, lit, dist *huffman) error {
	for {
		sym, err := decodeSymbol(r, lit)
		if err != nil {
			return err
		}
		if sym < 256 {
			out.append(byte(sym))
			continue
		}
		if sym == 256 {
			return nil
		}
		sym -= 257
		if int(sym) >= len(lengthBase) {
			return FormatError("invalid length symbol")
		}
		length := int(lengthBase[sym])
		if e := lengthExtra[sym]; e > 0 {
			extra, err := r.bits(uint(e))
			if err != nil {
				return err
			}
			length += int(extra)
		}
		dsym, err := decodeSymbol(r, dist)
		if err != nil {
			return err
		}
		if dsym >= len(distBase) {
			return FormatError("invalid distance symbol")
		}
		distance := int(distBase[dsym])
		if e := distExtra[dsym]; e > 0 {
			extra, err := r.bits(uint(e))
			if err != nil {
				return err
			}
			distance += int(extra)
		}
		if err := out.copyBack(distance, length); err != nil {
			return err
		}
	}
}

func readDynamicTables(r *bitReader) (lit, dist *huffman, err error) {
	hlit, err := r.bits(5)
	if err != nil {
		return nil, nil, err
	}
	hdist, err := r.bits(5)
	if err != nil {
		return nil, nil, err
	}
	hclen, err := r.bits(4)
	if err != nil {
		return nil, nil, err
	}
	nlit := int(hlit) + 257
	ndist := int(hdist) + 1
	nclen := int(hclen) + 4

	var clLengths [19]uint8
	for i := 0; i < nclen; i++ {
		v, err := r.bits(3)
		if err != nil {
			return nil, nil, err
		}
		clLengths[codeLengthOrder[i]] = uint8(v)
	}
	clHuff, err := buildHuffman(clLengths[:])
	if err != nil {
		return nil, nil, err
	}

	lengths := make([]uint8, nlit+ndist)
	for i := 0; i < len(lengths); {
		sym, err := decodeSymbol(r, clHuff)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case sym < 16:
			lengths[i] = uint8(sym)
			i++
		case sym == 16:
			if i == 0 {
				return nil, nil, FormatError("repeat code with no previous length")
			}
			n, err := r.bits(2)
			if err != nil {
				return nil, nil, err
			}
			count := int(n) + 3
			for j := 0; j < count && i < len(lengths); j++ {
				lengths[i] = lengths[i-1]
				i++
			}
		case sym == 17:
			n, err := r.bits(3)
			if err != nil {
				return nil, nil, err
			}
			count := int(n) + 3
			for j := 0; j < count && i < len(lengths); j++ {
				lengths[i] = 0
				i++
			}
		case sym == 18:
			n, err := r.bits(7)
			if err != nil {
				return nil, nil, err
			}
			count := int(n) + 11
			for j := 0; j < count && i < len(lengths); j++ {
				lengths[i] = 0
				i++
			}
		default:
			return nil, nil, FormatError("invalid code-length symbol")
		}
	}
	lit, err = buildHuffman(lengths[:nlit])
	if err != nil {
		return nil, nil, err
	}
	dist, err = buildHuffman(lengths[nlit:])
	if err != nil {
		return nil, nil, err
	}
	return lit, dist, nil
}
