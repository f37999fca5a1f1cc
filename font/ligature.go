package font

// LigFirst is the first private-use codepoint ligatures map into
// (U+F000..U+F8FF, spec.md §3).
const LigFirst = 0xF000

// Resolve decodes the next codepoint from the UTF-8 string s, preferring
// a ligature prefix match over a single scalar decode, and returns the
// codepoint plus the number of input bytes consumed. A malformed leading
// byte yields codepoint 0, consuming one byte, matching the original
// decoder's permissive fallback rather than erroring.
func (f *Font) Resolve(s string) (cp uint32, n int) {
	if i, ligLen, ok := f.matchLigature(s); ok {
		return LigFirst + uint32(i), ligLen
	}
	return decodeUTF8(s)
}

// matchLigature scans the ligature table for a full-prefix match against
// s, returning the table index and the matched byte length.
func (f *Font) matchLigature(s string) (index, n int, ok bool) {
	if f.LigatureOffs == 0 || len(s) == 0 {
		return 0, 0, false
	}
	b := f.Bytes
	off := int(f.LigatureOffs)
	for i := 0; ; i++ {
		if off+2 > len(b) {
			return 0, 0, false
		}
		entryOffs := int(b[off]) | int(b[off+1])<<8
		if entryOffs == 0 {
			return 0, 0, false
		}
		off += 2
		if entryOffs >= len(b) {
			continue
		}
		pat := cString(b[entryOffs:])
		if len(pat) > 0 && len(s) >= len(pat) && s[:len(pat)] == pat {
			return i, len(pat), true
		}
	}
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// decodeUTF8 decodes one scalar from s using SSFN2's own lightweight
// decoder (spec.md §4.1): lengths 1-4, a malformed leading byte decodes
// to codepoint 0 rather than erroring.
func decodeUTF8(s string) (cp uint32, n int) {
	if len(s) == 0 {
		return 0, 0
	}
	c0 := s[0]
	if c0&0x80 == 0 {
		return uint32(c0), 1
	}
	switch {
	case c0&0x20 == 0 && len(s) >= 2:
		return uint32(c0&0x1F)<<6 | uint32(s[1]&0x3F), 2
	case c0&0x10 == 0 && len(s) >= 3:
		return uint32(c0&0x0F)<<12 | uint32(s[1]&0x3F)<<6 | uint32(s[2]&0x3F), 3
	case c0&0x08 == 0 && len(s) >= 4:
		return uint32(c0&0x07)<<18 | uint32(s[1]&0x3F)<<12 | uint32(s[2]&0x3F)<<6 | uint32(s[3]&0x3F), 4
	default:
		return 0, 1
	}
}
