package font

import "testing"

// buildMinimal assembles a minimal valid SSFN2 image: header, one font
// name, one fragment (a 3-point triangle contour), and a character table
// with a single record for 'A' preceded by a few skip runs.
func buildMinimal(t *testing.T) []byte {
	t.Helper()

	name := "T\x00"
	header := 32
	nameOffs := header
	fragOffs := nameOffs + len(name)

	// One contour fragment: 00xxxxxx, point_count-1 = 2 (3 points),
	// 1 command byte (ceil(3/4)=1), then 3 (x,y) uint16 pairs.
	// Commands: move, line, line -> 0b(01<<2)|(01<<4)... low bits first.
	cmdByte := byte(0<<0 | 1<<2 | 1<<4) // move(0), line(1), line(1)
	frag := []byte{
		0x02, cmdByte,
		0, 0, // p0 (move)
		4, 0, // p1
		0, 4, // p2
	}
	fragLen := len(frag)

	charOffs := fragOffs + fragLen
	// Skip to 'A' (0x41). The walk's increment clause fires every
	// iteration regardless of case (original_source/ssfn.h:326-334), so
	// a parametrized skip of encoded value j advances the codepoint
	// counter by j+1, not j; encode 0x40 (64) so the skip lands the
	// record at codepoint 65 ('A'). 64 doesn't fit the 1-byte form's 6
	// bits (max 63 after the +1 compensation), so use the 2-byte form.
	skip := []byte{0xC0, 0x40} // top bits 11, skip = ((0)<<8)|0x40+1 = 65
	record := []byte{
		0x00,                      // t: overlap 0, narrow (5-byte) pointers
		0x01,                      // n: 1 fragment
		4, 4, // w,h
		4, 0, // advx, advy
		0, 0, byte(fragOffs), byte(fragOffs >> 8), byte(fragOffs >> 16),
	}
	chars := append(append([]byte{}, skip...), record...)

	ligOffs := charOffs + len(chars)
	kernOffs := ligOffs + 2 // empty ligature table: one terminating zero u16
	cmapOffs := kernOffs

	size := cmapOffs + 4 // leave room for trailing magic
	b := make([]byte, size)
	copy(b[0:4], "SFN2")
	putU32(b[4:8], uint32(size))
	b[8] = 1 // family sans, style regular
	b[9] = 0 // features
	b[10] = 8
	b[11] = 8 // height
	b[12] = 6 // baseline
	b[13] = 7 // underline
	putU16(b[14:16], uint16(fragOffs))
	putU32(b[16:20], uint32(charOffs))
	putU32(b[20:24], uint32(ligOffs))
	putU32(b[24:28], uint32(kernOffs))
	putU32(b[28:32], uint32(cmapOffs))
	copy(b[nameOffs:], name)
	copy(b[fragOffs:], frag)
	copy(b[charOffs:], chars)
	// ligature table: single terminating 0 u16
	putU16(b[ligOffs:ligOffs+2], 0)
	copy(b[size-4:], "2NFS")
	return b
}

func putU16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func TestParseValid(t *testing.T) {
	b := buildMinimal(t)
	f, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Family() != FamilySans {
		t.Errorf("Family: got %v, want %v", f.Family(), FamilySans)
	}
	if f.Name() != "T" {
		t.Errorf("Name: got %q, want %q", f.Name(), "T")
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	b := buildMinimal(t)
	b[0] = 'X'
	if _, err := Parse(b); err == nil {
		t.Fatal("Parse: got nil error, want FormatError for bad magic")
	}
}

func TestParseRejectsOffsetOrder(t *testing.T) {
	b := buildMinimal(t)
	// point the fragments offset at the characters table so fragments >= characters
	putU16(b[14:16], uint16(b[16])|uint16(b[17])<<8)
	if _, err := Parse(b); err == nil {
		t.Fatal("Parse: got nil error, want FormatError for offset order")
	}
}

func TestLookupFindsRecord(t *testing.T) {
	b := buildMinimal(t)
	f, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rec, err := f.Lookup('A')
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec == nil {
		t.Fatal("Lookup: got nil record, want a record for 'A'")
	}
	if rec.Len() != 1 {
		t.Errorf("Len: got %d, want 1", rec.Len())
	}
	e := rec.Entry(0)
	if e.IsColor {
		t.Error("Entry(0): got color sentinel, want a fragment pointer")
	}
}

func TestLookupMissingCodepoint(t *testing.T) {
	b := buildMinimal(t)
	f, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rec, err := f.Lookup('B')
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec != nil {
		t.Error("Lookup('B'): got a record, want nil (only 'A' is present)")
	}
}

func TestResolveUTF8(t *testing.T) {
	b := buildMinimal(t)
	f, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cp, n := f.Resolve("A")
	if cp != 'A' || n != 1 {
		t.Errorf("Resolve: got (%d,%d), want (%d,1)", cp, n, 'A')
	}
	cp, n = f.Resolve("\xc3\xa9x") // é
	if n != 2 || cp != 0xE9 {
		t.Errorf("Resolve(é): got (%d,%d), want (%d,2)", cp, n, 0xE9)
	}
}
