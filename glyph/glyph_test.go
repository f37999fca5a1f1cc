package glyph

import (
	"testing"

	"github.com/gossfn/ssfn2/font"
)

func putU16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// buildTriangleFont assembles a minimal SSFN2 image with a single
// right-triangle contour fragment (filling the full 8x8 cell) mapped to
// codepoint 'A', mirroring font.buildMinimal's layout.
func buildTriangleFont(t *testing.T) *font.Font {
	t.Helper()
	name := "T\x00"
	nameOffs := 32
	fragOffs := nameOffs + len(name)

	cmdByte := byte(0<<0 | 1<<2 | 1<<4) // move, line, line
	frag := []byte{
		0x02, cmdByte,
		0, 0, // top-left
		8 << 4, 0, // top-right: 128 font units, past the 8-unit cell, so Line clamps it to the cell edge
		0, 8 << 4, // bottom-left
	}
	fragLen := len(frag)

	charOffs := fragOffs + fragLen
	skip := []byte{0xC0, 0x40} // 2-byte skip, effective advance 64+1=65, lands on 'A'
	record := []byte{
		0x00,
		0x01,
		8, 8, // w, h
		8, 0, // advx, advy
		0, 0, byte(fragOffs), byte(fragOffs >> 8), byte(fragOffs >> 16),
	}
	chars := append(append([]byte{}, skip...), record...)

	ligOffs := charOffs + len(chars)
	kernOffs := ligOffs + 2
	cmapOffs := kernOffs
	size := cmapOffs + 4

	b := make([]byte, size)
	copy(b[0:4], "SFN2")
	putU32(b[4:8], uint32(size))
	b[8] = 1
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
	putU16(b[ligOffs:ligOffs+2], 0)
	copy(b[size-4:], "2NFS")

	f, err := font.Parse(b)
	if err != nil {
		t.Fatalf("font.Parse: %v", err)
	}
	return f
}

func TestComposeFillsTriangle(t *testing.T) {
	f := buildTriangleFont(t)
	rec, err := f.Lookup('A')
	if err != nil || rec == nil {
		t.Fatalf("Lookup('A'): rec=%v err=%v", rec, err)
	}
	g, err := Compose(f, rec, Params{Height: 8})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if g.Height != 8 {
		t.Errorf("Height: got %d, want 8", g.Height)
	}
	ink := 0
	for _, v := range g.Data {
		if v != Background {
			ink++
		}
	}
	if ink == 0 {
		t.Error("Compose: got no ink pixels, want a filled triangle")
	}
	if g.AdvX != 8 {
		t.Errorf("AdvX: got %d, want 8", g.AdvX)
	}
}

func TestComposeScalesUp(t *testing.T) {
	f := buildTriangleFont(t)
	rec, _ := f.Lookup('A')
	small, err := Compose(f, rec, Params{Height: 8})
	if err != nil {
		t.Fatalf("Compose(8): %v", err)
	}
	big, err := Compose(f, rec, Params{Height: 32})
	if err != nil {
		t.Fatalf("Compose(32): %v", err)
	}
	if big.Height != 32 {
		t.Errorf("Height: got %d, want 32", big.Height)
	}
	if big.Pitch <= small.Pitch {
		t.Errorf("Pitch: got %d at height 32, want more than %d at height 8", big.Pitch, small.Pitch)
	}
}

func TestCachePutGet(t *testing.T) {
	var c Cache
	if c.Get('A') != nil {
		t.Fatal("Get: got non-nil on empty cache")
	}
	g := &Glyph{Pitch: 1, Height: 1, Data: []byte{Background}}
	c.Put('A', g)
	if c.Get('A') != g {
		t.Error("Get: did not return the glyph just Put")
	}
	if c.Mem() != len(g.Data) {
		t.Errorf("Mem: got %d, want %d", c.Mem(), len(g.Data))
	}
	c.Reset()
	if c.Get('A') != nil {
		t.Error("Get after Reset: got non-nil, want nil")
	}
	if c.Mem() != 0 {
		t.Errorf("Mem after Reset: got %d, want 0", c.Mem())
	}
}
