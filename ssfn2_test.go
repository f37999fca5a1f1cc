package ssfn2

import (
	"testing"

	"github.com/gossfn/ssfn2/blit"
	"github.com/gossfn/ssfn2/font"
)

func putU16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// buildFont assembles a minimal SSFN2 image with a single triangle
// contour fragment mapped to codepoint 'A', the same layout
// glyph_test.go's buildTriangleFont uses. typ is the on-disk type byte
// (family | style<<4).
func buildFont(t *testing.T, typ byte) *font.Font {
	t.Helper()
	name := "T\x00"
	nameOffs := 32
	fragOffs := nameOffs + len(name)

	cmdByte := byte(0<<0 | 1<<2 | 1<<4) // move, line, line
	frag := []byte{
		0x02, cmdByte,
		0, 0,
		8 << 4, 0,
		0, 8 << 4,
	}
	fragLen := len(frag)

	charOffs := fragOffs + fragLen
	skip := []byte{0xC0, 0x40} // skip 64+1=65 codepoints, lands on 'A' (0x41)
	record := []byte{
		0x00,
		0x01,
		8, 8,
		8, 0,
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
	b[8] = typ
	b[10] = 8
	b[11] = 8
	b[12] = 6
	b[13] = 7
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

func buildFontBytes(t *testing.T, typ byte) []byte {
	t.Helper()
	return buildFont(t, typ).Bytes
}

func TestLoadRegistersFamily(t *testing.T) {
	var c Context
	if errc := c.Load(buildFontBytes(t, 1)); errc != Ok {
		t.Fatalf("Load: got %v, want Ok", errc)
	}
	if len(c.fonts[font.FamilySans]) != 1 {
		t.Fatalf("fonts[Sans]: got %d entries, want 1", len(c.fonts[font.FamilySans]))
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	var c Context
	if errc := c.Load([]byte("not a font")); errc != BadFile {
		t.Errorf("Load(garbage): got %v, want BadFile", errc)
	}
}

func TestSelectValidatesStyleAndSize(t *testing.T) {
	var c Context
	c.Load(buildFontBytes(t, 1))

	if errc := c.Select(font.FamilySans, "", Style(0xFFFF), 16); errc != BadStyle {
		t.Errorf("Select(bad style): got %v, want BadStyle", errc)
	}
	if errc := c.Select(font.FamilySans, "", 0, 4); errc != BadSize {
		t.Errorf("Select(size 4): got %v, want BadSize", errc)
	}
	if errc := c.Select(font.FamilyDecor, "", 0, 16); errc != NoFace {
		t.Errorf("Select(empty family): got %v, want NoFace", errc)
	}
	if errc := c.Select(font.FamilySans, "", 0, 16); errc != Ok {
		t.Errorf("Select(valid): got %v, want Ok", errc)
	}
}

func TestSelectClearsCacheEvenOnFailure(t *testing.T) {
	var c Context
	c.Load(buildFontBytes(t, 1))
	c.Select(font.FamilySans, "", 0, 16)
	c.Render(nil, "A")
	if c.cache.Get('A') == nil {
		t.Fatal("setup: expected 'A' to be cached before the failing Select")
	}
	if errc := c.Select(font.FamilySans, "", 0, 4); errc != BadSize {
		t.Fatalf("Select: got %v, want BadSize", errc)
	}
	if c.cache.Get('A') != nil {
		t.Error("cache: Select must clear the cache even when validation later fails")
	}
}

func TestRenderDrawsIntoBuffer(t *testing.T) {
	var c Context
	c.Load(buildFontBytes(t, 1))
	if errc := c.Select(font.FamilySans, "", 0, 16); errc != Ok {
		t.Fatalf("Select: %v", errc)
	}

	// Sized and positioned generously so the whole glyph (including its
	// ascent, which pushes most of a cache bitmap above the cursor row)
	// lands inside the buffer regardless of the exact scale factor.
	const w, h = 64, 64
	pix := make([]byte, w*h*4)
	buf := &blit.Buf{Pix: pix, W: w, H: h, Pitch: w * 4, X: 8, Y: 32, FG: 0xFFFFFFFF}

	n, errc := c.Render(buf, "A")
	if errc != Ok {
		t.Fatalf("Render: %v", errc)
	}
	if n != 1 {
		t.Errorf("Render: consumed %d bytes, want 1", n)
	}

	ink := false
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0 {
			ink = true
			break
		}
	}
	if !ink {
		t.Error("Render: destination buffer has no non-transparent pixels")
	}
	if buf.X <= 8 {
		t.Error("Render: cursor did not advance")
	}
}

func TestRenderNoFaceBeforeSelect(t *testing.T) {
	var c Context
	if _, errc := c.Render(nil, "A"); errc != NoFace {
		t.Errorf("Render before Select: got %v, want NoFace", errc)
	}
}

func TestBBoxMeasuresNonZero(t *testing.T) {
	var c Context
	c.Load(buildFontBytes(t, 1))
	c.Select(font.FamilySans, "", 0, 16)

	w, h, _, _, errc := c.BBox("A")
	if errc != Ok {
		t.Fatalf("BBox: %v", errc)
	}
	if w <= 0 || h <= 0 {
		t.Errorf("BBox: got w=%d h=%d, want both positive", w, h)
	}
}

func TestBBoxEmptyString(t *testing.T) {
	var c Context
	c.Load(buildFontBytes(t, 1))
	c.Select(font.FamilySans, "", 0, 16)

	w, h, left, top, errc := c.BBox("")
	if errc != Ok {
		t.Fatalf("BBox(\"\"): %v", errc)
	}
	if w != 0 || h != 0 || left != 0 || top != 0 {
		t.Errorf("BBox(\"\"): got (%d,%d,%d,%d), want all zero", w, h, left, top)
	}
}

func TestTextAllocatesMatchingBuffer(t *testing.T) {
	var c Context
	c.Load(buildFontBytes(t, 1))
	c.Select(font.FamilySans, "", 0, 16)

	buf, errc := c.Text("A", 0xFFFFFFFF)
	if errc != Ok {
		t.Fatalf("Text: %v", errc)
	}
	if buf.W <= 0 || buf.H <= 0 {
		t.Fatalf("Text: got W=%d H=%d, want both positive", buf.W, buf.H)
	}
	if len(buf.Pix) != buf.W*buf.H*4 {
		t.Errorf("Text: Pix len %d, want %d", len(buf.Pix), buf.W*buf.H*4)
	}
}

func TestTextEmptyString(t *testing.T) {
	var c Context
	c.Load(buildFontBytes(t, 1))
	c.Select(font.FamilySans, "", 0, 16)

	buf, errc := c.Text("", 0xFFFFFFFF)
	if errc != Ok {
		t.Fatalf("Text(\"\"): %v", errc)
	}
	if buf == nil || buf.W != 0 || buf.H != 0 {
		t.Errorf("Text(\"\"): got %+v, want a non-nil zero-sized buffer", buf)
	}
}

func TestErrorString(t *testing.T) {
	cases := []struct {
		e    Error
		want string
	}{
		{Ok, "Ok"},
		{NoGlyph, "Glyph (or kerning info) not found"},
		{Error(-99), "Unknown error"},
	}
	for _, tc := range cases {
		if got := tc.e.ErrorString(); got != tc.want {
			t.Errorf("Error(%d).ErrorString(): got %q, want %q", tc.e, got, tc.want)
		}
	}
}

func TestMemAccountsForCache(t *testing.T) {
	var c Context
	c.Load(buildFontBytes(t, 1))
	c.Select(font.FamilySans, "", 0, 16)
	before := c.Mem()
	if _, errc := c.Render(nil, "A"); errc != Ok {
		t.Fatalf("Render: %v", errc)
	}
	if c.Mem() <= before {
		t.Errorf("Mem: got %d after caching a glyph, want more than %d", c.Mem(), before)
	}
}
