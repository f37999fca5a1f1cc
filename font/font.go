package font

const (
	headerSize = 32 // magic..cmap_offs, packed

	magic    = "SFN2"
	endMagic = "2NFS"
	collMagic = "SFNC"
)

// Family groups a font belongs to. Values match the SSFN2 on-disk type
// byte's low nibble so they can be used directly as registry bucket
// indices.
type Family uint8

const (
	FamilySerif Family = iota
	FamilySans
	FamilyDecor
	FamilyMonospace
	FamilyHand

	// FamilyAny and FamilyByName are selector-only values, never stored
	// in a font's type byte.
	FamilyAny    Family = 0xFF
	FamilyByName Family = 0xFE
)

// Style bits stored in a font's type byte (the high nibble). The
// renderer's much larger style mask (spec.md §6) layers synthesis and
// rendering flags on top of these two.
const (
	StyleRegular Style = 0
	StyleBold    Style = 1
	StyleItalic  Style = 2
	StyleUsrDef1 Style = 4
	StyleUsrDef2 Style = 8
)

// Style is a small bitset; see the Style* constants.
type Style uint8

// Font is a decoded, validated SSFN2 font image header plus the
// borrowed (or, if inflated from gzip, owned) byte slice it lives in.
// All table offsets are relative to the start of this slice.
type Font struct {
	Bytes []byte // the full image, magic at offset 0

	Size      uint32
	Type      uint8 // family (low nibble) | style (high nibble)
	Features  uint8
	Width     uint8
	Height    uint8
	Baseline  uint8
	Underline uint8

	FragmentsOffs  uint16
	CharactersOffs uint32
	LigatureOffs   uint32
	KerningOffs    uint32
	CmapOffs       uint32

	// Owned marks that Bytes was allocated by the inflater and should be
	// released by the caller's Free, as opposed to borrowed from the
	// caller-supplied image.
	Owned bool
}

// Family returns the font's family group.
func (f *Font) Family() Family { return Family(f.Type & 0x0F) }

// Style returns the font's stored style bits (bold/italic/user-defined).
func (f *Font) Style() Style { return Style((f.Type >> 4) & 0x0F) }

// Name returns the font's NUL-terminated UTF-8 name, stored immediately
// after the fixed 32-byte header.
func (f *Font) Name() string {
	b := f.Bytes[headerSize:]
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// ColorMap returns the font's 256-entry ARGB palette, or nil if it has
// none. Index 0xFF means transparent/background and 0xFE means
// foreground; both are resolved by the caller, not by this accessor.
func (f *Font) ColorMap() []uint32 {
	if f.CmapOffs == 0 || int(f.CmapOffs)+256*4 > len(f.Bytes) {
		return nil
	}
	b := f.Bytes[f.CmapOffs:]
	cmap := make([]uint32, 256)
	for i := range cmap {
		o := i * 4
		cmap[i] = uint32(b[o]) | uint32(b[o+1])<<8 | uint32(b[o+2])<<16 | uint32(b[o+3])<<24
	}
	return cmap
}

// Parse validates and decodes a single (non-collection, non-gzipped) font
// image. b must already be magic="SFN2"-prefixed; use the loader in
// ssfn2 for gzip/collection unwrapping first.
func Parse(b []byte) (*Font, error) {
	if len(b) < headerSize {
		return nil, FormatError("image shorter than header")
	}
	d := data{b: b}
	var hdr [4]byte
	copy(hdr[:], b[0:4])
	if string(hdr[:]) != magic {
		return nil, FormatError("bad magic")
	}
	d.pos = 4
	size, err := d.u32()
	if err != nil {
		return nil, err
	}
	if uint64(size) > uint64(len(b)) || size < headerSize+4 {
		return nil, FormatError("size field out of range")
	}
	typ, err := d.u8()
	if err != nil {
		return nil, err
	}
	features, _ := d.u8()
	width, _ := d.u8()
	height, _ := d.u8()
	baseline, _ := d.u8()
	underline, _ := d.u8()
	fragOffs, err := d.u16()
	if err != nil {
		return nil, err
	}
	charOffs, err := d.u32()
	if err != nil {
		return nil, err
	}
	ligOffs, err := d.u32()
	if err != nil {
		return nil, err
	}
	kernOffs, err := d.u32()
	if err != nil {
		return nil, err
	}
	cmapOffs, err := d.u32()
	if err != nil {
		return nil, err
	}

	if string(b[size-4:size]) != endMagic {
		return nil, FormatError("missing trailing magic")
	}
	if Family(typ&0x0F) > FamilyHand {
		return nil, FormatError("family out of range")
	}
	if uint32(fragOffs) >= size || charOffs >= size || ligOffs >= size || kernOffs >= size || cmapOffs >= size {
		return nil, FormatError("table offset out of range")
	}
	if uint32(fragOffs) >= charOffs {
		return nil, FormatError("fragments table must precede characters table")
	}
	if height == 0 {
		return nil, FormatError("zero height")
	}

	return &Font{
		Bytes:          b[:size],
		Size:           size,
		Type:           typ,
		Features:       features,
		Width:          width,
		Height:         height,
		Baseline:       baseline,
		Underline:      underline,
		FragmentsOffs:  fragOffs,
		CharactersOffs: charOffs,
		LigatureOffs:   ligOffs,
		KerningOffs:    kernOffs,
		CmapOffs:       cmapOffs,
	}, nil
}

// IsCollection reports whether b starts with the "SFNC" collection magic.
func IsCollection(b []byte) bool {
	return len(b) >= 4 && string(b[0:4]) == collMagic
}

// ParseCollection walks a "SFNC"-prefixed concatenation of font images,
// parsing each in turn and stopping at the first one that fails to
// parse (mirroring the original loader's short-circuit recursion: a
// malformed font later in the collection does not prevent the fonts
// before it from registering, but the walk itself stops there).
func ParseCollection(b []byte) ([]*Font, error) {
	if !IsCollection(b) {
		return nil, FormatError("not a collection")
	}
	if len(b) < 8 {
		return nil, FormatError("truncated collection header")
	}
	size := uint32(b[4]) | uint32(b[5])<<8 | uint32(b[6])<<16 | uint32(b[7])<<24
	if uint64(size) > uint64(len(b)) {
		return nil, FormatError("collection size out of range")
	}
	var fonts []*Font
	off := 8
	for off < int(size) {
		f, err := Parse(b[off:])
		if err != nil {
			return fonts, err
		}
		fonts = append(fonts, f)
		off += int(f.Size)
	}
	return fonts, nil
}
