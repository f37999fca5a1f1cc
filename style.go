package ssfn2

import "github.com/gossfn/ssfn2/font"

// Style is the renderer's combinable style-flag bitset (spec.md §6). It
// must fit the low 13 bits; Select rejects anything wider with BadStyle.
type Style uint16

const (
	Bold          Style = 1 << 0
	Italic        Style = 1 << 1
	User1         Style = 1 << 2
	User2         Style = 1 << 3
	Underline     Style = 1 << 4
	StrikeThrough Style = 1 << 5
	NoAA          Style = 1 << 6
	NoKern        Style = 1 << 7
	NoDefGlyph    Style = 1 << 8
	NoCache       Style = 1 << 9
	NoHinting     Style = 1 << 10
	RTL           Style = 1 << 11
	AbsSize       Style = 1 << 12

	styleMask Style = 1<<13 - 1
)

// Family identifies a font's family group, or selects how Select
// chooses among loaded fonts (spec.md §6). It is an alias of font.Family
// so callers of the font package and this package share one set of
// constants.
type Family = font.Family

const (
	FamilySerif     = font.FamilySerif
	FamilySans      = font.FamilySans
	FamilyDecor     = font.FamilyDecor
	FamilyMonospace = font.FamilyMonospace
	FamilyHand      = font.FamilyHand
	FamilyByName    = font.FamilyByName
	FamilyAny       = font.FamilyAny
)

const (
	// SizeMin and SizeMax bound the size argument to Select (spec.md §3).
	SizeMin = 8
	SizeMax = 192
)
