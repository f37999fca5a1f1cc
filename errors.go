// Package ssfn2 renders Scalable Screen Font v2 glyphs into a 32bpp
// destination framebuffer: it loads a font image (optionally gzip- or
// collection-wrapped), selects a family/style/size, and renders or
// measures UTF-8 text. See font, glyph, inflate, and blit for the
// decoding, rasterization, and compositing stages this package wires
// together.
package ssfn2

// Error is one of the renderer's eight discriminated result codes
// (spec.md §6). Numeric values are ABI-stable: Ok is 0, the rest are
// -1..-7, matching the original ssfn_errstr table's indices.
type Error int

const (
	Ok      Error = 0
	Alloc   Error = -1
	BadFile Error = -2
	NoFace  Error = -3
	InvInp  Error = -4
	BadStyle Error = -5
	BadSize  Error = -6
	NoGlyph  Error = -7
)

var errStrings = [...]string{
	0:         "Ok",
	-Alloc:    "Memory allocation error",
	-BadFile:  "Malformed input file",
	-NoFace:   "No font face selected",
	-InvInp:   "Invalid input",
	-BadStyle: "Bad style",
	-BadSize:  "Bad size",
	-NoGlyph:  "Glyph (or kerning info) not found",
}

// ErrorString returns the human-readable message for err, or "Unknown
// error" for anything outside [Ok, NoGlyph].
func (e Error) ErrorString() string {
	if e > 0 || int(-e) >= len(errStrings) {
		return "Unknown error"
	}
	return errStrings[-e]
}

// Error implements the error interface so an Error can be returned
// directly from Go-idiomatic functions that need one.
func (e Error) Error() string { return e.ErrorString() }
