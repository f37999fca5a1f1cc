// Command ssfndump dumps an SSFN2 font image's header fields, mirroring
// cmd/dumpfont's single-flag, read-parse-print shape.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gossfn/ssfn2/font"
	"github.com/gossfn/ssfn2/inflate"
)

var fontfile = flag.String("font", "", "filename of font to dump")

func main() {
	flag.Parse()

	if *fontfile == "" {
		fmt.Fprintln(os.Stderr, "usage: ssfndump -font=path/to/font.sfn")
		os.Exit(1)
	}

	data, err := os.ReadFile(*fontfile)
	if err != nil {
		fmt.Printf("Failed to read %s: %v\n", *fontfile, err)
		os.Exit(1)
	}

	if inflate.IsGzip(data) {
		out, err := inflate.Gunzip(data)
		if err != nil {
			fmt.Printf("Failed to inflate %s: %v\n", *fontfile, err)
			os.Exit(1)
		}
		data = out
	}

	if font.IsCollection(data) {
		fonts, err := font.ParseCollection(data)
		if err != nil && len(fonts) == 0 {
			fmt.Printf("Failed to parse collection %s: %v\n", *fontfile, err)
			os.Exit(1)
		}
		fmt.Printf("%s: collection of %d font(s)\n", *fontfile, len(fonts))
		for i, f := range fonts {
			fmt.Printf("--- font %d ---\n", i)
			dump(f)
		}
		return
	}

	f, err := font.Parse(data)
	if err != nil {
		fmt.Printf("Failed to parse %s: %v\n", *fontfile, err)
		os.Exit(1)
	}
	dump(f)
}

func dump(f *font.Font) {
	fmt.Printf("Name:      %s\n", f.Name())
	fmt.Printf("Size:      %d bytes\n", f.Size)
	fmt.Printf("Family:    %d\n", f.Family())
	fmt.Printf("Style:     %#02x\n", f.Style())
	fmt.Printf("Width:     %d\n", f.Width)
	fmt.Printf("Height:    %d\n", f.Height)
	fmt.Printf("Baseline:  %d\n", f.Baseline)
	fmt.Printf("Underline: %d\n", f.Underline)
	fmt.Printf("Fragments: offset %#x\n", f.FragmentsOffs)
	fmt.Printf("Characters: offset %#x\n", f.CharactersOffs)
	fmt.Printf("Ligatures: offset %#x\n", f.LigatureOffs)
	fmt.Printf("Kerning:   offset %#x\n", f.KerningOffs)
	fmt.Printf("ColorMap:  offset %#x (present: %v)\n", f.CmapOffs, f.ColorMap() != nil)
}
