// Command ssfnrender loads an SSFN2 font, renders a string at a chosen
// family/style/size, and writes the result as a PNG via the standard
// library's image/png encoder — the only PNG encoder anywhere in the
// retrieved example pack, so no third-party alternative exists to use
// instead (see DESIGN.md).
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gossfn/ssfn2"
)

var (
	fontfile = flag.String("font", "", "filename of font to render")
	text     = flag.String("text", "Hello", "text to render")
	size     = flag.Int("size", 32, "font size")
	out      = flag.String("out", "out.png", "output PNG path")
)

func main() {
	flag.Parse()

	if *fontfile == "" {
		fmt.Fprintln(os.Stderr, "usage: ssfnrender -font=path/to/font.sfn -text=Hello -out=out.png")
		os.Exit(1)
	}

	data, err := os.ReadFile(*fontfile)
	if err != nil {
		fmt.Printf("Failed to read %s: %v\n", *fontfile, err)
		os.Exit(1)
	}

	var ctx ssfn2.Context
	if errc := ctx.Load(data); errc != ssfn2.Ok {
		fmt.Printf("Failed to load %s: %s\n", *fontfile, errc.ErrorString())
		os.Exit(1)
	}
	defer ctx.Free()

	if errc := ctx.Select(ssfn2.FamilyAny, "", 0, *size); errc != ssfn2.Ok {
		fmt.Printf("Failed to select face: %s\n", errc.ErrorString())
		os.Exit(1)
	}

	buf, errc := ctx.Text(*text, 0xFF000000)
	if errc != ssfn2.Ok {
		fmt.Printf("Failed to render %q: %s\n", *text, errc.ErrorString())
		os.Exit(1)
	}

	img := image.NewNRGBA(image.Rect(0, 0, buf.W, buf.H))
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			o := y*buf.Pitch + x*4
			b, g, r, a := buf.Pix[o], buf.Pix[o+1], buf.Pix[o+2], buf.Pix[o+3]
			io := img.PixOffset(x, y)
			img.Pix[io], img.Pix[io+1], img.Pix[io+2], img.Pix[io+3] = r, g, b, a
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Printf("Failed to create %s: %v\n", *out, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fmt.Printf("Failed to encode PNG: %v\n", err)
		os.Exit(1)
	}
}
