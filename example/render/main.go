// Example render is a minimal Load/Select/BBox/Text walkthrough, the
// package's equivalent of example/raster/main.go's role as a runnable
// usage sample — not a CLI (see cmd/ssfnrender for that), just the
// smallest correct call sequence.
package main

import (
	"fmt"
	"os"

	"github.com/gossfn/ssfn2"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: render <font-file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var ctx ssfn2.Context
	if errc := ctx.Load(data); errc != ssfn2.Ok {
		fmt.Fprintln(os.Stderr, "load:", errc.ErrorString())
		os.Exit(1)
	}
	defer ctx.Free()

	if errc := ctx.Select(ssfn2.FamilyAny, "", 0, 24); errc != ssfn2.Ok {
		fmt.Fprintln(os.Stderr, "select:", errc.ErrorString())
		os.Exit(1)
	}

	w, h, left, top, errc := ctx.BBox("Hello, world!")
	if errc != ssfn2.Ok {
		fmt.Fprintln(os.Stderr, "bbox:", errc.ErrorString())
		os.Exit(1)
	}
	fmt.Printf("bbox: %dx%d, origin offset (%d,%d)\n", w, h, left, top)

	buf, errc := ctx.Text("Hello, world!", 0xFFFFFFFF)
	if errc != ssfn2.Ok {
		fmt.Fprintln(os.Stderr, "text:", errc.ErrorString())
		os.Exit(1)
	}
	fmt.Printf("rendered %d bytes of ARGB pixels into a %dx%d buffer\n", len(buf.Pix), buf.W, buf.H)
	fmt.Printf("memory in use: %d bytes\n", ctx.Mem())
}
