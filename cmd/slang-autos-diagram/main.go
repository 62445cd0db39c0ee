// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command slang-autos-diagram renders a PNG block diagram of one
// module's external ports, grouped into input, output, and inout
// columns, from an already-aggregated net usage set. It is a separate
// collaborator: it never runs the AUTO expansion pipeline itself, and
// nothing in package autos calls it.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"

	"github.com/sjalloq/slang-autos/autos"
	"github.com/sjalloq/slang-autos/config"
	"github.com/sjalloq/slang-autos/diag"
	"github.com/sjalloq/slang-autos/scale"
	"github.com/sjalloq/slang-autos/source"
	"github.com/sjalloq/slang-autos/sv"
	"github.com/sjalloq/slang-autos/sv/svfake"
)

const (
	boxHeight = 28
	boxGap    = 8
	boxPad    = 10
	colWidth  = 220
	colGap    = 60
	fontSize  = 12
	minBoxW   = 60
	maxBoxW   = colWidth - 2*boxPad
)

func main() {
	var (
		flagModule = flag.String("module", "", "top module `name` to diagram (default: first found)")
		flagOut    = flag.String("o", "diagram.png", "output PNG `path`")
		flagFont   = flag.String("font", "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf", "TrueType `font` file for labels")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	buf := source.New(0, path, data)

	elaborator := &svfake.Elaborator{}
	tree, err := elaborator.Parse(buf)
	if err != nil {
		log.Fatal(err)
	}
	comp, err := elaborator.Elaborate([]*source.Buffer{buf}, nil)
	if err != nil {
		log.Fatal(err)
	}
	top := comp.TopInstances[0]
	if *flagModule != "" {
		found, _ := sv.FindModule(top, *flagModule)
		if found == nil {
			log.Fatalf("module %q not found", *flagModule)
		}
		top = found
	}

	opts := config.Defaults()
	sink := &diag.Sink{}
	tool := autos.NewAutosTool(buf, top, opts.Strict, autos.GenConfig{}, false, sink)
	agg := tool.Aggregate(tree)

	fontData, err := os.ReadFile(*flagFont)
	if err != nil {
		log.Fatal(err)
	}
	font, err := freetype.ParseFont(fontData)
	if err != nil {
		log.Fatal(err)
	}

	img, err := render(agg, font)
	if err != nil {
		log.Fatal(err)
	}
	if err := writePNG(*flagOut, img); err != nil {
		log.Fatal(err)
	}
}

// render draws one column per port direction, each box width scaled
// linearly against the module's widest net, and returns the
// composited image.
func render(agg *autos.Aggregator, font *truetype.Font) (image.Image, error) {
	columns := []struct {
		title string
		nets  []*autos.NetUsage
	}{
		{"inputs", agg.ExternalInputs()},
		{"outputs", agg.ExternalOutputs()},
		{"inouts", agg.Inouts()},
	}

	allWidths := make([]float64, 0)
	for _, c := range columns {
		for _, n := range c.nets {
			allWidths = append(allWidths, float64(n.Width))
		}
	}
	var widthScale scale.WidthScale
	var pixScale scale.PixelScale
	haveWidths := len(allWidths) > 0
	if haveWidths {
		widthScale = scale.NewWidthScale(allWidths)
		pixScale = scale.NewPixelScale(minBoxW, maxBoxW)
	}

	maxRows := 0
	for _, c := range columns {
		if len(c.nets) > maxRows {
			maxRows = len(c.nets)
		}
	}

	imgW := len(columns)*colWidth + (len(columns)-1)*colGap
	imgH := boxHeight + maxRows*(boxHeight+boxGap) + boxGap
	img := image.NewNRGBA(image.Rect(0, 0, imgW, imgH))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Over)

	fontCtx := freetype.NewContext()
	fontCtx.SetFont(font)
	fontCtx.SetFontSize(fontSize)
	fontCtx.SetSrc(image.Black)
	fontCtx.SetDst(img)
	fontCtx.SetClip(img.Bounds())

	for ci, c := range columns {
		left := ci * (colWidth + colGap)
		fontCtx.DrawString(c.title, freetype.Pt(left+boxPad, 16))

		y := boxHeight + boxGap
		for _, n := range c.nets {
			w := maxBoxW
			if haveWidths {
				norm := widthScale.Of(float64(n.Width))
				if mapped, ok := pixScale.Of(norm); ok {
					w = int(mapped)
				}
			}
			if w < minBoxW {
				w = minBoxW
			}
			drawBox(img, left+boxPad, y, w, boxHeight-boxGap, color.Black)

			label := fmt.Sprintf("%s %s", n.Name, n.RangeText)
			fontCtx.DrawString(label, freetype.Pt(left+boxPad+4, y+18))
			y += boxHeight + boxGap
		}
	}

	return img, nil
}

func drawBox(img *image.NRGBA, x, y, w, h int, c color.Color) {
	for xi := x; xi < x+w; xi++ {
		img.Set(xi, y, c)
		img.Set(xi, y+h, c)
	}
	for yi := y; yi < y+h; yi++ {
		img.Set(x, yi, c)
		img.Set(x+w, yi, c)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
