// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"fmt"
	"image"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Face7x13 is a fixed size bitmap font; 18 characters fit on a 128 pixels
// wide line.
var Face7x13 font.Face = basicfont.Face7x13

// TrueType returns a face rendering a TrueType font at size points. Hinting is
// enabled so strokes land on whole pixels, which matters on a one bit target.
func TrueType(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("gfx: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Text draws s with its left edge at x and its baseline at y. It returns the
// x position following the last glyph.
func Text(t Target, face font.Face, x, y int, s string, on bool) int {
	src := image1bit.Off
	if on {
		src = image1bit.On
	}
	d := font.Drawer{
		Dst:  Canvas{T: t},
		Src:  &image.Uniform{src},
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
	return d.Dot.X.Round()
}

// TextWidth returns the advance of s in pixels.
func TextWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Round()
}
