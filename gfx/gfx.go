// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Target is a one bit surface. *st7567.Dev implements it.
type Target interface {
	SetPixel(x, y int, on bool)
	Width() int
	Height() int
}

// Reader is implemented by targets that can report a pixel back.
type Reader interface {
	Pixel(x, y int) bool
}

// Canvas adapts a Target to draw.Image, so it can be used with image/draw and
// golang.org/x/image/font.
type Canvas struct {
	T Target
}

// ColorModel implements image.Image.
func (c Canvas) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements image.Image.
func (c Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.T.Width(), c.T.Height())
}

// At implements image.Image. Targets that are not a Reader read as off.
func (c Canvas) At(x, y int) color.Color {
	if r, ok := c.T.(Reader); ok {
		return image1bit.Bit(r.Pixel(x, y))
	}
	return image1bit.Off
}

// Set implements draw.Image.
func (c Canvas) Set(x, y int, col color.Color) {
	c.T.SetPixel(x, y, bool(image1bit.BitModel.Convert(col).(image1bit.Bit)))
}

// Fill sets every pixel of t.
func Fill(t Target, on bool) {
	FillRect(t, 0, 0, t.Width(), t.Height(), on)
}

// Blit copies img with its top-left corner at (x, y). A pixel is on when its
// luminance is at least threshold (0 to 0xFFFF).
func Blit(t Target, x, y int, img image.Image, threshold uint32) {
	b := img.Bounds()
	for sy := b.Min.Y; sy < b.Max.Y; sy++ {
		for sx := b.Min.X; sx < b.Max.X; sx++ {
			g := color.Gray16Model.Convert(img.At(sx, sy)).(color.Gray16)
			t.SetPixel(x+sx-b.Min.X, y+sy-b.Min.Y, uint32(g.Y) >= threshold)
		}
	}
}
