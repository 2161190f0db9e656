// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"image"

	"github.com/fogleman/gg"
)

// paint rasterizes the path built by fn and sets the pixels of t covered at
// least half way. Pixels outside of the path are left untouched.
//
// Coordinates passed to fn are in pixels; use the pixel center (x+0.5) for
// one pixel wide strokes.
func paint(t Target, on bool, fn func(dc *gg.Context)) {
	dc := gg.NewContext(t.Width(), t.Height())
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1)
	fn(dc)
	img := dc.Image().(*image.RGBA)
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] >= 0x80 {
				t.SetPixel(x, y, on)
			}
		}
	}
}

// HLine draws a horizontal line of w pixels starting at (x, y).
func HLine(t Target, x, y, w int, on bool) {
	FillRect(t, x, y, w, 1, on)
}

// VLine draws a vertical line of h pixels starting at (x, y).
func VLine(t Target, x, y, h int, on bool) {
	FillRect(t, x, y, 1, h, on)
}

// Line draws a one pixel wide line from (x0, y0) to (x1, y1), both ends
// included.
func Line(t Target, x0, y0, x1, y1 int, on bool) {
	if x0 == x1 && y0 == y1 {
		t.SetPixel(x0, y0, on)
		return
	}
	paint(t, on, func(dc *gg.Context) {
		dc.DrawLine(float64(x0)+0.5, float64(y0)+0.5, float64(x1)+0.5, float64(y1)+0.5)
		dc.Stroke()
	})
}

// Rect draws the outline of a w x h rectangle.
func Rect(t Target, x, y, w, h int, on bool) {
	if w <= 0 || h <= 0 {
		return
	}
	HLine(t, x, y, w, on)
	HLine(t, x, y+h-1, w, on)
	VLine(t, x, y, h, on)
	VLine(t, x+w-1, y, h, on)
}

// FillRect fills a w x h rectangle.
func FillRect(t Target, x, y, w, h int, on bool) {
	if w <= 0 || h <= 0 {
		return
	}
	paint(t, on, func(dc *gg.Context) {
		dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
		dc.Fill()
	})
}

// Circle draws the outline of a circle of radius r centered on (x0, y0).
func Circle(t Target, x0, y0, r int, on bool) {
	if r <= 0 {
		t.SetPixel(x0, y0, on)
		return
	}
	paint(t, on, func(dc *gg.Context) {
		dc.DrawCircle(float64(x0)+0.5, float64(y0)+0.5, float64(r))
		dc.Stroke()
	})
}

// FillCircle fills a circle of radius r centered on (x0, y0). The outline
// drawn by Circle is included.
func FillCircle(t Target, x0, y0, r int, on bool) {
	if r <= 0 {
		t.SetPixel(x0, y0, on)
		return
	}
	paint(t, on, func(dc *gg.Context) {
		dc.DrawCircle(float64(x0)+0.5, float64(y0)+0.5, float64(r)+0.5)
		dc.Fill()
	})
}

// RoundRect draws the outline of a w x h rectangle with corners of radius r.
func RoundRect(t Target, x, y, w, h, r int, on bool) {
	if w < 3 || h < 3 || r <= 0 {
		Rect(t, x, y, w, h, on)
		return
	}
	paint(t, on, func(dc *gg.Context) {
		dc.DrawRoundedRectangle(float64(x)+0.5, float64(y)+0.5, float64(w-1), float64(h-1), float64(r))
		dc.Stroke()
	})
}
