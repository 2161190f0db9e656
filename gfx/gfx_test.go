// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// bitmap is a minimal Target that ignores out of range pixels.
type bitmap struct {
	w, h int
	pix  []bool
}

func newBitmap(w, h int) *bitmap {
	return &bitmap{w: w, h: h, pix: make([]bool, w*h)}
}

func (b *bitmap) SetPixel(x, y int, on bool) {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return
	}
	b.pix[y*b.w+x] = on
}

func (b *bitmap) Pixel(x, y int) bool {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return false
	}
	return b.pix[y*b.w+x]
}

func (b *bitmap) Width() int  { return b.w }
func (b *bitmap) Height() int { return b.h }

func (b *bitmap) count() int {
	n := 0
	for _, p := range b.pix {
		if p {
			n++
		}
	}
	return n
}

// String renders the bitmap with '#' and '.', one line per row.
func (b *bitmap) String() string {
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func render(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}

func TestLine(t *testing.T) {
	for _, tc := range []struct {
		name           string
		x0, y0, x1, y1 int
		want           string
	}{
		{
			name: "horizontal",
			x0:   1, y0: 1, x1: 3, y1: 1,
			want: render(".....", ".###.", ".....", "....."),
		},
		{
			name: "diagonal reversed",
			x0:   3, y0: 3, x1: 0, y1: 0,
			want: render("#....", ".#...", "..#..", "...#."),
		},
		{
			name: "steep",
			x0:   0, y0: 0, x1: 1, y1: 3,
			want: render("#....", "#....", ".#...", ".#..."),
		},
		{
			name: "point",
			x0:   2, y0: 2, x1: 2, y1: 2,
			want: render(".....", ".....", "..#..", "....."),
		},
		{
			name: "clipped",
			x0:   -2, y0: 2, x1: 10, y1: 2,
			want: render(".....", ".....", "#####", "....."),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := newBitmap(5, 4)
			Line(b, tc.x0, tc.y0, tc.x1, tc.y1, true)
			if diff := cmp.Diff(b.String(), tc.want); diff != "" {
				t.Errorf("Line() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestShapesKeepBackground(t *testing.T) {
	b := newBitmap(8, 8)
	Fill(b, true)
	Line(b, 0, 0, 7, 7, false)
	if n := b.count(); n != 64-8 {
		t.Errorf("Line(false) cleared %d pixels:\n%s", 64-n, b)
	}
	Fill(b, true)
	Circle(b, 3, 3, 2, false)
	if !b.Pixel(3, 3) || !b.Pixel(0, 0) || b.Pixel(3, 1) {
		t.Errorf("Circle(false):\n%s", b)
	}
}

func TestRect(t *testing.T) {
	b := newBitmap(6, 5)
	Rect(b, 1, 1, 4, 3, true)
	want := render("......", ".####.", ".#..#.", ".####.", "......")
	if diff := cmp.Diff(b.String(), want); diff != "" {
		t.Errorf("Rect() difference (-got +want):\n%s", diff)
	}
	FillRect(b, 1, 1, 4, 3, true)
	if b.count() != 12 {
		t.Errorf("FillRect() set %d pixels", b.count())
	}
	FillRect(b, 2, 2, 2, 1, false)
	if b.Pixel(2, 2) || b.Pixel(3, 2) || b.count() != 10 {
		t.Errorf("FillRect(false):\n%s", b)
	}
	Rect(b, 0, 0, 0, 3, true)
	if b.count() != 10 {
		t.Error("empty Rect() must not draw")
	}
}

func TestCircle(t *testing.T) {
	b := newBitmap(7, 7)
	Circle(b, 3, 3, 2, true)
	want := render(
		".......",
		"..###..",
		".#...#.",
		".#...#.",
		".#...#.",
		"..###..",
		".......",
	)
	if diff := cmp.Diff(b.String(), want); diff != "" {
		t.Errorf("Circle() difference (-got +want):\n%s", diff)
	}
	f := newBitmap(7, 7)
	FillCircle(f, 3, 3, 2, true)
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			if b.Pixel(x, y) && !f.Pixel(x, y) {
				t.Errorf("FillCircle() misses outline pixel (%d, %d)", x, y)
			}
		}
	}
	if !f.Pixel(3, 3) {
		t.Error("FillCircle() center")
	}
}

func TestRoundRect(t *testing.T) {
	b := newBitmap(10, 8)
	RoundRect(b, 0, 0, 10, 8, 2, true)
	if b.Pixel(0, 0) || b.Pixel(9, 0) || b.Pixel(0, 7) || b.Pixel(9, 7) {
		t.Errorf("corners must be rounded:\n%s", b)
	}
	if !b.Pixel(5, 0) || !b.Pixel(0, 4) || !b.Pixel(9, 4) || !b.Pixel(5, 7) {
		t.Errorf("edges missing:\n%s", b)
	}
}

func TestFillAndBlit(t *testing.T) {
	b := newBitmap(4, 4)
	Fill(b, true)
	if b.count() != 16 {
		t.Fatal("Fill(true)")
	}
	Fill(b, false)

	img := image.NewGray(image.Rect(10, 10, 13, 12))
	img.SetGray(10, 10, color.Gray{Y: 0xFF})
	img.SetGray(11, 10, color.Gray{Y: 0x40})
	img.SetGray(12, 11, color.Gray{Y: 0x90})
	Blit(b, 1, 1, img, 0x8000)
	want := render("....", ".#..", "...#", "....")
	if diff := cmp.Diff(b.String(), want); diff != "" {
		t.Errorf("Blit() difference (-got +want):\n%s", diff)
	}
}

func TestCanvas(t *testing.T) {
	b := newBitmap(3, 2)
	c := Canvas{T: b}
	if got := c.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Errorf("Bounds() = %v", got)
	}
	c.Set(1, 1, color.White)
	if !b.Pixel(1, 1) || c.At(1, 1) != image1bit.On {
		t.Error("Set(white)")
	}
	w := Canvas{T: struct{ Target }{b}}
	if w.At(1, 1) != image1bit.Off {
		t.Error("targets without Reader read as off")
	}
}

func TestText(t *testing.T) {
	b := newBitmap(40, 16)
	end := Text(b, Face7x13, 0, 12, "Hi", true)
	if end != 14 {
		t.Errorf("Text() advance = %d, want 14", end)
	}
	if b.count() == 0 {
		t.Fatal("Text() drew nothing")
	}
	for y := 0; y < 16; y++ {
		for x := 14; x < 40; x++ {
			if b.Pixel(x, y) {
				t.Fatalf("pixel (%d, %d) beyond the advance", x, y)
			}
		}
	}
	if w := TextWidth(Face7x13, "Hello"); w != 35 {
		t.Errorf("TextWidth() = %d", w)
	}
}

func TestTrueType(t *testing.T) {
	face, err := TrueType(goregular.TTF, 12)
	if err != nil {
		t.Fatal(err)
	}
	b := newBitmap(64, 16)
	Text(b, face, 0, 12, "Go", true)
	if b.count() == 0 {
		t.Error("TrueType text drew nothing")
	}
	if _, err := TrueType([]byte("not a font"), 12); err == nil {
		t.Error("expected parse error")
	}
}
