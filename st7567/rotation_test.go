// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7567

import (
	"image"
	"testing"
)

func TestRotationSize(t *testing.T) {
	for _, tc := range []struct {
		r    Rotation
		w, h int
	}{
		{Rotate0, 128, 64},
		{Rotate90, 64, 128},
		{Rotate180, 128, 64},
		{Rotate270, 64, 128},
	} {
		t.Run(tc.r.String(), func(t *testing.T) {
			if w, h := tc.r.size(); w != tc.w || h != tc.h {
				t.Errorf("size() = (%d, %d), want (%d, %d)", w, h, tc.w, tc.h)
			}
		})
	}
}

func TestRotationToPhysical(t *testing.T) {
	for _, tc := range []struct {
		name string
		r    Rotation
		in   image.Point
		want image.Point
	}{
		{"0 origin", Rotate0, image.Pt(0, 0), image.Pt(0, 0)},
		{"0 corner", Rotate0, image.Pt(127, 63), image.Pt(127, 63)},
		{"90 origin", Rotate90, image.Pt(0, 0), image.Pt(127, 0)},
		{"90 bottom left", Rotate90, image.Pt(0, 127), image.Pt(0, 0)},
		{"90 inner", Rotate90, image.Pt(5, 10), image.Pt(117, 5)},
		{"180 origin", Rotate180, image.Pt(0, 0), image.Pt(127, 63)},
		{"180 inner", Rotate180, image.Pt(5, 10), image.Pt(122, 53)},
		{"270 origin", Rotate270, image.Pt(0, 0), image.Pt(0, 63)},
		{"270 inner", Rotate270, image.Pt(5, 10), image.Pt(10, 58)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			x, y := tc.r.toPhysical(tc.in.X, tc.in.Y)
			if got := image.Pt(x, y); got != tc.want {
				t.Errorf("toPhysical(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRotationBijection(t *testing.T) {
	for r := Rotate0; r <= Rotate270; r++ {
		t.Run(r.String(), func(t *testing.T) {
			w, h := r.size()
			var seen Frame
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					px, py := r.toPhysical(x, y)
					if px < 0 || px >= Width || py < 0 || py >= Height {
						t.Fatalf("toPhysical(%d, %d) = (%d, %d) is out of the panel", x, y, px, py)
					}
					if seen.BitAt(px, py) {
						t.Fatalf("toPhysical(%d, %d) = (%d, %d) was already hit", x, y, px, py)
					}
					seen.SetBit(px, py, true)
					if lx, ly := r.toLogical(px, py); lx != x || ly != y {
						t.Fatalf("toLogical(toPhysical(%d, %d)) = (%d, %d)", x, y, lx, ly)
					}
				}
			}
			for i, b := range seen {
				if b != 0xFF {
					t.Fatalf("byte %d = %#x, every pixel must be covered", i, b)
				}
			}
		})
	}
}

func TestRotationString(t *testing.T) {
	if got := Rotation(7).String(); got != "Rotation(7)" {
		t.Errorf("String() = %q", got)
	}
}
