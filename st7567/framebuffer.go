// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7567

import (
	"image"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Physical geometry of the panel.
const (
	Width     = 128
	Height    = 64
	PageCount = Height / 8
	// FrameSize is the number of bytes of a full frame.
	FrameSize = Width * Height / 8
)

// Frame is a full screen of pixels in controller RAM order.
//
// There are 8 pages, each covering an horizontal band of 8 pixels high. Each
// byte is a column of 8 pixels of a page; bit 0 is the top-most row. Byte
// x+(y/8)*Width bit y%8 holds pixel (x, y).
//
// This is the same memory layout as image1bit.VerticalLSB for a 128x64
// rectangle.
type Frame [FrameSize]byte

// SetBit sets or clears the pixel at physical coordinates (x, y). It is a
// no-op outside of the panel.
func (f *Frame) SetBit(x, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	i := x + (y/8)*Width
	mask := byte(1) << uint(y%8)
	if on {
		f[i] |= mask
	} else {
		f[i] &^= mask
	}
}

// BitAt returns the pixel at physical coordinates (x, y). Out of range pixels
// are off.
func (f *Frame) BitAt(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f[x+(y/8)*Width]&(1<<uint(y%8)) != 0
}

// Page returns the 128 bytes of page p. The slice aliases the frame.
func (f *Frame) Page(p int) []byte {
	return f[p*Width : (p+1)*Width]
}

// Clear turns off all pixels.
func (f *Frame) Clear() {
	*f = Frame{}
}

// Image returns a copy of the frame as a 1 bit image in physical orientation.
func (f *Frame) Image() *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.BitAt(x, y) {
				img.SetBit(x, y, image1bit.On)
			}
		}
	}
	return img
}
