// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package preview shows one bit frames on the development host.
//
// Terminal prints the frame to the console with ANSI colors. Stream is an
// HTTP handler that pushes every new frame to connected browsers as a
// multipart/x-mixed-replace ("MJPEG") stream of PNG or JPEG images, the same
// protocol IP cameras use.
//
// Both implement display.Drawer so they can stand in for a panel, and both
// accept raw frames in controller RAM order through Write.
package preview

import (
	"image/color"
)

// Default LCD colors: dark pixels on a yellow-green backlight.
var (
	DefaultOn  = color.NRGBA{R: 0x20, G: 0x28, B: 0x18, A: 0xFF}
	DefaultOff = color.NRGBA{R: 0x9B, G: 0xBC, B: 0x0F, A: 0xFF}
)

func toNRGBA(c color.Color, def color.NRGBA) color.NRGBA {
	if c == nil {
		return def
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
