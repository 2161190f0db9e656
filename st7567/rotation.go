// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7567

import "fmt"

// Rotation is the quadrant the logical coordinate space is turned by,
// clockwise.
type Rotation uint8

// Possible rotations.
const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 1
	Rotate180 Rotation = 2
	Rotate270 Rotation = 3
)

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0°"
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
}

// size returns the logical width and height.
func (r Rotation) size() (int, int) {
	if r&1 != 0 {
		return Height, Width
	}
	return Width, Height
}

// toPhysical maps logical coordinates to framebuffer coordinates.
func (r Rotation) toPhysical(x, y int) (int, int) {
	switch r {
	case Rotate90:
		x, y = y, x
		x = Width - x - 1
	case Rotate180:
		x = Width - x - 1
		y = Height - y - 1
	case Rotate270:
		x, y = y, x
		y = Height - y - 1
	}
	return x, y
}

// toLogical is the inverse of toPhysical.
func (r Rotation) toLogical(x, y int) (int, int) {
	switch r {
	case Rotate90:
		x = Width - x - 1
		x, y = y, x
	case Rotate180:
		x = Width - x - 1
		y = Height - y - 1
	case Rotate270:
		y = Height - y - 1
		x, y = y, x
	}
	return x, y
}
