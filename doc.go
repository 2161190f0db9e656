// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcd is a container for the ST7567 LCD driver and its tooling.
//
// The driver lives in st7567, with a controller simulator in st7567/st7567sim.
// gfx draws shapes, bitmaps and text on any one bit target, and preview shows
// frames on a terminal or in a browser while no panel is attached.
package lcd
