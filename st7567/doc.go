// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7567 controls a 128x64 monochrome dot-matrix LCD driven by a
// Sitronix ST7567 controller over 4-wire SPI.
//
// The driver keeps a 1024 bytes framebuffer in the same layout as the
// controller RAM: 8 horizontal pages of 8 pixel rows, one byte per column per
// page, least significant bit at the top. Pixels are set in memory with
// SetPixel, DrawPixel or Draw and pushed to the panel with Display.
//
// # Wiring
//
// Connect SCL to SPI_CLK, SI to SPI_MOSI, CS to any GPIO, A0 (RS) to a GPIO
// used as data/command select and RST to a GPIO. The chip select line is
// driven by the driver itself so several devices can share the same bus; pass
// a shared sync.Locker in Opts.Bus to serialize them.
//
// The controller is write-only on the serial interface. Nothing is read back,
// so a disconnected panel is not detected.
//
// # Datasheet
//
// https://www.newhavendisplay.com/appnotes/datasheets/LCDs/ST7567.pdf
package st7567
