// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gfx draws shapes and text on any one bit pixel target.
//
// A Target only needs to set a single pixel and report its size; everything
// else is built on top of it. Shapes are rasterized with fogleman/gg and
// thresholded to one bit, text goes through golang.org/x/image/font.
// Targets must ignore pixels outside of their bounds; Blit and Text do not
// clip.
package gfx
