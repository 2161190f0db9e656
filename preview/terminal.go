// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// TerminalOpts represents the options available for a Terminal.
type TerminalOpts struct {
	// W and H are the frame size; zero means 128x64.
	W, H int
	// On and Off are the pixel colors; nil means DefaultOn and DefaultOff.
	On, Off color.Color
	Palette *ansi256.Palette

	_ struct{}
}

// Terminal is a one bit display emulator that outputs to the console.
type Terminal struct {
	w       io.Writer
	palette ansi256.Palette
	on, off color.NRGBA

	img   *image1bit.VerticalLSB
	buf   bytes.Buffer
	drawn bool
}

// NewTerminal returns a Terminal that displays on stdout.
func NewTerminal(opts *TerminalOpts) *Terminal {
	return newTerminal(colorable.NewColorableStdout(), opts)
}

func newTerminal(w io.Writer, opts *TerminalOpts) *Terminal {
	if opts == nil {
		opts = &TerminalOpts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	width, height := opts.W, opts.H
	if width == 0 || height == 0 {
		width, height = 128, 64
	}
	return &Terminal{
		w:       w,
		palette: *p,
		on:      toNRGBA(opts.On, DefaultOn),
		off:     toNRGBA(opts.Off, DefaultOff),
		img:     image1bit.NewVerticalLSB(image.Rect(0, 0, width, height)),
	}
}

func (t *Terminal) String() string {
	return fmt.Sprintf("Terminal{%dx%d}", t.img.Rect.Dx(), t.img.Rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the console is not corrupted.
func (t *Terminal) Halt() error {
	_, err := t.w.Write([]byte("\033[0m\n"))
	return err
}

// ColorModel implements display.Drawer.
func (t *Terminal) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (t *Terminal) Bounds() image.Rectangle {
	return t.img.Rect
}

// Draw implements display.Drawer.
func (t *Terminal) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Src.Draw(t.img, r, src, sp)
	return t.refresh()
}

// Write accepts a frame in controller RAM order (image1bit.VerticalLSB.Pix)
// and prints it.
func (t *Terminal) Write(pixels []byte) (int, error) {
	if len(pixels) != len(t.img.Pix) {
		return 0, fmt.Errorf("preview: invalid frame length; expected %d bytes, got %d bytes", len(t.img.Pix), len(pixels))
	}
	copy(t.img.Pix, pixels)
	if err := t.refresh(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

func (t *Terminal) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	t.buf.Reset()
	h := t.img.Rect.Dy()
	if t.drawn {
		// Move back to the top-left corner of the previous frame.
		fmt.Fprintf(&t.buf, "\033[%dA", h)
	}
	for y := 0; y < h; y++ {
		_, _ = t.buf.WriteString("\r\033[0m")
		for x := 0; x < t.img.Rect.Dx(); x++ {
			c := t.off
			if t.img.BitAt(x, y) {
				c = t.on
			}
			_, _ = io.WriteString(&t.buf, t.palette.Block(c))
		}
		_, _ = t.buf.WriteString("\033[0m\n")
	}
	t.drawn = true
	_, err := t.buf.WriteTo(t.w)
	return err
}

var _ display.Drawer = &Terminal{}
var _ fmt.Stringer = &Terminal{}
