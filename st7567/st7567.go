// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7567

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// sleep is replaced in tests.
var sleep = time.Sleep

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Contrast:  DefaultContrast,
	Frequency: 8 * physic.MegaHertz,
}

// Opts defines the options for the device.
type Opts struct {
	// Contrast is the electronic volume (EV) register value, 0 to 63. Larger
	// values are masked.
	Contrast int
	// Rotation is the initial rotation of the logical coordinate space.
	Rotation Rotation
	// MirrorHorizontal selects the reverse SEG scan direction. Try toggling
	// this if the display is flipped horizontally.
	MirrorHorizontal bool
	// MirrorVertical selects the normal COM scan direction. Try toggling this
	// if the display is flipped vertically.
	MirrorVertical bool
	// Frequency is the SPI clock. Zero means 8MHz.
	Frequency physic.Frequency
	// Bus, when set, is held for the duration of every transfer. Share the
	// same Locker between all the devices using the bus lines.
	Bus sync.Locker
}

// Dev is an open handle to the display controller.
//
// Dev is not safe for concurrent use; callers must serialize access.
type Dev struct {
	// Communication
	c   conn.Conn
	cs  gpio.PinOut
	dc  gpio.PinOut
	rst gpio.PinOut
	bus sync.Locker

	sleep func(time.Duration)

	// Mutable
	frame    Frame
	rotation Rotation
	contrast byte
	halted   bool
}

// New opens a 4-wire SPI connection to a ST7567 controller, resets it and
// programs it. The panel is cleared and turned on before returning.
//
// cs and dc are required. rst may be nil when the reset line is tied high, in
// which case a software reset is issued instead.
//
// The SPI port is configured in mode 3, MSB first, 8 bits words.
func New(p spi.Port, cs, dc, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if cs == nil || cs == gpio.INVALID {
		return nil, errors.New("st7567: cs pin is required")
	}
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("st7567: dc pin is required")
	}
	if rst == gpio.INVALID {
		rst = nil
	}
	f := opts.Frequency
	if f == 0 {
		f = DefaultOpts.Frequency
	}
	c, err := p.Connect(f, spi.Mode3, 8)
	if err != nil {
		return nil, fmt.Errorf("st7567: %w", err)
	}
	d := &Dev{
		c:        c,
		cs:       cs,
		dc:       dc,
		rst:      rst,
		bus:      opts.Bus,
		sleep:    sleep,
		rotation: opts.Rotation & 3,
		contrast: byte(opts.Contrast & evMask),
	}
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	w, h := d.rotation.size()
	return fmt.Sprintf("st7567.Dev{%s, %s, %dx%d}", d.c, d.dc, w, h)
}

// init runs the power on sequence.
func (d *Dev) init(opts *Opts) error {
	eh := errorHandler{d: d}
	eh.csOut(gpio.High)
	eh.dcOut(gpio.Low)
	if d.rst != nil {
		// Well above the minimum reset pulse width.
		eh.rstOut(gpio.Low)
		eh.sleep(time.Millisecond)
		eh.rstOut(gpio.High)
		eh.sleep(time.Millisecond)
	} else {
		eh.sendCommand(byte(softwareReset))
		eh.sleep(time.Millisecond)
	}
	initDisplay(&eh, opts, d.contrast)
	d.frame.Clear()
	sendFrame(&eh, &d.frame)
	eh.sendCommand(byte(displayOn))
	return eh.err
}

// Width returns the logical width for the current rotation.
func (d *Dev) Width() int {
	w, _ := d.rotation.size()
	return w
}

// Height returns the logical height for the current rotation.
func (d *Dev) Height() int {
	_, h := d.rotation.size()
	return h
}

// Rotation returns the current rotation.
func (d *Dev) Rotation() Rotation {
	return d.rotation
}

// SetRotation turns the logical coordinate space by r quadrants. Only the two
// low bits are used. The framebuffer content is not moved.
func (d *Dev) SetRotation(r int) {
	d.rotation = Rotation(r & 3)
}

// SetPixel sets or clears a pixel in logical coordinates. Pixels outside of
// the logical bounds are ignored.
func (d *Dev) SetPixel(x, y int, on bool) {
	w, h := d.rotation.size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	x, y = d.rotation.toPhysical(x, y)
	d.frame.SetBit(x, y, on)
}

// DrawPixel sets the pixel at (x, y) for any non-zero color.
func (d *Dev) DrawPixel(x, y int, c uint16) {
	d.SetPixel(x, y, c != 0)
}

// Pixel returns the pixel in logical coordinates.
func (d *Dev) Pixel(x, y int) bool {
	w, h := d.rotation.size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return false
	}
	return d.frame.BitAt(d.rotation.toPhysical(x, y))
}

// Buffer returns the framebuffer. It is only modified by drawing calls and
// only sent to the panel by Display.
func (d *Dev) Buffer() *Frame {
	return &d.frame
}

// ClearDisplay turns off all the pixels of the framebuffer. Nothing is sent to
// the panel.
func (d *Dev) ClearDisplay() {
	d.frame.Clear()
}

// Display sends the whole framebuffer to the panel.
func (d *Dev) Display() error {
	eh := errorHandler{d: d}
	if d.halted {
		// Transparently enable the display.
		eh.sendCommand(byte(displayOn))
		if eh.err == nil {
			d.halted = false
		}
	}
	sendFrame(&eh, &d.frame)
	return eh.err
}

// Contrast returns the electronic volume value last programmed.
func (d *Dev) Contrast() int {
	return int(d.contrast)
}

// SetContrast programs the electronic volume register. Only the 6 low bits of
// level are used.
func (d *Dev) SetContrast(level int) error {
	c := byte(level & evMask)
	eh := errorHandler{d: d}
	eh.sendCommand(contrastCommand(c)...)
	if eh.err == nil {
		d.contrast = c
	}
	return eh.err
}

// Invert the display (dark pixels on a light background vs the opposite).
func (d *Dev) Invert(on bool) error {
	cmd := inverseOff
	if on {
		cmd = inverseOn
	}
	eh := errorHandler{d: d}
	eh.sendCommand(byte(cmd))
	return eh.err
}

// AllPixelsOn forces every pixel on without touching the RAM content.
func (d *Dev) AllPixelsOn(on bool) error {
	cmd := allPixelsOff
	if on {
		cmd = allPixelsOn
	}
	eh := errorHandler{d: d}
	eh.sendCommand(byte(cmd))
	return eh.err
}

// Halt implements conn.Resource. It turns off the display; the next Display
// call turns it back on.
func (d *Dev) Halt() error {
	eh := errorHandler{d: d}
	eh.sendCommand(byte(displayOff))
	if eh.err == nil {
		d.halted = true
	}
	return eh.err
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. It is the logical area for the current
// rotation; Min is always {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	w, h := d.rotation.size()
	return image.Rect(0, 0, w, h)
}

// At implements image.Image.
func (d *Dev) At(x, y int) color.Color {
	return image1bit.Bit(d.Pixel(x, y))
}

// Set implements draw.Image so the Dev can be the destination of image/draw
// and golang.org/x/image/font drawers.
func (d *Dev) Set(x, y int, c color.Color) {
	d.SetPixel(x, y, bool(image1bit.BitModel.Convert(c).(image1bit.Bit)))
}

// Draw implements display.Drawer.
//
// src is converted to one bit per pixel into the framebuffer area r, in
// logical coordinates, with the same clipping as image/draw. The whole frame
// is then sent.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if img, ok := src.(*image1bit.VerticalLSB); ok && d.rotation == Rotate0 && r == d.Bounds() && img.Rect == r && sp.X == 0 && sp.Y == 0 {
		// Exact size, full frame, image1bit encoding: fast path!
		copy(d.frame[:], img.Pix)
		return d.Display()
	}
	draw.Src.Draw(d, r, src, sp)
	return d.Display()
}

// Write writes a buffer of pixels in controller RAM order to the display.
//
// This function accepts the content of image1bit.VerticalLSB.Pix for a 128x64
// image. The rotation is not applied.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != FrameSize {
		return 0, fmt.Errorf("st7567: invalid pixel stream length; expected %d bytes, got %d bytes", FrameSize, len(pixels))
	}
	copy(d.frame[:], pixels)
	if err := d.Display(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
