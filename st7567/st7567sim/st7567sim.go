// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7567sim is a software model of a ST7567 LCD controller wired over
// 4-wire SPI.
//
// Sim implements spi.Port and spi.Conn and owns the CS, DC and RST pins. It
// decodes the command stream like the controller does and keeps the display
// RAM, so the visible image can be inspected without hardware. Every pin level
// change and every transfer is logged in order.
//
// The simulated glass is mounted like the common 128x64 modules: SEG normal
// and COM reverse scan directions show the RAM upright.
package st7567sim

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Geometry of the controller RAM and of the simulated glass.
const (
	Width      = 128
	Height     = 64
	RAMPages   = 9
	RAMColumns = 132
)

// Event is one entry of the bus log: either a pin level change or a transfer.
type Event struct {
	// Pin is "CS", "DC" or "RST" for a level change, empty for a transfer.
	Pin   string
	Level gpio.Level
	// Data is the transferred bytes.
	Data []byte
	// Command is true when DC was low during the transfer.
	Command bool
}

func (e Event) String() string {
	if e.Pin != "" {
		return fmt.Sprintf("%s=%s", e.Pin, e.Level)
	}
	if e.Command {
		return fmt.Sprintf("cmd %#x", e.Data)
	}
	return fmt.Sprintf("data[%d]", len(e.Data))
}

// Pin is a test pin whose level changes are reported to the Sim.
type Pin struct {
	*gpiotest.Pin
	s *Sim
}

func (p *Pin) String() string {
	return p.N
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	p.s.pinChanged(p, l)
	return nil
}

// Sim is a simulated ST7567 controller.
type Sim struct {
	CS  *Pin
	DC  *Pin
	RST *Pin

	mu     sync.Mutex
	events []Event
	freq   physic.Frequency
	mode   spi.Mode
	bits   int

	ram        [RAMPages][RAMColumns]byte
	page       int
	col        int
	startLine  int
	on         bool
	inverse    bool
	allOn      bool
	segReverse bool
	comReverse bool
	bias       byte
	regRatio   byte
	ev         byte
	power      byte
	evPending  bool
}

// New returns a Sim in its power on state with CS and RST high.
func New() *Sim {
	s := &Sim{}
	s.CS = &Pin{Pin: &gpiotest.Pin{N: "CS", Num: -1, L: gpio.High}, s: s}
	s.DC = &Pin{Pin: &gpiotest.Pin{N: "DC", Num: -1, L: gpio.Low}, s: s}
	s.RST = &Pin{Pin: &gpiotest.Pin{N: "RST", Num: -1, L: gpio.High}, s: s}
	s.resetLocked()
	return s
}

func (s *Sim) String() string {
	return "st7567sim"
}

// Connect implements spi.Port.
func (s *Sim) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if bits != 8 {
		return nil, fmt.Errorf("st7567sim: unsupported %d bits words", bits)
	}
	if m := mode & 3; m != spi.Mode0 && m != spi.Mode3 {
		return nil, fmt.Errorf("st7567sim: unsupported mode %v", mode)
	}
	if f > 20*physic.MegaHertz {
		return nil, fmt.Errorf("st7567sim: clock %s is above 20MHz", f)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freq, s.mode, s.bits = f, mode, bits
	return s, nil
}

// LimitSpeed implements spi.Port.
func (s *Sim) LimitSpeed(f physic.Frequency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.freq == 0 || f < s.freq {
		s.freq = f
	}
	return nil
}

// Duplex implements conn.Conn.
func (s *Sim) Duplex() conn.Duplex {
	return conn.Half
}

// Tx implements conn.Conn. The controller interface is write-only.
func (s *Sim) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errors.New("st7567sim: the serial interface is write-only")
	}
	if s.CS.Read() != gpio.Low {
		return errors.New("st7567sim: transfer while CS is deasserted")
	}
	command := s.DC.Read() == gpio.Low
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Event{Data: append([]byte(nil), w...), Command: command})
	if s.RST.Read() == gpio.Low {
		// Held in reset; the bytes are lost.
		return nil
	}
	if !command {
		s.writeRAMLocked(w)
		return nil
	}
	for _, b := range w {
		if err := s.commandLocked(b); err != nil {
			return err
		}
	}
	return nil
}

// TxPackets implements spi.Conn.
func (s *Sim) TxPackets(p []spi.Packet) error {
	for i := range p {
		if err := s.Tx(p[i].W, p[i].R); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sim) pinChanged(p *Pin, l gpio.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Event{Pin: p.N, Level: l})
	if p == s.RST && l == gpio.Low {
		s.resetLocked()
	}
}

// resetLocked restores the registers to their reset values. The RAM is kept.
func (s *Sim) resetLocked() {
	s.page = 0
	s.col = 0
	s.startLine = 0
	s.on = false
	s.inverse = false
	s.allOn = false
	s.segReverse = false
	s.comReverse = false
	s.bias = 0
	s.regRatio = 5
	s.ev = 0x20
	s.power = 0
	s.evPending = false
}

func (s *Sim) writeRAMLocked(w []byte) {
	for _, b := range w {
		if s.col < RAMColumns && s.page < RAMPages {
			s.ram[s.page][s.col] = b
		}
		// The column counter stops at the last column.
		if s.col < RAMColumns {
			s.col++
		}
	}
}

func (s *Sim) commandLocked(b byte) error {
	if s.evPending {
		s.evPending = false
		s.ev = b & 0x3F
		return nil
	}
	switch {
	case b == 0xE2:
		s.resetLocked()
	case b == 0xE3:
		// NOP
	case b == 0x81:
		s.evPending = true
	case b&0xF0 == 0xB0:
		if p := int(b & 0x0F); p < RAMPages {
			s.page = p
		}
	case b&0xF0 == 0x10:
		s.col = s.col&0x0F | int(b&0x0F)<<4
	case b&0xF0 == 0x00:
		s.col = s.col&0xF0 | int(b&0x0F)
	case b&0xC0 == 0x40:
		s.startLine = int(b & 0x3F)
	case b&0xF8 == 0x28:
		s.power = b & 0x07
	case b&0xF8 == 0x20:
		s.regRatio = b & 0x07
	case b&0xFE == 0xA0:
		s.segReverse = b&1 != 0
	case b&0xFE == 0xA2:
		s.bias = b & 1
	case b&0xFE == 0xA4:
		s.allOn = b&1 != 0
	case b&0xFE == 0xA6:
		s.inverse = b&1 != 0
	case b&0xFE == 0xAE:
		s.on = b&1 != 0
	case b&0xF0 == 0xC0:
		s.comReverse = b&0x08 != 0
	default:
		return fmt.Errorf("st7567sim: unknown command %#02x", b)
	}
	return nil
}

// Events returns a copy of the bus log.
func (s *Sim) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// Transfers returns the transfers of the bus log, without pin changes.
func (s *Sim) Transfers() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.Pin == "" {
			out = append(out, e)
		}
	}
	return out
}

// ClearEvents empties the bus log.
func (s *Sim) ClearEvents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

// Frequency returns the clock requested by the last Connect or LimitSpeed.
func (s *Sim) Frequency() physic.Frequency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.freq
}

// Mode returns the mode requested by the last Connect.
func (s *Sim) Mode() spi.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Registers is a snapshot of the controller configuration.
type Registers struct {
	On              bool
	Inverse         bool
	AllOn           bool
	SEGReverse      bool
	COMReverse      bool
	Bias            byte
	RegulationRatio byte
	EV              byte
	Power           byte
	StartLine       int
	Page            int
	Column          int
}

// Registers returns the current controller configuration.
func (s *Sim) Registers() Registers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Registers{
		On:              s.on,
		Inverse:         s.inverse,
		AllOn:           s.allOn,
		SEGReverse:      s.segReverse,
		COMReverse:      s.comReverse,
		Bias:            s.bias,
		RegulationRatio: s.regRatio,
		EV:              s.ev,
		Power:           s.power,
		StartLine:       s.startLine,
		Page:            s.page,
		Column:          s.col,
	}
}

// RAM returns a copy of page p of the display RAM, or nil if p is not a
// page.
func (s *Sim) RAM(p int) []byte {
	if p < 0 || p >= RAMPages {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.ram[p][:]...)
}

// Image returns what the glass shows. A panel that is off shows nothing.
func (s *Sim) Image() *image1bit.VerticalLSB {
	s.mu.Lock()
	defer s.mu.Unlock()
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height))
	if !s.on {
		return img
	}
	for y := 0; y < Height; y++ {
		line := y
		if !s.comReverse {
			line = Height - 1 - y
		}
		line = (line + s.startLine) % Height
		for x := 0; x < Width; x++ {
			col := x
			if s.segReverse {
				col = Width - 1 - x
			}
			v := s.allOn || s.ram[line/8][col]&(1<<uint(line%8)) != 0
			if s.inverse {
				v = !v
			}
			if v {
				img.SetBit(x, y, image1bit.On)
			}
		}
	}
	return img
}

var _ spi.Port = &Sim{}
var _ spi.Conn = &Sim{}
var _ gpio.PinOut = &Pin{}
