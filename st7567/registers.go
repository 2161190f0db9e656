// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7567

// opcode is a command byte of the ST7567 instruction set. Commands taking an
// argument in their low bits are OR'ed with it before being sent.
type opcode byte

// Commands, see datasheet page 37.
const (
	colAddrLow     opcode = 0x00 // | low nibble of the column
	colAddrHigh    opcode = 0x10 // | high nibble of the column
	regRatio       opcode = 0x20 // | 0..7
	powerControl   opcode = 0x28 // | powerBooster, powerRegulator, powerFollower
	startLine      opcode = 0x40 // | 0..63
	setEV          opcode = 0x81 // followed by the EV byte
	segNormal      opcode = 0xA0
	segReverse     opcode = 0xA1
	biasSelect     opcode = 0xA2 // | 0 for 1/9, 1 for 1/7
	allPixelsOff   opcode = 0xA4
	allPixelsOn    opcode = 0xA5
	inverseOff     opcode = 0xA6
	inverseOn      opcode = 0xA7
	displayOff     opcode = 0xAE
	displayOn      opcode = 0xAF
	pageAddr       opcode = 0xB0 // | 0..8
	comNormal      opcode = 0xC0
	comReverse     opcode = 0xC8
	softwareReset  opcode = 0xE2
	evValue        opcode = 0x00 // | 0..63, second byte of setEV
	evMask                = 0x3F
	powerBooster          = 0x04
	powerRegulator        = 0x02
	powerFollower         = 0x01
)

// Initialization values.
const (
	bias1_7         = 1
	defaultRegRatio = 4
	// DefaultContrast is the EV value used by DefaultOpts.
	DefaultContrast = 52
)

func (o opcode) with(arg byte) byte {
	return byte(o) | arg
}
