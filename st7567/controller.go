// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7567

// controller is the framing layer the command sequences are written against.
// Every call is one chip-select bracketed burst.
type controller interface {
	sendCommand(cmd ...byte)
	sendData(data []byte)
}

// initDisplay programs the registers after a hardware reset. The RAM is
// cleared and the panel turned on by the caller.
func initDisplay(ctrl controller, opts *Opts, contrast byte) {
	ctrl.sendCommand(biasSelect.with(bias1_7))

	seg := segNormal
	if opts.MirrorHorizontal {
		seg = segReverse
	}
	ctrl.sendCommand(byte(seg))

	com := comReverse
	if opts.MirrorVertical {
		com = comNormal
	}
	ctrl.sendCommand(byte(com))

	ctrl.sendCommand(regRatio.with(defaultRegRatio))
	ctrl.sendCommand(contrastCommand(contrast)...)
	ctrl.sendCommand(powerControl.with(powerBooster | powerRegulator | powerFollower))
}

// contrastCommand returns the two bytes EV command.
func contrastCommand(level byte) []byte {
	return []byte{byte(setEV), evValue.with(level & evMask)}
}

// sendFrame pushes the whole frame, one page at a time. The address commands
// must precede the page data; the column pointer auto-increments over the 128
// data bytes.
func sendFrame(ctrl controller, f *Frame) {
	for p := 0; p < PageCount; p++ {
		ctrl.sendCommand(pageAddr.with(byte(p)))
		ctrl.sendCommand(startLine.with(0))
		ctrl.sendCommand(colAddrHigh.with(0), colAddrLow.with(0))
		ctrl.sendData(f.Page(p))
	}
}
