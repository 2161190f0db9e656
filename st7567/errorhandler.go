// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7567

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management. Once a step fails every
// following step is skipped and err keeps the first failure.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) fail(what string, err error) {
	if err != nil && eh.err == nil {
		eh.err = fmt.Errorf("st7567: %s: %w", what, err)
	}
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil || eh.d.rst == nil {
		return
	}
	eh.fail("reset", eh.d.rst.Out(l))
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.fail("data/command select", eh.d.dc.Out(l))
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.fail("chip select", eh.d.cs.Out(l))
}

func (eh *errorHandler) sleep(d time.Duration) {
	if eh.err != nil {
		return
	}
	eh.d.sleep(d)
}

// send is the low level burst: chip select is asserted, the bus is held for
// the whole buffer and chip select is released again even if the transfer
// failed.
func (eh *errorHandler) send(b []byte) {
	if eh.err != nil {
		return
	}
	eh.csOut(gpio.Low)
	if eh.err != nil {
		return
	}
	if l := eh.d.bus; l != nil {
		l.Lock()
	}
	eh.fail("transfer", eh.d.c.Tx(b, nil))
	if l := eh.d.bus; l != nil {
		l.Unlock()
	}
	// Always release the device, keeping the first error.
	eh.fail("chip select", eh.d.cs.Out(gpio.High))
}

func (eh *errorHandler) sendCommand(cmd ...byte) {
	eh.dcOut(gpio.Low)
	eh.send(cmd)
}

func (eh *errorHandler) sendData(data []byte) {
	eh.dcOut(gpio.High)
	eh.send(data)
	eh.dcOut(gpio.Low)
}

var _ controller = &errorHandler{}
