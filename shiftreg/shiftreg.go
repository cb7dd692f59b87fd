// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package shiftreg drives a pair of daisy chained 74HC595 shift registers
// using three GPIO lines.
//
// Each Send is a single 16 bit transaction. The latch is held low while
// both bytes are shifted in, MSB first, and then raised to transfer them
// to the register outputs together.
package shiftreg

import (
	"sync"

	"github.com/warthog618/segclock/gpio"
)

// Register is a 16 bit shift register driven by latch, clock and data lines.
type Register struct {
	mu    sync.Mutex
	latch gpio.Line
	clock gpio.Line
	data  gpio.Line
}

// New creates a Register and drives its lines low.
func New(latch, clock, data gpio.Line) *Register {
	r := &Register{latch: latch, clock: clock, data: data}
	for _, l := range []gpio.Line{latch, clock, data} {
		l.Write(gpio.Low)
		l.Output()
	}
	return r
}

// Close reverts the lines to inputs.
func (r *Register) Close() {
	r.mu.Lock()
	r.latch.Input()
	r.clock.Input()
	r.data.Input()
	r.mu.Unlock()
}

// Send shifts out the first byte followed by the second, then latches both.
// The second byte ends up in the register nearest the data input.
func (r *Register) Send(first, second byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latch.Write(gpio.Low)
	r.shiftOut(first)
	r.shiftOut(second)
	r.latch.Write(gpio.High)
}

// shiftOut clocks out a byte MSB first.
// Data is set up before the rising edge as the register samples on it.
func (r *Register) shiftOut(v byte) {
	for i := 7; i >= 0; i-- {
		r.data.Write(v>>uint(i)&0x01 == 0x01)
		r.clock.Write(gpio.High)
		r.clock.Write(gpio.Low)
	}
}
