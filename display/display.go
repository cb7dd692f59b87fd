// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package display multiplexes a 4 digit, 7-segment display driven through
// a shift register.
//
// Only one digit is lit at a time. Each Render lights the digits in turn,
// left to right, holding each for the dwell period, so the display must be
// rendered continuously to appear fully lit.
package display

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/warthog618/segclock/segment"
)

// DefaultDwell is the time each digit is lit during a Render.
const DefaultDwell = 2 * time.Millisecond

// Sender writes a segment pattern and digit select to the display hardware.
//
// shiftreg.Register is a Sender.
type Sender interface {
	Send(segments, digit byte)
}

// Multiplexer renders values onto the display.
type Multiplexer struct {
	out   Sender
	dwell time.Duration
	clk   clockwork.Clock
}

// Option modifies the construction of a Multiplexer.
type Option func(*Multiplexer)

// WithDwell sets the time each digit is lit.
func WithDwell(d time.Duration) Option {
	return func(m *Multiplexer) {
		m.dwell = d
	}
}

// WithClock sets the clock used to time the dwell.
func WithClock(c clockwork.Clock) Option {
	return func(m *Multiplexer) {
		m.clk = c
	}
}

// New creates a Multiplexer that writes to out.
func New(out Sender, options ...Option) *Multiplexer {
	m := &Multiplexer{
		out:   out,
		dwell: DefaultDwell,
		clk:   clockwork.NewRealClock(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Dwell returns the time each digit is lit.
func (m *Multiplexer) Dwell() time.Duration {
	return m.dwell
}

// Render lights each digit of value once, with the decimal point as per dp.
//
// Values outside 0-9999 are truncated to their low 4 digits.
// Blocks for four dwell periods.
func (m *Multiplexer) Render(value int, dp segment.DecimalPoint) {
	for i, p := range segment.Patterns(value, dp) {
		m.out.Send(byte(p), byte(segment.Selects[i]))
		m.clk.Sleep(m.dwell)
	}
}

// Blank turns off all segments and deselects all digits.
func (m *Multiplexer) Blank() {
	m.out.Send(byte(segment.Blank), 0)
}
