// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package control provides the loop that decides what the display shows.
//
// Each iteration samples the buttons, resolves the display mode, and
// renders either the elapsed time, as MM.SS, or the analog input, as V.mmm.
package control

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/warthog618/segclock/clock"
	"github.com/warthog618/segclock/gpio"
	"github.com/warthog618/segclock/segment"
)

// DefaultDebounce is the time the loop pauses after a reset.
const DefaultDebounce = 200 * time.Millisecond

// Mode is the content of the display.
type Mode int

const (
	// Time shows the elapsed time.
	Time Mode = iota
	// Voltage shows the analog input voltage.
	Voltage
)

func (m Mode) String() string {
	switch m {
	case Time:
		return "time"
	case Voltage:
		return "voltage"
	default:
		return "unknown"
	}
}

var (
	// TimePoint separates minutes from seconds.
	TimePoint = segment.DecimalPoint{Enabled: true, Position: 1}
	// VoltagePoint separates volts from millivolts.
	VoltagePoint = segment.DecimalPoint{Enabled: true, Position: 0}
)

// Button is an active low push button.
type Button struct {
	l gpio.Line
}

// NewButton sets the line as an input, with pull up if supported, and
// returns it as a Button.
func NewButton(l gpio.Line) *Button {
	l.Input()
	if p, ok := l.(gpio.Puller); ok {
		p.PullUp()
	}
	return &Button{l}
}

// Close reverts the line to an input, with the pull disabled if supported.
func (b *Button) Close() {
	b.l.Input()
	if p, ok := b.l.(interface{ PullNone() }); ok {
		p.PullNone()
	}
}

// Pressed returns true if the button is held down.
func (b *Button) Pressed() bool {
	return b.l.Read() == gpio.Low
}

// Renderer lights the display.
//
// display.Multiplexer is a Renderer.
type Renderer interface {
	Render(value int, dp segment.DecimalPoint)
	Blank()
}

// Voltmeter provides the analog reading.
//
// analog.Voltmeter is a Voltmeter.
type Voltmeter interface {
	Millivolts() int
}

// Arbiter runs the control loop.
type Arbiter struct {
	disp     Renderer
	keeper   *clock.Keeper
	volts    Voltmeter
	reset    *Button
	mode     *Button
	debounce time.Duration
	clk      clockwork.Clock
	onMode   func(Mode)
	last     Mode
}

// Option modifies the construction of an Arbiter.
type Option func(*Arbiter)

// WithDebounce sets the pause after a reset.
func WithDebounce(d time.Duration) Option {
	return func(a *Arbiter) {
		a.debounce = d
	}
}

// WithClock sets the clock used to time the debounce.
func WithClock(c clockwork.Clock) Option {
	return func(a *Arbiter) {
		a.clk = c
	}
}

// WithModeHandler sets a function called from Step whenever the mode
// changes.
func WithModeHandler(h func(Mode)) Option {
	return func(a *Arbiter) {
		a.onMode = h
	}
}

// New creates an Arbiter.
func New(disp Renderer, keeper *clock.Keeper, volts Voltmeter, reset, mode *Button, options ...Option) *Arbiter {
	a := &Arbiter{
		disp:     disp,
		keeper:   keeper,
		volts:    volts,
		reset:    reset,
		mode:     mode,
		debounce: DefaultDebounce,
		clk:      clockwork.NewRealClock(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Mode returns the mode selected by the mode button.
func (a *Arbiter) Mode() Mode {
	if a.mode.Pressed() {
		return Voltage
	}
	return Time
}

// Resolve returns the value and decimal point to display for a mode.
func (a *Arbiter) Resolve(m Mode) (int, segment.DecimalPoint) {
	if m == Voltage {
		return a.volts.Millivolts(), VoltagePoint
	}
	return a.keeper.Snapshot().Packed(), TimePoint
}

// Step performs one iteration of the control loop.
//
// If the reset button is pressed the elapsed time is reset and Step pauses
// for the debounce period before continuing. The display is then rendered
// once in the selected mode.
func (a *Arbiter) Step() {
	if a.reset.Pressed() {
		a.keeper.Reset()
		a.clk.Sleep(a.debounce)
	}
	m := a.Mode()
	if m != a.last {
		a.last = m
		if a.onMode != nil {
			a.onMode(m)
		}
	}
	a.disp.Render(a.Resolve(m))
}

// Run steps the control loop until ctx is done, then blanks the display.
func (a *Arbiter) Run(ctx context.Context) {
	defer a.disp.Blank()
	for {
		select {
		case <-ctx.Done():
			return
		default:
			a.Step()
		}
	}
}
