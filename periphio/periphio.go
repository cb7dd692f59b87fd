// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package periphio provides gpio.Lines backed by periph.io pins.
//
// This allows the display to be driven on any host supported by periph,
// rather than only via the Pi's /dev/gpiomem.
package periphio

import (
	"errors"
	"fmt"
	"sync"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/warthog618/segclock/gpio"
)

// ErrNoPin indicates the named pin is not known to periph.
var ErrNoPin = errors.New("no such pin")

// Init loads the periph host drivers.
// It must be called before ByName.
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}
	return nil
}

// Line adapts a periph PinIO to a gpio.Line.
//
// The gpio.Line methods do not return errors, so the first error returned
// by the pin is retained and available from Err.
type Line struct {
	p pgpio.PinIO

	mu   sync.Mutex
	pull pgpio.Pull
	err  error
}

// New wraps a periph pin.
func New(p pgpio.PinIO) *Line {
	return &Line{p: p, pull: pgpio.PullNoChange}
}

// ByName returns the Line for the named pin, e.g. "GPIO22" or "22".
func ByName(name string) (*Line, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPin, name)
	}
	return New(p), nil
}

// Name returns the name of the underlying pin.
func (l *Line) Name() string {
	return l.p.Name()
}

// Input implements gpio.Line.
func (l *Line) Input() {
	l.mu.Lock()
	pull := l.pull
	l.mu.Unlock()
	l.check(l.p.In(pull, pgpio.NoEdge))
}

// Output implements gpio.Line.
//
// periph switches a pin to output on the first Out, so this re-drives the
// last level read or written.
func (l *Line) Output() {
	l.check(l.p.Out(l.p.Read()))
}

// Read implements gpio.Line.
func (l *Line) Read() gpio.Level {
	return gpio.Level(l.p.Read())
}

// Write implements gpio.Line.
func (l *Line) Write(v gpio.Level) {
	l.check(l.p.Out(pgpio.Level(v)))
}

// PullUp implements gpio.Puller.
// The pin is left as an input.
func (l *Line) PullUp() {
	l.mu.Lock()
	l.pull = pgpio.PullUp
	l.mu.Unlock()
	l.check(l.p.In(pgpio.PullUp, pgpio.NoEdge))
}

// Halt releases the underlying pin.
func (l *Line) Halt() error {
	return l.p.Halt()
}

// Err returns the first error reported by the pin, if any.
func (l *Line) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Line) check(err error) {
	if err == nil {
		return
	}
	l.mu.Lock()
	if l.err == nil {
		l.err = fmt.Errorf("%s: %w", l.p.Name(), err)
	}
	l.mu.Unlock()
}
