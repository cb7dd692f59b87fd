// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package gpiotest provides fake gpio.Lines for testing the bit bashed
// drivers without hardware.
//
// Writes to lines sharing a Trace are recorded in order, so the protocol
// seen by a device across several lines can be checked.
package gpiotest

import (
	"sync"

	"github.com/warthog618/segclock/gpio"
)

// Event is a single write to a Line.
type Event struct {
	Line  string
	Level gpio.Level
}

// Trace records the writes to a set of Lines.
type Trace struct {
	mu     sync.Mutex
	events []Event
}

// Events returns a copy of the events recorded so far.
func (t *Trace) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Event(nil), t.events...)
}

// Reset discards the recorded events.
func (t *Trace) Reset() {
	t.mu.Lock()
	t.events = nil
	t.mu.Unlock()
}

func (t *Trace) record(e Event) {
	t.mu.Lock()
	t.events = append(t.events, e)
	t.mu.Unlock()
}

// Line is a fake gpio.Line.
type Line struct {
	name  string
	trace *Trace

	mu     sync.Mutex
	level  gpio.Level
	mode   gpio.Mode
	pullUp bool
	hook   func(gpio.Level)
}

// NewLine creates a Line that records its writes in trace.
// The trace may be nil.
func NewLine(name string, trace *Trace) *Line {
	return &Line{name: name, trace: trace}
}

// Name returns the name the line was created with.
func (l *Line) Name() string {
	return l.name
}

// Input implements gpio.Line.
func (l *Line) Input() {
	l.mu.Lock()
	l.mode = gpio.Input
	l.mu.Unlock()
}

// Output implements gpio.Line.
func (l *Line) Output() {
	l.mu.Lock()
	l.mode = gpio.Output
	l.mu.Unlock()
}

// Read implements gpio.Line.
func (l *Line) Read() gpio.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Write implements gpio.Line.
// The write is recorded and then passed to the hook, if any.
func (l *Line) Write(v gpio.Level) {
	l.mu.Lock()
	l.level = v
	hook := l.hook
	l.mu.Unlock()
	if l.trace != nil {
		l.trace.record(Event{l.name, v})
	}
	if hook != nil {
		hook(v)
	}
}

// PullUp implements gpio.Puller.
// A pulled up line reads High until Set otherwise.
func (l *Line) PullUp() {
	l.mu.Lock()
	l.pullUp = true
	l.level = gpio.High
	l.mu.Unlock()
}

// PullNone disables the pull up.
// The level is left unchanged.
func (l *Line) PullNone() {
	l.mu.Lock()
	l.pullUp = false
	l.mu.Unlock()
}

// Set drives the level seen by Read, as an external device would.
// It is not recorded.
func (l *Line) Set(v gpio.Level) {
	l.mu.Lock()
	l.level = v
	l.mu.Unlock()
}

// OnWrite sets a hook called after each Write.
func (l *Line) OnWrite(hook func(gpio.Level)) {
	l.mu.Lock()
	l.hook = hook
	l.mu.Unlock()
}

// Mode returns the last mode set by Input or Output.
func (l *Line) Mode() gpio.Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

// PulledUp returns true if PullUp has been called.
func (l *Line) PulledUp() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pullUp
}
