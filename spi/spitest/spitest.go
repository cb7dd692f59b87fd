// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package spitest provides a fake SPI ADC attached to gpiotest lines.
package spitest

import (
	"sync"

	"github.com/warthog618/segclock/gpio"
	"github.com/warthog618/segclock/gpio/gpiotest"
)

// ADC is a fake ADC that follows the clock edges written by a bit bashed
// SPI master.
//
// A transaction starts with the first high bit sampled while Ssz is low.
// The command, including the start bit, is CmdBits long and is sampled on
// rising edges. After the command the ADC counts falling edges, and
// presents the result MSB first starting at falling edge DataStart.
// Earlier edges drive Miso low, as for a null bit.
type ADC struct {
	Sclk, Ssz, Mosi, Miso *gpiotest.Line

	CmdBits   int
	DataStart int
	Width     uint
	// Value returns the reading for the received command.
	Value func(cmd uint16) uint16

	mu       sync.Mutex
	started  bool
	cmd      uint16
	cmdCount int
	falls    int
	result   uint16
	cmds     []uint16
}

// NewMCP3w0c creates a fake MCP3xxx of the given width.
func NewMCP3w0c(width uint, value func(cmd uint16) uint16) *ADC {
	return newADC(5, 2, width, value)
}

// NewADC0832 creates a fake ADC0832.
func NewADC0832(value func(cmd uint16) uint16) *ADC {
	return newADC(3, 1, 8, value)
}

func newADC(cmdBits, dataStart int, width uint, value func(cmd uint16) uint16) *ADC {
	a := &ADC{
		Sclk:      gpiotest.NewLine("sclk", nil),
		Ssz:       gpiotest.NewLine("ssz", nil),
		Mosi:      gpiotest.NewLine("mosi", nil),
		Miso:      gpiotest.NewLine("miso", nil),
		CmdBits:   cmdBits,
		DataStart: dataStart,
		Width:     width,
		Value:     value,
	}
	a.Sclk.OnWrite(a.clock)
	a.Ssz.OnWrite(func(l gpio.Level) {
		if l == gpio.High {
			a.deselect()
		}
	})
	return a
}

// Commands returns the commands received, including the start bit.
func (a *ADC) Commands() []uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]uint16(nil), a.cmds...)
}

func (a *ADC) deselect() {
	a.mu.Lock()
	a.started = false
	a.cmd = 0
	a.cmdCount = 0
	a.falls = 0
	a.mu.Unlock()
}

func (a *ADC) clock(l gpio.Level) {
	if a.Ssz.Read() != gpio.Low {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if l == gpio.High {
		a.rise()
		return
	}
	a.fall()
}

func (a *ADC) rise() {
	if a.cmdCount >= a.CmdBits {
		return
	}
	bit := a.Mosi.Read()
	if !a.started {
		if bit != gpio.High {
			return
		}
		a.started = true
	}
	a.cmd = a.cmd << 1
	if bit {
		a.cmd |= 1
	}
	a.cmdCount++
	if a.cmdCount == a.CmdBits {
		a.cmds = append(a.cmds, a.cmd)
		a.result = a.Value(a.cmd)
	}
}

func (a *ADC) fall() {
	if a.cmdCount < a.CmdBits {
		return
	}
	idx := a.falls - a.DataStart
	a.falls++
	if idx < 0 || idx >= int(a.Width) {
		a.Miso.Set(gpio.Low)
		return
	}
	bit := a.result >> (a.Width - 1 - uint(idx)) & 0x01
	a.Miso.Set(bit == 1)
}
