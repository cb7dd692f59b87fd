// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package spi provides a bit bashed SPI master over GPIO lines.
//
// It is the transport for the ADCs that provide the voltage reading,
// and is not related to the SPI device drivers provided by Linux.
package spi

import (
	"sync"
	"time"

	"github.com/warthog618/segclock/gpio"
)

// SPI represents a device connected via an SPI bus using 3 or 4 GPIO lines.
// Depending on the device, the two data lines, Mosi and Miso, may be tied
// and connected to a single GPIO pin.
type SPI struct {
	Mu sync.Mutex
	// time between clock edges (i.e. half the cycle time)
	Tclk time.Duration
	Sclk gpio.Line
	Ssz  gpio.Line
	Mosi gpio.Line
	Miso gpio.Line
	// Sleep waits between clock edges. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// New creates a SPI and holds the device deselected.
func New(tclk time.Duration, sclk, ssz, mosi, miso gpio.Line) *SPI {
	spi := &SPI{
		Tclk:  tclk,
		Sclk:  sclk,
		Ssz:   ssz,
		Mosi:  mosi,
		Miso:  miso,
		Sleep: time.Sleep,
	}
	// hold SPI reset until needed...
	spi.Sclk.Write(gpio.Low)
	spi.Sclk.Output()
	spi.Ssz.Write(gpio.High)
	spi.Ssz.Output()
	return spi
}

// Close disables the output lines used to drive the SPI device.
func (spi *SPI) Close() {
	spi.Mu.Lock()
	spi.Sclk.Input()
	spi.Ssz.Input()
	spi.Mosi.Input()
	spi.Mu.Unlock()
}

// Select starts a transaction, leaving Mosi driven high and the clock low.
// Assumes caller already holds the Mu lock.
func (spi *SPI) Select() {
	spi.Ssz.Write(gpio.High)
	spi.Sclk.Write(gpio.Low)
	spi.Mosi.Write(gpio.High)
	spi.Mosi.Output()
	spi.wait(spi.Tclk)
	spi.Ssz.Write(gpio.Low)
}

// Deselect ends a transaction.
// Assumes caller already holds the Mu lock.
func (spi *SPI) Deselect() {
	spi.Ssz.Write(gpio.High)
}

// Turnaround releases Mosi, waits for the device to settle, then raises
// the clock ready for the first ClockIn.
// Assumes caller already holds the Mu lock.
func (spi *SPI) Turnaround(tset time.Duration) {
	spi.Mosi.Input()
	spi.wait(tset)
	spi.Sclk.Write(gpio.High)
}

// ClockIn clocks in a data bit from the SPI device on Miso.
// Assumes clock starts high and ends with the rising edge of the next clock.
// Assumes caller already holds the Mu lock.
func (spi *SPI) ClockIn() gpio.Level {
	spi.wait(spi.Tclk)
	spi.Sclk.Write(gpio.Low) // SPI device writes on the falling edge
	spi.wait(spi.Tclk)
	b := spi.Miso.Read()
	spi.Sclk.Write(gpio.High)
	return b
}

// ClockOut clocks out a data bit to the SPI device on Mosi.
// Assumes clock starts low and ends with the falling edge of the next clock.
// Assumes caller already holds the Mu lock.
func (spi *SPI) ClockOut(l gpio.Level) {
	spi.Mosi.Write(l)
	spi.wait(spi.Tclk)
	spi.Sclk.Write(gpio.High) // SPI device reads on the rising edge
	spi.wait(spi.Tclk)
	spi.Sclk.Write(gpio.Low)
}

// ClockInBits clocks in n bits, MSB first.
// Assumes caller already holds the Mu lock.
func (spi *SPI) ClockInBits(n uint) uint16 {
	var d uint16
	for i := uint(0); i < n; i++ {
		d = d << 1
		if spi.ClockIn() {
			d = d | 0x01
		}
	}
	return d
}

func (spi *SPI) wait(d time.Duration) {
	if d <= 0 {
		return
	}
	if spi.Sleep == nil {
		time.Sleep(d)
		return
	}
	spi.Sleep(d)
}
