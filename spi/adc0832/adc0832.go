// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package adc0832 provides a device driver for the ADC0832 SPI ADC.
package adc0832

import (
	"time"

	"github.com/warthog618/segclock/gpio"
	"github.com/warthog618/segclock/spi"
)

// ADC0832 reads ADC values from a connected ADC0832.
// The two data lines, Mosi and Miso, may be tied and connected to a single GPIO pin.
type ADC0832 struct {
	*spi.SPI
	// time to allow mux to settle after clocking out ODD/SIGN
	tset time.Duration
}

// New creates a ADC0832.
// The settling time is raised to tclk if shorter.
func New(tclk, tset time.Duration, sclk, ssz, mosi, miso gpio.Line) *ADC0832 {
	if tset < tclk {
		tset = tclk
	}
	return &ADC0832{spi.New(tclk, sclk, ssz, mosi, miso), tset}
}

// Width returns the number of bits in a reading.
func (adc *ADC0832) Width() uint {
	return 8
}

// Read returns the value of a single channel read from the ADC.
func (adc *ADC0832) Read(ch int) uint8 {
	return adc.read(ch, gpio.High)
}

// ReadDifferential returns the value of a differential pair read from the ADC.
func (adc *ADC0832) ReadDifferential(ch int) uint8 {
	return adc.read(ch, gpio.Low)
}

func (adc *ADC0832) read(ch int, sgl gpio.Level) uint8 {
	adc.Mu.Lock()
	defer adc.Mu.Unlock()
	adc.Select()

	odd := gpio.Low
	if ch != 0 {
		odd = gpio.High
	}
	adc.ClockOut(gpio.High) // Start
	adc.ClockOut(sgl)       // SGL/DIFZ
	adc.ClockOut(odd)       // ODD/Sign
	// mux settling
	adc.Turnaround(adc.tset)
	// MSB first byte
	d := adc.ClockInBits(8)
	// ignore LSB bits - same as MSB just reversed order
	adc.Deselect()
	return uint8(d)
}
