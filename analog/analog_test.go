// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package analog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warthog618/segclock/analog"
	"github.com/warthog618/segclock/spi/mcp3w0c"
	"github.com/warthog618/segclock/spi/spitest"
)

func TestToMillivolts(t *testing.T) {
	patterns := []struct {
		name   string
		sample uint16
		ref    float64
		mv     int
	}{
		{"zero", 0, 3.3, 0},
		{"full scale", 0xffff, 3.3, 3300},
		{"2.75", 54613, 3.3, 2750},
		{"half", 0x8000, 3.3, 1650},
		{"5V ref", 0xffff, 5.0, 5000},
	}
	for _, p := range patterns {
		t.Run(p.name, func(t *testing.T) {
			assert.Equal(t, p.mv, analog.ToMillivolts(p.sample, p.ref))
		})
	}
}

func TestVoltmeter(t *testing.T) {
	s := analog.SamplerFunc(func() uint16 { return 54613 })
	v := analog.NewVoltmeter(s, 0)
	assert.Equal(t, analog.DefaultReference, v.Reference())
	assert.Equal(t, 2750, v.Millivolts())
	assert.InDelta(t, 2.75, v.Volts(), 0.0001)

	v = analog.NewVoltmeter(s, 5)
	assert.Equal(t, 5.0, v.Reference())
	assert.Equal(t, 4166, v.Millivolts())
}

func TestScaled(t *testing.T) {
	patterns := []struct {
		name   string
		width  uint
		raw    uint16
		sample uint16
	}{
		{"10 bit full", 10, 0x3ff, 0xffff},
		{"10 bit zero", 10, 0, 0},
		{"10 bit mid", 10, 0x200, 0x801f},
		{"12 bit full", 12, 0xfff, 0xffff},
		{"8 bit full", 8, 0xff, 0xffff},
		{"8 bit one", 8, 1, 0x101},
		{"clamped", 8, 0x1ff, 0xffff},
		{"16 bit", 16, 0x1234, 0x1234},
		{"unspecified", 0, 0x1234, 0x1234},
	}
	for _, p := range patterns {
		t.Run(p.name, func(t *testing.T) {
			s := analog.Scaled{Read: func() uint16 { return p.raw }, Width: p.width}
			assert.Equal(t, p.sample, s.Sample())
		})
	}
}

func TestScaledADC(t *testing.T) {
	fake := spitest.NewMCP3w0c(10, func(cmd uint16) uint16 { return 0x3ff })
	adc := mcp3w0c.NewMCP3008(0, fake.Sclk, fake.Ssz, fake.Mosi, fake.Miso)
	s := analog.Scaled{Read: func() uint16 { return adc.Read(0) }, Width: adc.Width()}
	v := analog.NewVoltmeter(s, 3.3)
	assert.Equal(t, 3300, v.Millivolts())
}
