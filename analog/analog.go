// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package analog converts ADC readings to the voltage shown by the display.
package analog

// DefaultReference is the full scale voltage of the ADC.
const DefaultReference = 3.3

// FullScale is the value of a full scale sample.
const FullScale = 0xffff

// Sampler provides 16 bit samples of an analog input.
type Sampler interface {
	Sample() uint16
}

// SamplerFunc adapts a function to a Sampler.
type SamplerFunc func() uint16

// Sample implements Sampler.
func (f SamplerFunc) Sample() uint16 {
	return f()
}

// Scaled adapts a channel of an ADC of arbitrary width to a Sampler.
type Scaled struct {
	// Read returns the raw reading, right aligned.
	Read func() uint16
	// Width is the number of bits in a raw reading, 1-16.
	Width uint
}

// Sample implements Sampler, scaling the raw reading to 16 bits.
func (s Scaled) Sample() uint16 {
	if s.Width == 0 || s.Width >= 16 {
		return s.Read()
	}
	full := uint32(1)<<s.Width - 1
	raw := uint32(s.Read())
	if raw > full {
		raw = full
	}
	return uint16(raw * FullScale / full)
}

// Voltmeter converts samples to volts.
type Voltmeter struct {
	s   Sampler
	ref float64
}

// NewVoltmeter creates a Voltmeter with the given full scale reference voltage.
// A non-positive reference selects the DefaultReference.
func NewVoltmeter(s Sampler, reference float64) *Voltmeter {
	if reference <= 0 {
		reference = DefaultReference
	}
	return &Voltmeter{s: s, ref: reference}
}

// Reference returns the full scale voltage.
func (v *Voltmeter) Reference() float64 {
	return v.ref
}

// Volts samples the input and returns it in volts.
func (v *Voltmeter) Volts() float64 {
	return ToVolts(v.s.Sample(), v.ref)
}

// Millivolts samples the input and returns it in whole millivolts.
func (v *Voltmeter) Millivolts() int {
	return ToMillivolts(v.s.Sample(), v.ref)
}

// ToVolts converts a 16 bit sample to volts.
func ToVolts(sample uint16, reference float64) float64 {
	return float64(sample) / FullScale * reference
}

// ToMillivolts converts a 16 bit sample to whole millivolts, truncating
// any fraction.
func ToMillivolts(sample uint16, reference float64) int {
	return int(ToVolts(sample, reference) * 1000)
}
