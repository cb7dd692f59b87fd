// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package segment encodes decimal digits for a 4 digit, common anode,
// 7-segment display.
//
// Patterns are active low, so a segment is lit by clearing its bit.
// Bits 0-6 are segments a-g and bit 7 is the decimal point.
package segment

// Pattern is the segment drive byte for a single digit.
type Pattern byte

// Select is the one-hot digit select byte for a display position.
type Select byte

// DecimalPoint determines which digit, if any, shows its decimal point.
type DecimalPoint struct {
	Enabled bool
	// Position is the digit index, 0 being the leftmost.
	Position int
}

// NumDigits is the number of digits on the display.
const NumDigits = 4

const (
	dpBit = 0x80

	// Blank has all segments, including the decimal point, off.
	Blank Pattern = 0xff
)

// common cathode patterns (g-f-e-d-c-b-a) for 0-9.
var cathode = [10]byte{
	0x3f, // 0
	0x06, // 1
	0x5b, // 2
	0x4f, // 3
	0x66, // 4
	0x6d, // 5
	0x7d, // 6
	0x07, // 7
	0x7f, // 8
	0x6f, // 9
}

var patterns = func() (pp [10]Pattern) {
	for i, c := range cathode {
		pp[i] = Pattern(^c)
	}
	return
}()

// Selects are the digit select masks, leftmost digit first.
var Selects = [NumDigits]Select{0x01, 0x02, 0x04, 0x08}

// Encode returns the active low pattern for a decimal digit.
//
// The digit is expected to be in the range 0-9, and is reduced modulo 10 if
// it is not.
func Encode(digit int) Pattern {
	digit %= 10
	if digit < 0 {
		digit = -digit
	}
	return patterns[digit]
}

// WithDecimalPoint returns the pattern with the decimal point lit.
// The digit segments are unchanged.
func (p Pattern) WithDecimalPoint() Pattern {
	return p &^ dpBit
}

// Digits splits a value into its thousands, hundreds, tens and units.
//
// Values outside 0-9999 are truncated to their low 4 digits.
// Negative values are displayed by magnitude.
func Digits(value int) [NumDigits]int {
	dd := [NumDigits]int{
		(value / 1000) % 10,
		(value / 100) % 10,
		(value / 10) % 10,
		value % 10,
	}
	for i, d := range dd {
		if d < 0 {
			dd[i] = -d
		}
	}
	return dd
}

// Patterns returns the patterns for the four digits of value, with the
// decimal point applied as per dp.
func Patterns(value int, dp DecimalPoint) [NumDigits]Pattern {
	var pp [NumDigits]Pattern
	for i, d := range Digits(value) {
		p := Encode(d)
		if dp.Enabled && i == dp.Position {
			p = p.WithDecimalPoint()
		}
		pp[i] = p
	}
	return pp
}
