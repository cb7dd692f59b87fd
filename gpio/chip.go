// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package gpio

import (
	"os"
	"strings"
)

// Chipset identifies the GPIO controller.
type Chipset int

const (
	// BCM2835 covers the Pi 1 to Pi 3, which share a register layout.
	BCM2835 Chipset = iota
	// BCM2711 is the Pi 4, which has a different pull register layout.
	BCM2711
)

var chipset = BCM2835

// Chip returns the chipset identified when the GPIO memory was opened.
func Chip() Chipset {
	return chipset
}

func (c Chipset) String() string {
	switch c {
	case BCM2711:
		return "bcm2711"
	default:
		return "bcm2835"
	}
}

// compatiblePath is overridden in tests.
var compatiblePath = "/proc/device-tree/compatible"

func detectChip() Chipset {
	b, err := os.ReadFile(compatiblePath)
	if err != nil {
		return BCM2835
	}
	return chipFromCompatible(string(b))
}

// The compatible file is a list of NUL separated strings.
func chipFromCompatible(s string) Chipset {
	for _, c := range strings.Split(s, "\x00") {
		if c == "brcm,bcm2711" {
			return BCM2711
		}
	}
	return BCM2835
}
