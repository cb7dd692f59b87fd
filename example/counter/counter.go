// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warthog618/segclock/display"
	"github.com/warthog618/segclock/gpio"
	"github.com/warthog618/segclock/segment"
	"github.com/warthog618/segclock/shiftreg"
)

// This example drives a pair of 74HC595s with the latch on GPIO22, the clock
// on GPIO27 and the data on GPIO17.
// The display counts up from 0 to 9999, incrementing every 100ms, with the
// decimal point walking across the digits.
func main() {
	err := gpio.Open()
	if err != nil {
		panic(err)
	}
	defer gpio.Close()
	r := shiftreg.New(
		gpio.NewPin(gpio.GPIO22),
		gpio.NewPin(gpio.GPIO27),
		gpio.NewPin(gpio.GPIO17))
	defer r.Close()
	m := display.New(r)
	defer m.Blank()
	// capture exit signals to ensure the display is blanked on exit.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	next := time.Now().Add(100 * time.Millisecond)
	count := 0
	for {
		select {
		case <-quit:
			return
		default:
		}
		dp := segment.DecimalPoint{Enabled: true, Position: count % segment.NumDigits}
		m.Render(count, dp)
		if time.Now().After(next) {
			next = next.Add(100 * time.Millisecond)
			count = (count + 1) % 10000
			if count%1000 == 0 {
				fmt.Println("Count", count)
			}
		}
	}
}
