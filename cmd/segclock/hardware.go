// SPDX-License-Identifier: MIT
//
// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/warthog618/config"
	"github.com/warthog618/segclock/analog"
	"github.com/warthog618/segclock/control"
	"github.com/warthog618/segclock/gpio"
	"github.com/warthog618/segclock/periphio"
	"github.com/warthog618/segclock/shiftreg"
	"github.com/warthog618/segclock/spi/adc0832"
	"github.com/warthog618/segclock/spi/mcp3w0c"
)

// hardware owns the GPIO backend and the lines opened on it.
type hardware struct {
	driver  string
	closers []func()
}

func openHardware(cfg *config.Config) (*hardware, error) {
	hw := &hardware{driver: cfg.MustGet("driver").String()}
	switch hw.driver {
	case "gpiomem":
		if err := gpio.Open(); err != nil {
			return nil, err
		}
		hw.closers = append(hw.closers, func() { gpio.Close() })
	case "periph":
		if err := periphio.Init(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown driver '%s'", hw.driver)
	}
	if verbose {
		log.Printf("using %s driver", hw.driver)
	}
	return hw, nil
}

// Close releases the lines and the backend, most recent first.
func (hw *hardware) Close() {
	for i := len(hw.closers) - 1; i >= 0; i-- {
		hw.closers[i]()
	}
	hw.closers = nil
}

func (hw *hardware) line(cfg *config.Config, key string) (gpio.Line, error) {
	n := cfg.MustGet(key).Int()
	switch hw.driver {
	case "periph":
		l, err := periphio.ByName(strconv.Itoa(n))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		hw.closers = append(hw.closers, func() {
			if err := l.Err(); err != nil {
				log.Printf("%s: %s", key, err)
			}
			l.Halt()
		})
		return l, nil
	default:
		p := gpio.NewPin(n)
		if p == nil {
			return nil, fmt.Errorf("%s: unknown pin '%d'", key, n)
		}
		return p, nil
	}
}

func (hw *hardware) lines(cfg *config.Config, keys ...string) ([]gpio.Line, error) {
	ll := make([]gpio.Line, len(keys))
	for i, k := range keys {
		l, err := hw.line(cfg, k)
		if err != nil {
			return nil, err
		}
		ll[i] = l
	}
	return ll, nil
}

func (hw *hardware) shiftRegister(cfg *config.Config) (*shiftreg.Register, error) {
	ll, err := hw.lines(cfg, "latch", "clock", "data")
	if err != nil {
		return nil, err
	}
	r := shiftreg.New(ll[0], ll[1], ll[2])
	hw.closers = append(hw.closers, r.Close)
	return r, nil
}

// buttons returns the reset, unused and mode buttons.
// The unused button is configured but never read.
func (hw *hardware) buttons(cfg *config.Config) ([]*control.Button, error) {
	ll, err := hw.lines(cfg, "buttons.reset", "buttons.unused", "buttons.mode")
	if err != nil {
		return nil, err
	}
	bb := make([]*control.Button, len(ll))
	for i, l := range ll {
		bb[i] = control.NewButton(l)
		hw.closers = append(hw.closers, bb[i].Close)
	}
	return bb, nil
}

// sampler returns the configured ADC channel as a 16 bit Sampler.
func (hw *hardware) sampler(cfg *config.Config) (analog.Sampler, error) {
	ll, err := hw.lines(cfg, "adc.clk", "adc.csz", "adc.di", "adc.do")
	if err != nil {
		return nil, err
	}
	tclk := cfg.MustGet("adc.tclk").Duration()
	ch := cfg.MustGet("adc.channel").Int()
	switch dev := cfg.MustGet("adc.device").String(); dev {
	case "mcp3008", "mcp3208":
		if ch < 0 || ch > 7 {
			return nil, fmt.Errorf("invalid %s channel %d", dev, ch)
		}
		var adc *mcp3w0c.MCP3w0c
		if dev == "mcp3008" {
			adc = mcp3w0c.NewMCP3008(tclk, ll[0], ll[1], ll[2], ll[3])
		} else {
			adc = mcp3w0c.NewMCP3208(tclk, ll[0], ll[1], ll[2], ll[3])
		}
		hw.closers = append(hw.closers, adc.Close)
		return analog.Scaled{
			Read:  func() uint16 { return adc.Read(ch) },
			Width: adc.Width(),
		}, nil
	case "adc0832":
		if ch < 0 || ch > 1 {
			return nil, fmt.Errorf("invalid %s channel %d", dev, ch)
		}
		tset := cfg.MustGet("adc.tset").Duration()
		adc := adc0832.New(tclk, tset, ll[0], ll[1], ll[2], ll[3])
		hw.closers = append(hw.closers, adc.Close)
		return analog.Scaled{
			Read:  func() uint16 { return uint16(adc.Read(ch)) },
			Width: adc.Width(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown adc device '%s'", dev)
	}
}

func (hw *hardware) voltmeter(cfg *config.Config) (*analog.Voltmeter, error) {
	s, err := hw.sampler(cfg)
	if err != nil {
		return nil, err
	}
	return analog.NewVoltmeter(s, cfg.MustGet("adc.vref").Float()), nil
}
