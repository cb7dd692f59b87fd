// SPDX-License-Identifier: MIT
//
// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/blob/decoder/yaml"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/segclock/analog"
	"github.com/warthog618/segclock/clock"
	"github.com/warthog618/segclock/control"
	"github.com/warthog618/segclock/display"
	"github.com/warthog618/segclock/gpio"
)

// The default pin assignments suit a Pi with the display shift registers on
// GPIO17/22/27, the buttons on GPIO23-25 and an MCP3008 on the pins used by
// the ADC examples. All may be altered via configuration (flag, env or
// config file).
func defaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"driver": "gpiomem",
		"latch":  gpio.GPIO22,
		"clock":  gpio.GPIO27,
		"data":   gpio.GPIO17,
		"buttons": map[string]interface{}{
			"reset":  gpio.GPIO23,
			"unused": gpio.GPIO24,
			"mode":   gpio.GPIO25,
		},
		"adc": map[string]interface{}{
			"device":  "mcp3008",
			"channel": 0,
			"tclk":    "500ns",
			"tset":    "500ns", // ADC0832 only, raised to tclk if shorter
			"clk":     gpio.GPIO21,
			"csz":     gpio.GPIO6,
			"di":      gpio.GPIO19,
			"do":      gpio.GPIO26,
			"vref":    analog.DefaultReference,
		},
		"tick":     clock.DefaultTick.String(),
		"dwell":    display.DefaultDwell.String(),
		"debounce": control.DefaultDebounce.String(),
	}
}

// loadConfig builds the configuration stack. Highest priority sources
// first - flags override environment which overrides the config file.
func loadConfig(cmd *cobra.Command) *config.Config {
	def := dict.New(dict.WithMap(defaultConfig()))
	cfg := config.New(
		dict.New(dict.WithMap(flagConfig(cmd))),
		env.New(env.WithEnvPrefix("SEGCLOCK_")),
		config.WithDefault(def))
	// the file may be JSON or YAML, as per its extension.
	var dec blob.Decoder = json.NewDecoder()
	if name, err := cfg.Get("config.file"); err == nil && isYAML(name.String()) {
		dec = yaml.NewDecoder()
	}
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "segclock.json", dec))
	return cfg.GetConfig("", config.WithMust)
}

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// flagConfig returns the persistent flags explicitly set on the command
// line, keyed as per the config.
func flagConfig(cmd *cobra.Command) map[string]interface{} {
	m := map[string]interface{}{}
	flags := cmd.Flags()
	if f := flags.Lookup("config-file"); f != nil && f.Changed {
		m["config"] = map[string]interface{}{"file": f.Value.String()}
	}
	if f := flags.Lookup("driver"); f != nil && f.Changed {
		m["driver"] = f.Value.String()
	}
	return m
}

// timing is the timing section of the config.
type timing struct {
	tick     time.Duration
	dwell    time.Duration
	debounce time.Duration
}

func loadTiming(cfg *config.Config) (timing, error) {
	t := timing{
		tick:     cfg.MustGet("tick").Duration(),
		dwell:    cfg.MustGet("dwell").Duration(),
		debounce: cfg.MustGet("debounce").Duration(),
	}
	if t.tick <= 0 {
		return t, fmt.Errorf("tick must be positive: %s", t.tick)
	}
	if t.dwell < 0 || t.debounce < 0 {
		return t, fmt.Errorf("dwell (%s) and debounce (%s) must not be negative", t.dwell, t.debounce)
	}
	return t, nil
}
