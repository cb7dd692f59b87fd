// SPDX-License-Identifier: MIT
//
// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/segclock/gpio"
	"github.com/warthog618/segclock/segment"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := loadConfig(showCmd)
	assert.Equal(t, "gpiomem", cfg.MustGet("driver").String())
	assert.Equal(t, gpio.GPIO22, cfg.MustGet("latch").Int())
	assert.Equal(t, gpio.GPIO25, cfg.MustGet("buttons.mode").Int())
	assert.Equal(t, "mcp3008", cfg.MustGet("adc.device").String())
	assert.Equal(t, 3.3, cfg.MustGet("adc.vref").Float())
	tm, err := loadTiming(cfg)
	require.Nil(t, err)
	assert.Equal(t, timing{time.Second, 2 * time.Millisecond, 200 * time.Millisecond}, tm)
}

func TestLoadConfigEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SEGCLOCK_DWELL", "3ms")
	t.Setenv("SEGCLOCK_DRIVER", "periph")
	cfg := loadConfig(showCmd)
	assert.Equal(t, "periph", cfg.MustGet("driver").String())
	tm, err := loadTiming(cfg)
	require.Nil(t, err)
	assert.Equal(t, 3*time.Millisecond, tm.dwell)
}

func TestLoadTimingInvalid(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SEGCLOCK_TICK", "0s")
	_, err := loadTiming(loadConfig(showCmd))
	assert.NotNil(t, err)
}

func TestParsePoint(t *testing.T) {
	dp, err := parsePoint(-1)
	assert.Nil(t, err)
	assert.Equal(t, segment.DecimalPoint{}, dp)
	dp, err = parsePoint(3)
	assert.Nil(t, err)
	assert.Equal(t, segment.DecimalPoint{Enabled: true, Position: 3}, dp)
	_, err = parsePoint(4)
	assert.NotNil(t, err)
}

func TestIsYAML(t *testing.T) {
	assert.True(t, isYAML("segclock.yaml"))
	assert.True(t, isYAML("/etc/segclock.YML"))
	assert.False(t, isYAML("segclock.json"))
	assert.False(t, isYAML("yaml"))
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	require.Nil(t, err)
	require.Nil(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
