// SPDX-License-Identifier: MIT
//
// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/warthog618/segclock/display"
	"github.com/warthog618/segclock/segment"
)

func init() {
	showCmd.Flags().IntVarP(&showOpts.Point, "dp", "p", -1, "digit (0-3) to show the decimal point on")
	showCmd.Flags().DurationVarP(&showOpts.For, "for", "f", 5*time.Second, "time to show the value")
	showCmd.SetHelpTemplate(showCmd.HelpTemplate() + extendedShowHelp)
	rootCmd.AddCommand(showCmd)
}

var (
	showCmd = &cobra.Command{
		Use:     "show <value>",
		Short:   "Show a fixed value on the display",
		Example: "  segclock show 1234 --dp 1 --for 10s",
		Args:    cobra.ExactArgs(1),
		RunE:    show,
	}
	showOpts = struct {
		Point int
		For   time.Duration
	}{}
)

var extendedShowHelp = `
Values:
  Values are decimal and only the low 4 digits are shown.

Useful for checking the display wiring.
`

func show(cmd *cobra.Command, args []string) error {
	value, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("can't parse value '%s'", args[0])
	}
	dp, err := parsePoint(showOpts.Point)
	if err != nil {
		return err
	}
	cfg := loadConfig(cmd)
	t, err := loadTiming(cfg)
	if err != nil {
		return err
	}
	hw, err := openHardware(cfg)
	if err != nil {
		return err
	}
	defer hw.Close()
	r, err := hw.shiftRegister(cfg)
	if err != nil {
		return err
	}
	clk := clockwork.NewRealClock()
	disp := display.New(r, display.WithDwell(t.dwell), display.WithClock(clk))
	defer disp.Blank()

	ctx, cancel := signalContext()
	defer cancel()
	deadline := clk.After(showOpts.For)
	for {
		select {
		case <-deadline:
			return nil
		case <-ctx.Done():
			return nil
		default:
			disp.Render(value, dp)
		}
	}
}

func parsePoint(p int) (segment.DecimalPoint, error) {
	switch {
	case p < 0:
		return segment.DecimalPoint{}, nil
	case p < segment.NumDigits:
		return segment.DecimalPoint{Enabled: true, Position: p}, nil
	default:
		return segment.DecimalPoint{}, fmt.Errorf("invalid decimal point position %d", p)
	}
}
