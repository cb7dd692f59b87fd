// SPDX-License-Identifier: MIT
//
// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"log"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/warthog618/segclock/clock"
	"github.com/warthog618/segclock/control"
	"github.com/warthog618/segclock/display"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Display the elapsed time, or the voltage while the mode button is held",
	Long: `Run the display until interrupted.

The display shows the elapsed time as MM.SS, wrapping at 99.59.
Holding the mode button shows the ADC voltage as V.mmm instead.
Pressing the reset button returns the elapsed time to 00.00.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
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
	bb, err := hw.buttons(cfg)
	if err != nil {
		return err
	}
	vm, err := hw.voltmeter(cfg)
	if err != nil {
		return err
	}
	clk := clockwork.NewRealClock()
	disp := display.New(r, display.WithDwell(t.dwell), display.WithClock(clk))
	keeper := clock.New()
	options := []control.Option{
		control.WithDebounce(t.debounce),
		control.WithClock(clk),
	}
	if verbose {
		options = append(options, control.WithModeHandler(func(m control.Mode) {
			log.Printf("showing %s", m)
		}))
	}
	a := control.New(disp, keeper, vm, bb[0], bb[2], options...)

	ctx, cancel := signalContext()
	defer cancel()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		keeper.Run(ctx, clk, t.tick)
	}()
	a.Run(ctx)
	wg.Wait()
	if verbose {
		log.Printf("stopped at %s", keeper.Snapshot())
	}
	return nil
}
