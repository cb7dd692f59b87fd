// SPDX-License-Identifier: MIT
//
// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	voltsCmd.Flags().BoolVarP(&voltsOpts.Millivolts, "millivolts", "m", false, "display the reading in millivolts, as shown on the display")
	rootCmd.AddCommand(voltsCmd)
}

var (
	voltsCmd = &cobra.Command{
		Use:   "volts",
		Short: "Read the voltage on the ADC input",
		Args:  cobra.NoArgs,
		RunE:  volts,
	}
	voltsOpts = struct {
		Millivolts bool
	}{}
)

func volts(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	hw, err := openHardware(cfg)
	if err != nil {
		return err
	}
	defer hw.Close()
	vm, err := hw.voltmeter(cfg)
	if err != nil {
		return err
	}
	if voltsOpts.Millivolts {
		fmt.Println(vm.Millivolts())
		return nil
	}
	fmt.Printf("%.3f V\n", vm.Volts())
	return nil
}
