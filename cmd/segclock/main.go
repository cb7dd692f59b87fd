// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux

// segclock drives a 4 digit, 7-segment display showing either the elapsed
// time or the voltage on an ADC input.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "undefined"

var verbose bool

func init() {
	rootCmd.PersistentFlags().StringP("config-file", "c", "", "config file (default segclock.json, if present)")
	rootCmd.PersistentFlags().String("driver", "", "GPIO driver [gpiomem|periph] (default gpiomem)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log backend and mode changes")
	log.SetFlags(0)
	log.SetPrefix("segclock: ")
}

var rootCmd = &cobra.Command{
	Use:   "segclock",
	Short: "segclock drives a 4 digit 7-segment display from a Raspberry Pi",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	Version:       version,
}

func main() {
	if cmd, err := rootCmd.ExecuteC(); err != nil {
		logErr(cmd, err)
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "segclock %s: %s\n", cmd.Name(), err)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, so pins
// can be reverted to inputs on exit.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
