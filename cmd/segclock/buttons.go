// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	buttonsCmd.Flags().BoolVarP(&buttonsOpts.Short, "short", "s", false, "single line output format")
	buttonsCmd.SetHelpTemplate(buttonsCmd.HelpTemplate() + extendedButtonsHelp)
	rootCmd.AddCommand(buttonsCmd)
}

var (
	buttonsCmd = &cobra.Command{
		Use:   "buttons",
		Short: "Report which buttons are pressed",
		Args:  cobra.NoArgs,
		RunE:  buttons,
	}
	buttonsOpts = struct {
		Short bool
	}{}
)

var extendedButtonsHelp = `
Buttons are reported in the order reset, unused, mode.
The short format reports 1 for pressed and 0 for released.

Note that reading the buttons forces their pins into input mode with pull up.
`

var buttonNames = []string{"reset", "unused", "mode"}

func buttons(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	hw, err := openHardware(cfg)
	if err != nil {
		return err
	}
	defer hw.Close()
	bb, err := hw.buttons(cfg)
	if err != nil {
		return err
	}
	pressed := make([]bool, len(bb))
	for i, b := range bb {
		pressed[i] = b.Pressed()
	}
	if buttonsOpts.Short {
		printButtonsShort(pressed)
	} else {
		printButtons(pressed)
	}
	return nil
}

func printButtons(pressed []bool) {
	for i, p := range pressed {
		fmt.Printf("%-6s: %s\n", buttonNames[i], buttonState(p))
	}
}

func printButtonsShort(pressed []bool) {
	fmt.Printf("%d", bool2Int(pressed[0]))
	for _, p := range pressed[1:] {
		fmt.Printf(" %d", bool2Int(p))
	}
	fmt.Println()
}

func buttonState(pressed bool) string {
	if pressed {
		return "pressed"
	}
	return "released"
}

func bool2Int(b bool) int {
	if b {
		return 1
	}
	return 0
}
