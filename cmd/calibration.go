// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Thermoquad/equistat/pkg/calibration"
)

var calibrationCmd = &cobra.Command{
	Use:   "calibration",
	Short: "Inspect calibration tables",
	Long: `Validate and print the calibration tables used to decode packets.

The embedded table is used unless --calibration names a YAML or JSON file.`,
}

var calibrationCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a calibration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := calibration.Load(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: OK\n", args[0])
		fmt.Fprintf(out, "  Signals:          %d\n", t.Signals())
		fmt.Fprintf(out, "  Error codes:      %d\n", t.ErrorCodes())
		fmt.Fprintf(out, "  Error locations:  %d\n", t.ErrorLocations())
		fmt.Fprintf(out, "  Error bucket:     %ds\n", t.ErrorTimeBucketSize())
		fmt.Fprintf(out, "  Batches:          IDLE=%d ATTITUDE=%d FLASH_BURST=%d FLASH_CMP=%d LOW_POWER=%d\n",
			t.IdleBatches(), t.AttitudeBatches(), t.FlashBurstBatches(), t.FlashCmpBatches(), t.LowPowerBatches())
		return nil
	},
}

var calibrationShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a calibration table as YAML",
	Long: `Print a calibration table as YAML.

With no argument the active table is printed: the embedded table, or the file
named by --calibration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := table
		if len(args) == 1 {
			loaded, err := calibration.Load(args[0])
			if err != nil {
				return err
			}
			t = loaded
		}

		data, err := yaml.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to encode calibration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(calibrationCmd)
	calibrationCmd.AddCommand(calibrationCheckCmd)
	calibrationCmd.AddCommand(calibrationShowCmd)
}
