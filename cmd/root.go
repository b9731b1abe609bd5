// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Thermoquad/equistat/internal/logging"
	"github.com/Thermoquad/equistat/pkg/calibration"
	"github.com/Thermoquad/equistat/pkg/packetparse"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Decoder flags
	calibrationPath string
	logLevel        string

	// table is the calibration table selected by --calibration
	table *calibration.Table
)

var rootCmd = &cobra.Command{
	Use:   "equistat",
	Short: "EQUiSat Telemetry Packet Decoder",
	Long: `EQUiStat - A CLI tool for decoding EQUiSat telemetry packets.

Decodes the ASCII-hex packets downlinked by the satellite into calibrated
readings: power rails, attitude sensors, flash diagnostics and the onboard
error log. Packets can come from capture files or from a live ground-station
link.

Connection modes (monitor, raw_log, packet_test):
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the EQUISTAT_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.

Calibration constants are embedded. Use --calibration to load a YAML or JSON
calibration file instead.`,
	Version:           "1.0.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Decoder flags
	rootCmd.PersistentFlags().StringVarP(&calibrationPath, "calibration", "c", "", "Calibration file (YAML or JSON); embedded table if empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent if empty, see "+logging.LogLevelEnvVar)
}

// setup initializes logging and selects the calibration table
func setup(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}

	if calibrationPath == "" {
		table = calibration.Default()
		return nil
	}

	t, err := calibration.Load(calibrationPath)
	if err != nil {
		return fmt.Errorf("failed to load calibration: %w", err)
	}
	logging.Info("Loaded calibration table",
		zap.String("path", calibrationPath),
		zap.Int("signals", t.Signals()),
	)
	table = t
	return nil
}

// newDecoder creates a packet decoder for the selected calibration table
func newDecoder() *packetparse.Decoder {
	return packetparse.NewDecoder(table, packetparse.WithLogger(logging.GetLogger()))
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
