// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Thermoquad/equistat/internal/logging"
	"github.com/Thermoquad/equistat/pkg/locator"
	"github.com/Thermoquad/equistat/pkg/packetparse"
)

var (
	decodeFormat string
	decodeStats  bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [capture files...]",
	Short: "Decode packets from capture files or the built-in samples",
	Long: `Decode EQUiSat packets and print each record with its diagnostics.

With no arguments the built-in sample packets are decoded. Otherwise each
capture file is scanned for the sync marker (the hex-encoded callsign) and
every 510-character span found is decoded. Line breaks inside a capture are
ignored.

Output formats:
  text - human-readable, colored on a terminal
  json - one indented JSON document per packet
  cbor - a CBOR sequence, one data item per packet

Use --stats to print a summary to stderr after decoding.`,
	Args: cobra.ArbitraryArgs,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", formatText, "Output format (text, json, cbor)")
	decodeCmd.Flags().BoolVar(&decodeStats, "stats", false, "Print statistics to stderr when done")
}

func runDecode(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	color := out == os.Stdout && isTerminal(os.Stdout)

	writer, err := newPacketWriter(out, decodeFormat, color)
	if err != nil {
		return err
	}

	decoder := newDecoder()
	stats := packetparse.NewStatistics()

	emit := func(source, raw string) error {
		p, diags := decoder.Decode(raw)
		stats.Update(p, diags)
		return writer.WritePacket(source, p)
	}

	if err := scanInputs(args, emit); err != nil {
		return err
	}

	if decodeStats {
		fmt.Fprint(cmd.ErrOrStderr(), stats.String())
	}
	return nil
}

// scanInputs calls fn for every packet span in the capture files at paths,
// or for each built-in sample when no paths are given
func scanInputs(paths []string, fn func(source, raw string) error) error {
	if len(paths) == 0 {
		for _, s := range packetparse.Samples {
			if err := fn(s.Name, s.Hex); err != nil {
				return err
			}
		}
		return nil
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read capture: %w", err)
		}

		n := 0
		for span := range locator.Find(string(data)) {
			if err := fn(fmt.Sprintf("%s #%d", path, n), span); err != nil {
				return err
			}
			n++
		}

		logging.Info("Scanned capture",
			zap.String("path", path),
			zap.Int("packets", n),
		)
		if n == 0 {
			logging.Warn("No packets found in capture", zap.String("path", path))
		}
	}
	return nil
}
