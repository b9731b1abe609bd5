// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Thermoquad/equistat/internal/logging"
	"github.com/Thermoquad/equistat/pkg/locator"
)

var rawLogCmd = &cobra.Command{
	Use:   "raw_log",
	Short: "Display the raw capture stream with packet markers",
	Long: `Echo the capture stream as it arrives and mark each framed packet.

Every complete packet found in the stream is followed by a marker line with its
message type, timestamp and diagnostic count. Use this to inspect what the
ground station is actually receiving.

Supports both serial and WebSocket connections.`,
	RunE: runRawLog,
}

func init() {
	rootCmd.AddCommand(rawLogCmd)
}

func runRawLog(cmd *cobra.Command, args []string) error {
	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("EQUiStat - Raw Capture Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	err = rawLog(conn, os.Stdout, connInfo)
	if isClosed(err) {
		logging.LogConnection(connInfo, "closed")
		return nil
	}
	return err
}

// rawLog copies r to w, writing a marker line after each framed packet
func rawLog(r io.Reader, w io.Writer, source string) error {
	decoder := newDecoder()
	framer := locator.NewFramer()
	buf := make([]byte, 128)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			logging.LogFrame(source, buf[:n])
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
			for _, span := range framer.Feed(buf[:n]) {
				packet, diags := decoder.Decode(span)
				fmt.Fprintf(w, "\n--- packet %s t=%d diagnostics=%d ---\n",
					packet.MessageType(), packet.Preamble.Timestamp, len(diags))
			}
		}
		if err != nil {
			if framer.Dropped() > 0 {
				logging.Warn("Abandoned packets containing non-hex bytes", zap.Uint64("dropped", framer.Dropped()))
			}
			return err
		}
	}
}
