// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/equistat/pkg/locator"
)

var (
	packetTestTimeout int
)

// packet_test exit codes
const (
	exitPacketReceived = 0
	exitTimeout        = 1
	exitConnection     = 2
)

var packetTestCmd = &cobra.Command{
	Use:   "packet_test",
	Short: "Test connection by waiting for a framed packet",
	Long: `Wait for a complete packet on the connection until timeout.

This command connects to a serial port or WebSocket and scans the stream for
the sync marker. It ignores bytes outside a packet and waits for a complete
hex span of packet length. The packet is decoded once and summarised.

Exit codes:
  0 - Packet received before timeout
  1 - Timeout reached without receiving a packet
  2 - Connection error

Useful for testing connectivity to a ground-station bridge.`,
	RunE: runPacketTest,
}

func init() {
	rootCmd.AddCommand(packetTestCmd)
	packetTestCmd.Flags().IntVar(&packetTestTimeout, "timeout", 10, "Timeout in seconds to wait for a packet")
}

func runPacketTest(cmd *cobra.Command, args []string) error {
	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(exitConnection)
	}
	defer conn.Close()

	fmt.Printf("EQUiStat - Packet Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds\n", packetTestTimeout)
	fmt.Printf("Waiting for packet...\n\n")

	os.Exit(waitForPacket(conn, os.Stdout, os.Stderr, time.Duration(packetTestTimeout)*time.Second))
	return nil
}

// waitForPacket reads r until a packet is framed, the reader fails or the
// timeout elapses, and returns the matching exit code
func waitForPacket(r io.Reader, stdout, stderr io.Writer, timeout time.Duration) int {
	framer := locator.NewFramer()
	buf := make([]byte, 128)

	// Channel for packet reception
	packetChan := make(chan string, 1)
	errChan := make(chan error, 1)

	// Reader goroutine
	go func() {
		for {
			n, err := r.Read(buf)
			if n > 0 {
				if spans := framer.Feed(buf[:n]); len(spans) > 0 {
					if skipped := framer.Skipped(); skipped > 0 {
						fmt.Fprintf(stdout, "(skipped %d bytes before sync)\n", skipped)
					}
					packetChan <- spans[0]
					return
				}
			}
			if err != nil {
				errChan <- err
				return
			}
		}
	}()

	// Wait for packet or timeout
	select {
	case span := <-packetChan:
		packet, diags := newDecoder().Decode(span)
		pre := packet.Preamble
		fmt.Fprintf(stdout, "SUCCESS: Received packet\n")
		fmt.Fprintf(stdout, "  Callsign: %s\n", pre.Callsign)
		fmt.Fprintf(stdout, "  Type: %s\n", pre.MessageType)
		fmt.Fprintf(stdout, "  State: %s\n", pre.SatelliteState)
		fmt.Fprintf(stdout, "  Timestamp: %d\n", pre.Timestamp)
		fmt.Fprintf(stdout, "  Diagnostics: %d\n", len(diags))
		return exitPacketReceived

	case err := <-errChan:
		fmt.Fprintf(stderr, "Read error: %v\n", err)
		return exitConnection

	case <-time.After(timeout):
		fmt.Fprintf(stderr, "TIMEOUT: No packet received within %s\n", timeout)
		return exitTimeout
	}
}
