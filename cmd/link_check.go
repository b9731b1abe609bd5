// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/equistat/pkg/locator"
)

var linkCheckCmd = &cobra.Command{
	Use:   "link_check",
	Short: "Test ground-station link stability",
	Long: `Listen on the connection for a fixed duration without decoding packets.

Every chunk received is logged with its size, and the number of packets framed
from the stream is reported at the end. Useful for debugging connection
stability issues.

Exit codes:
  0 - Test completed normally
  1 - Test failed
  2 - Connection error`,
	RunE: runLinkCheck,
}

var linkCheckDuration int

// errLinkFailed reports a connection error during a link check
var errLinkFailed = errors.New("connection error during link check")

func init() {
	rootCmd.AddCommand(linkCheckCmd)
	linkCheckCmd.Flags().IntVar(&linkCheckDuration, "duration", 30, "Test duration in seconds")
}

func runLinkCheck(cmd *cobra.Command, args []string) error {
	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Link Stability Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Duration: %d seconds\n\n", linkCheckDuration)

	if err := linkCheck(conn, connInfo, os.Stdout, time.Duration(linkCheckDuration)*time.Second); err != nil {
		os.Exit(1)
	}
	return nil
}

// linkCheck listens on r for duration and reports what arrived
func linkCheck(r io.Reader, source string, out io.Writer, duration time.Duration) error {
	chunks, errs := readChunks(r, source)
	framer := locator.NewFramer()

	start := time.Now()
	endTime := start.Add(duration)
	bytesReceived := 0
	chunksReceived := 0
	packets := 0

	count := func(data []byte) {
		bytesReceived += len(data)
		chunksReceived++
		packets += len(framer.Feed(data))
	}

	results := func(result string) {
		fmt.Fprintf(out, "\n--- Test Results ---\n")
		fmt.Fprintf(out, "Duration: %v\n", time.Since(start).Round(time.Millisecond))
		fmt.Fprintf(out, "Chunks received: %d\n", chunksReceived)
		fmt.Fprintf(out, "Bytes received: %d\n", bytesReceived)
		fmt.Fprintf(out, "Packets framed: %d\n", packets)
		fmt.Fprintf(out, "Result: %s\n", result)
	}

	fmt.Fprintf(out, "Listening for data...\n\n")

	heartbeat := time.NewTicker(time.Second)
	defer heartbeat.Stop()
	deadline := time.NewTimer(duration)
	defer deadline.Stop()

	for {
		select {
		case data := <-chunks:
			count(data)
			fmt.Fprintf(out, "[%s] Received %d bytes\n", time.Now().Format("15:04:05.000"), len(data))

		case err := <-errs:
			drainChunks(chunks, count)
			fmt.Fprintf(out, "\n[%s] Connection error: %v\n", time.Now().Format("15:04:05.000"), err)
			results("FAILED (connection error)")
			return fmt.Errorf("%w: %v", errLinkFailed, err)

		case <-heartbeat.C:
			// Just a heartbeat to show the test is running
			fmt.Fprintf(out, "[%s] Still connected... (%.0fs remaining)\n",
				time.Now().Format("15:04:05.000"), time.Until(endTime).Seconds())

		case <-deadline.C:
			results("PASSED (connection stable)")
			return nil
		}
	}
}
