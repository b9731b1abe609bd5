// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Thermoquad/equistat/internal/logging"
	"github.com/Thermoquad/equistat/pkg/locator"
	"github.com/Thermoquad/equistat/pkg/packetparse"
)

var (
	errorsOnly    bool
	statsInterval int
	useTUI        bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Decode packets from a live ground-station link",
	Long: `Read a live capture stream, frame packets and decode them as they arrive.

The stream is scanned for the sync marker exactly like a capture file. Each
decoded packet is checked for:
  - Wrong-size spans
  - Unknown message types and satellite states
  - Error log entries with unknown codes or locations

By default every packet is displayed. Use --errors-only to display only packets
that produced diagnostics.

Statistics summaries are printed at a configurable interval in text mode and
updated continuously in the terminal UI.

Supports both serial and WebSocket connections.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&errorsOnly, "errors-only", false, "Show only packets with diagnostics")
	monitorCmd.Flags().IntVar(&statsInterval, "stats-interval", 60, "Statistics update interval (seconds)")
	monitorCmd.Flags().BoolVar(&useTUI, "tui", true, "Use terminal UI (false for text mode)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if useTUI {
		return runTUIMode(conn, connInfo)
	}
	return runTextMode(conn, connInfo)
}

// packetMsg carries one decoded packet from the reader to the consumer
type packetMsg struct {
	received time.Time
	packet   *packetparse.Packet
	diags    []packetparse.Diagnostic
}

// syncMsg reports the first framed packet
type syncMsg struct {
	skipped uint64
}

// closedMsg reports the end of the capture stream
type closedMsg struct {
	err error
}

// runTUIMode runs the monitor in TUI mode
func runTUIMode(conn Connection, connInfo string) error {
	decoder := newDecoder()
	framer := locator.NewFramer()

	m := initialModel(connInfo, statsInterval, errorsOnly)
	p := tea.NewProgram(m)

	go func() {
		chunks, errs := readChunks(conn, connInfo)
		synchronized := false

		handle := func(data []byte) {
			for _, span := range framer.Feed(data) {
				if !synchronized {
					synchronized = true
					p.Send(syncMsg{skipped: framer.Skipped()})
				}
				packet, diags := decoder.Decode(span)
				p.Send(packetMsg{received: time.Now(), packet: packet, diags: diags})
			}
		}

		for {
			select {
			case data := <-chunks:
				handle(data)
			case err := <-errs:
				drainChunks(chunks, handle)
				p.Send(closedMsg{err: err})
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// runTextMode runs the monitor in text mode
func runTextMode(conn Connection, connInfo string) error {
	fmt.Printf("EQUiStat - Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Statistics interval: %d seconds\n", statsInterval)
	if errorsOnly {
		fmt.Printf("Mode: Packets with diagnostics only\n")
	} else {
		fmt.Printf("Mode: All packets\n")
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	decoder := newDecoder()
	framer := locator.NewFramer()
	stats := packetparse.NewStatistics()
	writer := &textWriter{w: os.Stdout, color: isTerminal(os.Stdout)}
	synchronized := false

	statsTicker := time.NewTicker(time.Duration(statsInterval) * time.Second)
	defer statsTicker.Stop()

	handle := func(data []byte) {
		for _, span := range framer.Feed(data) {
			if !synchronized {
				synchronized = true
				if skipped := framer.Skipped(); skipped > 0 {
					fmt.Printf("[SYNC] Synchronized after skipping %d bytes\n\n", skipped)
				} else {
					fmt.Printf("[SYNC] Synchronized\n\n")
				}
			}

			packet, diags := decoder.Decode(span)
			stats.Update(packet, diags)
			if len(diags) > 0 || !errorsOnly {
				if err := writer.WritePacket(time.Now().Format("15:04:05.000"), packet); err != nil {
					logging.Error("Failed to write packet", zap.Error(err))
				}
			}
		}
	}

	chunks, errs := readChunks(conn, connInfo)
	for {
		select {
		case data := <-chunks:
			handle(data)

		case err := <-errs:
			drainChunks(chunks, handle)
			fmt.Println()
			fmt.Print(stats.String())
			if isClosed(err) {
				logging.LogConnection(connInfo, "closed")
				return nil
			}
			return fmt.Errorf("read error: %w", err)

		case <-statsTicker.C:
			fmt.Println()
			fmt.Print(stats.String())
			fmt.Println()
		}
	}
}

// drainChunks handles chunks already queued when the reader stopped
func drainChunks(chunks <-chan []byte, handle func([]byte)) {
	for {
		select {
		case data := <-chunks:
			handle(data)
		default:
			return
		}
	}
}
