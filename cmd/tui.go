// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thermoquad/equistat/pkg/packetparse"
)

// Event log entry
type eventLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool // true for diagnostics, false for informational events
}

// TUI model
type model struct {
	source        string
	statsInterval int
	errorsOnly    bool
	stats         *packetparse.Statistics
	eventLog      []eventLogEntry
	maxLogEntries int
	synchronized  bool
	skippedBytes  uint64
	closed        bool
	width         int
	height        int
	quitting      bool
	lastPacket    *packetparse.Packet
	lastReceived  time.Time
}

// Messages
type tickMsg time.Time

// formatDuration formats a count of seconds as a human-friendly string
func formatDuration(secs int64) string {
	if secs <= 0 {
		return "0 seconds"
	}

	minutes := secs / 60
	hours := minutes / 60
	days := hours / 24
	years := days / 365

	secs %= 60
	minutes %= 60
	hours %= 24
	days %= 365

	unit := func(n int64, name string) string {
		if n == 1 {
			return "1 " + name
		}
		return fmt.Sprintf("%d %ss", n, name)
	}

	parts := []string{}
	if years > 0 {
		parts = append(parts, unit(years, "year"))
	}
	if days > 0 {
		parts = append(parts, unit(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, unit(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, unit(minutes, "minute"))
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, unit(secs, "second"))
	}

	// Join with commas and "and" for last item
	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	}
	last := parts[len(parts)-1]
	rest := strings.Join(parts[:len(parts)-1], ", ")
	return rest + ", and " + last
}

func initialModel(source string, statsInterval int, errorsOnly bool) model {
	return model{
		source:        source,
		statsInterval: statsInterval,
		errorsOnly:    errorsOnly,
		stats:         packetparse.NewStatistics(),
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		width:         80,
		height:        24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		tea.EnterAltScreen,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.stats.CalculateRates()
		return m, tickCmd()

	case syncMsg:
		m.synchronized = true
		m.skippedBytes = msg.skipped
		if msg.skipped > 0 {
			m.addLogEntry(fmt.Sprintf("Synchronized after skipping %d bytes", msg.skipped), false)
		} else {
			m.addLogEntry("Synchronized", false)
		}

	case packetMsg:
		m.stats.Update(msg.packet, msg.diags)
		m.lastPacket = msg.packet
		m.lastReceived = msg.received

		label := msg.packet.MessageType().String()
		if msg.packet.Preamble != nil {
			label = fmt.Sprintf("%s t=%d", label, msg.packet.Preamble.Timestamp)
		}

		if len(msg.diags) > 0 {
			for _, d := range msg.diags {
				m.addLogEntry(fmt.Sprintf("%s: %s", label, d.Message), true)
			}
		} else if !m.errorsOnly {
			m.addLogEntry(fmt.Sprintf("%s (clean)", label), false)
		}

	case closedMsg:
		m.closed = true
		if msg.err != nil && !isClosed(msg.err) {
			m.addLogEntry(fmt.Sprintf("Connection lost: %v", msg.err), true)
		} else {
			m.addLogEntry("Connection closed", false)
		}
	}

	return m, nil
}

func (m *model) addLogEntry(message string, isError bool) {
	entry := eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.eventLog = append(m.eventLog, entry)

	// Keep only last N entries
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statsLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	statsValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("EQUISTAT - MONITOR"))
	s.WriteString("\n")
	mode := "All packets"
	if m.errorsOnly {
		mode = "Diagnostics only"
	}
	s.WriteString(headerStyle.Render(fmt.Sprintf("Source: %s | Mode: %s | Press 'q' to quit", m.source, mode)))
	s.WriteString("\n\n")

	// Sync status
	switch {
	case m.closed:
		s.WriteString(warningStyle.Render("Connection closed"))
	case !m.synchronized:
		s.WriteString(warningStyle.Render("⏳ Waiting for sync marker..."))
	default:
		s.WriteString(statsValueStyle.Render("✓ Synchronized"))
		if m.skippedBytes > 0 {
			s.WriteString(headerStyle.Render(fmt.Sprintf(" (skipped %d bytes)", m.skippedBytes)))
		}
	}
	s.WriteString("\n\n")

	s.WriteString(boxStyle.Render(m.statsView()))
	s.WriteString("\n\n")

	// Latest packet (only shown once one has arrived)
	if m.lastPacket != nil && m.lastPacket.Preamble != nil {
		s.WriteString(statsLabelStyle.Render("Latest Packet:"))
		s.WriteString("\n")
		s.WriteString(boxStyle.Render(m.packetView()))
		s.WriteString("\n\n")
	}

	// Event log
	s.WriteString(statsLabelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	logHeight := m.height - 20 // Reserve space for header, stats and packet
	if logHeight < 5 {
		logHeight = 5
	}

	logContent := strings.Builder{}
	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.eventLog) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for _, entry := range m.eventLog[startIdx:] {
			timestamp := entry.timestamp.Format("01/02/06 15:04:05.000")
			if entry.isError {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					errorStyle.Render("✗ "+entry.message),
				))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					warningStyle.Render("ℹ "+entry.message),
				))
			}
		}
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))

	return s.String()
}

// statsView renders the statistics box
func (m model) statsView() string {
	m.stats.CalculateRates()

	var cleanPercent, diagPercent float64
	if m.stats.TotalPackets > 0 {
		cleanPercent = float64(m.stats.CleanPackets) * 100.0 / float64(m.stats.TotalPackets)
		diagPercent = float64(m.stats.TotalPackets-m.stats.CleanPackets) * 100.0 / float64(m.stats.TotalPackets)
	}

	var c strings.Builder
	c.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		statsLabelStyle.Render("Total:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.TotalPackets)),
		statsLabelStyle.Render("Clean:"), statsValueStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.CleanPackets, cleanPercent)),
		statsLabelStyle.Render("With diagnostics:"), errorStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.TotalPackets-m.stats.CleanPackets, diagPercent)),
	))

	var types []string
	for mt := packetparse.MessageType(0); mt.Valid(); mt++ {
		if n := m.stats.ByMessageType[mt]; n > 0 {
			types = append(types, fmt.Sprintf("%s: %d", mt, n))
		}
	}
	if len(types) > 0 {
		c.WriteString(fmt.Sprintf("%s %s\n", statsLabelStyle.Render("Types:"), headerStyle.Render(strings.Join(types, ", "))))
	}

	if m.stats.WrongSize > 0 || m.stats.InvalidPackets > 0 {
		c.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			statsLabelStyle.Render("Wrong Size:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.WrongSize)),
			statsLabelStyle.Render("Invalid Type:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.InvalidPackets)),
		))
	}

	c.WriteString(fmt.Sprintf("%s %s   %s %s",
		statsLabelStyle.Render("Packet Rate:"), statsValueStyle.Render(fmt.Sprintf("%.1f pkts/s", m.stats.PacketRate)),
		statsLabelStyle.Render("Diagnostic Rate:"), func() string {
			if m.stats.DiagnosticRate > 0 {
				return warningStyle.Render(fmt.Sprintf("%.1f diags/s", m.stats.DiagnosticRate))
			}
			return statsValueStyle.Render(fmt.Sprintf("%.1f diags/s", m.stats.DiagnosticRate))
		}(),
	))

	return c.String()
}

// packetView renders the summary of the latest packet
func (m model) packetView() string {
	p := m.lastPacket
	pre := p.Preamble

	var c strings.Builder
	c.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		statsLabelStyle.Render("Callsign:"), statsValueStyle.Render(pre.Callsign),
		statsLabelStyle.Render("Type:"), statsValueStyle.Render(pre.MessageType.String()),
		statsLabelStyle.Render("State:"), statsValueStyle.Render(pre.SatelliteState.String()),
	))
	c.WriteString(fmt.Sprintf("%s %s\n",
		statsLabelStyle.Render("Satellite clock:"), statsValueStyle.Render(formatDuration(pre.Timestamp)),
	))

	if ci := p.CurrentInfo; ci != nil {
		c.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			statsLabelStyle.Render("Boot count:"), statsValueStyle.Render(fmt.Sprintf("%d", ci.BootCount)),
			statsLabelStyle.Render("Next flash:"), statsValueStyle.Render(fmt.Sprintf("%ds", ci.TimeToFlash)),
		))
		c.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			statsLabelStyle.Render("L1:"), statsValueStyle.Render(fmt.Sprintf("%d mV %.1f°C", ci.L1Ref, ci.L1Temp)),
			statsLabelStyle.Render("L2:"), statsValueStyle.Render(fmt.Sprintf("%d mV %.1f°C", ci.L2Ref, ci.L2Temp)),
		))
	}

	errs := statsValueStyle.Render(fmt.Sprintf("%d", len(p.Errors)))
	if len(p.Diagnostics) > 0 {
		errs += " " + errorStyle.Render(fmt.Sprintf("(%d diagnostics)", len(p.Diagnostics)))
	}
	c.WriteString(fmt.Sprintf("%s %s   %s %s",
		statsLabelStyle.Render("Error entries:"), errs,
		statsLabelStyle.Render("Received:"), headerStyle.Render(m.lastReceived.Format("15:04:05")),
	))

	return c.String()
}
