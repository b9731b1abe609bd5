// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/equistat/pkg/packetparse"
)

var browseCmd = &cobra.Command{
	Use:   "browse [capture files...]",
	Short: "Browse decoded packets interactively",
	Long: `Decode capture files (or the built-in samples) and browse the packets.

The packet list is on the left and the selected packet is shown in full on the
right.

Keys:
  up/down  select packet (or scroll the packet view)
  tab      switch focus between the list and the packet view
  q        quit`,
	Args: cobra.ArbitraryArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	decoder := newDecoder()
	var entries []browseEntry

	err := scanInputs(args, func(source, raw string) error {
		p, _ := decoder.Decode(raw)
		entries = append(entries, browseEntry{source: source, packet: p})
		return nil
	})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no packets to browse")
	}

	p := tea.NewProgram(newBrowseModel(entries), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// browseEntry is one decoded packet in the browser
type browseEntry struct {
	source string
	packet *packetparse.Packet
}

// Implement list.Item interface
func (e browseEntry) Title() string {
	if e.packet.Preamble == nil {
		return "WRONG SIZE"
	}
	return fmt.Sprintf("%s t=%d", e.packet.MessageType(), e.packet.Preamble.Timestamp)
}

func (e browseEntry) Description() string {
	if n := len(e.packet.Diagnostics); n > 0 {
		return fmt.Sprintf("%s (%d diagnostics)", e.source, n)
	}
	return e.source
}

func (e browseEntry) FilterValue() string { return e.source }

type browseFocus int

const (
	focusPacketList browseFocus = iota
	focusPacketView
)

const browseListWidth = 36

type browseModel struct {
	packets  list.Model
	view     viewport.Model
	focus    browseFocus
	selected int
	width    int
	height   int
}

func newBrowseModel(entries []browseEntry) browseModel {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = e
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.SetHeight(2)
	packets := list.New(items, delegate, browseListWidth, 20)
	packets.Title = "Packets"
	packets.SetShowStatusBar(false)
	packets.SetShowHelp(false)
	packets.SetFilteringEnabled(false)

	m := browseModel{
		packets:  packets,
		view:     viewport.New(80, 20),
		selected: -1,
		width:    120,
		height:   24,
	}
	m.showSelected()
	return m
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.focus == focusPacketList {
				m.focus = focusPacketView
			} else {
				m.focus = focusPacketList
			}
			return m, nil
		}

		if m.focus == focusPacketView {
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
		m.packets, cmd = m.packets.Update(msg)
		m.showSelected()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.packets.SetSize(browseListWidth, msg.Height-2)
		m.view.Width = msg.Width - browseListWidth - 4
		m.view.Height = msg.Height - 2
	}

	return m, nil
}

// showSelected loads the selected packet into the viewport
func (m *browseModel) showSelected() {
	idx := m.packets.Index()
	if idx == m.selected {
		return
	}
	m.selected = idx

	e, ok := m.packets.SelectedItem().(browseEntry)
	if !ok {
		m.view.SetContent("")
		return
	}
	m.view.SetContent(packetparse.FormatPacket(e.packet))
	m.view.GotoTop()
}

func (m browseModel) View() string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))
	focused := border.BorderForeground(lipgloss.Color("12"))

	listStyle, viewStyle := focused, border
	if m.focus == focusPacketView {
		listStyle, viewStyle = border, focused
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Render(m.packets.View()),
		viewStyle.Render(m.view.View()),
	)
}
