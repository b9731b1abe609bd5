// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Thermoquad/equistat/pkg/packetparse"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
	formatCBOR = "cbor"
)

// packetWriter renders decoded packets to an output stream
type packetWriter interface {
	WritePacket(source string, p *packetparse.Packet) error
}

// newPacketWriter returns the writer for an output format. Color only
// applies to text output.
func newPacketWriter(w io.Writer, format string, color bool) (packetWriter, error) {
	switch format {
	case formatText:
		return &textWriter{w: w, color: color}, nil
	case formatJSON:
		return &jsonWriter{w: w}, nil
	case formatCBOR:
		return &cborWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use %s, %s or %s)", format, formatText, formatJSON, formatCBOR)
	}
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

var (
	sourceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	diagnosticStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	fatalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

// textWriter writes the human-readable packet format
type textWriter struct {
	w     io.Writer
	color bool
}

func (t *textWriter) WritePacket(source string, p *packetparse.Packet) error {
	header := fmt.Sprintf("=== %s ===", source)
	body := packetparse.FormatPacket(p)

	if t.color {
		header = sourceStyle.Render(header)
		body = colorDiagnostics(body)
	}

	_, err := fmt.Fprintf(t.w, "%s\n%s\n", header, body)
	return err
}

// colorDiagnostics highlights the diagnostic lines of a formatted packet
func colorDiagnostics(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "  ! ") {
			continue
		}
		if strings.HasPrefix(line, "  ! "+packetparse.DiagWrongSize.String()) {
			lines[i] = fatalStyle.Render(line)
		} else {
			lines[i] = diagnosticStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// jsonWriter writes one indented JSON document per packet
type jsonWriter struct {
	w io.Writer
}

func (j *jsonWriter) WritePacket(source string, p *packetparse.Packet) error {
	data, err := packetparse.EncodeJSON(p)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = j.w.Write(data)
	return err
}

// cborWriter writes a CBOR sequence, one data item per packet
type cborWriter struct {
	w io.Writer
}

func (c *cborWriter) WritePacket(source string, p *packetparse.Packet) error {
	data, err := packetparse.EncodeCBOR(p)
	if err != nil {
		return err
	}
	_, err = c.w.Write(data)
	return err
}
