// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import (
	"fmt"
	"time"
)

// Statistics tracks decode counts and diagnostic rates across packets.
// It is not safe for concurrent use.
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalPackets   uint64
	CleanPackets   uint64
	WrongSize      uint64
	ErrorEntries   uint64
	ByMessageType  [numMessageTypes]uint64
	ByDiagnostic   [numDiagnosticKinds]uint64
	InvalidPackets uint64 // unknown message type, no data section

	// Rates (calculated)
	PacketRate     float64 // packets/sec
	DiagnosticRate float64 // diagnostics/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update records one decoded packet and its diagnostics
func (s *Statistics) Update(p *Packet, diags []Diagnostic) {
	s.TotalPackets++
	s.LastUpdateTime = time.Now()

	for _, d := range diags {
		if d.Kind >= 0 && d.Kind < numDiagnosticKinds {
			s.ByDiagnostic[d.Kind]++
		}
	}

	if len(diags) == 0 {
		s.CleanPackets++
	}

	if p == nil || p.Preamble == nil {
		s.WrongSize++
		return
	}

	if mt := p.MessageType(); mt.Valid() {
		s.ByMessageType[mt]++
	} else {
		s.InvalidPackets++
	}
	s.ErrorEntries += uint64(len(p.Errors))
}

// Diagnostics returns the total number of diagnostics recorded
func (s *Statistics) Diagnostics() uint64 {
	var n uint64
	for _, c := range s.ByDiagnostic {
		n += c
	}
	return n
}

// CalculateRates calculates packet and diagnostic rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.PacketRate = float64(s.TotalPackets) / elapsed
		s.DiagnosticRate = float64(s.Diagnostics()) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	percent := func(n uint64) float64 {
		if s.TotalPackets == 0 {
			return 0
		}
		return float64(n) * 100.0 / float64(s.TotalPackets)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Packets:   %8d\n", s.TotalPackets)
	result += fmt.Sprintf("Clean Packets:   %8d (%.1f%%)\n", s.CleanPackets, percent(s.CleanPackets))

	for mt := MessageType(0); mt < numMessageTypes; mt++ {
		if n := s.ByMessageType[mt]; n > 0 {
			result += fmt.Sprintf("  %-13s %8d\n", mt.String()+":", n)
		}
	}

	if s.WrongSize > 0 {
		result += fmt.Sprintf("Wrong Size:      %8d (%.1f%%)\n", s.WrongSize, percent(s.WrongSize))
	}
	if s.InvalidPackets > 0 {
		result += fmt.Sprintf("Invalid Type:    %8d (%.1f%%)\n", s.InvalidPackets, percent(s.InvalidPackets))
	}

	if total := s.Diagnostics(); total > 0 {
		result += fmt.Sprintf("Diagnostics:     %8d\n", total)
		for k := DiagnosticKind(0); k < numDiagnosticKinds; k++ {
			if n := s.ByDiagnostic[k]; n > 0 {
				result += fmt.Sprintf("  %-18s %5d\n", k.String()+":", n)
			}
		}
	}

	result += fmt.Sprintf("Error Entries:   %8d\n", s.ErrorEntries)
	result += fmt.Sprintf("Packet Rate:     %8.1f pkts/sec\n", s.PacketRate)
	result += fmt.Sprintf("Diagnostic Rate: %8.1f diags/sec\n", s.DiagnosticRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	*s = *NewStatistics()
}
