// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package locator finds hex-encoded packets inside raw text captures.
//
// Every packet starts with the hex-encoded callsign (SyncMarker) and spans
// SpanLength hex characters. Find scans a complete capture; Framer does the
// same for a live stream fed one byte at a time.
package locator

import (
	"iter"
	"strings"
)

// Framing constants
const (
	SyncMarker = "574c39585a45" // "WL9XZE"
	SpanLength = 510
)

// stripNewlines removes line breaks so packets wrapped across lines join up
func stripNewlines(capture string) string {
	if !strings.ContainsAny(capture, "\r\n") {
		return capture
	}
	return strings.NewReplacer("\n", "", "\r", "").Replace(capture)
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func allHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return false
		}
	}
	return true
}

// All yields each packet span in the capture together with its offset in
// the newline-stripped capture. Spans never overlap; a marker whose span
// runs off the end of the capture or contains non-hex characters is skipped
// and the scan resumes just past that marker.
//
// The sequence is finite and may be ranged over any number of times.
func All(capture string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		s := stripNewlines(capture)
		pos := 0
		for {
			i := strings.Index(s[pos:], SyncMarker)
			if i < 0 {
				return
			}
			start := pos + i
			end := start + SpanLength
			if end > len(s) {
				return
			}

			span := s[start:end]
			if !allHex(span) {
				pos = start + 1
				continue
			}
			if !yield(start, span) {
				return
			}
			pos = end
		}
	}
}

// Find yields each packet span in the capture, in order
func Find(capture string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, span := range All(capture) {
			if !yield(span) {
				return
			}
		}
	}
}
