// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package locator

// Framer states
const (
	stateHunting = iota
	stateCollecting
)

// Framer extracts packet spans from a byte stream.
// It implements the same framing as Find for sources that arrive
// incrementally, such as a serial port. Bytes of an abandoned span are not
// rescanned for a marker.
type Framer struct {
	state   int
	window  []byte // trailing bytes while hunting for the marker
	buffer  []byte // span under construction, marker included
	skipped uint64
	dropped uint64
}

// NewFramer creates a new framer hunting for a sync marker
func NewFramer() *Framer {
	return &Framer{
		state:  stateHunting,
		window: make([]byte, 0, len(SyncMarker)),
		buffer: make([]byte, 0, SpanLength),
	}
}

// Reset discards any partial span and resumes hunting
func (f *Framer) Reset() {
	f.state = stateHunting
	f.window = f.window[:0]
	f.buffer = f.buffer[:0]
}

// Skipped returns the number of bytes discarded while hunting for a marker
func (f *Framer) Skipped() uint64 {
	return f.skipped
}

// Dropped returns the number of spans abandoned because of a non-hex byte
func (f *Framer) Dropped() uint64 {
	return f.dropped
}

// DecodeByte processes a single byte through the framer state machine.
// Returns the completed span and true once SpanLength characters have been
// collected after a marker. Line breaks are ignored in every state.
func (f *Framer) DecodeByte(b byte) (string, bool) {
	if b == '\n' || b == '\r' {
		return "", false
	}

	switch f.state {
	case stateHunting:
		if len(f.window) == len(SyncMarker) {
			f.skipped++
			copy(f.window, f.window[1:])
			f.window = f.window[:len(f.window)-1]
		}
		f.window = append(f.window, b)
		if string(f.window) == SyncMarker {
			f.buffer = append(f.buffer[:0], f.window...)
			f.window = f.window[:0]
			f.state = stateCollecting
		}

	case stateCollecting:
		if !isHex(b) {
			f.dropped++
			f.Reset()
			return "", false
		}
		f.buffer = append(f.buffer, b)
		if len(f.buffer) == SpanLength {
			span := string(f.buffer)
			f.Reset()
			return span, true
		}
	}

	return "", false
}

// Feed processes a chunk of bytes and returns every span it completed
func (f *Framer) Feed(p []byte) []string {
	var spans []string
	for _, b := range p {
		if span, ok := f.DecodeByte(b); ok {
			spans = append(spans, span)
		}
	}
	return spans
}
