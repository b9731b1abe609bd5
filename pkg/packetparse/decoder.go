// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Thermoquad/equistat/pkg/calibration"
)

// Decoder turns raw hex packets into Packet values.
//
// A Decoder holds no per-packet state. It only reads its calibration table,
// so one Decoder may be shared by any number of goroutines.
type Decoder struct {
	table  *calibration.Table
	logger *zap.Logger
}

// Option configures a Decoder
type Option func(*Decoder)

// WithLogger sets the logger used for per-diagnostic debug output
func WithLogger(l *zap.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDecoder creates a decoder for the given calibration table.
// A nil table selects calibration.Default().
func NewDecoder(t *calibration.Table, opts ...Option) *Decoder {
	if t == nil {
		t = calibration.Default()
	}
	d := &Decoder{
		table:  t,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Table returns the calibration table used by the decoder
func (d *Decoder) Table() *calibration.Table {
	return d.table
}

// Decode decodes one packet. The returned diagnostics are also stored in
// Packet.Diagnostics; the packet is never nil.
func (d *Decoder) Decode(raw string) (*Packet, []Diagnostic) {
	diags := diagnostics{list: []Diagnostic{}}
	p := d.decode(raw, &diags)
	p.Diagnostics = diags.list

	for i := range p.Diagnostics {
		d.logger.Debug("packet diagnostic",
			zap.Stringer("kind", p.Diagnostics[i].Kind),
			zap.String("message", p.Diagnostics[i].Message),
		)
	}
	return p, p.Diagnostics
}

func (d *Decoder) decode(ps string, diags *diagnostics) *Packet {
	if len(ps) != PacketLength && len(ps) != ShortPacketLength {
		diags.add(DiagWrongSize,
			fmt.Sprintf("Wrong size packet: %d hex characters (expected %d or %d)", len(ps), PacketLength, ShortPacketLength),
			map[string]interface{}{"length": len(ps)})
		return &Packet{}
	}

	p := &Packet{}
	p.Preamble = decodePreamble(ps, diags)
	p.CurrentInfo = d.decodeCurrentInfo(ps, p.Preamble.Timestamp)

	mt := p.Preamble.MessageType
	switch mt {
	case MessageIdle:
		p.Data = d.decodeIdleData(ps)
	case MessageAttitude:
		p.Data = d.decodeAttitudeData(ps)
	case MessageFlashBurst:
		p.Data = d.decodeFlashBurstData(ps)
	case MessageFlashCmp:
		p.Data = d.decodeFlashCmpData(ps)
	case MessageLowPower:
		p.Data = d.decodeLowPowerData(ps)
	default:
		// MessageInvalid: no layout, so no data section or error log
		return p
	}

	p.Errors = d.decodeErrors(ps, mt, p.Preamble.Timestamp, diags)
	return p
}

func (d *Decoder) untruncate(raw int, sig calibration.Signal) int64 {
	return Untruncate(d.table, raw, sig)
}

var defaultDecoder = NewDecoder(nil)

// Decode decodes one packet with the embedded calibration table
func Decode(raw string) (*Packet, []Diagnostic) {
	return defaultDecoder.Decode(raw)
}
