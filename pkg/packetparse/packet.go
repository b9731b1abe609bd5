// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

// DataSection is the message-type specific body of a packet. It is one of
// IdleData, AttitudeData, FlashBurstData, FlashCmpData or LowPowerData.
type DataSection interface {
	// MessageType returns the layout this section was decoded with
	MessageType() MessageType
	// Len returns the number of batches (or burst entries)
	Len() int

	dataSection()
}

// Packet is the decoded form of one downlinked packet.
//
// A packet rejected for its size has every section empty. A packet with an
// unknown message type keeps its preamble and current info but has no data
// section and no errors.
type Packet struct {
	Preamble    *Preamble     `json:"preamble,omitempty"`
	CurrentInfo *CurrentInfo  `json:"current_info,omitempty"`
	Data        DataSection   `json:"data"`
	Errors      []ErrorRecord `json:"errors"`
	Diagnostics []Diagnostic  `json:"diagnostics"`
}

// Valid reports whether the packet decoded without any diagnostic
func (p *Packet) Valid() bool {
	return len(p.Diagnostics) == 0
}

// MessageType returns the preamble message type, or MessageInvalid when the
// packet has no preamble
func (p *Packet) MessageType() MessageType {
	if p.Preamble == nil {
		return MessageInvalid
	}
	return p.Preamble.MessageType
}

// Idle returns the IDLE data section, if that is what the packet carries
func (p *Packet) Idle() (IdleData, bool) {
	s, ok := p.Data.(IdleData)
	return s, ok
}

// Attitude returns the ATTITUDE data section
func (p *Packet) Attitude() (AttitudeData, bool) {
	s, ok := p.Data.(AttitudeData)
	return s, ok
}

// FlashBurst returns the FLASH_BURST data section
func (p *Packet) FlashBurst() (FlashBurstData, bool) {
	s, ok := p.Data.(FlashBurstData)
	return s, ok
}

// FlashCmp returns the FLASH_CMP data section
func (p *Packet) FlashCmp() (FlashCmpData, bool) {
	s, ok := p.Data.(FlashCmpData)
	return s, ok
}

// LowPower returns the LOW_POWER data section
func (p *Packet) LowPower() (LowPowerData, bool) {
	s, ok := p.Data.(LowPowerData)
	return s, ok
}
