// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package packetparse decodes EQUiSat downlink telemetry packets.
//
// A packet arrives as an ASCII hex string of fixed length. Decoding walks a
// fixed layout: preamble, current info, one of five message-type specific
// data sections and a trailing error log. Every numeric field is converted to
// physical units with the coefficients of a calibration.Table.
//
// Decoding never fails outright. Problems are reported as Diagnostic values
// returned alongside the decoded Packet, and malformed hex inside a field
// resolves to Sentinel.
package packetparse

// Accepted packet lengths in hex characters
const (
	PacketLength      = 510 // full frame
	ShortPacketLength = 446 // frame without the trailing region
)

// Preamble field offsets (hex characters)
const (
	callsignStart    = 0
	callsignLength   = 12
	timestampStart   = 12
	msgOpStart       = 20
	bytesOfDataStart = 22
	numErrorsStart   = 24
)

// Current info field offsets (hex characters)
const (
	timeToFlashStart = 26
	bootCountStart   = 28
	currentBattStart = 30
	currentLFStart   = 50
)

// msg_op byte layout
const (
	msgTypeMask      = 0x07
	satStateShift    = 3
	satStateMask     = 0x07
	flashKilledBit   = 6
	mramCopyBit      = 7
	errorCodeMask    = 0x7F
	errorPriorityBit = 7
)

// Batch widths (hex characters)
const (
	idleBatchWidth     = 46
	attitudeBatchWidth = 66
	flashCmpBatchWidth = 50
	lowPowerBatchWidth = 60

	// Flash burst unit column groups
	burstLEDTempWidth  = 8
	burstLFTempWidth   = 4
	burstLFSenseWidth  = 8
	burstLFRefWidth    = 8
	burstLEDSenseWidth = 8
	burstGyroWidth     = 6

	timestampWidth  = 8
	errorEntryWidth = 6
)

// errorSection locates the error log of one message type
type errorSection struct {
	start int // hex characters
	count int
}

// errorSections is indexed by MessageType. The offsets are fixed by the
// flight software and are not derived from the batch layout; the FLASH_CMP
// and LOW_POWER sections share an offset.
var errorSections = [numMessageTypes]errorSection{
	MessageIdle:       {start: 190 * 2, count: 11},
	MessageAttitude:   {start: 194 * 2, count: 9},
	MessageFlashBurst: {start: 180 * 2, count: 14},
	MessageFlashCmp:   {start: 179 * 2, count: 14},
	MessageLowPower:   {start: 179 * 2, count: 14},
}
