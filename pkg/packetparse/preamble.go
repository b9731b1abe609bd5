// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import (
	"encoding/hex"
	"fmt"
)

// Preamble holds the leading fields identifying a packet
type Preamble struct {
	Callsign       string         `json:"callsign"`
	Timestamp      int64          `json:"timestamp"`
	MessageType    MessageType    `json:"message_type"`
	SatelliteState SatelliteState `json:"satellite_state"`
	FlashKilled    bool           `json:"FLASH_KILLED"`
	MRAMCopy       bool           `json:"MRAM_CPY"`
	BytesOfData    int            `json:"bytes_of_data"`
	NumErrors      int            `json:"num_errors"`
}

// decodePreamble decodes the preamble, appending a diagnostic for each
// unknown enumeration code
func decodePreamble(ps string, diags *diagnostics) *Preamble {
	p := &Preamble{
		Callsign:    decodeCallsign(field(ps, callsignStart, callsignLength)),
		Timestamp:   LEInt32(field(ps, timestampStart, timestampWidth)),
		BytesOfData: HexByte(field(ps, bytesOfDataStart, 2)),
		NumErrors:   HexByte(field(ps, numErrorsStart, 2)),
	}

	msgOp := HexByte(field(ps, msgOpStart, 2))
	if msgOp != Sentinel {
		p.FlashKilled = Bit(msgOp, flashKilledBit)
		p.MRAMCopy = Bit(msgOp, mramCopyBit)
	}

	typeCode := msgOp & msgTypeMask
	mt, ok := MessageTypeFromCode(typeCode)
	if !ok {
		diags.add(DiagInvalidMessageType,
			fmt.Sprintf("Invalid message type code=%d", typeCode),
			map[string]interface{}{"code": typeCode, "msg_op": msgOp})
	}
	p.MessageType = mt

	stateCode := (msgOp >> satStateShift) & satStateMask
	st, ok := SatelliteStateFromCode(stateCode)
	if !ok {
		diags.add(DiagInvalidSatState,
			fmt.Sprintf("Invalid satellite state code=%d", stateCode),
			map[string]interface{}{"code": stateCode, "msg_op": msgOp})
	}
	p.SatelliteState = st

	return p
}

// decodeCallsign hex-decodes the callsign; malformed hex yields ""
func decodeCallsign(s string) string {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ""
	}
	return string(b)
}
