// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import "github.com/Thermoquad/equistat/pkg/calibration"

// BatteryReadings is the Li-ion battery block shared by current info, IDLE
// batches and LOW_POWER batches. It spans 20 hex characters on the wire.
type BatteryReadings struct {
	L1Ref    int64   `json:"L1_REF"`
	L2Ref    int64   `json:"L2_REF"`
	L1Sense  float64 `json:"L1_SNS"`
	L2Sense  float64 `json:"L2_SNS"`
	L1Temp   float64 `json:"L1_TEMP"`
	L2Temp   float64 `json:"L2_TEMP"`
	PanelRef int64   `json:"PANELREF"`
	LRef     int64   `json:"L_REF"`
	DigitalSignals
}

// CurrentInfo is the power telemetry snapshot present in every packet
type CurrentInfo struct {
	TimeToFlash int `json:"time_to_flash"`
	BootCount   int `json:"boot_count"`
	BatteryReadings
	LF1Ref    int64 `json:"LF1REF"`
	LF2Ref    int64 `json:"LF2REF"`
	LF3Ref    int64 `json:"LF3REF"`
	LF4Ref    int64 `json:"LF4REF"`
	Timestamp int64 `json:"timestamp"`
}

// decodeBatteryReadings decodes the battery block starting at start
func (d *Decoder) decodeBatteryReadings(ps string, start int) BatteryReadings {
	at := func(off int) string { return field(ps, start+off, 2) }

	r := BatteryReadings{
		L1Ref:    d.untruncate(HexByte(at(0)), calibration.SignalLRef),
		L2Ref:    d.untruncate(HexByte(at(2)), calibration.SignalLRef),
		L1Sense:  LineSenseToMilliAmps(d.untruncate(SignedByte(at(4)), calibration.SignalLSense)),
		L2Sense:  LineSenseToMilliAmps(d.untruncate(SignedByte(at(6)), calibration.SignalLSense)),
		L1Temp:   AD590ToCelsius(d.untruncate(SignedByte(at(8)), calibration.SignalLTemp)),
		L2Temp:   AD590ToCelsius(d.untruncate(SignedByte(at(10)), calibration.SignalLTemp)),
		PanelRef: PanelRefVoltage(d.untruncate(HexByte(at(12)), calibration.SignalPanelRef)),
		LRef:     LineRefVoltage(d.untruncate(HexByte(at(14)), calibration.SignalLRef)),
	}
	r.DigitalSignals = DecodeDigitalSignals(HexByte(at(16)), HexByte(at(18)))
	return r
}

// decodeCurrentInfo decodes the current info block. The packet timestamp
// is copied in so the block stands on its own.
func (d *Decoder) decodeCurrentInfo(ps string, timestamp int64) *CurrentInfo {
	lfVolt := func(off int) int64 {
		return d.untruncate(HexByte(field(ps, currentLFStart+off, 2)), calibration.SignalLFVolt)
	}

	return &CurrentInfo{
		TimeToFlash:     HexByte(field(ps, timeToFlashStart, 2)),
		BootCount:       HexByte(field(ps, bootCountStart, 2)),
		BatteryReadings: d.decodeBatteryReadings(ps, currentBattStart),
		LF1Ref:          lfVolt(0),
		LF2Ref:          lfVolt(2),
		LF3Ref:          lfVolt(4),
		LF4Ref:          lfVolt(6),
		Timestamp:       timestamp,
	}
}
