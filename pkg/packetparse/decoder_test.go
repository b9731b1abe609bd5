// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/Thermoquad/equistat/pkg/calibration"
)

// mustSample returns a built-in sample or fails the test
func mustSample(t *testing.T, name string) string {
	t.Helper()
	s, ok := SampleByName(name)
	if !ok {
		t.Fatalf("no sample named %q", name)
	}
	return s.Hex
}

// mustDefaultYAML renders the default calibration table as YAML
func mustDefaultYAML(t *testing.T) []byte {
	t.Helper()
	data, err := yaml.Marshal(calibration.Default())
	if err != nil {
		t.Fatalf("yaml.Marshal error: %v", err)
	}
	return data
}

// withMsgOp replaces the msg_op byte of a packet
func withMsgOp(ps, op string) string {
	return ps[:msgOpStart] + op + ps[msgOpStart+2:]
}

// countKind counts diagnostics of one kind
func countKind(diags []Diagnostic, kind DiagnosticKind) int {
	n := 0
	for _, d := range diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// ============================================================
// Sample Packet Tests
// ============================================================

func TestDecode_Samples(t *testing.T) {
	tests := []struct {
		name          string
		msgType       MessageType
		state         SatelliteState
		timestamp     int64
		bytesOfData   int
		numErrors     int
		batches       int
		invalidECodes int
	}{
		{"attitude", MessageAttitude, StateIdleFlash, 28285, 165, 9, 5, 0},
		{"idle", MessageIdle, StateIdleFlash, 13905, 161, 11, 7, 2},
		{"flash_burst_1", MessageFlashBurst, StateIdleFlash, 65, 151, 14, 7, 4},
		{"flash_burst_2", MessageFlashBurst, StateIdleFlash, 65, 151, 14, 7, 5},
		{"flash_cmp_1", MessageFlashCmp, StateIdleFlash, 985, 150, 14, 6, 4},
		{"flash_cmp_2", MessageFlashCmp, StateIdleFlash, 29065, 150, 14, 6, 2},
		{"low_power_1", MessageLowPower, StateLowPower, 102, 150, 14, 5, 3},
		{"low_power_2", MessageLowPower, StateLowPower, 3062, 150, 14, 5, 3},
		{"low_power_test", MessageLowPower, StateLowPower, 5735, 150, 24, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, diags := Decode(mustSample(t, tt.name))

			pre := p.Preamble
			if pre == nil {
				t.Fatal("Preamble is nil")
			}
			if pre.Callsign != "WL9XZE" {
				t.Errorf("Callsign = %q, want WL9XZE", pre.Callsign)
			}
			if pre.MessageType != tt.msgType {
				t.Errorf("MessageType = %s, want %s", pre.MessageType, tt.msgType)
			}
			if pre.SatelliteState != tt.state {
				t.Errorf("SatelliteState = %s, want %s", pre.SatelliteState, tt.state)
			}
			if pre.Timestamp != tt.timestamp {
				t.Errorf("Timestamp = %d, want %d", pre.Timestamp, tt.timestamp)
			}
			if pre.BytesOfData != tt.bytesOfData || pre.NumErrors != tt.numErrors {
				t.Errorf("BytesOfData/NumErrors = %d/%d, want %d/%d", pre.BytesOfData, pre.NumErrors, tt.bytesOfData, tt.numErrors)
			}
			if pre.FlashKilled || pre.MRAMCopy {
				t.Errorf("unexpected flags: FlashKilled=%v MRAMCopy=%v", pre.FlashKilled, pre.MRAMCopy)
			}

			if p.CurrentInfo == nil || p.CurrentInfo.Timestamp != tt.timestamp {
				t.Errorf("CurrentInfo should carry the packet timestamp")
			}

			if p.Data == nil {
				t.Fatal("Data is nil")
			}
			if p.Data.MessageType() != tt.msgType {
				t.Errorf("Data.MessageType() = %s, want %s", p.Data.MessageType(), tt.msgType)
			}
			if p.Data.Len() != tt.batches {
				t.Errorf("Data.Len() = %d, want %d", p.Data.Len(), tt.batches)
			}

			if len(p.Errors) != errorSections[tt.msgType].count {
				t.Errorf("len(Errors) = %d, want %d", len(p.Errors), errorSections[tt.msgType].count)
			}

			if got := countKind(diags, DiagInvalidErrorCode); got != tt.invalidECodes {
				t.Errorf("INVALID_ECODE diagnostics = %d, want %d", got, tt.invalidECodes)
			}
			if len(diags) != tt.invalidECodes {
				t.Errorf("unexpected diagnostics: %v", diags)
			}
		})
	}
}

func TestDecode_Deterministic(t *testing.T) {
	for _, s := range Samples {
		t.Run(s.Name, func(t *testing.T) {
			p1, d1 := Decode(s.Hex)
			p2, d2 := Decode(s.Hex)
			if diff := cmp.Diff(p1, p2); diff != "" {
				t.Errorf("packet mismatch (-first +second):\n%s", diff)
			}
			if diff := cmp.Diff(d1, d2); diff != "" {
				t.Errorf("diagnostics mismatch (-first +second):\n%s", diff)
			}
		})
	}
}

func TestDecode_ShortFraming(t *testing.T) {
	// Every field lives inside the first 446 characters, so both framings
	// decode identically
	for _, s := range Samples {
		t.Run(s.Name, func(t *testing.T) {
			full, _ := Decode(s.Hex)
			short, diags := Decode(s.Hex[:ShortPacketLength])
			if countKind(diags, DiagWrongSize) != 0 {
				t.Fatal("446-character packet rejected")
			}
			if diff := cmp.Diff(full, short); diff != "" {
				t.Errorf("framing mismatch (-510 +446):\n%s", diff)
			}
		})
	}
}

// ============================================================
// Wrong Size Tests
// ============================================================

func TestDecode_WrongSize(t *testing.T) {
	idle := mustSample(t, "idle")
	inputs := map[string]string{
		"empty":     "",
		"one short": idle[:PacketLength-1],
		"one long":  idle + "0",
		"between":   idle[:480],
		"tiny":      "574c",
		"double":    idle + idle,
	}

	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			p, diags := Decode(raw)
			if len(diags) != 1 || diags[0].Kind != DiagWrongSize {
				t.Fatalf("diagnostics = %v, want exactly WRONG_SIZE", diags)
			}
			if !diags[0].Fatal() {
				t.Error("WRONG_SIZE should be fatal")
			}
			if p.Preamble != nil || p.CurrentInfo != nil || p.Data != nil || len(p.Errors) != 0 {
				t.Errorf("wrong-size packet should be empty, got %+v", p)
			}
			if got := diags[0].Details["length"]; got != len(raw) {
				t.Errorf("Details[length] = %v, want %d", got, len(raw))
			}
		})
	}
}

// ============================================================
// Soft Diagnostic Tests
// ============================================================

func TestDecode_InvalidMessageType(t *testing.T) {
	// 0x25: message type 5, satellite state 4
	p, diags := Decode(withMsgOp(mustSample(t, "idle"), "25"))

	if len(diags) != 1 || diags[0].Kind != DiagInvalidMessageType {
		t.Fatalf("diagnostics = %v, want exactly INVALID_MSG_TYPE", diags)
	}
	if p.Preamble == nil || p.CurrentInfo == nil {
		t.Fatal("preamble and current info must still decode")
	}
	if p.Preamble.MessageType != MessageInvalid {
		t.Errorf("MessageType = %s, want INVALID", p.Preamble.MessageType)
	}
	if p.Preamble.SatelliteState != StateIdleFlash {
		t.Errorf("SatelliteState = %s, want IDLE_FLASH", p.Preamble.SatelliteState)
	}
	if p.Data != nil {
		t.Errorf("Data = %v, want nil", p.Data)
	}
	if len(p.Errors) != 0 {
		t.Errorf("len(Errors) = %d, want 0", len(p.Errors))
	}
	if p.CurrentInfo.L1Ref != 4059 {
		t.Errorf("CurrentInfo.L1Ref = %d, want 4059", p.CurrentInfo.L1Ref)
	}
}

func TestDecode_InvalidSatelliteState(t *testing.T) {
	// 0x30: message type 0 (IDLE), satellite state 6
	p, diags := Decode(withMsgOp(mustSample(t, "idle"), "30"))

	if countKind(diags, DiagInvalidSatState) != 1 {
		t.Fatalf("diagnostics = %v, want one INVALID_SAT_STATE", diags)
	}
	if p.Preamble.SatelliteState != StateInvalid {
		t.Errorf("SatelliteState = %s, want INVALID", p.Preamble.SatelliteState)
	}
	// The data section still decodes for a known message type
	if _, ok := p.Idle(); !ok {
		t.Errorf("Data = %T, want IdleData", p.Data)
	}
	if len(p.Errors) != 11 {
		t.Errorf("len(Errors) = %d, want 11", len(p.Errors))
	}
	if countKind(diags, DiagInvalidErrorCode) != 2 {
		t.Errorf("INVALID_ECODE diagnostics = %d, want 2", countKind(diags, DiagInvalidErrorCode))
	}
}

func TestDecode_Flags(t *testing.T) {
	// 0xe0: MRAM_CPY and FLASH_KILLED set, IDLE_FLASH state, IDLE type
	p, _ := Decode(withMsgOp(mustSample(t, "idle"), "e0"))

	if !p.Preamble.FlashKilled || !p.Preamble.MRAMCopy {
		t.Errorf("flags = %v/%v, want true/true", p.Preamble.FlashKilled, p.Preamble.MRAMCopy)
	}
	if p.Preamble.MessageType != MessageIdle || p.Preamble.SatelliteState != StateIdleFlash {
		t.Errorf("type/state = %s/%s", p.Preamble.MessageType, p.Preamble.SatelliteState)
	}
}

func TestDecode_MalformedMsgOp(t *testing.T) {
	// A non-hex msg_op byte must not read as asserted flags
	p, diags := Decode(withMsgOp(mustSample(t, "idle"), "zz"))

	if p.Preamble.FlashKilled || p.Preamble.MRAMCopy {
		t.Errorf("flags = %v/%v, want false/false", p.Preamble.FlashKilled, p.Preamble.MRAMCopy)
	}
	if p.Preamble.MessageType != MessageInvalid || p.Preamble.SatelliteState != StateInvalid {
		t.Errorf("type/state = %s/%s, want INVALID/INVALID", p.Preamble.MessageType, p.Preamble.SatelliteState)
	}
	if countKind(diags, DiagInvalidMessageType) != 1 || countKind(diags, DiagInvalidSatState) != 1 {
		t.Errorf("diagnostics = %v", diags)
	}
	if p.Data != nil || len(p.Errors) != 0 {
		t.Error("invalid message type should leave data and errors empty")
	}
}

func TestDecode_MalformedHexField(t *testing.T) {
	// Corrupt the boot count; the field becomes Sentinel and decoding continues
	idle := mustSample(t, "idle")
	raw := idle[:bootCountStart] + "zz" + idle[bootCountStart+2:]

	p, diags := Decode(raw)
	if p.CurrentInfo.BootCount != Sentinel {
		t.Errorf("BootCount = %d, want Sentinel", p.CurrentInfo.BootCount)
	}
	if countKind(diags, DiagWrongSize) != 0 || p.Data == nil {
		t.Error("malformed field should not abort decoding")
	}
}

func TestDecode_MalformedCallsign(t *testing.T) {
	idle := mustSample(t, "idle")
	p, _ := Decode("zz" + idle[2:])
	if p.Preamble.Callsign != "" {
		t.Errorf("Callsign = %q, want empty", p.Preamble.Callsign)
	}
}

// ============================================================
// Current Info Tests
// ============================================================

func TestDecode_CurrentInfo(t *testing.T) {
	p, _ := Decode(mustSample(t, "idle"))
	ci := p.CurrentInfo

	ints := []struct {
		name      string
		got, want int64
	}{
		{"time_to_flash", int64(ci.TimeToFlash), 19},
		{"boot_count", int64(ci.BootCount), 2},
		{"L1_REF", ci.L1Ref, 4059},
		{"L2_REF", ci.L2Ref, 4169},
		{"PANELREF", ci.PanelRef, 6417},
		{"L_REF", ci.LRef, 4037},
		{"LF1REF", ci.LF1Ref, 3200},
		{"LF2REF", ci.LF2Ref, 3273},
		{"LF3REF", ci.LF3Ref, 3181},
		{"LF4REF", ci.LF4Ref, 3236},
		{"timestamp", ci.Timestamp, 13905},
	}
	for _, tt := range ints {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}

	floats := []struct {
		name      string
		got, want float64
	}{
		{"L1_SNS", ci.L1Sense, 4},
		{"L2_SNS", ci.L2Sense, 296},
		{"L1_TEMP", ci.L1Temp, 24},
		{"L2_TEMP", ci.L2Temp, 24},
	}
	for _, tt := range floats {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	// Status bytes f0 b2
	want := DigitalSignals{
		L1State:     true,
		L1Discharge: true,
		L2Discharge: true,
		L2ChargeN:   true,
	}
	if ci.DigitalSignals != want {
		t.Errorf("DigitalSignals = %+v, want %+v", ci.DigitalSignals, want)
	}
}

// ============================================================
// Data Section Tests
// ============================================================

func TestDecode_AttitudeBatches(t *testing.T) {
	raw := mustSample(t, "attitude")
	p, _ := Decode(raw)

	data, ok := p.Attitude()
	if !ok {
		t.Fatalf("Data = %T, want AttitudeData", p.Data)
	}
	if len(data) != 5 {
		t.Fatalf("len(data) = %d, want 5", len(data))
	}

	// Each fingerprint is a distinct 66-character window
	seen := make(map[string]bool)
	for i, b := range data {
		start := 58 + i*66
		if b.DataHash != raw[start:start+66] {
			t.Errorf("batch %d DataHash = %s, want window at %d", i, b.DataHash, start)
		}
		if seen[b.DataHash] {
			t.Errorf("batch %d DataHash repeats", i)
		}
		seen[b.DataHash] = true
	}

	timestamps := []int64{27364, 26224, 25084, 23944, 22804}
	flashIR := []float64{23.23, 23.11, 22.93, 22.83, 22.95}
	for i, b := range data {
		if b.Timestamp != timestamps[i] {
			t.Errorf("batch %d Timestamp = %d, want %d", i, b.Timestamp, timestamps[i])
		}
		if b.IRFlashObj != flashIR[i] {
			t.Errorf("batch %d IRFlashObj = %v, want %v", i, b.IRFlashObj, flashIR[i])
		}
	}

	b := data[0]
	wantIR := [6]float64{23.23, 22.41, 22.51, 22.19, 22.05, 24.27}
	gotIR := [6]float64{b.IRFlashObj, b.IRSide1Obj, b.IRSide2Obj, b.IRRBFObj, b.IRAccessObj, b.IRTop1Obj}
	if gotIR != wantIR {
		t.Errorf("IR objects = %v, want %v", gotIR, wantIR)
	}

	// Photodiode bytes 0x56 0x09
	gotPD := [6]int{b.PDFlash, b.PDSide1, b.PDSide2, b.PDAccess, b.PDTop1, b.PDTop2}
	if gotPD != [6]int{1, 1, 1, 2, 0, 0} {
		t.Errorf("photodiodes = %v", gotPD)
	}

	vectors := []struct {
		name      string
		got, want Vector
	}{
		{"accelerometer1", b.Accelerometer1, Vector{X: -0.03, Y: 0, Z: 1.02}},
		{"accelerometer2", b.Accelerometer2, Vector{X: -0.03, Y: 0.02, Z: 1.02}},
		{"gyroscope", b.Gyroscope, Vector{X: 1.95, Y: 0, Z: 1.95}},
		{"magnetometer1", b.Magnetometer1, Vector{X: 172.8, Y: -134.4, Z: 153.6}},
		{"magnetometer2", b.Magnetometer2, Vector{X: 172.8, Y: -134.4, Z: 153.6}},
	}
	for _, v := range vectors {
		if v.got != v.want {
			t.Errorf("%s = %+v, want %+v", v.name, v.got, v.want)
		}
	}
}

func TestDecode_IdleBatches(t *testing.T) {
	raw := mustSample(t, "idle")
	p, _ := Decode(raw)

	data, ok := p.Idle()
	if !ok {
		t.Fatalf("Data = %T, want IdleData", p.Data)
	}
	if len(data) != 7 {
		t.Fatalf("len(data) = %d, want 7", len(data))
	}

	b := data[0]
	if b.DataHash != raw[58:104] {
		t.Errorf("DataHash = %s", b.DataHash)
	}
	if b.Timestamp != 13453 {
		t.Errorf("Timestamp = %d, want 13453", b.Timestamp)
	}
	if b.EventHistory != DecodeEventHistory(0x3e) {
		t.Errorf("EventHistory = %+v", b.EventHistory)
	}
	if b.L1Ref != 4077 || b.L2Ref != 4150 || b.L2Sense != 346 {
		t.Errorf("battery = %d/%d/%v, want 4077/4150/346", b.L1Ref, b.L2Ref, b.L2Sense)
	}
	if b.RadioTemp != 305 {
		t.Errorf("RadioTemp = %d, want 305", b.RadioTemp)
	}
	if math.Abs(b.IMUTemp-24.11498487435229) > 1e-9 {
		t.Errorf("IMUTemp = %v", b.IMUTemp)
	}
	gotAmb := [6]float64{b.IRFlashAmb, b.IRSide1Amb, b.IRSide2Amb, b.IRRBFAmb, b.IRAccessAmb, b.IRTop1Amb}
	if gotAmb != [6]float64{24.29, 24.29, 29.41, 19.17, 24.29, 29.41} {
		t.Errorf("IR ambient = %v", gotAmb)
	}

	// Negative line sense from a sign-extended byte
	if data[6].L1Sense != -630 {
		t.Errorf("batch 6 L1Sense = %v, want -630", data[6].L1Sense)
	}
	if data[6].Timestamp != 8413 {
		t.Errorf("batch 6 Timestamp = %d, want 8413", data[6].Timestamp)
	}
}

func TestDecode_FlashBurst(t *testing.T) {
	raw := mustSample(t, "flash_burst_1")
	p, _ := Decode(raw)

	data, ok := p.FlashBurst()
	if !ok {
		t.Fatalf("Data = %T, want FlashBurstData", p.Data)
	}
	if data.DataHash != raw[58:360] {
		t.Errorf("DataHash should span the 302-character burst")
	}
	if data.Timestamp != 64 {
		t.Errorf("Timestamp = %d, want 64", data.Timestamp)
	}
	if len(data.Burst) != 7 {
		t.Fatalf("len(Burst) = %d, want 7", len(data.Burst))
	}

	e := data.Burst[0]
	want := FlashReadings{
		LED1Temp: 24, LED2Temp: 24, LED3Temp: 24, LED4Temp: 24,
		LF1Temp: 24, LF3Temp: 24,
		LFB1Sense: 41300, LFB1OSense: -57430, LFB2Sense: 41300, LFB2OSense: -60858,
		LF1Ref: -1445, LF2Ref: -1390, LF3Ref: -1445, LF4Ref: -1390,
		LED1Sense: 1067, LED2Sense: 1067, LED3Sense: 1067, LED4Sense: 0,
	}
	if diff := cmp.Diff(want, e.FlashReadings); diff != "" {
		t.Errorf("burst[0] mismatch (-want +got):\n%s", diff)
	}
	if e.Gyroscope != (Vector{X: -1.95, Y: -1.95, Z: 0}) {
		t.Errorf("burst[0] Gyroscope = %+v", e.Gyroscope)
	}

	if data.Burst[5].LED1Temp != -9 {
		t.Errorf("burst[5] LED1Temp = %v, want -9", data.Burst[5].LED1Temp)
	}
	if data.Burst[1].LED1Sense != 36267 {
		t.Errorf("burst[1] LED1Sense = %v, want 36267", data.Burst[1].LED1Sense)
	}
}

func TestDecode_FlashCmp(t *testing.T) {
	raw := mustSample(t, "flash_cmp_1")
	p, _ := Decode(raw)

	data, ok := p.FlashCmp()
	if !ok {
		t.Fatalf("Data = %T, want FlashCmpData", p.Data)
	}
	if len(data) != 6 {
		t.Fatalf("len(data) = %d, want 6", len(data))
	}

	b := data[0]
	if b.DataHash != raw[58:108] {
		t.Errorf("DataHash = %s", b.DataHash)
	}
	if b.Timestamp != 967 {
		t.Errorf("Timestamp = %d, want 967", b.Timestamp)
	}
	gotLED := [4]float64{b.LED1Temp, b.LED2Temp, b.LED3Temp, b.LED4Temp}
	if gotLED != [4]float64{1769, 2263, 1835, 1473} {
		t.Errorf("LED temps = %v", gotLED)
	}
	if b.Magnetometer != (Vector{X: -172.8, Y: -153.6, Z: -134.4}) {
		t.Errorf("Magnetometer = %+v", b.Magnetometer)
	}
	if b.LF1Ref != -1701 || b.LF2Ref != -1683 {
		t.Errorf("LF refs = %d/%d, want -1701/-1683", b.LF1Ref, b.LF2Ref)
	}
}

func TestDecode_LowPower(t *testing.T) {
	raw := mustSample(t, "low_power_1")
	p, _ := Decode(raw)

	data, ok := p.LowPower()
	if !ok {
		t.Fatalf("Data = %T, want LowPowerData", p.Data)
	}
	if len(data) != 5 {
		t.Fatalf("len(data) = %d, want 5", len(data))
	}

	b := data[0]
	if b.DataHash != raw[58:118] {
		t.Errorf("DataHash = %s", b.DataHash)
	}
	if b.Timestamp != 101 {
		t.Errorf("Timestamp = %d, want 101", b.Timestamp)
	}
	if !b.AntennaDeployed || !b.Lion1Charged || !b.LiFePO4B1Charged || b.LiFePO4B2Charged {
		t.Errorf("EventHistory = %+v", b.EventHistory)
	}
	if b.L1Ref != 2633 || b.L2Ref != 1005 || b.PanelRef != -726 || b.LRef != 4184 {
		t.Errorf("battery = %+v", b.BatteryReadings)
	}
	if b.IRFlashObj != 21.77 {
		t.Errorf("IRFlashObj = %v, want 21.77", b.IRFlashObj)
	}
	if b.Gyroscope != (Vector{X: -1.95, Y: -1.95, Z: 0}) {
		t.Errorf("Gyroscope = %+v", b.Gyroscope)
	}
}

// ============================================================
// Custom Calibration Tests
// ============================================================

func TestDecoder_CustomTable(t *testing.T) {
	data := strings.Replace(string(mustDefaultYAML(t)), "ERROR_TIME_BUCKET_SIZE: 30", "ERROR_TIME_BUCKET_SIZE: 60", 1)
	tbl, err := calibration.Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	d := NewDecoder(tbl)
	if d.Table() != tbl {
		t.Error("Table() should return the configured table")
	}

	p, _ := d.Decode(mustSample(t, "idle"))
	// First idle error: bucket 0x2a
	if got := p.Errors[0].Timestamp; got != 13905-60*42 {
		t.Errorf("Errors[0].Timestamp = %d, want %d", got, 13905-60*42)
	}
}

func TestNewDecoder_NilTable(t *testing.T) {
	if NewDecoder(nil).Table() != calibration.Default() {
		t.Error("nil table should select the default table")
	}
}

// ============================================================
// Error Section Tests
// ============================================================

func TestDecode_IdleErrorSection(t *testing.T) {
	raw := mustSample(t, "idle")
	p, _ := Decode(raw)

	if errorSections[MessageIdle].start != 380 {
		t.Fatalf("IDLE error section starts at %d, want 380", errorSections[MessageIdle].start)
	}
	if len(p.Errors) != 11 {
		t.Fatalf("len(Errors) = %d, want 11", len(p.Errors))
	}

	for i, e := range p.Errors {
		off := 380 + errorEntryWidth*i
		b := HexByte(raw[off : off+2])
		if e.ErrorCode != b&0x7f {
			t.Errorf("entry %d: ErrorCode = %d, want %d", i, e.ErrorCode, b&0x7f)
		}
		if e.PriorityBit != Bit(b, 7) {
			t.Errorf("entry %d: PriorityBit = %v, want %v", i, e.PriorityBit, Bit(b, 7))
		}
		if e.ErrorLocation != HexByte(raw[off+2:off+4]) {
			t.Errorf("entry %d: ErrorLocation = %d", i, e.ErrorLocation)
		}
		if !strings.HasPrefix(e.DataHash, raw[off:off+4]) {
			t.Errorf("entry %d: DataHash = %s, want prefix %s", i, e.DataHash, raw[off:off+4])
		}
	}
}

func TestDecode_NegativeErrorTimestampHash(t *testing.T) {
	// Errors older than the boot resolve to negative times; the hash keeps the sign
	raw := mustSample(t, "low_power_1")
	p, _ := Decode(raw)

	start := errorSections[MessageLowPower].start
	negative := 0
	for i, e := range p.Errors {
		if e.Timestamp >= 0 {
			continue
		}
		negative++
		off := start + errorEntryWidth*i
		want := raw[off:off+4] + "-" + strconv.FormatInt(-e.Timestamp, 16)
		if e.DataHash != want {
			t.Errorf("entry %d: DataHash = %s, want %s", i, e.DataHash, want)
		}
	}
	if negative == 0 {
		t.Fatal("expected low_power_1 to carry errors with negative timestamps")
	}
}
