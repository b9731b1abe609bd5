// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

// Bit reports whether bit i of b is set
func Bit(b, i int) bool {
	return b&(1<<i) != 0
}

// MessageType identifies the layout of a packet's data section
type MessageType int

const (
	MessageIdle MessageType = iota
	MessageAttitude
	MessageFlashBurst
	MessageFlashCmp
	MessageLowPower

	numMessageTypes = 5

	// MessageInvalid marks a message type code with no known layout
	MessageInvalid MessageType = -1
)

// MessageTypeFromCode maps a 3-bit message type code to its variant.
// ok is false and MessageInvalid is returned for unknown codes.
func MessageTypeFromCode(code int) (MessageType, bool) {
	if code < 0 || code >= numMessageTypes {
		return MessageInvalid, false
	}
	return MessageType(code), true
}

// Valid reports whether m names a known layout
func (m MessageType) Valid() bool {
	return m >= 0 && m < numMessageTypes
}

func (m MessageType) String() string {
	switch m {
	case MessageIdle:
		return "IDLE"
	case MessageAttitude:
		return "ATTITUDE"
	case MessageFlashBurst:
		return "FLASH_BURST"
	case MessageFlashCmp:
		return "FLASH_CMP"
	case MessageLowPower:
		return "LOW_POWER"
	default:
		return InvalidName
	}
}

// MarshalText encodes the variant name
func (m MessageType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// SatelliteState is the spacecraft operating mode reported in the preamble
type SatelliteState int

const (
	StateInitial SatelliteState = iota
	StateAntennaDeploy
	StateHelloWorld
	StateIdleNoFlash
	StateIdleFlash
	StateLowPower

	numSatelliteStates = 6

	// StateInvalid marks an unknown satellite state code
	StateInvalid SatelliteState = -1
)

// SatelliteStateFromCode maps a 3-bit state code to its variant.
// ok is false and StateInvalid is returned for unknown codes.
func SatelliteStateFromCode(code int) (SatelliteState, bool) {
	if code < 0 || code >= numSatelliteStates {
		return StateInvalid, false
	}
	return SatelliteState(code), true
}

// Valid reports whether s names a known state
func (s SatelliteState) Valid() bool {
	return s >= 0 && s < numSatelliteStates
}

func (s SatelliteState) String() string {
	switch s {
	case StateInitial:
		return "INITIAL"
	case StateAntennaDeploy:
		return "ANTENNA_DEPLOY"
	case StateHelloWorld:
		return "HELLO_WORLD"
	case StateIdleNoFlash:
		return "IDLE_NO_FLASH"
	case StateIdleFlash:
		return "IDLE_FLASH"
	case StateLowPower:
		return "LOW_POWER"
	default:
		return InvalidName
	}
}

// MarshalText encodes the state name
func (s SatelliteState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EventHistory holds the one-shot mission milestones carried in IDLE and
// LOW_POWER batches. Bit 0 is unused.
type EventHistory struct {
	AntennaDeployed  bool `json:"ANTENNA_DEPLOYED"`
	Lion1Charged     bool `json:"LION_1_CHARGED"`
	Lion2Charged     bool `json:"LION_2_CHARGED"`
	LiFePO4B1Charged bool `json:"LIFEPO4_B1_CHARGED"`
	LiFePO4B2Charged bool `json:"LIFEPO4_B2_CHARGED"`
	FirstFlash       bool `json:"FIRST_FLASH"`
	ProgMemRewritten bool `json:"PROG_MEM_REWRITTEN"`
}

// DecodeEventHistory decodes an event history byte
func DecodeEventHistory(b int) EventHistory {
	return EventHistory{
		AntennaDeployed:  Bit(b, 1),
		Lion1Charged:     Bit(b, 2),
		Lion2Charged:     Bit(b, 3),
		LiFePO4B1Charged: Bit(b, 4),
		LiFePO4B2Charged: Bit(b, 5),
		FirstFlash:       Bit(b, 6),
		ProgMemRewritten: Bit(b, 7),
	}
}

// DigitalSignals holds the battery charger status lines.
//
// Fields named *N (and the DISG lines) are active low on the spacecraft and
// are stored inverted, so true always means the condition is asserted.
type DigitalSignals struct {
	L1RunCharge   bool `json:"L1_RUN_CHG"`
	L2RunCharge   bool `json:"L2_RUN_CHG"`
	LFB1RunCharge bool `json:"LF_B1_RUN_CHG"`
	LFB2RunCharge bool `json:"LF_B2_RUN_CHG"`
	LFB2ChargeN   bool `json:"LF_B2_CHGN"`
	LFB2FaultN    bool `json:"LF_B2_FAULTN"`
	LFB1FaultN    bool `json:"LF_B1_FAULTN"`
	LFB1ChargeN   bool `json:"LF_B1_CHGN"`

	L2State     bool `json:"L2_ST"`
	L1State     bool `json:"L1_ST"`
	L1Discharge bool `json:"L1_DISG"`
	L2Discharge bool `json:"L2_DISG"`
	L1ChargeN   bool `json:"L1_CHGN"`
	L1FaultN    bool `json:"L1_FAULTN"`
	L2ChargeN   bool `json:"L2_CHGN"`
	L2FaultN    bool `json:"L2_FAULTN"`
}

// DecodeDigitalSignals decodes the two battery status bytes
func DecodeDigitalSignals(b1, b2 int) DigitalSignals {
	return DigitalSignals{
		L1RunCharge:   Bit(b1, 0),
		L2RunCharge:   Bit(b1, 1),
		LFB1RunCharge: Bit(b1, 2),
		LFB2RunCharge: Bit(b1, 3),
		LFB2ChargeN:   !Bit(b1, 4),
		LFB2FaultN:    !Bit(b1, 5),
		LFB1FaultN:    !Bit(b1, 6),
		LFB1ChargeN:   !Bit(b1, 7),

		L2State:     Bit(b2, 0),
		L1State:     Bit(b2, 1),
		L1Discharge: !Bit(b2, 2),
		L2Discharge: !Bit(b2, 3),
		L1ChargeN:   !Bit(b2, 4),
		L1FaultN:    !Bit(b2, 5),
		L2ChargeN:   !Bit(b2, 6),
		L2FaultN:    !Bit(b2, 7),
	}
}

// Vector is a three-axis sensor reading
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
