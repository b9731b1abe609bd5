// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

// DiagnosticKind classifies a decode problem
type DiagnosticKind int

const (
	// DiagWrongSize aborts the decode of one packet; nothing else is decoded
	DiagWrongSize DiagnosticKind = iota
	DiagInvalidMessageType
	DiagInvalidSatState
	DiagInvalidErrorCode
	DiagInvalidErrorLocation

	numDiagnosticKinds = 5
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagWrongSize:
		return "WRONG_SIZE"
	case DiagInvalidMessageType:
		return "INVALID_MSG_TYPE"
	case DiagInvalidSatState:
		return "INVALID_SAT_STATE"
	case DiagInvalidErrorCode:
		return "INVALID_ECODE"
	case DiagInvalidErrorLocation:
		return "INVALID_ELOC"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the kind name
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic reports a problem found while decoding a packet.
// Only DiagWrongSize stops decoding; every other kind is soft.
type Diagnostic struct {
	Kind    DiagnosticKind         `json:"kind"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	return d.Message
}

// Fatal reports whether the diagnostic stopped the decode
func (d *Diagnostic) Fatal() bool {
	return d.Kind == DiagWrongSize
}

// diagnostics accumulates the diagnostics of a single decode call
type diagnostics struct {
	list []Diagnostic
}

func (ds *diagnostics) add(kind DiagnosticKind, msg string, details map[string]interface{}) {
	ds.list = append(ds.list, Diagnostic{Kind: kind, Message: msg, Details: details})
}
