// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package calibration provides the immutable calibration table used to turn
// raw EQUiSat telemetry samples into physical units.
//
// A Table is built once (from the embedded defaults or a data file) and then
// shared read-only by every decode call. Nothing in this package mutates a
// Table after Parse returns, so a *Table may be used from many goroutines
// without locking.
package calibration

import (
	"errors"
	"fmt"
)

// Signal identifies a calibrated analog channel in the scalar pool.
type Signal string

// Signals referenced by the packet decoder
const (
	SignalLRef          Signal = "S_LREF"
	SignalLSense        Signal = "S_L_SNS"
	SignalLTemp         Signal = "S_L_TEMP"
	SignalPanelRef      Signal = "S_PANELREF"
	SignalLFVolt        Signal = "S_LF_VOLT"
	SignalAccel         Signal = "S_ACCEL"
	SignalGyro          Signal = "S_GYRO"
	SignalMag           Signal = "S_MAG"
	SignalRadTemp       Signal = "S_RAD_TEMP"
	SignalIMUTemp       Signal = "S_IMU_TEMP"
	SignalIRAmbient     Signal = "S_IR_AMB"
	SignalLEDTempFlash  Signal = "S_LED_TEMP_FLASH"
	SignalLFTemp        Signal = "S_LF_TEMP"
	SignalLFSenseFlash  Signal = "S_LF_SNS_FLASH"
	SignalLFOSenseFlash Signal = "S_LF_OSNS_FLASH"
	SignalLEDSense      Signal = "S_LED_SNS"
)

// ErrInvalidTable is wrapped by every validation failure returned from Parse.
var ErrInvalidTable = errors.New("invalid calibration table")

// Table holds the calibration constants for one spacecraft.
type Table struct {
	dataSectionStart  int
	idleBatches       int
	attitudeBatches   int
	flashBurstBatches int
	flashCmpBatches   int
	lowPowerBatches   int
	errorBucketSize   int64

	scalars        []int64
	slopeIndex     map[Signal]int
	interceptIndex map[Signal]int
	errorCodes     []string
	errorLocations []string
}

// DataSectionStart returns the hex-character offset of the first data batch
func (t *Table) DataSectionStart() int {
	return t.dataSectionStart
}

// IdleBatches returns the number of batches in an IDLE data section
func (t *Table) IdleBatches() int {
	return t.idleBatches
}

// AttitudeBatches returns the number of batches in an ATTITUDE data section
func (t *Table) AttitudeBatches() int {
	return t.attitudeBatches
}

// FlashBurstBatches returns the number of burst units in a FLASH_BURST data section
func (t *Table) FlashBurstBatches() int {
	return t.flashBurstBatches
}

// FlashCmpBatches returns the number of batches in a FLASH_CMP data section
func (t *Table) FlashCmpBatches() int {
	return t.flashCmpBatches
}

// LowPowerBatches returns the number of batches in a LOW_POWER data section
func (t *Table) LowPowerBatches() int {
	return t.lowPowerBatches
}

// ErrorTimeBucketSize returns the width, in seconds, of one error time bucket
func (t *Table) ErrorTimeBucketSize() int64 {
	return t.errorBucketSize
}

// Coefficients returns the slope and intercept for a signal.
// ok is false when the signal has no entry in the table.
func (t *Table) Coefficients(sig Signal) (m, b int64, ok bool) {
	mi, okM := t.slopeIndex[sig]
	bi, okB := t.interceptIndex[sig]
	if !okM || !okB {
		return 0, 0, false
	}
	return t.scalars[mi], t.scalars[bi], true
}

// Signals returns the number of signals with both a slope and an intercept
func (t *Table) Signals() int {
	n := 0
	for sig := range t.slopeIndex {
		if _, ok := t.interceptIndex[sig]; ok {
			n++
		}
	}
	return n
}

// ErrorCodeName resolves a 7-bit error code to its name
func (t *Table) ErrorCodeName(code int) (string, bool) {
	return lookupName(t.errorCodes, code)
}

// ErrorLocationName resolves an error location to its name
func (t *Table) ErrorLocationName(loc int) (string, bool) {
	return lookupName(t.errorLocations, loc)
}

// ErrorCodes returns the number of named error codes
func (t *Table) ErrorCodes() int {
	return len(t.errorCodes)
}

// ErrorLocations returns the number of named error locations
func (t *Table) ErrorLocations() int {
	return len(t.errorLocations)
}

func lookupName(names []string, i int) (string, bool) {
	if i < 0 || i >= len(names) {
		return "", false
	}
	return names[i], true
}

// validate checks index bounds and counts; it is run once by Parse
func (t *Table) validate() error {
	if t.dataSectionStart < 0 {
		return fmt.Errorf("%w: DATA_SECTION_START_BYTE=%d is negative", ErrInvalidTable, t.dataSectionStart)
	}

	counts := map[string]int{
		"IDLE_BATCHES_PER_PACKET":       t.idleBatches,
		"ATTITUDE_BATCHES_PER_PACKET":   t.attitudeBatches,
		"FLASHBURST_BATCHES_PER_PACKET": t.flashBurstBatches,
		"FLASHCMP_BATCHES_PER_PACKET":   t.flashCmpBatches,
		"LOWPOWER_BATCHES_PER_PACKET":   t.lowPowerBatches,
	}
	for key, n := range counts {
		if n < 0 {
			return fmt.Errorf("%w: %s=%d is negative", ErrInvalidTable, key, n)
		}
	}

	if t.errorBucketSize <= 0 {
		return fmt.Errorf("%w: ERROR_TIME_BUCKET_SIZE=%d must be positive", ErrInvalidTable, t.errorBucketSize)
	}

	for sig, i := range t.slopeIndex {
		if i < 0 || i >= len(t.scalars) {
			return fmt.Errorf("%w: slope index %d for %s outside Ms_and_Bs (len %d)", ErrInvalidTable, i, sig, len(t.scalars))
		}
		if t.scalars[i] == 0 {
			return fmt.Errorf("%w: slope for %s is zero", ErrInvalidTable, sig)
		}
	}
	for sig, i := range t.interceptIndex {
		if i < 0 || i >= len(t.scalars) {
			return fmt.Errorf("%w: intercept index %d for %s outside Ms_and_Bs (len %d)", ErrInvalidTable, i, sig, len(t.scalars))
		}
	}

	return nil
}
