// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import (
	"math"

	"github.com/Thermoquad/equistat/pkg/calibration"
)

// Untruncate reconstructs a full-resolution reading from an 8-bit sample.
//
// The sample is shifted into the high byte of a 16-bit value, floor-divided
// by the signal slope and then offset by the intercept. The division happens
// before the subtraction, so the result carries the same truncation as the
// flight software. Returns Sentinel if the signal is not in the table.
func Untruncate(t *calibration.Table, raw int, sig calibration.Signal) int64 {
	m, b, ok := t.Coefficients(sig)
	if !ok {
		return Sentinel
	}
	return floorDiv(int64(raw)<<8, m) - b
}

// round rounds half away from zero to the given number of decimals
func round(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(x*p) / p
}

// MagRawToMilliGauss converts a magnetometer reading
func MagRawToMilliGauss(raw int64) float64 {
	return round(float64(raw)*0.6, 2)
}

// AccelRawToG converts an accelerometer reading
func AccelRawToG(raw int64) float64 {
	return round(float64(raw)/16384, 2)
}

// GyroRawToDPS converts a gyroscope reading to degrees per second
func GyroRawToDPS(raw int64) float64 {
	return round(float64(raw)/131, 2)
}

// IRRawToCelsius converts an MLX90614 object or ambient reading
func IRRawToCelsius(raw int64) float64 {
	return round(float64(raw)*0.02-273.15, 2)
}

// AD590ToCelsius converts an AD590 sensor voltage (mV)
func AD590ToCelsius(mV int64) float64 {
	return round(float64(mV)*0.1286-107.405, 0)
}

// LineSenseToMilliAmps converts a Li-ion line current sense voltage (mV)
func LineSenseToMilliAmps(mV int64) float64 {
	return round(float64(mV-985)*2, 0)
}

// LFBSenseToMilliAmps converts a LiFePO4 bank current sense voltage (mV)
func LFBSenseToMilliAmps(mV int64) float64 {
	return round(float64(mV-980)*50, 0)
}

// LFBOutputSenseToMilliAmps converts a LiFePO4 bank output sense voltage (mV)
func LFBOutputSenseToMilliAmps(mV int64) float64 {
	return round(float64(mV)*71.43, 0)
}

// LEDSenseToMilliAmps converts an LED current sense voltage (mV)
func LEDSenseToMilliAmps(mV int64) float64 {
	return round(float64(mV)/0.03, 0)
}

// PanelRefVoltage rescales an untruncated panel reference reading
func PanelRefVoltage(u int64) int64 {
	return floorDiv((u-130)*5580, 1000)
}

// LineRefVoltage rescales an untruncated line reference reading
func LineRefVoltage(u int64) int64 {
	return floorDiv((u-50)*2717, 1000)
}

// RadioTemp rescales an untruncated radio temperature reading
func RadioTemp(u int64) int64 {
	return floorDiv(u, 10)
}

// IMUTemp rescales an untruncated IMU temperature reading
func IMUTemp(u int64) float64 {
	return float64(u)/333.87 + 21
}
