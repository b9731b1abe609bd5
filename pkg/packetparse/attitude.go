// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import "github.com/Thermoquad/equistat/pkg/calibration"

// AttitudeBatch is one attitude determination sample
type AttitudeBatch struct {
	IRFlashObj  float64 `json:"IR_FLASH_OBJ"`
	IRSide1Obj  float64 `json:"IR_SIDE1_OBJ"`
	IRSide2Obj  float64 `json:"IR_SIDE2_OBJ"`
	IRRBFObj    float64 `json:"IR_RBF_OBJ"`
	IRAccessObj float64 `json:"IR_ACCESS_OBJ"`
	IRTop1Obj   float64 `json:"IR_TOP1_OBJ"`

	// Photodiode levels, 2 bits each
	PDFlash  int `json:"PD_FLASH"`
	PDSide1  int `json:"PD_SIDE1"`
	PDSide2  int `json:"PD_SIDE2"`
	PDAccess int `json:"PD_ACCESS"`
	PDTop1   int `json:"PD_TOP1"`
	PDTop2   int `json:"PD_TOP2"`

	Accelerometer1 Vector `json:"accelerometer1"`
	Accelerometer2 Vector `json:"accelerometer2"`
	Gyroscope      Vector `json:"gyroscope"`
	Magnetometer1  Vector `json:"magnetometer1"`
	Magnetometer2  Vector `json:"magnetometer2"`

	Timestamp int64  `json:"timestamp"`
	DataHash  string `json:"data_hash"`
}

// AttitudeData is the data section of an ATTITUDE packet
type AttitudeData []AttitudeBatch

func (AttitudeData) MessageType() MessageType { return MessageAttitude }

// Len returns the number of batches
func (s AttitudeData) Len() int { return len(s) }

func (AttitudeData) dataSection() {}

// irObjects decodes six consecutive 16-bit IR object temperatures
func irObjects(ps string, start int) [6]float64 {
	var out [6]float64
	for i := range out {
		out[i] = IRRawToCelsius(leUint16(field(ps, start+4*i, 4)))
	}
	return out
}

// bodyVector decodes an X, Z, Y ordered triple whose X and Z axes are
// mounted inverted relative to the body frame
func bodyVector(raw func(off int) int64, off int, conv func(int64) float64) Vector {
	return Vector{
		X: -conv(raw(off)),
		Z: -conv(raw(off + 2)),
		Y: conv(raw(off + 4)),
	}
}

func (d *Decoder) decodeAttitudeData(ps string) AttitudeData {
	n := d.table.AttitudeBatches()
	data := make(AttitudeData, 0, n)
	start := d.table.DataSectionStart()

	for i := 0; i < n; i++ {
		at := func(off int) int { return HexByte(field(ps, start+off, 2)) }
		sig := func(s calibration.Signal) func(int) int64 {
			return func(off int) int64 { return d.untruncate(at(off), s) }
		}

		ir := irObjects(ps, start)
		pd1, pd2 := at(24), at(26)

		data = append(data, AttitudeBatch{
			IRFlashObj:  ir[0],
			IRSide1Obj:  ir[1],
			IRSide2Obj:  ir[2],
			IRRBFObj:    ir[3],
			IRAccessObj: ir[4],
			IRTop1Obj:   ir[5],

			PDFlash:  (pd1 >> 6) & 0x03,
			PDSide1:  (pd1 >> 4) & 0x03,
			PDSide2:  (pd1 >> 2) & 0x03,
			PDAccess: pd1 & 0x03,
			PDTop1:   (pd2 >> 6) & 0x03,
			PDTop2:   (pd2 >> 4) & 0x03,

			Accelerometer1: bodyVector(sig(calibration.SignalAccel), 28, AccelRawToG),
			Accelerometer2: bodyVector(sig(calibration.SignalAccel), 34, AccelRawToG),
			Gyroscope:      bodyVector(sig(calibration.SignalGyro), 40, GyroRawToDPS),
			Magnetometer1:  bodyVector(sig(calibration.SignalMag), 46, MagRawToMilliGauss),
			Magnetometer2:  bodyVector(sig(calibration.SignalMag), 52, MagRawToMilliGauss),

			Timestamp: LEInt32(field(ps, start+58, timestampWidth)),
			DataHash:  field(ps, start, attitudeBatchWidth),
		})
		start += attitudeBatchWidth
	}
	return data
}
