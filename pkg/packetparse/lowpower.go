// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import "github.com/Thermoquad/equistat/pkg/calibration"

// LowPowerBatch is one sample of a LOW_POWER packet
type LowPowerBatch struct {
	EventHistory
	BatteryReadings
	IRFlashObj  float64 `json:"IR_FLASH_OBJ"`
	IRSide1Obj  float64 `json:"IR_SIDE1_OBJ"`
	IRSide2Obj  float64 `json:"IR_SIDE2_OBJ"`
	IRRBFObj    float64 `json:"IR_RBF_OBJ"`
	IRAccessObj float64 `json:"IR_ACCESS_OBJ"`
	IRTop1Obj   float64 `json:"IR_TOP1_OBJ"`
	Gyroscope   Vector  `json:"gyroscope"`
	Timestamp   int64   `json:"timestamp"`
	DataHash    string  `json:"data_hash"`
}

// LowPowerData is the data section of a LOW_POWER packet
type LowPowerData []LowPowerBatch

func (LowPowerData) MessageType() MessageType { return MessageLowPower }

// Len returns the number of batches
func (s LowPowerData) Len() int { return len(s) }

func (LowPowerData) dataSection() {}

// plainVector decodes an X, Y, Z ordered unsigned triple
func (d *Decoder) plainVector(ps string, start int, sig calibration.Signal, conv func(int64) float64) Vector {
	axis := func(off int) float64 {
		return conv(d.untruncate(HexByte(field(ps, start+off, 2)), sig))
	}
	return Vector{X: axis(0), Y: axis(2), Z: axis(4)}
}

func (d *Decoder) decodeLowPowerData(ps string) LowPowerData {
	n := d.table.LowPowerBatches()
	data := make(LowPowerData, 0, n)
	start := d.table.DataSectionStart()

	for i := 0; i < n; i++ {
		ir := irObjects(ps, start+22)

		data = append(data, LowPowerBatch{
			EventHistory:    DecodeEventHistory(HexByte(field(ps, start, 2))),
			BatteryReadings: d.decodeBatteryReadings(ps, start+2),
			IRFlashObj:      ir[0],
			IRSide1Obj:      ir[1],
			IRSide2Obj:      ir[2],
			IRRBFObj:        ir[3],
			IRAccessObj:     ir[4],
			IRTop1Obj:       ir[5],
			Gyroscope:       d.plainVector(ps, start+46, calibration.SignalGyro, GyroRawToDPS),
			Timestamp:       LEInt32(field(ps, start+52, timestampWidth)),
			DataHash:        field(ps, start, lowPowerBatchWidth),
		})
		start += lowPowerBatchWidth
	}
	return data
}
