// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import "github.com/Thermoquad/equistat/pkg/calibration"

// IdleBatch is one housekeeping sample of an IDLE packet
type IdleBatch struct {
	EventHistory
	BatteryReadings
	RadioTemp   int64   `json:"RAD_TEMP"`
	IMUTemp     float64 `json:"IMU_TEMP"`
	IRFlashAmb  float64 `json:"IR_FLASH_AMB"`
	IRSide1Amb  float64 `json:"IR_SIDE1_AMB"`
	IRSide2Amb  float64 `json:"IR_SIDE2_AMB"`
	IRRBFAmb    float64 `json:"IR_RBF_AMB"`
	IRAccessAmb float64 `json:"IR_ACCESS_AMB"`
	IRTop1Amb   float64 `json:"IR_TOP1_AMB"`
	Timestamp   int64   `json:"timestamp"`
	DataHash    string  `json:"data_hash"`
}

// IdleData is the data section of an IDLE packet
type IdleData []IdleBatch

func (IdleData) MessageType() MessageType { return MessageIdle }

// Len returns the number of batches
func (s IdleData) Len() int { return len(s) }

func (IdleData) dataSection() {}

func (d *Decoder) decodeIdleData(ps string) IdleData {
	n := d.table.IdleBatches()
	data := make(IdleData, 0, n)
	start := d.table.DataSectionStart()

	for i := 0; i < n; i++ {
		at := func(off int) int { return HexByte(field(ps, start+off, 2)) }
		irAmb := func(off int) float64 {
			return IRRawToCelsius(d.untruncate(at(off), calibration.SignalIRAmbient))
		}

		data = append(data, IdleBatch{
			EventHistory:    DecodeEventHistory(at(0)),
			BatteryReadings: d.decodeBatteryReadings(ps, start+2),
			RadioTemp:       RadioTemp(d.untruncate(at(22), calibration.SignalRadTemp)),
			IMUTemp:         IMUTemp(d.untruncate(at(24), calibration.SignalIMUTemp)),
			IRFlashAmb:      irAmb(26),
			IRSide1Amb:      irAmb(28),
			IRSide2Amb:      irAmb(30),
			IRRBFAmb:        irAmb(32),
			IRAccessAmb:     irAmb(34),
			IRTop1Amb:       irAmb(36),
			Timestamp:       LEInt32(field(ps, start+38, timestampWidth)),
			DataHash:        field(ps, start, idleBatchWidth),
		})
		start += idleBatchWidth
	}
	return data
}
