// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import "github.com/Thermoquad/equistat/pkg/calibration"

// FlashReadings holds the LED and LiFePO4 telemetry recorded around a flash.
// All channels are transmitted as signed bytes.
type FlashReadings struct {
	LED1Temp   float64 `json:"LED1TEMP"`
	LED2Temp   float64 `json:"LED2TEMP"`
	LED3Temp   float64 `json:"LED3TEMP"`
	LED4Temp   float64 `json:"LED4TEMP"`
	LF1Temp    float64 `json:"LF1_TEMP"`
	LF3Temp    float64 `json:"LF3_TEMP"`
	LFB1Sense  float64 `json:"LFB1SNS"`
	LFB1OSense float64 `json:"LFB1OSNS"`
	LFB2Sense  float64 `json:"LFB2SNS"`
	LFB2OSense float64 `json:"LFB2OSNS"`
	LF1Ref     int64   `json:"LF1REF"`
	LF2Ref     int64   `json:"LF2REF"`
	LF3Ref     int64   `json:"LF3REF"`
	LF4Ref     int64   `json:"LF4REF"`
	LED1Sense  float64 `json:"LED1SNS"`
	LED2Sense  float64 `json:"LED2SNS"`
	LED3Sense  float64 `json:"LED3SNS"`
	LED4Sense  float64 `json:"LED4SNS"`
}

// FlashCmpBatch is one flash comparison sample
type FlashCmpBatch struct {
	FlashReadings
	Magnetometer Vector `json:"magnetometer"`
	Timestamp    int64  `json:"timestamp"`
	DataHash     string `json:"data_hash"`
}

// FlashCmpData is the data section of a FLASH_CMP packet
type FlashCmpData []FlashCmpBatch

func (FlashCmpData) MessageType() MessageType { return MessageFlashCmp }

// Len returns the number of batches
func (s FlashCmpData) Len() int { return len(s) }

func (FlashCmpData) dataSection() {}

// FlashBurstEntry is one sample taken during a flash burst
type FlashBurstEntry struct {
	FlashReadings
	Gyroscope Vector `json:"gyroscope"`
}

// FlashBurstData is the data section of a FLASH_BURST packet. Unlike the
// other sections it is a single aggregate: the samples are transmitted
// column by column and share one trailing timestamp.
type FlashBurstData struct {
	Burst     []FlashBurstEntry `json:"burst"`
	Timestamp int64             `json:"timestamp"`
	DataHash  string            `json:"data_hash"`
}

func (FlashBurstData) MessageType() MessageType { return MessageFlashBurst }

// Len returns the number of burst entries
func (s FlashBurstData) Len() int { return len(s.Burst) }

func (FlashBurstData) dataSection() {}

// Per-channel flash conversions, each taking one signed hex byte
func (d *Decoder) ledTemp(s string) float64 {
	return AD590ToCelsius(d.untruncate(SignedByte(s), calibration.SignalLEDTempFlash))
}

func (d *Decoder) lfTemp(s string) float64 {
	return AD590ToCelsius(d.untruncate(SignedByte(s), calibration.SignalLFTemp))
}

func (d *Decoder) lfbSense(s string) float64 {
	return LFBSenseToMilliAmps(d.untruncate(SignedByte(s), calibration.SignalLFSenseFlash))
}

func (d *Decoder) lfbOSense(s string) float64 {
	return LFBOutputSenseToMilliAmps(d.untruncate(SignedByte(s), calibration.SignalLFOSenseFlash))
}

func (d *Decoder) lfRef(s string) int64 {
	return d.untruncate(SignedByte(s), calibration.SignalLFVolt)
}

func (d *Decoder) ledSense(s string) float64 {
	return LEDSenseToMilliAmps(d.untruncate(SignedByte(s), calibration.SignalLEDSense))
}

func (d *Decoder) decodeFlashCmpData(ps string) FlashCmpData {
	n := d.table.FlashCmpBatches()
	data := make(FlashCmpData, 0, n)
	start := d.table.DataSectionStart()

	for i := 0; i < n; i++ {
		at := func(off int) string { return field(ps, start+off, 2) }

		data = append(data, FlashCmpBatch{
			FlashReadings: FlashReadings{
				LED1Temp:   d.ledTemp(at(0)),
				LED2Temp:   d.ledTemp(at(2)),
				LED3Temp:   d.ledTemp(at(4)),
				LED4Temp:   d.ledTemp(at(6)),
				LF1Temp:    d.lfTemp(at(8)),
				LF3Temp:    d.lfTemp(at(10)),
				LFB1Sense:  d.lfbSense(at(12)),
				LFB1OSense: d.lfbOSense(at(14)),
				LFB2Sense:  d.lfbSense(at(16)),
				LFB2OSense: d.lfbOSense(at(18)),
				LF1Ref:     d.lfRef(at(20)),
				LF2Ref:     d.lfRef(at(22)),
				LF3Ref:     d.lfRef(at(24)),
				LF4Ref:     d.lfRef(at(26)),
				LED1Sense:  d.ledSense(at(28)),
				LED2Sense:  d.ledSense(at(30)),
				LED3Sense:  d.ledSense(at(32)),
				LED4Sense:  d.ledSense(at(34)),
			},
			Magnetometer: d.plainVector(ps, start+36, calibration.SignalMag, MagRawToMilliGauss),
			Timestamp:    LEInt32(field(ps, start+42, timestampWidth)),
			DataHash:     field(ps, start, flashCmpBatchWidth),
		})
		start += flashCmpBatchWidth
	}
	return data
}

// flashBurstWidth returns the wire width of a burst with n entries
func flashBurstWidth(n int) int {
	unit := burstLEDTempWidth + burstLFTempWidth + burstLFSenseWidth +
		burstLFRefWidth + burstLEDSenseWidth + burstGyroWidth
	return n*unit + timestampWidth
}

func (d *Decoder) decodeFlashBurstData(ps string) FlashBurstData {
	n := d.table.FlashBurstBatches()
	start := d.table.DataSectionStart()
	burst := make([]FlashBurstEntry, n)

	data := FlashBurstData{
		Burst:    burst,
		DataHash: field(ps, start, flashBurstWidth(n)),
	}

	at := func(off int) string { return field(ps, start+off, 2) }

	for i := range burst {
		burst[i].LED1Temp = d.ledTemp(at(0))
		burst[i].LED2Temp = d.ledTemp(at(2))
		burst[i].LED3Temp = d.ledTemp(at(4))
		burst[i].LED4Temp = d.ledTemp(at(6))
		start += burstLEDTempWidth
	}

	for i := range burst {
		burst[i].LF1Temp = d.lfTemp(at(0))
		burst[i].LF3Temp = d.lfTemp(at(2))
		start += burstLFTempWidth
	}

	for i := range burst {
		burst[i].LFB1Sense = d.lfbSense(at(0))
		burst[i].LFB1OSense = d.lfbOSense(at(2))
		burst[i].LFB2Sense = d.lfbSense(at(4))
		burst[i].LFB2OSense = d.lfbOSense(at(6))
		start += burstLFSenseWidth
	}

	for i := range burst {
		burst[i].LF1Ref = d.lfRef(at(0))
		burst[i].LF2Ref = d.lfRef(at(2))
		burst[i].LF3Ref = d.lfRef(at(4))
		burst[i].LF4Ref = d.lfRef(at(6))
		start += burstLFRefWidth
	}

	for i := range burst {
		burst[i].LED1Sense = d.ledSense(at(0))
		burst[i].LED2Sense = d.ledSense(at(2))
		burst[i].LED3Sense = d.ledSense(at(4))
		burst[i].LED4Sense = d.ledSense(at(6))
		start += burstLEDSenseWidth
	}

	for i := range burst {
		burst[i].Gyroscope = d.plainVector(ps, start, calibration.SignalGyro, GyroRawToDPS)
		start += burstGyroWidth
	}

	data.Timestamp = LEInt32(field(ps, start, timestampWidth))
	return data
}
