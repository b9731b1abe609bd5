// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package calibration

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTable []byte

var (
	defaultOnce sync.Once
	defaultTbl  *Table
)

// maxFileSize bounds calibration files read from disk
const maxFileSize = 1 * 1024 * 1024

// tableFile is the on-disk layout of a calibration data file.
// JSON files load through the same path since JSON is valid YAML.
type tableFile struct {
	DataSectionStartByte       int            `yaml:"DATA_SECTION_START_BYTE"`
	IdleBatchesPerPacket       int            `yaml:"IDLE_BATCHES_PER_PACKET"`
	AttitudeBatchesPerPacket   int            `yaml:"ATTITUDE_BATCHES_PER_PACKET"`
	FlashBurstBatchesPerPacket int            `yaml:"FLASHBURST_BATCHES_PER_PACKET"`
	FlashCmpBatchesPerPacket   int            `yaml:"FLASHCMP_BATCHES_PER_PACKET"`
	LowPowerBatchesPerPacket   int            `yaml:"LOWPOWER_BATCHES_PER_PACKET"`
	ErrorTimeBucketSize        int64          `yaml:"ERROR_TIME_BUCKET_SIZE"`
	MsAndBs                    []int64        `yaml:"Ms_and_Bs,flow"`
	SignalsToM                 map[string]int `yaml:"signals_to_m"`
	SignalsToB                 map[string]int `yaml:"signals_to_b"`
	ErrorCodes                 []string       `yaml:"error_codes"`
	ErrorLocations             []string       `yaml:"error_locations"`
}

// Parse builds a validated Table from YAML or JSON calibration data
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse calibration data: %w", err)
	}

	t := &Table{
		dataSectionStart:  f.DataSectionStartByte,
		idleBatches:       f.IdleBatchesPerPacket,
		attitudeBatches:   f.AttitudeBatchesPerPacket,
		flashBurstBatches: f.FlashBurstBatchesPerPacket,
		flashCmpBatches:   f.FlashCmpBatchesPerPacket,
		lowPowerBatches:   f.LowPowerBatchesPerPacket,
		errorBucketSize:   f.ErrorTimeBucketSize,
		scalars:           append([]int64(nil), f.MsAndBs...),
		slopeIndex:        make(map[Signal]int, len(f.SignalsToM)),
		interceptIndex:    make(map[Signal]int, len(f.SignalsToB)),
		errorCodes:        append([]string(nil), f.ErrorCodes...),
		errorLocations:    append([]string(nil), f.ErrorLocations...),
	}
	for name, i := range f.SignalsToM {
		t.slopeIndex[Signal(name)] = i
	}
	for name, i := range f.SignalsToB {
		t.interceptIndex[Signal(name)] = i
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Load reads and parses a calibration data file
func Load(path string) (*Table, error) {
	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat calibration file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("calibration file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration file: %w", err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cleanPath, err)
	}
	return t, nil
}

// Default returns the embedded calibration table.
// The table is parsed on first use and shared by all callers.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(defaultTable)
		if err != nil {
			panic(fmt.Sprintf("embedded calibration table: %v", err))
		}
		defaultTbl = t
	})
	return defaultTbl
}

// MarshalYAML renders the table in calibration file layout
func (t *Table) MarshalYAML() (interface{}, error) {
	f := tableFile{
		DataSectionStartByte:       t.dataSectionStart,
		IdleBatchesPerPacket:       t.idleBatches,
		AttitudeBatchesPerPacket:   t.attitudeBatches,
		FlashBurstBatchesPerPacket: t.flashBurstBatches,
		FlashCmpBatchesPerPacket:   t.flashCmpBatches,
		LowPowerBatchesPerPacket:   t.lowPowerBatches,
		ErrorTimeBucketSize:        t.errorBucketSize,
		MsAndBs:                    t.scalars,
		SignalsToM:                 make(map[string]int, len(t.slopeIndex)),
		SignalsToB:                 make(map[string]int, len(t.interceptIndex)),
		ErrorCodes:                 t.errorCodes,
		ErrorLocations:             t.errorLocations,
	}
	for sig, i := range t.slopeIndex {
		f.SignalsToM[string(sig)] = i
	}
	for sig, i := range t.interceptIndex {
		f.SignalsToB[string(sig)] = i
	}
	return f, nil
}
