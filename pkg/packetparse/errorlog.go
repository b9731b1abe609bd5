// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import (
	"fmt"
	"strconv"
)

// InvalidName marks an enumeration value with no known name
const InvalidName = "INVALID"

// ErrorRecord is one entry of a packet's error log
type ErrorRecord struct {
	ErrorCode         int    `json:"error_code"`
	PriorityBit       bool   `json:"priority_bit"`
	ErrorLocation     int    `json:"error_location"`
	Timestamp         int64  `json:"timestamp"`
	ErrorCodeName     string `json:"error_code_name"`
	ErrorLocationName string `json:"error_location_name"`

	// DataHash is the code and location bytes followed by the resolved
	// timestamp in lowercase hex
	DataHash string `json:"data_hash"`
}

// ErrorTimestamp resolves an error's time bucket against the packet
// timestamp: packetTime - bucketSize*bucket
func ErrorTimestamp(packetTime int64, bucket int, bucketSize int64) int64 {
	return packetTime - bucketSize*int64(bucket)
}

// decodeErrors decodes the error log of a packet with a known message type
func (d *Decoder) decodeErrors(ps string, mt MessageType, packetTime int64, diags *diagnostics) []ErrorRecord {
	section := errorSections[mt]
	records := make([]ErrorRecord, 0, section.count)
	start := section.start

	for i := 0; i < section.count; i++ {
		raw := HexByte(field(ps, start, 2))
		loc := HexByte(field(ps, start+2, 2))
		bucket := HexByte(field(ps, start+4, 2))

		rec := ErrorRecord{
			ErrorCode:     raw & errorCodeMask,
			PriorityBit:   Bit(raw, errorPriorityBit),
			ErrorLocation: loc,
			Timestamp:     ErrorTimestamp(packetTime, bucket, d.table.ErrorTimeBucketSize()),
		}

		if name, ok := d.table.ErrorCodeName(rec.ErrorCode); ok {
			rec.ErrorCodeName = name
		} else {
			rec.ErrorCodeName = InvalidName
			diags.add(DiagInvalidErrorCode,
				fmt.Sprintf("Unknown error code=%d in error entry %d", rec.ErrorCode, i),
				map[string]interface{}{"code": rec.ErrorCode, "entry": i})
		}

		if name, ok := d.table.ErrorLocationName(loc); ok {
			rec.ErrorLocationName = name
		} else {
			rec.ErrorLocationName = InvalidName
			diags.add(DiagInvalidErrorLocation,
				fmt.Sprintf("Unknown error location=%d in error entry %d", loc, i),
				map[string]interface{}{"location": loc, "entry": i})
		}

		rec.DataHash = field(ps, start, 4) + strconv.FormatInt(rec.Timestamp, 16)

		records = append(records, rec)
		start += errorEntryWidth
	}
	return records
}
