// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import (
	"encoding/binary"
	"encoding/hex"
)

// Sentinel is returned by the byte and integer helpers when their input is
// not valid hex or has the wrong length.
//
// A field that legitimately decodes to -1 cannot be told apart from a
// malformed one; callers that care must validate the hex themselves.
const Sentinel = -1

// field returns ps[start:start+n], clipped to the string bounds
func field(ps string, start, n int) string {
	if start < 0 || start >= len(ps) {
		return ""
	}
	end := start + n
	if end > len(ps) {
		end = len(ps)
	}
	return ps[start:end]
}

// HexByte decodes two hex characters as an unsigned byte (0-255)
func HexByte(s string) int {
	if len(s) != 2 {
		return Sentinel
	}
	var b [1]byte
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return Sentinel
	}
	return int(b[0])
}

// SignedByte decodes two hex characters as a sign-extended byte (-128..127).
// The byte is placed in the top of a 32-bit word and arithmetically shifted
// back down.
func SignedByte(s string) int {
	u := HexByte(s)
	if u == Sentinel {
		return Sentinel
	}
	return int(int32(uint32(u)<<24) >> 24)
}

// LEInt32 decodes 8 hex characters as a little-endian signed 32-bit integer
func LEInt32(s string) int64 {
	if len(s) != 8 {
		return Sentinel
	}
	var b [4]byte
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return Sentinel
	}
	return int64(int32(binary.LittleEndian.Uint32(b[:])))
}

// leUint16 decodes 4 hex characters as a little-endian 16-bit value by
// zero-padding to a 32-bit word
func leUint16(s string) int64 {
	if len(s) != 4 {
		return Sentinel
	}
	return LEInt32(s + "0000")
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
