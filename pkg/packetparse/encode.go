// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborMode encodes with sorted map keys so equal packets produce equal bytes
var cborMode = func() cbor.EncMode {
	opts := cbor.CoreDetEncOptions()
	opts.TextMarshaler = cbor.TextMarshalerTextString
	em, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor encode mode: %v", err))
	}
	return em
}()

// EncodeJSON renders a packet as indented JSON. Enumerations are written
// by name.
func EncodeJSON(p *Packet) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode packet as JSON: %w", err)
	}
	return data, nil
}

// EncodeCBOR renders a packet as deterministic CBOR. Field names and
// enumeration names match the JSON form.
func EncodeCBOR(p *Packet) ([]byte, error) {
	data, err := cborMode.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode packet as CBOR: %w", err)
	}
	return data, nil
}
