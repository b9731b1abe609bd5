// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// EQUiStat - EQUiSat Telemetry Packet Decoder
//
// A CLI tool for decoding the ASCII-hex packets downlinked by the EQUiSat
// satellite into calibrated, human-readable records.

package main

import (
	"os"

	"github.com/Thermoquad/equistat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
