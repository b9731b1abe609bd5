// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thermoquad/equistat/pkg/calibration"
	"github.com/Thermoquad/equistat/pkg/packetparse"
)

// executeCommand runs the root command with args and captures its output
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag of c and its subcommands to its default
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

const minimalCalibration = `
DATA_SECTION_START_BYTE: 58
IDLE_BATCHES_PER_PACKET: 7
ATTITUDE_BATCHES_PER_PACKET: 5
FLASHBURST_BATCHES_PER_PACKET: 7
FLASHCMP_BATCHES_PER_PACKET: 6
LOWPOWER_BATCHES_PER_PACKET: 5
ERROR_TIME_BUCKET_SIZE: 60
Ms_and_Bs: [3, 5]
signals_to_m: {S_LREF: 0}
signals_to_b: {S_LREF: 1}
error_codes: [A, B]
error_locations: [X]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func sampleHex(t *testing.T, name string) string {
	t.Helper()
	for _, s := range packetparse.Samples {
		if s.Name == name {
			return s.Hex
		}
	}
	t.Fatalf("no sample named %q", name)
	return ""
}

// ============================================================
// Decode Command Tests
// ============================================================

func TestDecode_SamplesText(t *testing.T) {
	stdout, _, err := executeCommand(t, "decode")
	require.NoError(t, err)

	for _, s := range packetparse.Samples {
		assert.Contains(t, stdout, "=== "+s.Name+" ===")
	}
	assert.Contains(t, stdout, "[WL9XZE t=13905] IDLE state=IDLE_FLASH data=161B errors=11")
	assert.Contains(t, stdout, "[WL9XZE t=28285] ATTITUDE state=IDLE_FLASH data=165B errors=9")
}

func TestDecode_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "decode", "--format", "json")
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(stdout))
	var types []string
	for {
		var doc struct {
			Preamble struct {
				MessageType string `json:"message_type"`
			} `json:"preamble"`
		}
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		types = append(types, doc.Preamble.MessageType)
	}

	require.Len(t, types, len(packetparse.Samples))
	assert.Equal(t, "ATTITUDE", types[0])
	assert.Equal(t, "IDLE", types[1])
}

func TestDecode_CBORSequence(t *testing.T) {
	stdout, _, err := executeCommand(t, "decode", "-f", "cbor")
	require.NoError(t, err)

	dec := cbor.NewDecoder(strings.NewReader(stdout))
	n := 0
	for {
		var doc map[string]interface{}
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		assert.Contains(t, doc, "preamble")
		n++
	}
	assert.Equal(t, len(packetparse.Samples), n)
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, _, err := executeCommand(t, "decode", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestDecode_CaptureFile(t *testing.T) {
	hex := sampleHex(t, "idle")
	capture := "noise\r\n" + hex[:200] + "\n" + hex[200:] + "\ntrailing\n"
	path := writeFile(t, "capture.txt", capture)

	stdout, _, err := executeCommand(t, "decode", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "=== "+path+" #0 ===")
	assert.NotContains(t, stdout, path+" #1")
	assert.Contains(t, stdout, "IDLE state=IDLE_FLASH")
}

func TestDecode_EmptyCapture(t *testing.T) {
	path := writeFile(t, "empty.txt", "no packets here\n")

	stdout, _, err := executeCommand(t, "decode", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestDecode_MissingFile(t *testing.T) {
	_, _, err := executeCommand(t, "decode", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read capture")
}

func TestDecode_Stats(t *testing.T) {
	_, stderr, err := executeCommand(t, "decode", "--stats")
	require.NoError(t, err)

	assert.Contains(t, stderr, "=== Statistics")
	assert.Contains(t, stderr, "Total Packets:          9")
	assert.Contains(t, stderr, "INVALID_ECODE")
}

func TestDecode_BadCalibration(t *testing.T) {
	path := writeFile(t, "bad.yaml", "Ms_and_Bs: [1, 2")

	_, _, err := executeCommand(t, "--calibration", path, "decode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load calibration")
}

// ============================================================
// Calibration Command Tests
// ============================================================

func TestCalibrationShow_Default(t *testing.T) {
	stdout, _, err := executeCommand(t, "calibration", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "ERROR_TIME_BUCKET_SIZE: 30")

	tbl, err := calibration.Parse([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, calibration.Default().Signals(), tbl.Signals())
}

func TestCalibrationShow_Selected(t *testing.T) {
	path := writeFile(t, "table.yaml", minimalCalibration)

	stdout, _, err := executeCommand(t, "--calibration", path, "calibration", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ERROR_TIME_BUCKET_SIZE: 60")

	// An explicit file wins over the selected table
	stdout, _, err = executeCommand(t, "calibration", "show", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ERROR_TIME_BUCKET_SIZE: 60")
}

func TestCalibrationCheck(t *testing.T) {
	path := writeFile(t, "table.yaml", minimalCalibration)

	stdout, _, err := executeCommand(t, "calibration", "check", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, path+": OK")
	assert.Contains(t, stdout, "Signals:          1")
	assert.Contains(t, stdout, "Error codes:      2")
	assert.Contains(t, stdout, "Error bucket:     60s")
}

func TestCalibrationCheck_Invalid(t *testing.T) {
	path := writeFile(t, "table.yaml", "Ms_and_Bs: []\n")

	_, _, err := executeCommand(t, "calibration", "check", path)
	require.Error(t, err)

	_, _, err = executeCommand(t, "calibration", "check")
	require.Error(t, err, "check requires a file argument")
}
