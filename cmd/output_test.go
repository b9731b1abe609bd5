// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thermoquad/equistat/pkg/packetparse"
)

func TestNewPacketWriter(t *testing.T) {
	var buf bytes.Buffer

	for _, format := range []string{formatText, formatJSON, formatCBOR} {
		w, err := newPacketWriter(&buf, format, false)
		require.NoError(t, err, format)
		assert.NotNil(t, w, format)
	}

	_, err := newPacketWriter(&buf, "yaml", false)
	assert.ErrorContains(t, err, `unknown output format "yaml"`)
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	p, _ := packetparse.Decode(sampleHex(t, "idle"))

	w := &textWriter{w: &buf}
	require.NoError(t, w.WritePacket("idle", p))

	assert.Equal(t, "=== idle ===\n"+packetparse.FormatPacket(p)+"\n", buf.String())
}

func TestTextWriter_WrongSize(t *testing.T) {
	var buf bytes.Buffer
	p, _ := packetparse.Decode("574c39585a45")

	w := &textWriter{w: &buf}
	require.NoError(t, w.WritePacket("short", p))
	assert.Contains(t, buf.String(), "WRONG_SIZE")
}

func TestColorDiagnostics_OnlyDiagnosticLines(t *testing.T) {
	body := "[WL9XZE t=1] IDLE\n  ! INVALID_ECODE bad\nplain line"
	got := colorDiagnostics(body)

	assert.Contains(t, got, "[WL9XZE t=1] IDLE\n")
	assert.Contains(t, got, "plain line")
	assert.Contains(t, got, "INVALID_ECODE bad")
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	p, _ := packetparse.Decode(sampleHex(t, "attitude"))

	w := &jsonWriter{w: &buf}
	require.NoError(t, w.WritePacket("attitude", p))

	want, err := packetparse.EncodeJSON(p)
	require.NoError(t, err)
	assert.Equal(t, string(want)+"\n", buf.String())
}

func TestCBORWriter_Sequence(t *testing.T) {
	var buf bytes.Buffer
	w := &cborWriter{w: &buf}

	for _, name := range []string{"attitude", "idle"} {
		p, _ := packetparse.Decode(sampleHex(t, name))
		require.NoError(t, w.WritePacket(name, p))
	}

	dec := cbor.NewDecoder(&buf)
	var first, second map[string]interface{}
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	var extra interface{}
	assert.ErrorIs(t, dec.Decode(&extra), io.EOF)
}
