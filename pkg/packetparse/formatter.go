// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

import (
	"fmt"
	"strings"
)

// FormatPacket formats a packet into a human-readable string
func FormatPacket(p *Packet) string {
	if p.Preamble == nil {
		return FormatDiagnostics(p.Diagnostics)
	}

	var b strings.Builder
	b.WriteString(FormatPreamble(p.Preamble))
	if p.CurrentInfo != nil {
		b.WriteString(FormatCurrentInfo(p.CurrentInfo))
	}
	if p.Data != nil {
		b.WriteString(FormatDataSection(p.Data))
	}
	if len(p.Errors) > 0 {
		b.WriteString(FormatErrors(p.Errors))
	}
	b.WriteString(FormatDiagnostics(p.Diagnostics))
	return b.String()
}

// FormatPreamble returns the one-line packet header
func FormatPreamble(pre *Preamble) string {
	flags := ""
	if pre.FlashKilled {
		flags += " FLASH_KILLED"
	}
	if pre.MRAMCopy {
		flags += " MRAM_CPY"
	}
	return fmt.Sprintf("[%s t=%d] %s state=%s data=%dB errors=%d%s\n",
		pre.Callsign, pre.Timestamp, pre.MessageType, pre.SatelliteState,
		pre.BytesOfData, pre.NumErrors, flags)
}

// FormatCurrentInfo formats the current info block
func FormatCurrentInfo(ci *CurrentInfo) string {
	result := fmt.Sprintf("  Current: time_to_flash=%d boot_count=%d\n", ci.TimeToFlash, ci.BootCount)
	result += "  " + formatBattery(&ci.BatteryReadings) + "\n"
	result += fmt.Sprintf("  LF refs: %d / %d / %d / %d mV\n", ci.LF1Ref, ci.LF2Ref, ci.LF3Ref, ci.LF4Ref)
	result += "  Signals: " + FormatDigitalSignals(ci.DigitalSignals) + "\n"
	return result
}

func formatBattery(r *BatteryReadings) string {
	return fmt.Sprintf("L1: ref=%dmV sns=%.0fmA temp=%.0fC | L2: ref=%dmV sns=%.0fmA temp=%.0fC | panel=%dmV lref=%dmV",
		r.L1Ref, r.L1Sense, r.L1Temp, r.L2Ref, r.L2Sense, r.L2Temp, r.PanelRef, r.LRef)
}

// FormatDigitalSignals lists the asserted signals, or "none"
func FormatDigitalSignals(ds DigitalSignals) string {
	named := []struct {
		name string
		set  bool
	}{
		{"L1_RUN_CHG", ds.L1RunCharge},
		{"L2_RUN_CHG", ds.L2RunCharge},
		{"LF_B1_RUN_CHG", ds.LFB1RunCharge},
		{"LF_B2_RUN_CHG", ds.LFB2RunCharge},
		{"LF_B2_CHGN", ds.LFB2ChargeN},
		{"LF_B2_FAULTN", ds.LFB2FaultN},
		{"LF_B1_FAULTN", ds.LFB1FaultN},
		{"LF_B1_CHGN", ds.LFB1ChargeN},
		{"L2_ST", ds.L2State},
		{"L1_ST", ds.L1State},
		{"L1_DISG", ds.L1Discharge},
		{"L2_DISG", ds.L2Discharge},
		{"L1_CHGN", ds.L1ChargeN},
		{"L1_FAULTN", ds.L1FaultN},
		{"L2_CHGN", ds.L2ChargeN},
		{"L2_FAULTN", ds.L2FaultN},
	}

	var set []string
	for _, n := range named {
		if n.set {
			set = append(set, n.name)
		}
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, " ")
}

// FormatEventHistory lists the reached milestones, or "none"
func FormatEventHistory(eh EventHistory) string {
	named := []struct {
		name string
		set  bool
	}{
		{"ANTENNA_DEPLOYED", eh.AntennaDeployed},
		{"LION_1_CHARGED", eh.Lion1Charged},
		{"LION_2_CHARGED", eh.Lion2Charged},
		{"LIFEPO4_B1_CHARGED", eh.LiFePO4B1Charged},
		{"LIFEPO4_B2_CHARGED", eh.LiFePO4B2Charged},
		{"FIRST_FLASH", eh.FirstFlash},
		{"PROG_MEM_REWRITTEN", eh.ProgMemRewritten},
	}

	var set []string
	for _, n := range named {
		if n.set {
			set = append(set, n.name)
		}
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, " ")
}

// FormatDataSection formats every batch of a data section
func FormatDataSection(s DataSection) string {
	result := fmt.Sprintf("  %s data (%d):\n", s.MessageType(), s.Len())

	switch data := s.(type) {
	case IdleData:
		for i := range data {
			result += formatIdleBatch(i, &data[i])
		}
	case AttitudeData:
		for i := range data {
			result += formatAttitudeBatch(i, &data[i])
		}
	case FlashBurstData:
		result += fmt.Sprintf("    t=%d\n", data.Timestamp)
		for i := range data.Burst {
			result += formatFlashReadings(i, &data.Burst[i].FlashReadings)
			result += fmt.Sprintf("        gyro=%s\n", formatVector(data.Burst[i].Gyroscope))
		}
	case FlashCmpData:
		for i := range data {
			result += formatFlashReadings(i, &data[i].FlashReadings)
			result += fmt.Sprintf("        mag=%s t=%d\n", formatVector(data[i].Magnetometer), data[i].Timestamp)
		}
	case LowPowerData:
		for i := range data {
			result += formatLowPowerBatch(i, &data[i])
		}
	}
	return result
}

func formatIdleBatch(i int, b *IdleBatch) string {
	result := fmt.Sprintf("    #%d t=%d events=%s\n", i, b.Timestamp, FormatEventHistory(b.EventHistory))
	result += "        " + formatBattery(&b.BatteryReadings) + "\n"
	result += fmt.Sprintf("        rad=%dC imu=%.2fC ir_amb=[%.2f %.2f %.2f %.2f %.2f %.2f]\n",
		b.RadioTemp, b.IMUTemp,
		b.IRFlashAmb, b.IRSide1Amb, b.IRSide2Amb, b.IRRBFAmb, b.IRAccessAmb, b.IRTop1Amb)
	return result
}

func formatAttitudeBatch(i int, b *AttitudeBatch) string {
	result := fmt.Sprintf("    #%d t=%d ir_obj=[%.2f %.2f %.2f %.2f %.2f %.2f] pd=[%d %d %d %d %d %d]\n",
		i, b.Timestamp,
		b.IRFlashObj, b.IRSide1Obj, b.IRSide2Obj, b.IRRBFObj, b.IRAccessObj, b.IRTop1Obj,
		b.PDFlash, b.PDSide1, b.PDSide2, b.PDAccess, b.PDTop1, b.PDTop2)
	result += fmt.Sprintf("        accel1=%s accel2=%s gyro=%s\n",
		formatVector(b.Accelerometer1), formatVector(b.Accelerometer2), formatVector(b.Gyroscope))
	result += fmt.Sprintf("        mag1=%s mag2=%s\n", formatVector(b.Magnetometer1), formatVector(b.Magnetometer2))
	return result
}

func formatLowPowerBatch(i int, b *LowPowerBatch) string {
	result := fmt.Sprintf("    #%d t=%d events=%s\n", i, b.Timestamp, FormatEventHistory(b.EventHistory))
	result += "        " + formatBattery(&b.BatteryReadings) + "\n"
	result += fmt.Sprintf("        ir_obj=[%.2f %.2f %.2f %.2f %.2f %.2f] gyro=%s\n",
		b.IRFlashObj, b.IRSide1Obj, b.IRSide2Obj, b.IRRBFObj, b.IRAccessObj, b.IRTop1Obj,
		formatVector(b.Gyroscope))
	return result
}

func formatFlashReadings(i int, r *FlashReadings) string {
	result := fmt.Sprintf("    #%d led_temp=[%.0f %.0f %.0f %.0f] lf_temp=[%.0f %.0f]\n",
		i, r.LED1Temp, r.LED2Temp, r.LED3Temp, r.LED4Temp, r.LF1Temp, r.LF3Temp)
	result += fmt.Sprintf("        lfb1=%.0f/%.0fmA lfb2=%.0f/%.0fmA lf_ref=[%d %d %d %d]\n",
		r.LFB1Sense, r.LFB1OSense, r.LFB2Sense, r.LFB2OSense, r.LF1Ref, r.LF2Ref, r.LF3Ref, r.LF4Ref)
	result += fmt.Sprintf("        led_sns=[%.0f %.0f %.0f %.0f]\n", r.LED1Sense, r.LED2Sense, r.LED3Sense, r.LED4Sense)
	return result
}

func formatVector(v Vector) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// FormatErrors formats the error log
func FormatErrors(errs []ErrorRecord) string {
	result := fmt.Sprintf("  Errors (%d):\n", len(errs))
	for i, e := range errs {
		priority := ""
		if e.PriorityBit {
			priority = " [PRIORITY]"
		}
		result += fmt.Sprintf("    #%-2d t=%d %s (%d) @ %s (%d)%s\n",
			i, e.Timestamp, e.ErrorCodeName, e.ErrorCode, e.ErrorLocationName, e.ErrorLocation, priority)
	}
	return result
}

// FormatDiagnostics formats a diagnostics list; empty lists format to ""
func FormatDiagnostics(diags []Diagnostic) string {
	result := ""
	for _, d := range diags {
		result += fmt.Sprintf("  ! %s: %s\n", d.Kind, d.Message)
	}
	return result
}
