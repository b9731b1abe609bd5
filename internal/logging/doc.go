// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package logging provides structured logging for the equistat CLI.
//
// It wraps a process-wide zap logger. Logging is silent unless a level is
// given with --log-level or the EQUISTAT_LOG_LEVEL environment variable, so
// decoded output on stdout is never interleaved with log lines. Log output
// goes to stderr.
//
// Levels:
//   - debug: per-packet diagnostics, raw frames
//   - info: connections opened and closed, files scanned
//   - warn: recoverable read failures, packets abandoned by the framer
//   - error: failures that end a command
//
// Initialize once at startup and flush on exit:
//
//	if err := logging.Initialize(level); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The package level functions are safe for concurrent use once Initialize
// has returned.
package logging
