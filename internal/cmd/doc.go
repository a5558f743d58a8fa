// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

// Package cmd provides the CLI entry point for vmlaunch. It handles flag
// parsing, configuration loading, logging, and wires the synthesis pipeline:
// profile resolution, acceleration probe, firmware lookup, command assembly,
// and validation.
package cmd
