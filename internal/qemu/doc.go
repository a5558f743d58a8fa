// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

// Package qemu composes and validates QEMU system virtualization commands.
//
// It resolves an architecture specific device profile, probes the host for
// hardware acceleration support, locates the matching UEFI firmware, and
// assembles the selected feature groups into a single ordered command that
// can be handed to the QEMU binary. An assembled command can be test-booted
// under a deadline before it is trusted for real use. The package expects
// the required QEMU binary to be present on the system.
package qemu
