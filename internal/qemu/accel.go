// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import "runtime"

// AccelResult is the outcome of the acceleration probe. It is produced once
// per run and never mutated afterwards.
type AccelResult struct {
	// Accelerated is set if the probe boot was not rejected.
	Accelerated bool

	// Flag is the engine accelerator, e.g. hvf or kvm.
	Flag string

	// CPU is the CPU model to use with the accelerator.
	CPU string

	// Diagnostics holds the probe's captured stderr if the boot was
	// rejected.
	Diagnostics string
}

// String implements [fmt.Stringer].
func (r AccelResult) String() string {
	if r.Accelerated {
		return "hardware (" + r.Flag + ")"
	}

	return "software"
}

// HardwareAccelerated returns the result for an accepted probe. Accelerated
// guests run with the host CPU model passed through.
func HardwareAccelerated(flag string) AccelResult {
	return AccelResult{
		Accelerated: true,
		Flag:        flag,
		CPU:         "host",
	}
}

// SoftwareFallback returns the result for a rejected probe.
func SoftwareFallback() AccelResult {
	return AccelResult{}
}

// HostAccelSupported reports whether the host kernel exposes hardware
// virtualization support. It is a fast hint only; the probe remains
// authoritative.
func HostAccelSupported() bool {
	return hostAccelSupported()
}

// HostAccelFlag returns the accelerator the host OS offers, or an empty
// string if there is none.
func HostAccelFlag() string {
	switch runtime.GOOS {
	case "darwin":
		return "hvf"
	case "linux":
		return "kvm"
	case "netbsd":
		return "nvmm"
	case "windows":
		return "whpx"
	default:
		return ""
	}
}
