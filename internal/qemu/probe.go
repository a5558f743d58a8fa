// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import (
	"context"
	"time"
)

// DefaultProbeTimeout bounds the acceleration probe boot. A rejected
// accelerator fails well below this; a VM still alive at the deadline has
// booted past initialization.
const DefaultProbeTimeout = 1200 * time.Millisecond

// probeMemory is the guest memory in MB for the minimal probe boot.
const probeMemory = "256"

// ProbeSpec defines the parameters for an acceleration probe.
type ProbeSpec struct {
	// ScratchDisk is a disposable disk image attached in non-persistent
	// mode. The caller owns its lifecycle.
	ScratchDisk string

	// Timeout bounds the probe boot. Defaults to [DefaultProbeTimeout].
	Timeout time.Duration
}

// Probe runs a minimal boot with hardware acceleration requested and
// classifies availability.
//
// A probe that exits zero within the deadline or is still running when the
// deadline expires was not rejected for lacking accelerator support and
// counts as accelerated. Only a fast non-zero exit means the accelerator is
// unavailable. The result is authoritative for the run; there is no retry.
func Probe(
	ctx context.Context,
	profile Profile,
	spec ProbeSpec,
) (AccelResult, error) {
	flag := HostAccelFlag()
	if flag == "" {
		return SoftwareFallback(), nil
	}

	timeout := spec.Timeout
	if timeout == 0 {
		timeout = DefaultProbeTimeout
	}

	args := Arguments{
		UniqueArg("machine", profile.Machine),
		UniqueArg("accel", flag),
		UniqueArg("cpu", "host"),
		UniqueArg("m", probeMemory),
		UniqueArg("display", "none"),
		UniqueArg("monitor", "none"),
		UniqueArg("snapshot"),
	}

	if spec.ScratchDisk != "" {
		args.Add(RepeatableArg("drive",
			"if=virtio",
			"format=raw",
			"file="+spec.ScratchDisk,
		))
	}

	argStrings, err := args.Build()
	if err != nil {
		return SoftwareFallback(), &ProbeError{Err: err}
	}

	cmd := Command{
		Executable: profile.Executable,
		Args:       argStrings,
	}

	result, err := cmd.RunBounded(ctx, timeout)
	if err != nil {
		return SoftwareFallback(), &ProbeError{Err: err}
	}

	if result.TimedOut || result.ExitCode == 0 {
		return HardwareAccelerated(flag), nil
	}

	fallback := SoftwareFallback()
	fallback.Diagnostics = result.Stderr

	return fallback, nil
}
