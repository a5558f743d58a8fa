// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import (
	"strconv"
)

const (
	memoryDefault = 4096
	smpDefault    = 4

	diskFormatDefault   = "qcow2"
	audioBackendDefault = "coreaudio"
)

// CommandSpec defines the parameters for assembling a [Command].
//
// The assembler performs no I/O and does not invoke the engine. Feature
// groups are emitted in a fixed canonical order regardless of how the
// features were requested, since QEMU is order-sensitive for some option
// classes: base, firmware, disk, gpu, input, network, audio, shared folder,
// usb.
type CommandSpec struct {
	// Profile of the target architecture. All device identifiers are taken
	// from it.
	Profile Profile

	// Accel is the result of the acceleration probe. If accelerated, the
	// base group carries the acceleration flag and the accelerated CPU
	// model. Otherwise the profile's default CPU model is used and the
	// engine falls back to software emulation.
	Accel AccelResult

	// Memory for the guest in MB. Defaults to 4096.
	Memory uint64

	// SMP is the number of guest CPUs. Defaults to 4.
	SMP uint64

	// Features are the requested feature toggles.
	Features Features
}

// Arguments compiles the ordered argument list for the spec.
//
// It fails without building anything if an enabled feature misses a required
// parameter.
func (s *CommandSpec) Arguments() (Arguments, error) {
	if err := s.Features.Validate(); err != nil {
		return nil, err
	}

	memory := s.Memory
	if memory == 0 {
		memory = memoryDefault
	}

	smp := s.SMP
	if smp == 0 {
		smp = smpDefault
	}

	profile := &s.Profile

	args := Arguments{
		UniqueArg("machine", profile.Machine),
	}

	if s.Accel.Accelerated {
		args.Add(
			UniqueArg("accel", s.Accel.Flag),
			UniqueArg("cpu", s.Accel.CPU),
		)
	} else {
		args.Add(UniqueArg("cpu", profile.DefaultCPU))
	}

	args.Add(
		UniqueArg("smp", strconv.FormatUint(smp, 10)),
		UniqueArg("m", strconv.FormatUint(memory, 10)),
	)

	features := &s.Features

	if features.Firmware != nil {
		args.Add(RepeatableArg("drive",
			"if=pflash",
			"format=raw",
			"readonly=on",
			"file="+features.Firmware.Path,
		))
	}

	if features.Disk != nil {
		format := features.Disk.Format
		if format == "" {
			format = diskFormatDefault
		}

		// The drive must be declared before the device referencing its
		// identifier.
		args.Add(
			RepeatableArg("drive",
				"id=disk0",
				"if=none",
				"format="+format,
				"file="+features.Disk.Path,
			),
			RepeatableArg("device",
				profile.Device(DeviceDisk),
				"drive=disk0",
			),
		)
	}

	if features.GPU {
		args.Add(RepeatableArg("device", profile.Device(DeviceGPU)))
	}

	if features.Input {
		args.Add(
			RepeatableArg("device", profile.Device(DeviceKeyboard)),
			RepeatableArg("device", profile.Device(DeviceTablet)),
		)
	}

	if features.Network {
		args.Add(
			RepeatableArg("netdev", "user", "id=net0"),
			RepeatableArg("device",
				profile.Device(DeviceNetwork),
				"netdev=net0",
			),
		)
	}

	if features.Audio != nil {
		backend := features.Audio.Backend
		if backend == "" {
			backend = audioBackendDefault
		}

		args.Add(
			RepeatableArg("audiodev", backend, "id=snd0"),
			RepeatableArg("device",
				profile.Device(DeviceSound),
				"audiodev=snd0",
			),
		)
	}

	if features.SharedFolder != nil {
		args.Add(
			RepeatableArg("fsdev",
				"local",
				"id=fsdev0",
				"path="+features.SharedFolder.Path,
				"security_model=passthrough",
			),
			RepeatableArg("device",
				profile.Device(DeviceSharedFolder),
				"fsdev=fsdev0",
				"mount_tag="+features.SharedFolder.MountTag,
			),
		)
	}

	if features.USB != nil {
		args.Add(RepeatableArg("device", profile.Device(DeviceUSBController)))

		if features.USB.VendorID != "" {
			args.Add(RepeatableArg("device",
				"usb-host",
				"vendorid="+features.USB.VendorID,
				"productid="+features.USB.ProductID,
			))
		}
	}

	return args, nil
}

// Command builds the final command for the spec.
func (s *CommandSpec) Command() (Command, error) {
	args, err := s.Arguments()
	if err != nil {
		return Command{}, err
	}

	argStrings, err := args.Build()
	if err != nil {
		return Command{}, err
	}

	return Command{
		Executable: s.Profile.Executable,
		Args:       argStrings,
	}, nil
}
