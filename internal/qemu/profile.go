// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import (
	"fmt"

	"github.com/vmfoundry/vmlaunch/internal/sys"
)

// BusKind is the virtual hardware bus convention devices attach to. It
// differs by target architecture and must never be mixed within a single
// command.
type BusKind string

const (
	// BusPCI attaches virtio devices to the PCI bus. Convention for x86_64
	// with the q35 machine type.
	BusPCI BusKind = "pci"
	// BusVirtio attaches virtio devices to the platform bus. Convention for
	// aarch64 with the virt machine type.
	BusVirtio BusKind = "virtio"
)

// deviceSuffix returns the QEMU device name suffix for the bus.
func (b BusKind) deviceSuffix() string {
	if b == BusPCI {
		return "-pci"
	}

	return "-device"
}

// DeviceClass identifies a guest device slot a feature maps to.
type DeviceClass string

const (
	DeviceDisk          DeviceClass = "disk"
	DeviceGPU           DeviceClass = "gpu"
	DeviceKeyboard      DeviceClass = "keyboard"
	DeviceTablet        DeviceClass = "tablet"
	DeviceNetwork       DeviceClass = "network"
	DeviceSound         DeviceClass = "sound"
	DeviceSharedFolder  DeviceClass = "shared-folder"
	DeviceUSBController DeviceClass = "usb-controller"
)

// Profile is the fixed bundle of conventions for one target architecture.
//
// It is constructed once per resolved architecture by [ProfileFor] and passed
// by value afterwards. All device identifiers used in an assembled command
// must come from the profile of the current host architecture.
type Profile struct {
	// Arch is the architecture this profile was resolved for.
	Arch sys.Arch

	// Executable is the name of the qemu-system binary.
	Executable string

	// Machine is the QEMU machine type.
	Machine string

	// DefaultCPU is the CPU model used without hardware acceleration.
	DefaultCPU string

	// BusKind is the bus convention all virtio devices of this profile use.
	BusKind BusKind

	// FirmwareFile is the file name of the UEFI firmware image.
	FirmwareFile string

	// DeviceNames maps device classes to the architecture's device
	// identifiers.
	DeviceNames map[DeviceClass]string
}

// ProfileFor resolves the profile for the given architecture.
//
// It is pure and deterministic. Unknown architectures are rejected with
// [sys.ErrArchNotSupported] instead of guessing.
func ProfileFor(arch sys.Arch) (Profile, error) {
	var profile Profile

	switch arch {
	case sys.ARM64:
		profile = Profile{
			Arch:       arch,
			Machine:    "virt",
			DefaultCPU: "cortex-a72",
			BusKind:    BusVirtio,
		}
	case sys.AMD64:
		profile = Profile{
			Arch:       arch,
			Machine:    "q35",
			DefaultCPU: "Haswell-v4",
			BusKind:    BusPCI,
		}
	default:
		return Profile{}, fmt.Errorf(
			"arch %s: %w", arch.String(), sys.ErrArchNotSupported,
		)
	}

	profile.Executable = "qemu-system-" + arch.QemuArch()
	profile.FirmwareFile = fmt.Sprintf("edk2-%s-code.fd", arch.QemuArch())
	profile.DeviceNames = deviceNamesFor(profile.BusKind)

	return profile, nil
}

// Device returns the device identifier for the given class.
func (p *Profile) Device(class DeviceClass) string {
	return p.DeviceNames[class]
}

// deviceNamesFor builds the device name table for a single bus kind. Keeping
// the suffix in one place guarantees no mixed-bus identifiers can occur.
func deviceNamesFor(bus BusKind) map[DeviceClass]string {
	suffix := bus.deviceSuffix()

	return map[DeviceClass]string{
		DeviceDisk:         "virtio-blk" + suffix,
		DeviceGPU:          "virtio-gpu" + suffix,
		DeviceKeyboard:     "virtio-keyboard" + suffix,
		DeviceTablet:       "virtio-tablet" + suffix,
		DeviceNetwork:      "virtio-net" + suffix,
		DeviceSound:        "virtio-sound" + suffix,
		DeviceSharedFolder: "virtio-9p" + suffix,
		// The XHCI controller brings its own bus and is the same on both
		// architectures.
		DeviceUSBController: "qemu-xhci",
	}
}
