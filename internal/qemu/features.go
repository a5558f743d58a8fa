// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

// Feature is one independently enable-able VM capability.
type Feature string

const (
	FeatureFirmware     Feature = "firmware"
	FeatureDisk         Feature = "disk"
	FeatureGPU          Feature = "gpu"
	FeatureInput        Feature = "input"
	FeatureNetwork      Feature = "network"
	FeatureAudio        Feature = "audio"
	FeatureSharedFolder Feature = "shared-folder"
	FeatureUSB          Feature = "usb"
)

// FirmwareConfig boots the guest with a UEFI firmware image.
type FirmwareConfig struct {
	// Path to the firmware code image, usually resolved with
	// [LocateFirmware].
	Path string
}

// DiskConfig attaches a block device backed by a disk image.
type DiskConfig struct {
	// Path to the disk image.
	Path string

	// Format of the disk image. Defaults to qcow2.
	Format string
}

// AudioConfig attaches a sound device.
type AudioConfig struct {
	// Backend is the host audio backend. Defaults to coreaudio.
	Backend string
}

// SharedFolderConfig exports a host directory to the guest via 9p.
type SharedFolderConfig struct {
	// Path is the host directory to share.
	Path string

	// MountTag is the tag the guest uses to mount the share.
	MountTag string
}

// USBConfig attaches an XHCI controller and optionally passes through a
// single host USB device.
type USBConfig struct {
	// VendorID of the host device to pass through, e.g. "0x046d". Empty
	// attaches the controller only.
	VendorID string

	// ProductID of the host device to pass through, e.g. "0xc52b".
	ProductID string
}

// Features is the set of requested feature toggles. Toggles are independent
// and any subset is composable. The set is unordered; emission order is fixed
// by the assembler.
type Features struct {
	Firmware     *FirmwareConfig
	Disk         *DiskConfig
	GPU          bool
	Input        bool
	Network      bool
	Audio        *AudioConfig
	SharedFolder *SharedFolderConfig
	USB          *USBConfig
}

// Validate checks that every enabled toggle carries its required parameters.
func (f *Features) Validate() error {
	if f.Firmware != nil && f.Firmware.Path == "" {
		return &IncompleteFeatureError{FeatureFirmware, "path"}
	}

	if f.Disk != nil && f.Disk.Path == "" {
		return &IncompleteFeatureError{FeatureDisk, "path"}
	}

	if f.SharedFolder != nil {
		if f.SharedFolder.Path == "" {
			return &IncompleteFeatureError{FeatureSharedFolder, "path"}
		}

		if f.SharedFolder.MountTag == "" {
			return &IncompleteFeatureError{FeatureSharedFolder, "mount_tag"}
		}
	}

	if f.USB != nil {
		if f.USB.VendorID != "" && f.USB.ProductID == "" {
			return &IncompleteFeatureError{FeatureUSB, "product_id"}
		}

		if f.USB.ProductID != "" && f.USB.VendorID == "" {
			return &IncompleteFeatureError{FeatureUSB, "vendor_id"}
		}
	}

	return nil
}
