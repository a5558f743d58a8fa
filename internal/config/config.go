// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

// Package config persists the user's launcher choices between runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docker/go-units"
	"gopkg.in/yaml.v3"

	"github.com/vmfoundry/vmlaunch/internal/qemu"
)

// Config is the structured feature selection record collected from the user.
// It is the assembler's sole input contract.
type Config struct {
	// Arch overrides the host architecture, in Go or QEMU notation.
	Arch string `yaml:"arch,omitempty"`

	// Executable overrides the engine binary from the profile.
	Executable string `yaml:"executable,omitempty"`

	DiskPath   string `yaml:"disk_path"`
	DiskFormat string `yaml:"disk_format,omitempty"`

	// FirmwarePath overrides the located firmware image.
	FirmwarePath string `yaml:"firmware_path,omitempty"`

	SharedDirPath string `yaml:"shared_dir_path,omitempty"`
	MountTag      string `yaml:"mount_tag,omitempty"`

	// Memory is a human readable size like "16G".
	Memory string `yaml:"memory,omitempty"`
	SMP    uint64 `yaml:"smp,omitempty"`

	Network bool `yaml:"network"`
	GPU     bool `yaml:"gpu"`
	Input   bool `yaml:"input"`
	Audio   bool `yaml:"audio"`

	AudioBackend string `yaml:"audio_backend,omitempty"`

	USB          bool   `yaml:"usb"`
	USBVendorID  string `yaml:"usb_vendor_id,omitempty"`
	USBProductID string `yaml:"usb_product_id,omitempty"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{
		DiskFormat: "qcow2",
		MountTag:   "host_share",
		Memory:     "16G",
		SMP:        4,
		Network:    true,
		GPU:        true,
		Input:      true,
		Audio:      true,
	}
}

// DefaultPath returns the canonical location of the configuration file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}

	return filepath.Join(home, ".config", "vmlaunch", "config.yaml"), nil
}

// Load reads the configuration from path. Omitted fields keep their
// defaults. A missing file is reported with [os.ErrNotExist] for the caller
// to fall back to [Default].
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path, creating parent directories as
// needed.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// MemoryMB parses the human readable memory size into MB.
func (c *Config) MemoryMB() (uint64, error) {
	if c.Memory == "" {
		return 0, nil
	}

	bytes, err := units.RAMInBytes(c.Memory)
	if err != nil {
		return 0, fmt.Errorf("parse memory %q: %w", c.Memory, err)
	}

	return uint64(bytes >> 20), nil
}

// Features translates the selection record into the feature toggle set. The
// firmware toggle is only enabled if a firmware path is set; the caller may
// fill it in after locating the image.
func (c *Config) Features() qemu.Features {
	features := qemu.Features{
		GPU:     c.GPU,
		Input:   c.Input,
		Network: c.Network,
	}

	if c.FirmwarePath != "" {
		features.Firmware = &qemu.FirmwareConfig{Path: c.FirmwarePath}
	}

	if c.DiskPath != "" {
		features.Disk = &qemu.DiskConfig{
			Path:   c.DiskPath,
			Format: c.DiskFormat,
		}
	}

	if c.Audio {
		features.Audio = &qemu.AudioConfig{Backend: c.AudioBackend}
	}

	if c.SharedDirPath != "" {
		features.SharedFolder = &qemu.SharedFolderConfig{
			Path:     c.SharedDirPath,
			MountTag: c.MountTag,
		}
	}

	if c.USB {
		features.USB = &qemu.USBConfig{
			VendorID:  c.USBVendorID,
			ProductID: c.USBProductID,
		}
	}

	return features
}

// ApplySmartDefaults fills empty path fields from the package manager's
// install prefix, mirroring what a first run would pick.
func (c *Config) ApplySmartDefaults(
	installPrefix qemu.PrefixFunc,
	profile qemu.Profile,
) {
	if c.SharedDirPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.SharedDirPath = filepath.Join(home, "Documents")
		}
	}

	prefix, err := installPrefix()
	if err != nil {
		return
	}

	if c.Executable == "" {
		executable := filepath.Join(prefix, "bin", profile.Executable)
		if _, err := os.Stat(executable); err == nil {
			c.Executable = executable
		}
	}

	if c.FirmwarePath == "" {
		firmware := filepath.Join(
			prefix, "share", "qemu", profile.FirmwareFile,
		)
		if _, err := os.Stat(firmware); err == nil {
			c.FirmwarePath = firmware
		}
	}
}
