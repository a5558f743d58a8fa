// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmfoundry/vmlaunch/internal/config"
	"github.com/vmfoundry/vmlaunch/internal/qemu"
)

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Default()
	cfg.Arch = "aarch64"
	cfg.DiskPath = "/tmp/d.img"
	cfg.Memory = "8G"
	cfg.USB = true
	cfg.USBVendorID = "0x046d"
	cfg.USBProductID = "0xc52b"

	require.NoError(t, config.Save(path, cfg))

	loaded, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadKeepsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	data := []byte("disk_path: /tmp/d.img\nnetwork: false\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/d.img", cfg.DiskPath)
	assert.False(t, cfg.Network)
	assert.Equal(t, "16G", cfg.Memory)
	assert.Equal(t, "host_share", cfg.MountTag)
	assert.Equal(t, uint64(4), cfg.SMP)
}

func TestMemoryMB(t *testing.T) {
	tests := []struct {
		memory   string
		expected uint64
		errors   bool
	}{
		{memory: "", expected: 0},
		{memory: "16G", expected: 16384},
		{memory: "512M", expected: 512},
		{memory: "1024", expected: 0}, // bytes round down to 0 MB
		{memory: "lots", errors: true},
	}

	for _, tt := range tests {
		t.Run(tt.memory, func(t *testing.T) {
			cfg := config.Config{Memory: tt.memory}

			mb, err := cfg.MemoryMB()
			if tt.errors {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, mb)
		})
	}
}

func TestFeatures(t *testing.T) {
	t.Run("full selection", func(t *testing.T) {
		cfg := config.Default()
		cfg.DiskPath = "/tmp/d.img"
		cfg.DiskFormat = "vmdk"
		cfg.FirmwarePath = "/fw/code.fd"
		cfg.SharedDirPath = "/Users/me/Documents"
		cfg.USB = true

		features := cfg.Features()

		require.NotNil(t, features.Disk)
		assert.Equal(t, "vmdk", features.Disk.Format)
		require.NotNil(t, features.Firmware)
		assert.Equal(t, "/fw/code.fd", features.Firmware.Path)
		require.NotNil(t, features.SharedFolder)
		assert.Equal(t, "host_share", features.SharedFolder.MountTag)
		require.NotNil(t, features.Audio)
		require.NotNil(t, features.USB)
		assert.True(t, features.GPU)
		assert.True(t, features.Input)
		assert.True(t, features.Network)
	})

	t.Run("empty selection", func(t *testing.T) {
		cfg := config.Config{}

		features := cfg.Features()

		assert.Nil(t, features.Disk)
		assert.Nil(t, features.Firmware)
		assert.Nil(t, features.SharedFolder)
		assert.Nil(t, features.Audio)
		assert.Nil(t, features.USB)
		assert.False(t, features.GPU)
	})
}

func TestApplySmartDefaults(t *testing.T) {
	prefix := t.TempDir()

	binDir := filepath.Join(prefix, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))

	fwDir := filepath.Join(prefix, "share", "qemu")
	require.NoError(t, os.MkdirAll(fwDir, 0o755))

	executable := filepath.Join(binDir, "qemu-system-aarch64")
	require.NoError(t, os.WriteFile(executable, []byte{0}, 0o755))

	firmware := filepath.Join(fwDir, "edk2-aarch64-code.fd")
	require.NoError(t, os.WriteFile(firmware, []byte{0}, 0o644))

	profile := qemu.Profile{
		Executable:   "qemu-system-aarch64",
		FirmwareFile: "edk2-aarch64-code.fd",
	}

	cfg := config.Default()
	cfg.ApplySmartDefaults(
		func() (string, error) { return prefix, nil },
		profile,
	)

	assert.Equal(t, executable, cfg.Executable)
	assert.Equal(t, firmware, cfg.FirmwarePath)
	assert.NotEmpty(t, cfg.SharedDirPath)
}
