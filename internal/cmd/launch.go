// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/vmfoundry/vmlaunch/internal/config"
	"github.com/vmfoundry/vmlaunch/internal/qemu"
	"github.com/vmfoundry/vmlaunch/internal/sys"
)

// loadConfig reads the configuration from the given path, or from the
// canonical location if empty. A missing file falls back to defaults.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		var err error

		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("No config file, using defaults",
				slog.String("path", path))

			return config.Default(), nil
		}

		return config.Config{}, err
	}

	return cfg, nil
}

// resolveProfile resolves the architecture profile for the configured or
// native architecture and applies the executable override.
func resolveProfile(cfg *config.Config) (qemu.Profile, error) {
	arch := sys.Native

	if cfg.Arch != "" {
		if err := arch.Set(cfg.Arch); err != nil {
			return qemu.Profile{}, fmt.Errorf("arch %q: %w", cfg.Arch, err)
		}
	}

	profile, err := qemu.ProfileFor(arch)
	if err != nil {
		return qemu.Profile{}, err
	}

	if cfg.Executable != "" {
		profile.Executable = cfg.Executable
	}

	return profile, nil
}

// probeAccel runs the acceleration probe against a disposable scratch disk.
// The scratch image is removed before returning, whatever the outcome.
func probeAccel(
	ctx context.Context,
	profile qemu.Profile,
	timeout time.Duration,
) (qemu.AccelResult, error) {
	slog.Debug("Host acceleration hint",
		slog.Bool("supported", qemu.HostAccelSupported()))

	scratchDir, err := os.MkdirTemp("", "vmlaunch-probe-*")
	if err != nil {
		return qemu.SoftwareFallback(), fmt.Errorf("scratch dir: %w", err)
	}
	defer removeAll(scratchDir)

	scratchDisk, err := qemu.CreateScratchDisk(scratchDir, 0)
	if err != nil {
		return qemu.SoftwareFallback(), err
	}

	result, err := qemu.Probe(ctx, profile, qemu.ProbeSpec{
		ScratchDisk: scratchDisk,
		Timeout:     timeout,
	})
	if err != nil {
		return qemu.SoftwareFallback(), err
	}

	if !result.Accelerated && result.Diagnostics != "" {
		slog.Debug("Acceleration probe rejected",
			slog.String("stderr", result.Diagnostics))
	}

	return result, nil
}

// locateFirmware resolves the firmware image path. A configured path wins;
// otherwise the package manager prefix is searched. A missing image degrades
// gracefully: assembly proceeds without the firmware group.
func locateFirmware(cfg *config.Config, profile qemu.Profile) string {
	if cfg.FirmwarePath != "" {
		return cfg.FirmwarePath
	}

	path, err := qemu.LocateFirmware(qemu.BrewPrefix, profile)
	if err != nil {
		if errors.Is(err, qemu.ErrFirmwareNotFound) {
			slog.Warn("Firmware not found, booting without UEFI",
				slog.String("file", profile.FirmwareFile))
		} else {
			slog.Warn("Firmware lookup failed, booting without UEFI",
				slog.Any("error", err))
		}

		return ""
	}

	return path
}

// assembleCommand builds the final command from the configured feature
// selection, the resolved profile, and the probe result.
func assembleCommand(
	cfg *config.Config,
	profile qemu.Profile,
	accel qemu.AccelResult,
	firmwarePath string,
) (qemu.Command, error) {
	memory, err := cfg.MemoryMB()
	if err != nil {
		return qemu.Command{}, err
	}

	features := cfg.Features()

	if firmwarePath != "" && features.Firmware == nil {
		features.Firmware = &qemu.FirmwareConfig{Path: firmwarePath}
	}

	spec := qemu.CommandSpec{
		Profile:  profile,
		Accel:    accel,
		Memory:   memory,
		SMP:      cfg.SMP,
		Features: features,
	}

	cmd, err := spec.Command()
	if err != nil {
		return qemu.Command{}, fmt.Errorf("assemble command: %w", err)
	}

	return cmd, nil
}

func removeAll(path string) {
	if err := os.RemoveAll(path); err != nil {
		slog.Error("Failed to remove scratch directory",
			slog.String("path", path),
			slog.Any("error", err))
	}
}
