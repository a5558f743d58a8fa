// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PrefixFunc resolves the package manager's install prefix.
type PrefixFunc func() (string, error)

// BrewPrefix resolves the Homebrew install prefix, the conventional QEMU
// install location on macOS.
func BrewPrefix() (string, error) {
	out, err := exec.Command("brew", "--prefix").Output()
	if err != nil {
		return "", fmt.Errorf("brew --prefix: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}

// LocateFirmware resolves the absolute path of the profile's UEFI firmware
// image below the given install prefix.
//
// A missing image is reported with [ErrFirmwareNotFound] and left to the
// caller to handle, either by skipping firmware dependent steps or by
// prompting an installation. The locator never installs anything itself.
func LocateFirmware(installPrefix PrefixFunc, profile Profile) (string, error) {
	prefix, err := installPrefix()
	if err != nil {
		return "", fmt.Errorf("install prefix: %w", err)
	}

	path := filepath.Join(prefix, "share", "qemu", profile.FirmwareFile)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", path, ErrFirmwareNotFound)
		}

		return "", fmt.Errorf("stat firmware: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute firmware path: %w", err)
	}

	return abs, nil
}
