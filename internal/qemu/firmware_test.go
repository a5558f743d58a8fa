// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmfoundry/vmlaunch/internal/qemu"
	"github.com/vmfoundry/vmlaunch/internal/sys"
)

func staticPrefix(prefix string) qemu.PrefixFunc {
	return func() (string, error) {
		return prefix, nil
	}
}

func TestLocateFirmware(t *testing.T) {
	profile, err := qemu.ProfileFor(sys.ARM64)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		prefix := t.TempDir()
		dir := filepath.Join(prefix, "share", "qemu")
		require.NoError(t, os.MkdirAll(dir, 0o755))

		expected := filepath.Join(dir, "edk2-aarch64-code.fd")
		require.NoError(t, os.WriteFile(expected, []byte{0}, 0o644))

		path, err := qemu.LocateFirmware(staticPrefix(prefix), profile)
		require.NoError(t, err)

		assert.Equal(t, expected, path)
		assert.True(t, filepath.IsAbs(path))
	})

	t.Run("missing", func(t *testing.T) {
		path, err := qemu.LocateFirmware(staticPrefix(t.TempDir()), profile)
		require.ErrorIs(t, err, qemu.ErrFirmwareNotFound)
		assert.Empty(t, path)
	})

	t.Run("prefix lookup fails", func(t *testing.T) {
		prefixErr := errors.New("brew not installed")
		failing := func() (string, error) {
			return "", prefixErr
		}

		_, err := qemu.LocateFirmware(failing, profile)
		require.ErrorIs(t, err, prefixErr)
	})
}
