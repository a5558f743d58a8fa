// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmfoundry/vmlaunch/internal/qemu"
)

func TestCreateScratchDisk(t *testing.T) {
	dir := t.TempDir()

	path, err := qemu.CreateScratchDisk(dir, 0)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".raw", filepath.Ext(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, qemu.DefaultScratchDiskSize, info.Size())
}

func TestCreateScratchDiskUniqueNames(t *testing.T) {
	dir := t.TempDir()

	first, err := qemu.CreateScratchDisk(dir, 1024)
	require.NoError(t, err)

	second, err := qemu.CreateScratchDisk(dir, 1024)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
