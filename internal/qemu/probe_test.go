// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmfoundry/vmlaunch/internal/qemu"
	"github.com/vmfoundry/vmlaunch/internal/sys"
)

func probeProfile(t *testing.T, script string) qemu.Profile {
	t.Helper()

	profile, err := qemu.ProfileFor(sys.ARM64)
	require.NoError(t, err)

	profile.Executable = writeStubEngine(t, script)

	return profile
}

func TestProbe(t *testing.T) {
	if qemu.HostAccelFlag() == "" {
		t.Skip("host OS offers no accelerator")
	}

	t.Run("clean exit is accelerated", func(t *testing.T) {
		profile := probeProfile(t, "exit 0")

		result, err := qemu.Probe(context.Background(), profile, qemu.ProbeSpec{
			Timeout: 5 * time.Second,
		})
		require.NoError(t, err)

		assert.True(t, result.Accelerated)
		assert.Equal(t, qemu.HostAccelFlag(), result.Flag)
		assert.Equal(t, "host", result.CPU)
	})

	t.Run("deadline kill is accelerated", func(t *testing.T) {
		profile := probeProfile(t, "sleep 30")

		result, err := qemu.Probe(context.Background(), profile, qemu.ProbeSpec{
			Timeout: 200 * time.Millisecond,
		})
		require.NoError(t, err)

		assert.True(t, result.Accelerated)
	})

	t.Run("fast error exit is software fallback", func(t *testing.T) {
		profile := probeProfile(t,
			`echo "accelerator not available" >&2; exit 1`)

		result, err := qemu.Probe(context.Background(), profile, qemu.ProbeSpec{
			Timeout: 5 * time.Second,
		})
		require.NoError(t, err)

		assert.False(t, result.Accelerated)
		assert.Contains(t, result.Diagnostics, "accelerator not available")
	})

	t.Run("missing engine", func(t *testing.T) {
		profile, err := qemu.ProfileFor(sys.ARM64)
		require.NoError(t, err)

		profile.Executable = filepath.Join(t.TempDir(), "missing")

		_, err = qemu.Probe(context.Background(), profile, qemu.ProbeSpec{
			Timeout: time.Second,
		})

		var probeErr *qemu.ProbeError
		require.ErrorAs(t, err, &probeErr)
	})
}

// The probe must request acceleration, suppress the display, and attach the
// scratch disk in non-persistent mode.
func TestProbeArguments(t *testing.T) {
	if qemu.HostAccelFlag() == "" {
		t.Skip("host OS offers no accelerator")
	}

	argsFile := filepath.Join(t.TempDir(), "args")
	profile := probeProfile(t, `echo "$@" > `+argsFile)

	scratch, err := qemu.CreateScratchDisk(t.TempDir(), 0)
	require.NoError(t, err)

	_, err = qemu.Probe(context.Background(), profile, qemu.ProbeSpec{
		ScratchDisk: scratch,
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)

	recorded, err := os.ReadFile(argsFile)
	require.NoError(t, err)

	args := string(recorded)
	assert.Contains(t, args, "-accel "+qemu.HostAccelFlag())
	assert.Contains(t, args, "-cpu host")
	assert.Contains(t, args, "-display none")
	assert.Contains(t, args, "-snapshot")
	assert.Contains(t, args, "file="+scratch)
}

// Repeated probes in the same environment classify identically.
func TestProbeIdempotent(t *testing.T) {
	if qemu.HostAccelFlag() == "" {
		t.Skip("host OS offers no accelerator")
	}

	profile := probeProfile(t, "exit 1")

	first, err := qemu.Probe(context.Background(), profile, qemu.ProbeSpec{
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)

	second, err := qemu.Probe(context.Background(), profile, qemu.ProbeSpec{
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, first.Accelerated, second.Accelerated)
	assert.Equal(t, first.Flag, second.Flag)
}
