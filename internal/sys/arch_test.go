// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package sys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmfoundry/vmlaunch/internal/sys"
)

func TestArchSet(t *testing.T) {
	tests := []struct {
		input    string
		expected sys.Arch
		errors   bool
	}{
		{input: "arm64", expected: sys.ARM64},
		{input: "aarch64", expected: sys.ARM64},
		{input: "amd64", expected: sys.AMD64},
		{input: "x86_64", expected: sys.AMD64},
		{input: "riscv64", errors: true},
		{input: "", errors: true},
		{input: "ARM64", errors: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var arch sys.Arch

			err := arch.Set(tt.input)
			if tt.errors {
				require.ErrorIs(t, err, sys.ErrArchNotSupported)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, arch)
		})
	}
}

func TestArchQemuArch(t *testing.T) {
	arm := sys.ARM64
	amd := sys.AMD64
	unknown := sys.Arch("mips")

	assert.Equal(t, "aarch64", arm.QemuArch())
	assert.Equal(t, "x86_64", amd.QemuArch())
	assert.Empty(t, unknown.QemuArch())
}
