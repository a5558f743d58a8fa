// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package sys

import (
	"errors"
	"runtime"
)

// Arch is a guest or host architecture in Go notation.
type Arch string

// Supported architectures.
const (
	AMD64 Arch = "amd64"
	ARM64 Arch = "arm64"
)

// Native is the architecture of the host. Hardware acceleration is only
// available if the guest architecture matches it.
const Native Arch = Arch(runtime.GOARCH)

var ErrArchNotSupported = errors.New("architecture not supported")

// String implements [fmt.Stringer].
func (a *Arch) String() string {
	return string(*a)
}

// QemuArch returns the architecture in QEMU notation, as used in binary and
// firmware file names.
func (a *Arch) QemuArch() string {
	switch *a {
	case AMD64:
		return "x86_64"
	case ARM64:
		return "aarch64"
	default:
		return ""
	}
}

// IsNative returns whether the architecture matches the host.
func (a *Arch) IsNative() bool {
	return Native == *a
}

// Set implements [flag.Value]. It accepts both Go and QEMU notation.
func (a *Arch) Set(s string) error {
	switch s {
	case string(AMD64), "x86_64":
		*a = AMD64
	case string(ARM64), "aarch64":
		*a = ARM64
	default:
		return ErrArchNotSupported
	}

	return nil
}

// Type implements [pflag.Value].
func (a *Arch) Type() string {
	return "arch"
}
