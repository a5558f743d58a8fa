// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import "golang.org/x/sys/unix"

// hostAccelSupported checks if the KVM device is accessible.
func hostAccelSupported() bool {
	return unix.Access("/dev/kvm", unix.W_OK) == nil
}
