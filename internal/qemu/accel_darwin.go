// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import "golang.org/x/sys/unix"

// hostAccelSupported checks the Hypervisor.framework support flag.
func hostAccelSupported() bool {
	support, err := unix.SysctlUint32("kern.hv_support")

	return err == nil && support == 1
}
