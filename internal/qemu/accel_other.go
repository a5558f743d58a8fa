// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

//go:build !darwin && !linux

package qemu

func hostAccelSupported() bool {
	return false
}
