// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import "errors"

var (
	// ErrArgumentCollision is returned if two [Argument]s are considered
	// equal.
	ErrArgumentCollision = errors.New("colliding args")

	// ErrFirmwareNotFound is returned if the architecture's UEFI firmware
	// image is not present in the install prefix. The locator never attempts
	// to download or repair a missing firmware.
	ErrFirmwareNotFound = errors.New("firmware not found")
)
