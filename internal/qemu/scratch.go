// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultScratchDiskSize is the size of a probe scratch disk image in bytes.
// The image is sparse, so almost nothing is actually written.
const DefaultScratchDiskSize = int64(64 * 1024 * 1024)

// CreateScratchDisk creates a disposable raw disk image in dir for use as a
// probe or validation target.
//
// The caller owns the image and must remove it after use, regardless of the
// probe outcome.
func CreateScratchDisk(dir string, size int64) (string, error) {
	if size <= 0 {
		size = DefaultScratchDiskSize
	}

	path := filepath.Join(dir, "scratch-"+uuid.NewString()+".raw")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("create scratch disk: %w", err)
	}

	if err := f.Truncate(size); err != nil {
		_ = f.Close()
		_ = os.Remove(path)

		return "", fmt.Errorf("size scratch disk: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close scratch disk: %w", err)
	}

	return path, nil
}
