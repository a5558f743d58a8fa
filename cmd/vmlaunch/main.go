// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vmfoundry/vmlaunch/internal/cmd"
	"github.com/vmfoundry/vmlaunch/internal/qemu"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	root := cmd.New()

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("Interrupted")
			os.Exit(130)
		}

		slog.Error(err.Error())

		var launchErr *qemu.LaunchError
		if errors.As(err, &launchErr) && launchErr.ExitCode > 0 {
			os.Exit(launchErr.ExitCode)
		}

		os.Exit(1)
	}
}
