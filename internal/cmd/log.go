// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

func setupLogging(writer io.Writer, levelName string) error {
	var level slog.Level

	switch levelName {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level: %s", levelName)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		writer,
		&slog.HandlerOptions{
			Level: level,
		},
	)))

	return nil
}

// echoToTerminal reports whether the assembled command preview should be
// printed. Non-interactive callers get the vector via logs instead.
func echoToTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
