// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import (
	"fmt"
	"strings"
)

// IncompleteFeatureError indicates an enabled feature is missing a required
// parameter. The command is never partially built in this case.
type IncompleteFeatureError struct {
	Feature Feature
	Field   string
}

// Error implements the [error] interface.
func (e *IncompleteFeatureError) Error() string {
	return fmt.Sprintf(
		"feature %s: missing required field %q", e.Feature, e.Field,
	)
}

// Is implements the [errors.Is] interface.
func (*IncompleteFeatureError) Is(other error) bool {
	_, ok := other.(*IncompleteFeatureError)
	return ok
}

// ProbeError wraps errors that keep the acceleration probe from running at
// all, like a missing engine binary. A probe that runs but is rejected is not
// an error, it is a [AccelResult] software fallback.
type ProbeError struct {
	Err error
}

// Error implements the [error] interface.
func (e *ProbeError) Error() string {
	return "acceleration probe: " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*ProbeError) Is(other error) bool {
	_, ok := other.(*ProbeError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ProbeError) Unwrap() error {
	return e.Err
}

// LaunchError is a command that was rejected by the engine with a fast
// non-zero exit. It carries the captured stderr and the exact command vector
// so the failure can be reproduced by hand.
type LaunchError struct {
	ExitCode int
	Stderr   string
	Command  Command
}

// Error implements the [error] interface.
func (e *LaunchError) Error() string {
	msg := fmt.Sprintf(
		"launch rejected with exit code %d: %s", e.ExitCode, e.Command,
	)

	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n" + stderr
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*LaunchError) Is(other error) bool {
	_, ok := other.(*LaunchError)
	return ok
}
