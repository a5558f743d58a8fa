// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import (
	"context"
	"time"
)

// DefaultValidateTimeout bounds the validation boot. A rejected
// configuration, like a bad device combination or a missing file, manifests
// as a fast non-zero exit well below this.
const DefaultValidateTimeout = 1500 * time.Millisecond

// ValidateSpec defines the parameters for validating an assembled command.
type ValidateSpec struct {
	// Timeout bounds the validation boot. Defaults to
	// [DefaultValidateTimeout].
	Timeout time.Duration
}

// Outcome is the result of validating an assembled command.
type Outcome struct {
	// Passed is set if the boot was not rejected.
	Passed bool

	// TimedOut is set if the boot was still running at the deadline. This
	// counts as passed: a fully composed command is expected to boot
	// indefinitely in a successful run.
	TimedOut bool

	// ExitCode of the rejected boot. Only meaningful if Passed is unset.
	ExitCode int

	// Stderr holds the rejected boot's diagnostics, verbatim.
	Stderr string

	// Command is the exact vector that was executed, including the
	// validator-only flags, so the result can be reproduced by hand.
	Command Command
}

// String implements [fmt.Stringer].
func (o Outcome) String() string {
	switch {
	case o.Passed && o.TimedOut:
		return "pass (deadline expired while booted)"
	case o.Passed:
		return "pass"
	default:
		return "fail"
	}
}

// Err returns the outcome as an error, or nil if it passed.
func (o Outcome) Err() error {
	if o.Passed {
		return nil
	}

	return &LaunchError{
		ExitCode: o.ExitCode,
		Stderr:   o.Stderr,
		Command:  o.Command,
	}
}

// Validate test-boots the assembled command under a deadline with display
// output suppressed and the disk in non-persistent mode.
//
// Clean exit and deadline expiry both classify as passed; only a fast
// non-zero exit fails. The validator's job is catching rejected
// configuration, not awaiting a guest shutdown. An error is only returned if
// the engine could not be executed at all.
func Validate(
	ctx context.Context,
	cmd Command,
	spec ValidateSpec,
) (Outcome, error) {
	timeout := spec.Timeout
	if timeout == 0 {
		timeout = DefaultValidateTimeout
	}

	// Never open a display and never touch the disk image during
	// validation.
	cmd = cmd.WithArgs("-display", "none", "-snapshot")

	result, err := cmd.RunBounded(ctx, timeout)
	if err != nil {
		return Outcome{Command: cmd}, err
	}

	outcome := Outcome{
		Passed:   result.TimedOut || result.ExitCode == 0,
		TimedOut: result.TimedOut,
		ExitCode: result.ExitCode,
		Stderr:   result.Stderr,
		Command:  cmd,
	}

	return outcome, nil
}
