// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package qemu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// stderrCaptureLimit bounds the diagnostic capture. QEMU rejection messages
// are short; a runaway guest console must not exhaust memory.
const stderrCaptureLimit = 64 * 1024

// Command is a fully assembled engine invocation. It is created fresh per
// launch request, consumed by process execution and discarded after.
type Command struct {
	// Executable is the engine binary, either a bare name resolved via PATH
	// or an absolute path.
	Executable string

	// Args is the assembled argument vector, without the executable itself.
	Args []string
}

// String returns the command in a copy-pasteable form.
func (c Command) String() string {
	return c.Executable + " " + strings.Join(c.Args, " ")
}

// WithArgs returns a copy of the command with the given raw arguments
// appended.
func (c Command) WithArgs(args ...string) Command {
	extended := make([]string, 0, len(c.Args)+len(args))
	extended = append(extended, c.Args...)
	extended = append(extended, args...)

	return Command{
		Executable: c.Executable,
		Args:       extended,
	}
}

// ProcessResult is the explicit three-way outcome of a deadline-bounded
// engine run. It is deliberately not a boolean: a deadline kill and a crash
// must never be conflated.
type ProcessResult struct {
	// TimedOut is set if the deadline expired and the process was forcibly
	// terminated.
	TimedOut bool

	// ExitCode of the process. Only meaningful if TimedOut is unset.
	ExitCode int

	// Stderr holds the captured standard error output, verbatim.
	Stderr string
}

// RunBounded executes the command with its lifetime bounded by the given
// deadline.
//
// The returned [ProcessResult] distinguishes clean exit, error exit and
// deadline kill. An error is only returned if the process could not be
// executed at all.
func (c Command) RunBounded(
	ctx context.Context,
	timeout time.Duration,
) (ProcessResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // The vector is assembled from typed arguments.
	cmd := exec.CommandContext(ctx, c.Executable, c.Args...)

	// Give the process a moment to die after the kill before Wait gives up
	// on its pipes.
	cmd.WaitDelay = time.Second

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return ProcessResult{}, fmt.Errorf("stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return ProcessResult{}, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return ProcessResult{}, fmt.Errorf("start: %w", err)
	}

	var stderrBuf bytes.Buffer

	pumps := errgroup.Group{}
	pumps.Go(func() error {
		_, err := io.Copy(io.Discard, stdout)
		return err
	})
	pumps.Go(func() error {
		_, err := io.Copy(&stderrBuf, io.LimitReader(stderr, stderrCaptureLimit))
		if err != nil {
			return err
		}

		// Keep draining so the guest never blocks on a full pipe.
		_, err = io.Copy(io.Discard, stderr)

		return err
	})

	waitErr := cmd.Wait()
	_ = pumps.Wait()

	result := ProcessResult{
		Stderr: stderrBuf.String(),
	}

	if waitErr == nil {
		return result, nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return ProcessResult{}, fmt.Errorf("wait: %w", waitErr)
}

// Start launches the command detached from the current process, as used for
// a real, non-validating launch. It returns the PID of the engine process.
func (c Command) Start() (int, error) {
	//nolint:gosec // The vector is assembled from typed arguments.
	cmd := exec.Command(c.Executable, c.Args...)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start: %w", err)
	}

	pid := cmd.Process.Pid

	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("release: %w", err)
	}

	return pid, nil
}
