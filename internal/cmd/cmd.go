// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vmfoundry/vmlaunch/internal/config"
	"github.com/vmfoundry/vmlaunch/internal/qemu"
)

const defaultLogLevel = "warn"

// ErrValidationInProgress is returned if another process already validates
// against the same disk image.
var ErrValidationInProgress = errors.New("validation already in progress")

// New builds the root command with all subcommands attached.
func New() *cobra.Command {
	var (
		logLevel   string
		configPath string
	)

	root := &cobra.Command{
		Use:           "vmlaunch",
		Short:         "Assemble, validate, and launch QEMU VM commands",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(
		&logLevel, "log-level", defaultLogLevel,
		"log verbosity (debug, info, warn, error)",
	)
	root.PersistentFlags().StringVarP(
		&configPath, "config", "c", "",
		"path to the configuration file",
	)

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd.ErrOrStderr(), logLevel)
	}

	root.AddCommand(
		newProbeCommand(&configPath),
		newValidateCommand(&configPath),
		newRunCommand(&configPath),
		newConfigCommand(&configPath),
	)

	return root
}

func newProbeCommand(configPath *string) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe whether hardware acceleration is available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			profile, err := resolveProfile(&cfg)
			if err != nil {
				return err
			}

			accel, err := probeAccel(cmd.Context(), profile, timeout)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "acceleration: %s\n", accel)

			return nil
		},
	}

	cmd.Flags().DurationVar(
		&timeout, "timeout", qemu.DefaultProbeTimeout,
		"deadline for the probe boot",
	)

	return cmd
}

func newValidateCommand(configPath *string) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Test-boot the assembled command under a deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			launchCmd, err := synthesize(cmd, &cfg)
			if err != nil {
				return err
			}

			if cfg.DiskPath != "" {
				unlock, err := lockDiskImage(cfg.DiskPath)
				if err != nil {
					return err
				}
				defer unlock()
			}

			outcome, err := qemu.Validate(
				cmd.Context(), launchCmd, qemu.ValidateSpec{Timeout: timeout},
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", outcome)

			return outcome.Err()
		},
	}

	cmd.Flags().DurationVar(
		&timeout, "timeout", qemu.DefaultValidateTimeout,
		"deadline for the validation boot",
	)

	return cmd
}

func newRunCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Launch the VM for real use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			launchCmd, err := synthesize(cmd, &cfg)
			if err != nil {
				return err
			}

			// Real use gets a display; validation never does.
			launchCmd = launchCmd.WithArgs(
				"-display", "default,show-cursor=on",
			)

			pid, err := launchCmd.Start()
			if err != nil {
				return fmt.Errorf("launch engine: %w", err)
			}

			slog.Info("Engine launched", slog.Int("pid", pid))

			return nil
		},
	}

	return cmd
}

func newConfigCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the persisted launcher configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a fresh configuration with smart defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *configPath
			if path == "" {
				var err error

				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf(
					"config file %s exists, use --force to overwrite", path,
				)
			}

			cfg := config.Default()

			profile, err := resolveProfile(&cfg)
			if err != nil {
				return err
			}

			cfg.ApplySmartDefaults(qemu.BrewPrefix, profile)

			if err := config.Save(path, cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

			return nil
		},
	}

	initCmd.Flags().BoolVar(
		&force, "force", false, "overwrite an existing configuration",
	)

	cmd.AddCommand(show, initCmd)

	return cmd
}

// synthesize runs the full pipeline up to the assembled command: profile,
// acceleration probe, firmware lookup, assembly.
func synthesize(cmd *cobra.Command, cfg *config.Config) (qemu.Command, error) {
	profile, err := resolveProfile(cfg)
	if err != nil {
		return qemu.Command{}, err
	}

	accel, err := probeAccel(cmd.Context(), profile, 0)
	if err != nil {
		return qemu.Command{}, err
	}

	slog.Info("Acceleration probe finished",
		slog.String("result", accel.String()))

	firmwarePath := locateFirmware(cfg, profile)

	launchCmd, err := assembleCommand(cfg, profile, accel, firmwarePath)
	if err != nil {
		return qemu.Command{}, err
	}

	if echoToTerminal(os.Stdout) {
		fmt.Fprintln(cmd.OutOrStdout(), launchCmd)
	} else {
		slog.Debug("Assembled command",
			slog.String("command", launchCmd.String()))
	}

	return launchCmd, nil
}

// lockDiskImage takes an advisory lock next to the disk image so two
// validators never race on the same image.
func lockDiskImage(diskPath string) (func(), error) {
	lock := flock.New(diskPath + ".lock")

	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock disk image: %w", err)
	}

	if !locked {
		return nil, fmt.Errorf("%s: %w", diskPath, ErrValidationInProgress)
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			slog.Error("Failed to unlock disk image",
				slog.String("path", diskPath),
				slog.Any("error", err))
		}
	}, nil
}
