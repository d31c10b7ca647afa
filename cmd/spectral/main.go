// Package main provides the spectral binary entry point.
// Spectral validates the archetype coordinate reference frame: the fixed
// eight-axis bipolar space, its origin and pole records, and the declared
// geodesic transformation paths between points in the space.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "spectral"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		if errors.Is(err, errCalibrationFailed) {
			// The report already itemized every violation.
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts appOptions

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Archetype coordinate-frame calibration validator",
		Long: `Spectral maintains the fixed eight-axis bipolar coordinate space used to
position archetypes, and verifies that every placed entity is geometrically
consistent with the frame's invariants:

- the origin sits at 0.5 on every axis
- each pole sits at 0.0 or 1.0 on exactly one axis and 0.5 on the others
- polar pairs span exactly 1.0 on their shared axis
- every pole lies 0.5 from the origin
- declared geodesic paths respect continuity, conservation, activation
  energy, and reversibility

Reference data is read from YAML records; validation is a pure single
pass that accumulates every violation and never stops at the first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.frameDir, "frame", "", "Frame directory holding record files")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(validateCmd(&opts))
	cmd.AddCommand(watchCmd(&opts))
	cmd.AddCommand(historyCmd(&opts))
	cmd.AddCommand(initCmd(&opts))
	cmd.AddCommand(axesCmd())

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func validateCmd(opts *appOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the reference frame and declared geodesics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(*opts)
		},
	}
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Emit the structured summary as JSON")
	return cmd
}

func watchCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-validate whenever record files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), *opts)
		},
	}
}

func historyCmd(opts *appOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent validation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), *opts, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")
	return cmd
}

func initCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold the canonical origin and pole records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(*opts)
		},
	}
}

func axesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "axes",
		Short: "Print the fixed axis registry",
		Run: func(cmd *cobra.Command, args []string) {
			printAxes(cmd.OutOrStdout())
		},
	}
}

// setupLogging configures the default slog logger from the flag value.
func setupLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
