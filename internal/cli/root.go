package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/logger"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/workspacefinder"
)

func Execute(ctx context.Context) {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "aerogrid",
		Short:        "aerogrid: 2-D airfoil mesh scripts and polar sweeps",
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			wd, _ = filepath.Abs(wd)

			logRoot := wd
			if root, ferr := workspacefinder.NewFinder().FindRoot(wd); ferr == nil && root != "" {
				logRoot = root
			}

			// Logging is best effort; commands still run without a log file.
			cleanup, _ = logger.Setup(logger.Config{
				Root:    logRoot,
				Debug:   debug,
				Command: c.Name(),
			})
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				_ = cleanup()
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .aerogrid/logs/aerogrid.log")

	cmd.AddCommand(
		initCmd(),
		meshCmd(),
		wallSpacingCmd(),
		airfoilsCmd(),
		sweepCmd(),
		forcesCmd(),
		versionCmd(),
	)
	return cmd
}
