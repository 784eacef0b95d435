// Package commands wires the exopipe CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MrViincciLeRoy/stunning-waffle/internal/manifest"
)

var (
	verbose      bool
	rootDir      string
	manifestPath string
	logger       *zap.Logger
)

// NewRootCmd constructs the exopipe root command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("EXOPIPE_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:   "exopipe",
		Short: "Sequential runner for the exoplanet detection pipeline",
		Long: `exopipe drives the multi-stage exoplanet detection workflow
(scraping, analysis, modeling). Phase bodies live in a single source
artifact; each phase is extracted by markers and executed in isolation, so
one failing phase never aborts the run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVarP(&rootDir, "root", "C", ".", "workspace root directory")
	cmd.PersistentFlags().StringVar(&manifestPath, "manifest", manifest.DefaultFile, "pipeline manifest path (built-in defaults when absent)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the exopipe version",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exopipe version %s\n", version)
		},
	})

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newPhasesCmd())
	cmd.AddCommand(newSetupCmd())

	return cmd
}
