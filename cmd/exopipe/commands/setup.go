package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MrViincciLeRoy/stunning-waffle/internal/ui"
	"github.com/MrViincciLeRoy/stunning-waffle/internal/workspace"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the workspace directory tree",
		Long:  "Create the data, model, report, and log directories. Safe to run repeatedly.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(rootDir)
			if err != nil {
				return err
			}
			if err := workspace.Setup(root); err != nil {
				return err
			}
			ui.Pass(cmd.OutOrStdout(), "Directory structure created")
			return nil
		},
	}
}
