package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MrViincciLeRoy/stunning-waffle/internal/manifest"
)

func newPhasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phases",
		Short: "List the declared pipeline phases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(rootDir)
			if err != nil {
				return err
			}

			m, err := manifest.LoadOrDefault(resolve(root, manifestPath))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range m.Phases {
				line := p.ID()
				switch {
				case p.ManualReview:
					line += "  (manual review)"
				case p.RequireFile != "":
					line += fmt.Sprintf("  (requires %s)", p.RequireFile)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
