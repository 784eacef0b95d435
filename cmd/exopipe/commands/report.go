package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MrViincciLeRoy/stunning-waffle/internal/pipeline"
	"github.com/MrViincciLeRoy/stunning-waffle/internal/ui"
)

var reportJSON bool

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the last run's per-phase statuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(rootDir)
			if err != nil {
				return err
			}

			rec, err := pipeline.NewResultStore(root).ReadSummary()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rec == nil {
				fmt.Fprintln(out, "No pipeline results found. Run `exopipe run` first.")
				return nil
			}

			if reportJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}

			fmt.Fprintf(out, "Run:  %s\n", rec.RunID)
			fmt.Fprintf(out, "Time: %s\n", rec.Timestamp.Format("2006-01-02 15:04:05"))
			fmt.Fprintln(out, "\nPhase Summary:")
			for _, e := range rec.Phases {
				fmt.Fprintf(out, "  %s %s: %s\n", ui.StatusIcon(string(e.Status)), e.Phase, e.Status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reportJSON, "json", false, "output the raw summary JSON")
	return cmd
}
