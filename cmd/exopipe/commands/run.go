package commands

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MrViincciLeRoy/stunning-waffle/cmd/exopipe/internal/clierr"
	"github.com/MrViincciLeRoy/stunning-waffle/internal/manifest"
	"github.com/MrViincciLeRoy/stunning-waffle/internal/phases"
	"github.com/MrViincciLeRoy/stunning-waffle/internal/pipeline"
	"github.com/MrViincciLeRoy/stunning-waffle/internal/script"
	"github.com/MrViincciLeRoy/stunning-waffle/internal/ui"
	"github.com/MrViincciLeRoy/stunning-waffle/internal/workspace"
)

var (
	runStrict bool
	runWatch  bool
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline",
		Long: `Run every declared phase in order. Individual phase failures are
contained, logged under logs/, and recorded in pipeline_results.json; the
run itself still completes. Only conditions outside any phase boundary
(unreadable source artifact, broken markers, unwritable summary) abort the
run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(rootDir)
			if err != nil {
				return err
			}
			if runWatch {
				return watchAndRun(cmd, root)
			}

			rec, m, err := executeOnce(cmd, root)
			if err != nil {
				return err
			}
			if (runStrict || m.Strict) && rec.HasFailures() {
				return clierr.New(1, "pipeline completed with failed phases")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&runStrict, "strict", false, "exit non-zero if any phase failed")
	cmd.Flags().BoolVar(&runWatch, "watch", false, "re-run whenever the source artifact changes (strict is ignored)")
	return cmd
}

// executeOnce performs one complete pipeline invocation against root.
func executeOnce(cmd *cobra.Command, root string) (*pipeline.RunRecord, *manifest.Manifest, error) {
	out := cmd.OutOrStdout()

	ui.Banner(out, "EXOPLANET DETECTION PIPELINE")

	if err := workspace.Setup(root); err != nil {
		return nil, nil, clierr.Wrap(2, "workspace setup failed", err)
	}
	ui.Pass(out, "Directory structure created")

	m, err := manifest.LoadOrDefault(resolve(root, manifestPath))
	if err != nil {
		return nil, nil, clierr.Wrap(2, "loading pipeline manifest", err)
	}

	src, err := script.LoadSource(resolve(root, m.Source))
	if err != nil {
		return nil, nil, clierr.Wrap(2, "cannot open source artifact", err)
	}

	eng, err := script.NewEngine()
	if err != nil {
		return nil, nil, clierr.Wrap(2, "starting script engine", err)
	}

	entries, err := phases.Build(m, src, eng)
	if err != nil {
		return nil, nil, clierr.Wrap(2, "extracting phase bodies", err)
	}

	pctx := &pipeline.Context{
		Root:    root,
		Scanner: workspace.NewScanner(root),
		Logger:  logger,
	}
	r := pipeline.NewRunner(entries, pipeline.NewResultStore(root), pctx)
	r.SetOutput(out)

	rec, err := r.Run(cmd.Context())
	if err != nil {
		return nil, nil, clierr.Wrap(2, "pipeline run aborted", err)
	}
	return rec, m, nil
}

// watchAndRun executes the pipeline once, then again on every change to the
// source artifact, until the command's context is cancelled.
func watchAndRun(cmd *cobra.Command, root string) error {
	if _, _, err := executeOnce(cmd, root); err != nil {
		return err
	}

	m, err := manifest.LoadOrDefault(resolve(root, manifestPath))
	if err != nil {
		return clierr.Wrap(2, "loading pipeline manifest", err)
	}
	srcPath := resolve(root, m.Source)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return clierr.Wrap(2, "starting watcher", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the file: editors replace files on save.
	if err := watcher.Add(filepath.Dir(srcPath)); err != nil {
		return clierr.Wrap(2, "watching source artifact", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes...\n", m.Source)
	logger.Info("watch mode started", zap.String("source", srcPath))

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != srcPath || (!ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create)) {
				continue
			}
			logger.Info("source artifact changed", zap.String("op", ev.Op.String()))
			if _, _, err := executeOnce(cmd, root); err != nil {
				// Keep watching; a broken artifact can be fixed and saved
				// again.
				ui.Fail(cmd.OutOrStdout(), "%v", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes...\n", m.Source)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return clierr.Wrap(2, "watcher failed", werr)
		}
	}
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
