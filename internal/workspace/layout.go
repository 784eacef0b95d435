// Package workspace manages the on-disk layout the pipeline reads and
// writes: raw and processed data, trained models, report figures, and logs.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout is the fixed directory tree rooted at the working directory.
// Phases assume these directories exist before the first phase runs.
var Layout = []string{
	"data/raw",
	"data/processed",
	"data/augmented",
	"data/synthetic",
	"data/tess",
	"models",
	"models/tess",
	"reports/figures",
	"reports/figures/augmentation",
	"reports/figures/tess",
	"reports/validation",
	"reports/tess_analysis",
	"logs",
}

// Setup creates the directory tree under root. It is idempotent: existing
// directories are left untouched and a repeat invocation succeeds.
func Setup(root string) error {
	for _, dir := range Layout {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// LogDir returns the directory failure logs are written to.
func LogDir(root string) string {
	return filepath.Join(root, "logs")
}

// RawDataDir returns the directory scraped inputs land in.
func RawDataDir(root string) string {
	return filepath.Join(root, "data", "raw")
}
