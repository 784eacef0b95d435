// Package pipeline is the phase-isolation execution engine: it runs a fixed
// ordered sequence of phases one at a time, contains each phase's failure at
// the phase boundary, gates dependent phases on their preconditions, and
// aggregates per-phase outcomes into a persisted run summary.
package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/MrViincciLeRoy/stunning-waffle/internal/workspace"
)

// Phase is one named, independently executed unit of pipeline work.
type Phase interface {
	// ID returns the normalized identifier used in summaries and log file
	// names (e.g. "data_scraping").
	ID() string

	// Name returns the display name (e.g. "Data Scraping").
	Name() string

	// Run executes the phase body. Failures are expressed via the Result;
	// panics are recovered at the phase boundary by the runner.
	Run(ctx context.Context, pctx *Context) Result
}

// Context is the state shared across phases within one run. Phases may read
// any field; the script engine behind script-backed phases carries the
// mutable cross-phase namespace, so the fields here stay read-only by
// convention.
type Context struct {
	// Root is the workspace root all data, model, report, and log paths
	// are resolved against.
	Root string

	// Scanner enumerates raw input artifacts under Root.
	Scanner *workspace.Scanner

	// Logger receives structured diagnostics. Never nil once the runner
	// has started.
	Logger *zap.Logger
}

// NormalizeName converts a display name to its identifier form: lower-cased
// with spaces replaced by underscores.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Entry pairs a phase with the gates that decide whether it runs.
type Entry struct {
	Phase Phase
	Gates []*Gate
}
