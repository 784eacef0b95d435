// Package phases assembles the ordered phase list a run executes, from the
// manifest declaration, the source artifact, and the shared script engine.
package phases

import (
	"context"
	"fmt"

	"github.com/MrViincciLeRoy/stunning-waffle/internal/manifest"
	"github.com/MrViincciLeRoy/stunning-waffle/internal/pipeline"
	"github.com/MrViincciLeRoy/stunning-waffle/internal/script"
)

// Build extracts every executable phase body up front and binds gates to
// phases. Extraction failures surface here, before any phase runs; a run
// that cannot obtain a body never starts.
//
// Manual-review phases get no body: their gate always skips them, so there
// is nothing to extract.
func Build(m *manifest.Manifest, src *script.Source, eng *script.Engine) ([]pipeline.Entry, error) {
	entries := make([]pipeline.Entry, 0, len(m.Phases))

	for i, spec := range m.Phases {
		var gates []*pipeline.Gate

		// The first phase produces the raw inputs; everything after it
		// gets the raw-data advisory.
		if i > 0 {
			gates = append(gates, pipeline.WarnNoRawData())
		}

		var ph pipeline.Phase
		if spec.ManualReview {
			gates = append(gates, pipeline.ManualReview(spec.RequireFile))
			ph = &heldPhase{id: spec.ID(), name: spec.Name}
		} else {
			if spec.RequireFile != "" {
				gates = append(gates, pipeline.RequireFile(spec.RequireFile))
			}
			body, err := src.Section(spec.StartMarker, spec.EndMarker)
			if err != nil {
				return nil, fmt.Errorf("phase %q: %w", spec.ID(), err)
			}
			ph = script.NewPhase(spec.Name, body, eng)
		}

		entries = append(entries, pipeline.Entry{Phase: ph, Gates: gates})
	}
	return entries, nil
}

// heldPhase stands in for a phase that is never executed automatically.
// Its gate skips it before Run is ever reached; if Run is reached anyway it
// reports the same manual-review status rather than pretending to work.
type heldPhase struct {
	id   string
	name string
}

func (h *heldPhase) ID() string   { return h.id }
func (h *heldPhase) Name() string { return h.name }

func (h *heldPhase) Run(ctx context.Context, pctx *pipeline.Context) pipeline.Result {
	return pipeline.Result{
		Phase:  h.id,
		Status: pipeline.StatusSkippedManual,
		Detail: "requires manual extraction",
	}
}
