// Package manifest defines the pipeline declaration: which source artifact
// to slice, which phases run in which order, and which preconditions gate
// them.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrViincciLeRoy/stunning-waffle/internal/pipeline"
)

// DefaultFile is the manifest looked for at the workspace root.
const DefaultFile = "pipeline.yaml"

// Manifest is the full pipeline declaration.
type Manifest struct {
	// Source is the path of the artifact holding every phase body,
	// relative to the workspace root.
	Source string `yaml:"source"`

	// Strict makes the run exit non-zero when any phase failed.
	Strict bool `yaml:"strict,omitempty"`

	Phases []PhaseSpec `yaml:"phases"`
}

// PhaseSpec declares one phase: its display name, the marker pair bounding
// its body, and optional gating.
type PhaseSpec struct {
	Name string `yaml:"name"`

	// StartMarker/EndMarker delimit the body inside the source artifact.
	// Not required for manual-review phases, whose body is never executed.
	StartMarker string `yaml:"start_marker,omitempty"`
	EndMarker   string `yaml:"end_marker,omitempty"`

	// RequireFile gates the phase on an input artifact's existence.
	RequireFile string `yaml:"require_file,omitempty"`

	// ManualReview marks a phase that is never run automatically: with
	// RequireFile present it is held for review, without it skipped for
	// lack of data.
	ManualReview bool `yaml:"manual_review,omitempty"`
}

// ID returns the phase's normalized identifier.
func (p PhaseSpec) ID() string {
	return pipeline.NormalizeName(p.Name)
}

// Default returns the built-in two-phase exoplanet pipeline: unconditional
// data scraping, then EDA gated on the scraped Kepler cumulative table and
// held for manual review.
func Default() *Manifest {
	return &Manifest{
		Source: "pipeline_source.txt",
		Phases: []PhaseSpec{
			{
				Name:        "Data Scraping",
				StartMarker: "// === PHASE: DATA SCRAPING ===",
				EndMarker:   "// === PHASE: EXPLORATORY DATA ANALYSIS ===",
			},
			{
				Name:         "EDA",
				RequireFile:  "data/raw/kepler_cumulative.csv",
				ManualReview: true,
			},
		},
	}
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadOrDefault loads the manifest at path, falling back to the built-in
// pipeline when the file does not exist.
func LoadOrDefault(path string) (*Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the declaration for holes that would only surface
// mid-run otherwise.
func (m *Manifest) Validate() error {
	if m.Source == "" {
		return fmt.Errorf("manifest: source artifact path is required")
	}
	if len(m.Phases) == 0 {
		return fmt.Errorf("manifest: at least one phase is required")
	}

	seen := map[string]bool{}
	for _, p := range m.Phases {
		if p.Name == "" {
			return fmt.Errorf("manifest: phase with empty name")
		}
		id := p.ID()
		if seen[id] {
			return fmt.Errorf("manifest: duplicate phase %q", id)
		}
		seen[id] = true

		if !p.ManualReview && (p.StartMarker == "" || p.EndMarker == "") {
			return fmt.Errorf("manifest: phase %q needs both start_marker and end_marker", id)
		}
	}
	return nil
}
