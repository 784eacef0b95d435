package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SummaryFile is the run summary artifact written at the workspace root.
const SummaryFile = "pipeline_results.json"

// ResultStore persists run outcomes: the summary artifact, per-phase result
// files under the state directory, and failure logs under logs/.
type ResultStore struct {
	root     string
	stateDir string
}

// NewResultStore creates a store rooted at the workspace root. Per-phase
// state lives under .exopipe/run.
func NewResultStore(root string) *ResultStore {
	return &ResultStore{
		root:     root,
		stateDir: filepath.Join(root, ".exopipe", "run"),
	}
}

func (s *ResultStore) summaryPath() string {
	return filepath.Join(s.root, SummaryFile)
}

// WriteSummary persists the run record. Losing the summary defeats the
// run's purpose, so any write error is returned to the caller as fatal.
func (s *ResultStore) WriteSummary(rec *RunRecord) (err error) {
	f, err := os.Create(s.summaryPath())
	if err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// ReadSummary loads the last run record. A missing summary returns nil
// with no error.
func (s *ResultStore) ReadSummary() (*RunRecord, error) {
	f, err := os.Open(s.summaryPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening summary: %w", err)
	}
	defer func() { _ = f.Close() }()

	var rec RunRecord
	if err := json.NewDecoder(f).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	return &rec, nil
}

// WritePhaseResult saves one phase's result under the state directory.
func (s *ResultStore) WritePhaseResult(res Result) (err error) {
	path := filepath.Join(s.stateDir, "phases", res.Phase+".json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// ReadPhaseResult loads one phase's last result, or nil if none exists.
func (s *ResultStore) ReadPhaseResult(phaseID string) (*Result, error) {
	f, err := os.Open(filepath.Join(s.stateDir, "phases", phaseID+".json"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var res Result
	if err := json.NewDecoder(f).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FailureLogPath returns the log artifact path for a phase: one file per
// phase name, derived deterministically from it.
func (s *ResultStore) FailureLogPath(phaseID string) string {
	return filepath.Join(s.root, "logs", phaseID+"_error.log")
}

// WriteFailureLog records a phase failure: display name, ISO-8601
// timestamp, and the full trace. The file is overwritten on repeat
// failures; there is no history.
func (s *ResultStore) WriteFailureLog(name string, at time.Time, trace string) error {
	path := s.FailureLogPath(NormalizeName(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	content := fmt.Sprintf("Error in %s\nTimestamp: %s\n\n%s\n", name, at.Format(time.RFC3339), trace)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing failure log for %s: %w", name, err)
	}
	return nil
}

// Reset clears the per-phase state directory. Summary and failure logs are
// left in place.
func (s *ResultStore) Reset() error {
	return os.RemoveAll(s.stateDir)
}
