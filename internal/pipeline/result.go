package pipeline

import "strings"

// Status is the outcome label of a phase within one run.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"

	// Skip labels carry their reason in the label itself; the summary
	// records them verbatim.
	StatusSkippedNoData Status = "skipped - no data"
	StatusSkippedManual Status = "skipped - requires manual review"
)

// Terminal reports whether s is a final per-run state.
func (s Status) Terminal() bool {
	return s != StatusPending && s != StatusRunning
}

// Skipped reports whether s is any of the skip labels.
func (s Status) Skipped() bool {
	return strings.HasPrefix(string(s), "skipped")
}

// Result is the outcome of a single phase execution.
// Matches the per-phase JSON written under the run state directory.
type Result struct {
	Phase  string `json:"phase"`
	Status Status `json:"status"`
	// Detail holds the failure trace for failed phases or the gate reason
	// for skipped ones.
	Detail string `json:"detail,omitempty"`
}
