package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// GateMode determines whether a failing gate skips the phase or only warns.
type GateMode string

const (
	GateModeStrict GateMode = "strict" // skip the phase
	GateModeSoft   GateMode = "soft"   // warn but run
)

// Decision is the outcome of evaluating a gate: whether the phase may run
// and, when it may not, the skip status and reason recorded verbatim in the
// run summary. Decisions are computed fresh from filesystem state each time
// a gated phase is about to run; they are never persisted.
type Decision struct {
	Run    bool
	Status Status
	Reason string
}

// Gate is a precondition check evaluated immediately before a phase.
// Checks must be deterministic and side-effect free.
type Gate struct {
	ID          string
	Description string
	Mode        GateMode
	Check       func(pctx *Context) Decision
}

// RequireFile returns a strict gate satisfied only when the given
// workspace-relative file exists. Presence is all it checks; a corrupt or
// empty file still passes.
func RequireFile(path string) *Gate {
	return &Gate{
		ID:          "require-file:" + path,
		Description: fmt.Sprintf("input artifact %s exists", path),
		Mode:        GateModeStrict,
		Check: func(pctx *Context) Decision {
			if _, err := os.Stat(filepath.Join(pctx.Root, path)); err != nil {
				return Decision{
					Status: StatusSkippedNoData,
					Reason: fmt.Sprintf("no data: %s not found", path),
				}
			}
			return Decision{Run: true}
		},
	}
}

// ManualReview returns a strict gate for phases that are never run
// automatically. When the required input exists the phase is held for
// manual review; when it does not, the phase is skipped for lack of data.
func ManualReview(path string) *Gate {
	return &Gate{
		ID:          "manual-review:" + path,
		Description: fmt.Sprintf("held for manual review once %s exists", path),
		Mode:        GateModeStrict,
		Check: func(pctx *Context) Decision {
			if _, err := os.Stat(filepath.Join(pctx.Root, path)); err != nil {
				return Decision{
					Status: StatusSkippedNoData,
					Reason: fmt.Sprintf("no data: %s not found", path),
				}
			}
			return Decision{
				Status: StatusSkippedManual,
				Reason: fmt.Sprintf("%s present, requires manual review", path),
			}
		},
	}
}

// WarnNoRawData returns a soft gate that flags an empty data/raw directory.
// The phase still runs; the warning tells the operator why it may fail.
func WarnNoRawData() *Gate {
	return &Gate{
		ID:          "warn-no-raw-data",
		Description: "raw CSV inputs present under data/raw",
		Mode:        GateModeSoft,
		Check: func(pctx *Context) Decision {
			if pctx.Scanner != nil && !pctx.Scanner.HasRawData() {
				return Decision{Reason: "no raw data found, some phases may fail"}
			}
			return Decision{Run: true}
		},
	}
}
