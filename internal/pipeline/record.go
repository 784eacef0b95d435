package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PhaseEntry is one phase's terminal status within a run record.
type PhaseEntry struct {
	Phase  string
	Status Status
}

// RunRecord is the persisted outcome of one full pipeline invocation: a
// timestamp plus one status per attempted-or-skipped phase, in execution
// order. It is write-only within a run; only the report command reads it
// back.
type RunRecord struct {
	RunID     string
	Timestamp time.Time
	Phases    []PhaseEntry
}

// NewRunRecord creates a record stamped with the current time.
func NewRunRecord() *RunRecord {
	return &RunRecord{
		RunID:     uuid.NewString(),
		Timestamp: time.Now(),
	}
}

// Add appends a phase's terminal status. Each phase is recorded exactly
// once per run; a repeated phase ID overwrites the earlier entry so the
// record never holds duplicates.
func (r *RunRecord) Add(phase string, status Status) {
	for i := range r.Phases {
		if r.Phases[i].Phase == phase {
			r.Phases[i].Status = status
			return
		}
	}
	r.Phases = append(r.Phases, PhaseEntry{Phase: phase, Status: status})
}

// Status returns the recorded status for a phase, or StatusPending if the
// phase has no entry.
func (r *RunRecord) Status(phase string) Status {
	for _, e := range r.Phases {
		if e.Phase == phase {
			return e.Status
		}
	}
	return StatusPending
}

// HasFailures reports whether any recorded phase failed.
func (r *RunRecord) HasFailures() bool {
	for _, e := range r.Phases {
		if e.Status == StatusFailed {
			return true
		}
	}
	return false
}

// MarshalJSON emits the summary contract: a "phases" object whose keys
// appear in execution order. encoding/json's map marshalling sorts keys, so
// the object is assembled by hand.
func (r *RunRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString(`"run_id":`)
	id, err := json.Marshal(r.RunID)
	if err != nil {
		return nil, err
	}
	buf.Write(id)

	buf.WriteString(`,"timestamp":`)
	ts, err := json.Marshal(r.Timestamp.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	buf.Write(ts)

	buf.WriteString(`,"phases":{`)
	for i, e := range r.Phases {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Phase)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(string(e.Status))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}

// UnmarshalJSON restores a record, preserving the phase object's key order.
func (r *RunRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("run record: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		switch key {
		case "run_id":
			if err := dec.Decode(&r.RunID); err != nil {
				return err
			}
		case "timestamp":
			var raw string
			if err := dec.Decode(&raw); err != nil {
				return err
			}
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return fmt.Errorf("run record: parsing timestamp: %w", err)
			}
			r.Timestamp = ts
		case "phases":
			if err := r.decodePhases(dec); err != nil {
				return err
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *RunRecord) decodePhases(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("run record: expected phases object, got %v", tok)
	}

	r.Phases = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)

		var status string
		if err := dec.Decode(&status); err != nil {
			return err
		}
		r.Phases = append(r.Phases, PhaseEntry{Phase: name, Status: Status(status)})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
