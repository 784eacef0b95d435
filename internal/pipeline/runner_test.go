package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockPhase implements Phase for testing.
type MockPhase struct {
	name   string
	err    error
	panics any
	called bool
}

func (m *MockPhase) ID() string   { return NormalizeName(m.name) }
func (m *MockPhase) Name() string { return m.name }

func (m *MockPhase) Run(ctx context.Context, pctx *Context) Result {
	m.called = true
	if m.panics != nil {
		panic(m.panics)
	}
	if m.err != nil {
		return Result{Phase: m.ID(), Status: StatusFailed, Detail: m.err.Error()}
	}
	return Result{Phase: m.ID(), Status: StatusSuccess}
}

func newTestRunner(t *testing.T, entries []Entry) (*Runner, *ResultStore, string) {
	t.Helper()
	root := t.TempDir()
	store := NewResultStore(root)
	r := NewRunner(entries, store, &Context{Root: root})
	r.SetOutput(&bytes.Buffer{})
	return r, store, root
}

func TestRunner_AllPhasesSucceed(t *testing.T) {
	p1 := &MockPhase{name: "Data Scraping"}
	p2 := &MockPhase{name: "Model Training"}
	r, store, _ := newTestRunner(t, []Entry{{Phase: p1}, {Phase: p2}})

	rec, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, p1.called)
	assert.True(t, p2.called)
	assert.Equal(t, StatusSuccess, rec.Status("data_scraping"))
	assert.Equal(t, StatusSuccess, rec.Status("model_training"))

	// Summary was persisted and matches the in-memory record.
	saved, err := store.ReadSummary()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, rec.Phases, saved.Phases)
}

func TestRunner_FailureDoesNotStopRun(t *testing.T) {
	p1 := &MockPhase{name: "Data Scraping", err: errors.New("connection refused")}
	p2 := &MockPhase{name: "Model Training"}
	r, _, root := newTestRunner(t, []Entry{{Phase: p1}, {Phase: p2}})

	rec, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, p2.called, "later phases must still run")
	assert.Equal(t, StatusFailed, rec.Status("data_scraping"))
	assert.Equal(t, StatusSuccess, rec.Status("model_training"))

	// Failure log exists for the failed phase only.
	content, err := os.ReadFile(NewResultStore(root).FailureLogPath("data_scraping"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Error in Data Scraping")
	assert.Contains(t, string(content), "connection refused")

	_, err = os.Stat(NewResultStore(root).FailureLogPath("model_training"))
	assert.True(t, os.IsNotExist(err), "no log artifact for a successful phase")
}

func TestRunner_PanicIsContained(t *testing.T) {
	p1 := &MockPhase{name: "Data Scraping", panics: "index out of range"}
	p2 := &MockPhase{name: "EDA"}
	r, _, root := newTestRunner(t, []Entry{{Phase: p1}, {Phase: p2}})

	rec, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, rec.Status("data_scraping"))
	assert.True(t, p2.called)

	content, err := os.ReadFile(NewResultStore(root).FailureLogPath("data_scraping"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "panic: index out of range")
	assert.Contains(t, string(content), "goroutine", "trace should include the stack")
}

func TestRunner_StrictGateSkipsPhase(t *testing.T) {
	p1 := &MockPhase{name: "EDA"}
	gate := &Gate{
		ID:   "test-gate",
		Mode: GateModeStrict,
		Check: func(pctx *Context) Decision {
			return Decision{Status: StatusSkippedNoData, Reason: "no data"}
		},
	}
	r, store, _ := newTestRunner(t, []Entry{{Phase: p1, Gates: []*Gate{gate}}})

	rec, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, p1.called, "executor must not be invoked for a gated-out phase")
	assert.Equal(t, StatusSkippedNoData, rec.Status("eda"))

	res, err := store.ReadPhaseResult("eda")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "no data", res.Detail)
}

func TestRunner_SoftGateWarnsButRuns(t *testing.T) {
	p1 := &MockPhase{name: "EDA"}
	soft := &Gate{
		ID:   "advisory",
		Mode: GateModeSoft,
		Check: func(pctx *Context) Decision {
			return Decision{Reason: "no raw data found"}
		},
	}
	r, _, _ := newTestRunner(t, []Entry{{Phase: p1, Gates: []*Gate{soft}}})

	var out bytes.Buffer
	r.SetOutput(&out)

	rec, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, p1.called)
	assert.Equal(t, StatusSuccess, rec.Status("eda"))
	assert.Contains(t, out.String(), "no raw data found")
}

func TestRunner_RecordOrderMatchesExecutionOrder(t *testing.T) {
	entries := []Entry{
		{Phase: &MockPhase{name: "C Phase"}},
		{Phase: &MockPhase{name: "A Phase", err: errors.New("boom")}},
		{Phase: &MockPhase{name: "B Phase"}},
	}
	r, _, _ := newTestRunner(t, entries)

	rec, err := r.Run(context.Background())
	require.NoError(t, err)

	var order []string
	for _, e := range rec.Phases {
		order = append(order, e.Phase)
	}
	assert.Equal(t, []string{"c_phase", "a_phase", "b_phase"}, order)
}

func TestRunner_SummaryPrinted(t *testing.T) {
	p1 := &MockPhase{name: "Data Scraping"}
	r, _, _ := newTestRunner(t, []Entry{{Phase: p1}})

	var out bytes.Buffer
	r.SetOutput(&out)

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "RUNNING: Data Scraping")
	assert.Contains(t, s, "PIPELINE EXECUTION COMPLETE")
	assert.Contains(t, s, "data_scraping: success")
}
