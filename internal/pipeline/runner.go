package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/MrViincciLeRoy/stunning-waffle/internal/ui"
)

// Runner drives one pipeline invocation: phases execute strictly in the
// declared order, one at a time. A phase failure is contained at the phase
// boundary and never stops the run; only store write failures do.
type Runner struct {
	entries []Entry
	store   *ResultStore
	pctx    *Context
	out     io.Writer
}

// NewRunner creates a runner over the declared phase entries.
func NewRunner(entries []Entry, store *ResultStore, pctx *Context) *Runner {
	if pctx.Logger == nil {
		pctx.Logger = zap.NewNop()
	}
	return &Runner{
		entries: entries,
		store:   store,
		pctx:    pctx,
		out:     os.Stdout,
	}
}

// SetOutput redirects console progress output, primarily for tests.
func (r *Runner) SetOutput(w io.Writer) { r.out = w }

// Run executes every declared phase and persists the run summary. The
// returned record holds one terminal status per phase in execution order.
// Run only returns an error for conditions outside any phase boundary:
// persisting a result or the summary.
func (r *Runner) Run(ctx context.Context) (*RunRecord, error) {
	rec := NewRunRecord()
	r.pctx.Logger.Info("pipeline started",
		zap.String("run_id", rec.RunID),
		zap.Int("phases", len(r.entries)))

	for _, e := range r.entries {
		id := e.Phase.ID()

		if dec, gate := r.checkGates(e); gate != nil {
			ui.Warn(r.out, "Skipping %s - %s", e.Phase.Name(), dec.Reason)
			r.pctx.Logger.Info("phase skipped",
				zap.String("phase", id),
				zap.String("gate", gate.ID),
				zap.String("reason", dec.Reason))

			rec.Add(id, dec.Status)
			res := Result{Phase: id, Status: dec.Status, Detail: dec.Reason}
			if err := r.store.WritePhaseResult(res); err != nil {
				return nil, fmt.Errorf("writing result for %s: %w", id, err)
			}
			continue
		}

		res, err := r.runPhase(ctx, e.Phase)
		if err != nil {
			return nil, err
		}

		rec.Add(id, res.Status)
		if err := r.store.WritePhaseResult(res); err != nil {
			return nil, fmt.Errorf("writing result for %s: %w", id, err)
		}
	}

	if err := r.store.WriteSummary(rec); err != nil {
		return nil, err
	}
	r.printSummary(rec)

	r.pctx.Logger.Info("pipeline finished",
		zap.String("run_id", rec.RunID),
		zap.Bool("failures", rec.HasFailures()))
	return rec, nil
}

// checkGates evaluates a phase's gates in order. Soft gates only warn; the
// first strict gate that denies the phase decides its skip status.
func (r *Runner) checkGates(e Entry) (Decision, *Gate) {
	for _, g := range e.Gates {
		dec := g.Check(r.pctx)
		if dec.Run {
			continue
		}
		if g.Mode == GateModeSoft {
			ui.Warn(r.out, "Warning: %s", dec.Reason)
			r.pctx.Logger.Warn("gate warning",
				zap.String("gate", g.ID),
				zap.String("reason", dec.Reason))
			continue
		}
		return dec, g
	}
	return Decision{Run: true}, nil
}

// runPhase executes one phase under failure isolation. Any error or panic
// raised by the body is converted to a failed result plus a log artifact;
// nothing propagates to the caller except a log write failure.
func (r *Runner) runPhase(ctx context.Context, p Phase) (Result, error) {
	ui.PhaseBanner(r.out, p.Name())
	start := time.Now()

	res := r.invoke(ctx, p)

	if res.Status == StatusFailed {
		ui.Fail(r.out, "%s failed with error:", p.Name())
		fmt.Fprintln(r.out, res.Detail)
		r.pctx.Logger.Error("phase failed",
			zap.String("phase", p.ID()),
			zap.Duration("elapsed", time.Since(start)))

		if err := r.store.WriteFailureLog(p.Name(), time.Now(), res.Detail); err != nil {
			return Result{}, err
		}
		return res, nil
	}

	ui.Pass(r.out, "%s completed successfully", p.Name())
	r.pctx.Logger.Info("phase completed",
		zap.String("phase", p.ID()),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// invoke calls the phase body, recovering panics into a failed result with
// the full stack as its trace.
func (r *Runner) invoke(ctx context.Context, p Phase) (res Result) {
	defer func() {
		if v := recover(); v != nil {
			res = Result{
				Phase:  p.ID(),
				Status: StatusFailed,
				Detail: fmt.Sprintf("panic: %v\n\n%s", v, debug.Stack()),
			}
		}
	}()

	res = p.Run(ctx, r.pctx)
	if res.Phase == "" {
		res.Phase = p.ID()
	}
	if res.Status == "" {
		res.Status = StatusSuccess
	}
	return res
}

func (r *Runner) printSummary(rec *RunRecord) {
	fmt.Fprintln(r.out)
	ui.Banner(r.out, "PIPELINE EXECUTION COMPLETE")
	fmt.Fprintf(r.out, "\nResults saved to: %s\n", SummaryFile)
	fmt.Fprintln(r.out, "Logs saved to: logs/")

	fmt.Fprintln(r.out, "\nPhase Summary:")
	for _, e := range rec.Phases {
		fmt.Fprintf(r.out, "  %s %s: %s\n", ui.StatusIcon(string(e.Status)), e.Phase, e.Status)
	}
}
