package script

import (
	"context"

	"github.com/MrViincciLeRoy/stunning-waffle/internal/pipeline"
)

// Phase is a pipeline phase whose body is interpreted source text. All
// script phases of one run share the same Engine, and through it the same
// mutable namespace.
type Phase struct {
	id     string
	name   string
	body   string
	engine *Engine
}

// NewPhase wraps an extracted body as an executable phase. The body is
// immutable from here on.
func NewPhase(name, body string, engine *Engine) *Phase {
	return &Phase{
		id:     pipeline.NormalizeName(name),
		name:   name,
		body:   body,
		engine: engine,
	}
}

func (p *Phase) ID() string   { return p.id }
func (p *Phase) Name() string { return p.name }

// Run evaluates the body. An evaluation error of any kind becomes a failed
// result; normal completion is success regardless of what the body
// computed.
func (p *Phase) Run(ctx context.Context, pctx *pipeline.Context) pipeline.Result {
	if err := p.engine.Exec(p.body); err != nil {
		return pipeline.Result{Phase: p.id, Status: pipeline.StatusFailed, Detail: err.Error()}
	}
	return pipeline.Result{Phase: p.id, Status: pipeline.StatusSuccess}
}
