// Package script executes phase bodies that originate as fragments of one
// monolithic source artifact. Bodies are Go source text, sliced out of the
// artifact by markers and interpreted at runtime.
package script

import (
	"fmt"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Engine wraps a single yaegi interpreter shared by every phase of one run.
// The interpreter's namespace is the pipeline's shared execution context: a
// later phase sees every name an earlier phase defined, and silently
// observes stale or partial state if an earlier phase failed midway. One
// run, one Engine; a fresh run gets a fresh namespace.
type Engine struct {
	interp *interp.Interpreter
}

// NewEngine creates an interpreter with the standard library loaded.
func NewEngine() (*Engine, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("loading stdlib symbols: %w", err)
	}
	return &Engine{interp: i}, nil
}

// Exec evaluates one phase body in the shared namespace. Whatever the body
// computes is not inspected; only whether evaluation raised an error. No
// timeout is imposed: a hanging body hangs the run.
func (e *Engine) Exec(body string) error {
	if _, err := e.interp.Eval(body); err != nil {
		return err
	}
	return nil
}
