package pipeline

import (
	"context"
	"errors"

	"github.com/louisbranch/opkit/command"
)

// Usage errors signal a programming mistake in how the pipeline was
// wired, not bad user input. They halt the invocation with a terminal
// error.
var (
	// ErrNoHandler indicates the definition declared no execute function.
	ErrNoHandler = errors.New("handler was not set")
	// ErrNoCommand indicates execution was attempted without an assembled
	// command.
	ErrNoCommand = errors.New("command was not initialized")
)

// Runner is the execution orchestrator. Global holds the process-wide
// middleware list; resolve it once at startup and treat it as immutable —
// each invocation snapshots it together with the local list.
type Runner struct {
	Global []Entry
}

// Run assembles a command from raw params and metadata and drives it
// through the middleware stages:
//
//  1. Compose middlewares: global first, then local, in declared order.
//  2. Assemble the command. On validation failure, record the error, run
//     the invalid stage in declared order, halt, and return.
//  3. Run before-execution in declared order.
//  4. If not halted, invoke the execute function.
//  5. Run after-failure (on execution error) or after-execution (on
//     success) in reverse declared order.
//  6. Extract the terminal response or error.
func (r *Runner) Run(ctx context.Context, def *command.Definition, params, meta map[string]any, local ...Entry) (any, error) {
	entries := make([]Entry, 0, len(r.Global)+len(local))
	entries = append(entries, r.Global...)
	entries = append(entries, local...)

	c := newContext(ctx, params, meta)

	cmd, err := def.New(params, meta)
	if err != nil {
		c.SetError(err)
		c = Chain(c, StageInvalid, entries)
		c.Halt()
		return Response(c)
	}

	c.Command = cmd
	c = Chain(c, StageBeforeExecution, entries)
	c = Execute(c, def.Handler())

	if c.Err() != nil {
		c = Chain(c, StageAfterFailure, reversed(entries))
	} else {
		c = Chain(c, StageAfterExecution, reversed(entries))
	}
	return Response(c)
}

// Run executes a command with no global middlewares.
func Run(ctx context.Context, def *command.Definition, params, meta map[string]any, local ...Entry) (any, error) {
	r := &Runner{}
	return r.Run(ctx, def, params, meta, local...)
}

// Execute invokes the handler with the assembled command. A halted
// context passes through unchanged. A missing handler or command is a
// usage error that halts with a terminal error; otherwise the handler's
// result is recorded as the response or the error.
func Execute(c *Context, handler command.Handler) *Context {
	if c.Halted() {
		return c
	}
	if handler == nil {
		return c.HaltWithError(ErrNoHandler)
	}
	if c.Command == nil {
		return c.HaltWithError(ErrNoCommand)
	}

	response, err := handler(c.Ctx, c.Command)
	if err != nil {
		c.SetError(err)
		return c
	}
	c.SetResponse(response)
	return c
}

// Response extracts the terminal result: the recorded error when one is
// set, otherwise the recorded response (which may be nil when nothing was
// ever set).
func Response(c *Context) (any, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c.Response(), nil
}
