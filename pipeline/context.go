// Package pipeline runs validated commands through an ordered,
// interruptible middleware chain around the user's execute function.
//
// Each invocation gets its own Context; definitions and middleware lists
// are read-only configuration, so concurrent invocations share no mutable
// state and need no locking.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/louisbranch/opkit/command"
)

// Options carries per-declaration middleware options.
type Options map[string]any

// Entry pairs a middleware with the options it was declared with.
type Entry struct {
	Middleware Middleware
	Options    Options
}

// Use builds a middleware entry.
func Use(m Middleware, opts Options) Entry {
	return Entry{Middleware: m, Options: opts}
}

// Context is the per-invocation carrier threaded through the middleware
// chain. It is created by the runner, never shared across invocations,
// and discarded after the final response is extracted.
type Context struct {
	// Ctx is the caller's context, available to middlewares and updated
	// by them (e.g. the tracing middleware stores the span context here).
	Ctx context.Context
	// ID is the unique invocation identifier.
	ID string
	// Command is the assembled command instance, nil on the invalid path.
	Command *command.Command
	// Params is the raw input for this invocation.
	Params map[string]any
	// Meta is the invocation metadata.
	Meta map[string]any

	assigns  map[string]any
	halted   bool
	response any
	err      error
}

// newContext creates a fresh invocation context.
func newContext(ctx context.Context, params, meta map[string]any) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Ctx:     ctx,
		ID:      uuid.NewString(),
		Params:  params,
		Meta:    meta,
		assigns: map[string]any{},
	}
}

// Assign stores a middleware-scoped value on the context.
func (c *Context) Assign(key string, value any) {
	c.assigns[key] = value
}

// Assigned returns a value stored with Assign.
func (c *Context) Assigned(key string) (any, bool) {
	value, ok := c.assigns[key]
	return value, ok
}

// Halted reports whether the chain has been halted. Once halted, no
// further middleware stage runs for this invocation.
func (c *Context) Halted() bool {
	return c.halted
}

// Halt stops further middleware without changing the response.
func (c *Context) Halt() *Context {
	c.halted = true
	return c
}

// HaltWithResponse stops further middleware and sets the terminal
// response.
func (c *Context) HaltWithResponse(response any) *Context {
	c.SetResponse(response)
	return c.Halt()
}

// HaltWithError stops further middleware and sets the terminal error.
func (c *Context) HaltWithError(err error) *Context {
	c.SetError(err)
	return c.Halt()
}

// SetResponse records the invocation response. Response and error are
// mutually exclusive: setting one clears the other.
func (c *Context) SetResponse(response any) {
	c.response = response
	c.err = nil
}

// SetError records the invocation error, clearing any response.
func (c *Context) SetError(err error) {
	c.err = err
	c.response = nil
}

// Response returns the recorded response value.
func (c *Context) Response() any {
	return c.response
}

// Err returns the recorded error value.
func (c *Context) Err() error {
	return c.err
}
