// Package logging provides a pipeline middleware that logs command
// lifecycle transitions with the standard log package.
package logging

import (
	"errors"
	"log"
	"time"

	"github.com/louisbranch/opkit/command"
	"github.com/louisbranch/opkit/pipeline"
)

// startedAtKey is the assign holding the invocation start time.
const startedAtKey = "logging.started_at"

// Middleware logs one line per lifecycle stage: start, success with
// duration, failure with the error, and invalid input with the failing
// fields.
type Middleware struct {
	// Logger defaults to log.Default when nil.
	Logger *log.Logger
}

// New creates a logging middleware using the default logger.
func New() *Middleware {
	return &Middleware{}
}

// BeforeExecution records the start time and logs the invocation.
func (m *Middleware) BeforeExecution(c *pipeline.Context, _ pipeline.Options) *pipeline.Context {
	c.Assign(startedAtKey, time.Now())
	m.logger().Printf("command=%s invocation=%s stage=before_execution", commandName(c), c.ID)
	return c
}

// AfterExecution logs the successful completion with its duration.
func (m *Middleware) AfterExecution(c *pipeline.Context, _ pipeline.Options) *pipeline.Context {
	m.logger().Printf("command=%s invocation=%s stage=after_execution duration=%s", commandName(c), c.ID, m.elapsed(c))
	return c
}

// AfterFailure logs the execution error with its duration.
func (m *Middleware) AfterFailure(c *pipeline.Context, _ pipeline.Options) *pipeline.Context {
	m.logger().Printf("command=%s invocation=%s stage=after_failure duration=%s error=%q", commandName(c), c.ID, m.elapsed(c), c.Err().Error())
	return c
}

// Invalid logs the validation failure with the invalid field count.
func (m *Middleware) Invalid(c *pipeline.Context, _ pipeline.Options) *pipeline.Context {
	fields := 0
	var verr *command.ValidationError
	if errors.As(c.Err(), &verr) {
		fields = len(verr.Changeset.Errors)
	}
	m.logger().Printf("invocation=%s stage=invalid invalid_fields=%d", c.ID, fields)
	return c
}

func (m *Middleware) logger() *log.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return log.Default()
}

func (m *Middleware) elapsed(c *pipeline.Context) time.Duration {
	value, ok := c.Assigned(startedAtKey)
	if !ok {
		return 0
	}
	started, ok := value.(time.Time)
	if !ok {
		return 0
	}
	return time.Since(started)
}

func commandName(c *pipeline.Context) string {
	if c.Command == nil {
		return "unknown"
	}
	return c.Command.Name
}
