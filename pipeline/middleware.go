package pipeline

// Stage identifies one of the four middleware hooks.
type Stage int

const (
	// StageBeforeExecution runs before the execute function, in declared
	// order.
	StageBeforeExecution Stage = iota
	// StageAfterExecution runs after a successful execution, in reverse
	// declared order.
	StageAfterExecution
	// StageAfterFailure runs after the execute function reported an
	// error, in reverse declared order. It never runs for validation
	// failures.
	StageAfterFailure
	// StageInvalid runs when command assembly failed validation, in
	// declared order.
	StageInvalid
)

// String returns the stage name used by logs and traces.
func (s Stage) String() string {
	switch s {
	case StageBeforeExecution:
		return "before_execution"
	case StageAfterExecution:
		return "after_execution"
	case StageAfterFailure:
		return "after_failure"
	case StageInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Middleware implements the four lifecycle hooks around command
// execution. Each hook receives the invocation context and the options
// the middleware was declared with, and must return a context (usually
// the same one). Embed Base to implement only a subset of hooks.
type Middleware interface {
	BeforeExecution(c *Context, opts Options) *Context
	AfterExecution(c *Context, opts Options) *Context
	AfterFailure(c *Context, opts Options) *Context
	Invalid(c *Context, opts Options) *Context
}

// Base provides no-op defaults for all four hooks.
type Base struct{}

// BeforeExecution returns the context unchanged.
func (Base) BeforeExecution(c *Context, _ Options) *Context { return c }

// AfterExecution returns the context unchanged.
func (Base) AfterExecution(c *Context, _ Options) *Context { return c }

// AfterFailure returns the context unchanged.
func (Base) AfterFailure(c *Context, _ Options) *Context { return c }

// Invalid returns the context unchanged.
func (Base) Invalid(c *Context, _ Options) *Context { return c }
