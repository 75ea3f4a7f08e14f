package pipeline

import "fmt"

// Chain runs the stage hook of each entry in order, threading the context
// through. The chain short-circuits on a halted context, and the
// after-failure stage only runs when an execution error is recorded: a
// merely unsuccessful-looking result does not trigger it.
//
// A middleware returning a nil context violates the middleware contract
// and panics; per the error taxonomy this is a fatal programming error,
// not request data.
func Chain(c *Context, stage Stage, entries []Entry) *Context {
	for _, entry := range entries {
		if c.Halted() {
			return c
		}
		if stage == StageAfterFailure && c.Err() == nil {
			return c
		}
		next := invoke(entry, stage, c)
		if next == nil {
			panic(fmt.Sprintf("pipeline: middleware %T returned nil context at stage %s", entry.Middleware, stage))
		}
		c = next
	}
	return c
}

func invoke(entry Entry, stage Stage, c *Context) *Context {
	switch stage {
	case StageBeforeExecution:
		return entry.Middleware.BeforeExecution(c, entry.Options)
	case StageAfterExecution:
		return entry.Middleware.AfterExecution(c, entry.Options)
	case StageAfterFailure:
		return entry.Middleware.AfterFailure(c, entry.Options)
	case StageInvalid:
		return entry.Middleware.Invalid(c, entry.Options)
	default:
		return c
	}
}

// reversed returns a reversed copy so after-stages unwind middlewares
// like nested scopes closing.
func reversed(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, entry := range entries {
		out[len(entries)-1-i] = entry
	}
	return out
}
