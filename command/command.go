package command

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Command is a validated, fully populated instance of a command type.
// It is assembled by Definition.New and is read-only afterwards.
type Command struct {
	// Name is the command type name.
	Name string
	// Fields maps field names to their cast and filled values.
	Fields map[string]any
	// Meta is the invocation metadata passed to New.
	Meta map[string]any
}

// Handler is the user-supplied execute function for a command type.
type Handler func(ctx context.Context, cmd *Command) (any, error)

// ValidationError is the terminal error returned by New for invalid
// input. It carries the full changeset so callers can inspect per-field
// messages. Validation failures flow as data, never as panics.
type ValidationError struct {
	Command   string
	Changeset *Changeset
}

// Error lists the invalid fields, sorted for stable output.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Changeset.Errors))
	for field := range e.Changeset.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("command %s: invalid fields: %s", e.Command, strings.Join(fields, ", "))
}

// New casts and validates params, fills internal fields, and assembles a
// command instance. On failure it returns a *ValidationError wrapping the
// changeset; this is the sole boundary where a changeset becomes either
// an instance or a terminal error.
func (d *Definition) New(params, meta map[string]any) (*Command, error) {
	cs := d.Validate(params)
	cs = d.runFill(cs, meta)
	if !cs.Valid() {
		return nil, &ValidationError{Command: d.name, Changeset: cs}
	}

	fields := make(map[string]any, len(cs.Changes))
	for name, value := range cs.Changes {
		fields[name] = value
	}
	return &Command{Name: d.name, Fields: fields, Meta: meta}, nil
}

// Field returns the value of a field, if present.
func (c *Command) Field(name string) (any, bool) {
	value, ok := c.Fields[name]
	return value, ok
}

// StringField returns a string field value, or "" when absent or not a
// string.
func (c *Command) StringField(name string) string {
	value, _ := c.Fields[name].(string)
	return value
}

// IntField returns an int field value, or 0 when absent or not an int.
func (c *Command) IntField(name string) int {
	value, _ := c.Fields[name].(int)
	return value
}

// FloatField returns a float field value, or 0 when absent or not a
// float.
func (c *Command) FloatField(name string) float64 {
	value, _ := c.Fields[name].(float64)
	return value
}

// BoolField returns a bool field value, or false when absent or not a
// bool.
func (c *Command) BoolField(name string) bool {
	value, _ := c.Fields[name].(bool)
	return value
}
