package command

// Changeset accumulates the cast values and validation errors for one
// invocation. It is mutated only by the validation engine and the internal
// field filler; once returned from New it must be treated as read-only.
type Changeset struct {
	// Params is the raw input exactly as supplied by the caller.
	Params map[string]any
	// Changes maps field names to successfully cast (and filled) values.
	Changes map[string]any
	// Errors maps field names to their messages, in append order.
	Errors map[string][]string
}

// NewChangeset creates an empty changeset over the given raw params.
func NewChangeset(params map[string]any) *Changeset {
	if params == nil {
		params = map[string]any{}
	}
	return &Changeset{
		Params:  params,
		Changes: map[string]any{},
		Errors:  map[string][]string{},
	}
}

// Valid reports whether no field has accumulated errors.
func (c *Changeset) Valid() bool {
	return len(c.Errors) == 0
}

// AddError appends a message to the field's error list. Earlier messages
// are never removed.
func (c *Changeset) AddError(field, message string) {
	if c.Errors == nil {
		c.Errors = map[string][]string{}
	}
	c.Errors[field] = append(c.Errors[field], message)
}

// PutChange stores a cast or filled value for the field.
func (c *Changeset) PutChange(field string, value any) {
	if c.Changes == nil {
		c.Changes = map[string]any{}
	}
	c.Changes[field] = value
}

// GetChange returns the cast value for the field, if present.
func (c *Changeset) GetChange(field string) (any, bool) {
	value, ok := c.Changes[field]
	return value, ok
}

// FieldErrors returns the messages recorded for the field, in order.
func (c *Changeset) FieldErrors(field string) []string {
	return c.Errors[field]
}
