package command

import (
	"errors"
	"fmt"

	"github.com/louisbranch/opkit/i18n"
)

// Definition-time errors. These are programming mistakes in a command
// declaration and are reported when the definition is built, never at
// request time.
var (
	// ErrEmptyName indicates a definition without a command name.
	ErrEmptyName = errors.New("command name is required")
	// ErrDuplicateField indicates two fields declared with the same name.
	ErrDuplicateField = errors.New("duplicate field name")
	// ErrTrimNonString indicates trim declared on a non-string field.
	ErrTrimNonString = errors.New("trim requires a string field")
)

// Definition is the immutable registry for one command type: its name,
// ordered field specs, fill callback, handler, and message locale. Build
// one per command type at startup and share it across invocations.
type Definition struct {
	name    string
	fields  []FieldSpec
	fill    FillFunc
	handler Handler
	catalog *i18n.Catalog
}

// Option configures a Definition under construction.
type Option func(*Definition)

// WithField appends a field spec in declaration order.
func WithField(spec FieldSpec) Option {
	return func(d *Definition) {
		d.fields = append(d.fields, spec)
	}
}

// WithFill sets the internal-field callback.
func WithFill(fn FillFunc) Option {
	return func(d *Definition) {
		d.fill = fn
	}
}

// WithHandler sets the execute function invoked by the pipeline.
func WithHandler(h Handler) Option {
	return func(d *Definition) {
		d.handler = h
	}
}

// WithLocale sets the locale used to render validation messages.
// Defaults to the base locale.
func WithLocale(locale string) Option {
	return func(d *Definition) {
		d.catalog = i18n.ForLocale(locale)
	}
}

// NewDefinition builds and checks a command definition. Declaring trim on
// a non-string field, duplicate field names, or an empty command name fail
// here so a broken declaration never reaches request handling.
func NewDefinition(name string, opts ...Option) (*Definition, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	d := &Definition{name: name, catalog: i18n.ForLocale(i18n.BaseLocale)}
	for _, opt := range opts {
		opt(d)
	}

	seen := map[string]bool{}
	for i, spec := range d.fields {
		if spec.Name == "" {
			return nil, fmt.Errorf("command %s: field name is required", name)
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("command %s: field %q: %w", name, spec.Name, ErrDuplicateField)
		}
		seen[spec.Name] = true
		if spec.Trim && spec.Type != TypeString {
			return nil, fmt.Errorf("command %s: field %q: %w", name, spec.Name, ErrTrimNonString)
		}
		// The Required flag is shorthand for a leading required step.
		if spec.Required && !hasRequiredStep(spec) {
			d.fields[i].Validators = append([]ValidatorStep{Required()}, spec.Validators...)
		}
	}
	return d, nil
}

func hasRequiredStep(spec FieldSpec) bool {
	for _, step := range spec.Validators {
		if step.Kind == KindRequired {
			return true
		}
	}
	return false
}

// MustDefinition is like NewDefinition but panics on error. Intended for
// package-level command declarations.
func MustDefinition(name string, opts ...Option) *Definition {
	d, err := NewDefinition(name, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the command type name.
func (d *Definition) Name() string {
	return d.name
}

// Fields returns a copy of the ordered field specs.
func (d *Definition) Fields() []FieldSpec {
	out := make([]FieldSpec, len(d.fields))
	copy(out, d.fields)
	return out
}

// Handler returns the execute function, or nil when none was declared.
func (d *Definition) Handler() Handler {
	return d.handler
}
