// Package schema derives JSON Schemas and example payloads from command
// definitions. It reads the field registry only and never mutates it, so
// it can run any time after a definition is built.
package schema

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/louisbranch/opkit/command"
)

// Generate builds a JSON Schema describing the caller-facing payload of
// def: every non-internal field becomes a property, required steps become
// schema requirements, and length, number, format, and inclusion steps
// become the matching schema constraints.
func Generate(def *command.Definition) (*jsonschema.Schema, error) {
	root := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
	}

	for _, spec := range def.Fields() {
		if spec.Internal {
			continue
		}
		property, err := fieldSchema(spec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", spec.Name, err)
		}
		root.Properties[spec.Name] = property
		if isRequired(spec) {
			root.Required = append(root.Required, spec.Name)
		}
	}
	return root, nil
}

// Example builds a sample payload for def: inclusion steps contribute
// their first allowed value, everything else gets a type default.
func Example(def *command.Definition) map[string]any {
	payload := map[string]any{}
	for _, spec := range def.Fields() {
		if spec.Internal {
			continue
		}
		payload[spec.Name] = exampleValue(spec)
	}
	return payload
}

func fieldSchema(spec command.FieldSpec) (*jsonschema.Schema, error) {
	s := &jsonschema.Schema{}
	switch spec.Type {
	case command.TypeString:
		s.Type = "string"
	case command.TypeInt:
		s.Type = "integer"
	case command.TypeFloat:
		s.Type = "number"
	case command.TypeBool:
		s.Type = "boolean"
	case command.TypeStringList:
		s.Type = "array"
		s.Items = &jsonschema.Schema{Type: "string"}
	case command.TypeIntList:
		s.Type = "array"
		s.Items = &jsonschema.Schema{Type: "integer"}
	case command.TypeAny:
		// No type constraint.
	default:
		return nil, fmt.Errorf("unsupported field type %v", spec.Type)
	}

	for _, step := range spec.Validators {
		applyStep(s, spec, step)
	}
	return s, nil
}

func applyStep(s *jsonschema.Schema, spec command.FieldSpec, step command.ValidatorStep) {
	switch step.Kind {
	case command.KindLength:
		min, max := step.Length.Min, step.Length.Max
		if step.Length.Is != nil {
			min, max = step.Length.Is, step.Length.Is
		}
		if spec.Type == command.TypeStringList || spec.Type == command.TypeIntList {
			s.MinItems = min
			s.MaxItems = max
		} else {
			s.MinLength = min
			s.MaxLength = max
		}
	case command.KindNumber:
		s.Minimum = step.Number.GreaterThanOrEqualTo
		s.Maximum = step.Number.LessThanOrEqualTo
		s.ExclusiveMinimum = step.Number.GreaterThan
		s.ExclusiveMaximum = step.Number.LessThan
	case command.KindFormat:
		if step.Pattern != nil {
			s.Pattern = step.Pattern.String()
		}
	case command.KindInclusion:
		s.Enum = append([]any{}, step.Set...)
	}
}

func isRequired(spec command.FieldSpec) bool {
	if spec.Required {
		return true
	}
	for _, step := range spec.Validators {
		if step.Kind == command.KindRequired {
			return true
		}
	}
	return false
}

func exampleValue(spec command.FieldSpec) any {
	for _, step := range spec.Validators {
		if step.Kind == command.KindInclusion && len(step.Set) > 0 {
			return step.Set[0]
		}
	}
	switch spec.Type {
	case command.TypeString:
		return "text"
	case command.TypeInt:
		return 42
	case command.TypeFloat:
		return 4.2
	case command.TypeBool:
		return true
	case command.TypeStringList:
		return []string{"text"}
	case command.TypeIntList:
		return []int{42}
	default:
		return nil
	}
}
