package command

import (
	"strings"

	"github.com/louisbranch/opkit/i18n"
	"github.com/louisbranch/opkit/internal/coerce"
)

// Validate casts the raw params against the field specs and runs every
// validator step in declaration order. The returned changeset carries the
// cast values and any accumulated errors; it is valid when no field has
// errors. Validate is deterministic: identical params yield an identical
// changeset.
func (d *Definition) Validate(params map[string]any) *Changeset {
	cs := NewChangeset(params)

	// Cast pass. Internal fields are never part of the cast set. A failed
	// cast records a field error and leaves the field out of the changes.
	for _, spec := range d.fields {
		if spec.Internal {
			continue
		}
		raw, ok := cs.Params[spec.Name]
		if !ok || raw == nil {
			continue
		}
		value, err := castValue(raw, spec.Type)
		if err != nil {
			cs.AddError(spec.Name, d.catalog.Format(i18n.CodeCastFailed, map[string]string{
				"type": spec.Type.String(),
			}))
			continue
		}
		if spec.Trim {
			value = strings.TrimSpace(value.(string))
		}
		cs.PutChange(spec.Name, value)
	}

	// Validation pass, in declaration order. Custom steps may replace the
	// changeset; every other step appends errors in place.
	for _, spec := range d.fields {
		for _, step := range spec.Validators {
			cs = step.apply(cs, spec, d.catalog)
		}
	}
	return cs
}

// castValue converts raw to the declared field type.
func castValue(raw any, t Type) (any, error) {
	switch t {
	case TypeString:
		return coerce.ToString(raw)
	case TypeInt:
		return coerce.ToInt(raw)
	case TypeFloat:
		return coerce.ToFloat(raw)
	case TypeBool:
		return coerce.ToBool(raw)
	case TypeStringList:
		return coerce.ToStringList(raw)
	case TypeIntList:
		return coerce.ToIntList(raw)
	default:
		return raw, nil
	}
}
