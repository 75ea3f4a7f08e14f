package command

// skipSentinel is the type of SkipFill.
type skipSentinel struct{}

// SkipFill is returned by a FillFunc to leave an internal field absent,
// matching the identity behavior of the default (nil) callback.
var SkipFill any = skipSentinel{}

// FillFunc computes the value of one internal field after validation
// succeeds. It receives the field name, the changeset (earlier internal
// fields are already visible in its changes), the raw params, and the
// invocation metadata.
//
// Returning (value, nil) stores value into the changes. Returning
// (SkipFill, nil) leaves the field absent. Returning a non-nil error
// appends it as a field error, making the changeset invalid.
type FillFunc func(field string, cs *Changeset, params, meta map[string]any) (any, error)

// runFill populates internal fields in declaration order. The loop is
// strictly sequential: later callbacks may read earlier fills from the
// changes. Filling is skipped entirely when the changeset is already
// invalid, so callbacks never observe invalid data.
func (d *Definition) runFill(cs *Changeset, meta map[string]any) *Changeset {
	if !cs.Valid() || d.fill == nil {
		return cs
	}
	for _, spec := range d.fields {
		if !spec.Internal {
			continue
		}
		value, err := d.fill(spec.Name, cs, cs.Params, meta)
		if err != nil {
			cs.AddError(spec.Name, err.Error())
			continue
		}
		if value == SkipFill {
			continue
		}
		cs.PutChange(spec.Name, value)
	}
	return cs
}
