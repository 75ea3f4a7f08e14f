package command

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/louisbranch/opkit/i18n"
	"github.com/louisbranch/opkit/internal/coerce"
)

// ValidatorKind tags the variant carried by a ValidatorStep.
type ValidatorKind int

const (
	// KindRequired fails when the field is absent, nil, or an empty string.
	KindRequired ValidatorKind = iota
	// KindLength bounds character or element counts.
	KindLength
	// KindNumber applies numeric comparison predicates.
	KindNumber
	// KindFormat matches the value against a pattern.
	KindFormat
	// KindInclusion requires membership in a value set.
	KindInclusion
	// KindExclusion forbids membership in a value set.
	KindExclusion
	// KindSubset requires every element to belong to a value set.
	KindSubset
	// KindAcceptance requires a truthy boolean.
	KindAcceptance
	// KindConfirmation compares the field to its _confirmation sibling.
	KindConfirmation
	// KindCustom runs a user-supplied validator function.
	KindCustom
)

// LengthOpts bounds character counts for strings and element counts for
// lists and maps. Nil bounds are not checked.
type LengthOpts struct {
	Min *int
	Max *int
	Is  *int
}

// NumberOpts holds numeric comparison predicates. Nil predicates are not
// checked; multiple predicates all apply.
type NumberOpts struct {
	GreaterThan          *float64
	GreaterThanOrEqualTo *float64
	LessThan             *float64
	LessThanOrEqualTo    *float64
	EqualTo              *float64
	NotEqualTo           *float64
}

// CustomFunc is a user-supplied validator step. It receives the changeset
// under construction and the options declared with the step, and must
// return a changeset (typically the same one, with errors appended).
type CustomFunc func(cs *Changeset, opts map[string]any) *Changeset

// ValidatorStep is one entry in a field's ordered validator chain. Steps
// run in declaration order; custom steps compose at their declared
// position exactly like built-in ones.
type ValidatorStep struct {
	Kind    ValidatorKind
	Length  LengthOpts
	Number  NumberOpts
	Pattern *regexp.Regexp
	Set     []any
	Fn      CustomFunc
	FnOpts  map[string]any
}

// Int returns a pointer to n, for use in LengthOpts.
func Int(n int) *int { return &n }

// Float returns a pointer to f, for use in NumberOpts.
func Float(f float64) *float64 { return &f }

// Required declares a required-presence step.
func Required() ValidatorStep {
	return ValidatorStep{Kind: KindRequired}
}

// Length declares a length step with the given bounds.
func Length(opts LengthOpts) ValidatorStep {
	return ValidatorStep{Kind: KindLength, Length: opts}
}

// Number declares a numeric comparison step.
func Number(opts NumberOpts) ValidatorStep {
	return ValidatorStep{Kind: KindNumber, Number: opts}
}

// Format declares a pattern-match step.
func Format(pattern *regexp.Regexp) ValidatorStep {
	return ValidatorStep{Kind: KindFormat, Pattern: pattern}
}

// Inclusion declares a set-membership step.
func Inclusion(values ...any) ValidatorStep {
	return ValidatorStep{Kind: KindInclusion, Set: values}
}

// Exclusion declares a forbidden-set step.
func Exclusion(values ...any) ValidatorStep {
	return ValidatorStep{Kind: KindExclusion, Set: values}
}

// Subset declares a step requiring every element of a list value to belong
// to the given set.
func Subset(values ...any) ValidatorStep {
	return ValidatorStep{Kind: KindSubset, Set: values}
}

// Acceptance declares a truthy-boolean step.
func Acceptance() ValidatorStep {
	return ValidatorStep{Kind: KindAcceptance}
}

// Confirmation declares a step comparing the field to the raw parameter
// named "<field>_confirmation".
func Confirmation() ValidatorStep {
	return ValidatorStep{Kind: KindConfirmation}
}

// Custom declares a user validator step with its options.
func Custom(fn CustomFunc, opts map[string]any) ValidatorStep {
	return ValidatorStep{Kind: KindCustom, Fn: fn, FnOpts: opts}
}

// apply runs one validator step for spec against cs and returns the
// (possibly replaced) changeset. Steps other than required and custom are
// no-ops when the field is absent from the cast changes.
func (s ValidatorStep) apply(cs *Changeset, spec FieldSpec, cat *i18n.Catalog) *Changeset {
	switch s.Kind {
	case KindRequired:
		s.applyRequired(cs, spec, cat)
	case KindCustom:
		next := s.Fn(cs, s.FnOpts)
		if next == nil {
			panic(fmt.Sprintf("command: custom validator for field %q returned nil changeset", spec.Name))
		}
		return next
	default:
		value, ok := cs.GetChange(spec.Name)
		if !ok {
			return cs
		}
		switch s.Kind {
		case KindLength:
			s.applyLength(cs, spec, cat, value)
		case KindNumber:
			s.applyNumber(cs, spec, cat, value)
		case KindFormat:
			s.applyFormat(cs, spec, cat, value)
		case KindInclusion:
			if !setContains(s.Set, value) {
				cs.AddError(spec.Name, cat.Format(i18n.CodeInclusion, map[string]string{"values": setString(s.Set)}))
			}
		case KindExclusion:
			if setContains(s.Set, value) {
				cs.AddError(spec.Name, cat.Format(i18n.CodeExclusion, map[string]string{"values": setString(s.Set)}))
			}
		case KindSubset:
			s.applySubset(cs, spec, cat, value)
		case KindAcceptance:
			accepted, err := coerce.ToBool(value)
			if err != nil || !accepted {
				cs.AddError(spec.Name, cat.Format(i18n.CodeAcceptance, nil))
			}
		case KindConfirmation:
			s.applyConfirmation(cs, spec, cat, value)
		}
	}
	return cs
}

// applyRequired checks raw presence rather than cast presence: a value
// that was supplied but failed casting already carries a cast error and
// must not also be reported as missing.
func (s ValidatorStep) applyRequired(cs *Changeset, spec FieldSpec, cat *i18n.Catalog) {
	raw, present := cs.Params[spec.Name]
	if !present || raw == nil {
		cs.AddError(spec.Name, cat.Format(i18n.CodeRequired, nil))
		return
	}
	if value, ok := cs.GetChange(spec.Name); ok {
		if str, isStr := value.(string); isStr && strings.TrimSpace(str) == "" {
			cs.AddError(spec.Name, cat.Format(i18n.CodeRequired, nil))
		}
	}
}

func (s ValidatorStep) applyLength(cs *Changeset, spec FieldSpec, cat *i18n.Catalog, value any) {
	count, ok := valueLength(value)
	if !ok {
		cs.AddError(spec.Name, cat.Format(i18n.CodeLengthUnsupported, nil))
		return
	}
	actual := fmt.Sprintf("%d", count)
	if s.Length.Is != nil && count != *s.Length.Is {
		cs.AddError(spec.Name, cat.Format(i18n.CodeLengthIs, map[string]string{
			"is": fmt.Sprintf("%d", *s.Length.Is), "actual": actual,
		}))
	}
	if s.Length.Min != nil && count < *s.Length.Min {
		cs.AddError(spec.Name, cat.Format(i18n.CodeLengthMin, map[string]string{
			"min": fmt.Sprintf("%d", *s.Length.Min), "actual": actual,
		}))
	}
	if s.Length.Max != nil && count > *s.Length.Max {
		cs.AddError(spec.Name, cat.Format(i18n.CodeLengthMax, map[string]string{
			"max": fmt.Sprintf("%d", *s.Length.Max), "actual": actual,
		}))
	}
}

func (s ValidatorStep) applyNumber(cs *Changeset, spec FieldSpec, cat *i18n.Catalog, value any) {
	n, err := coerce.ToFloat(value)
	if err != nil {
		cs.AddError(spec.Name, cat.Format(i18n.CodeNumberInvalid, nil))
		return
	}
	check := func(pred *float64, ok func(float64, float64) bool, code i18n.Code) {
		if pred != nil && !ok(n, *pred) {
			cs.AddError(spec.Name, cat.Format(code, map[string]string{
				"target": formatNumber(*pred),
			}))
		}
	}
	check(s.Number.GreaterThan, func(a, b float64) bool { return a > b }, i18n.CodeNumberGreaterThan)
	check(s.Number.GreaterThanOrEqualTo, func(a, b float64) bool { return a >= b }, i18n.CodeNumberGreaterEqual)
	check(s.Number.LessThan, func(a, b float64) bool { return a < b }, i18n.CodeNumberLessThan)
	check(s.Number.LessThanOrEqualTo, func(a, b float64) bool { return a <= b }, i18n.CodeNumberLessEqual)
	check(s.Number.EqualTo, func(a, b float64) bool { return a == b }, i18n.CodeNumberEqualTo)
	check(s.Number.NotEqualTo, func(a, b float64) bool { return a != b }, i18n.CodeNumberNotEqualTo)
}

func (s ValidatorStep) applyFormat(cs *Changeset, spec FieldSpec, cat *i18n.Catalog, value any) {
	str, err := coerce.ToString(value)
	if err != nil || !s.Pattern.MatchString(str) {
		cs.AddError(spec.Name, cat.Format(i18n.CodeFormat, nil))
	}
}

func (s ValidatorStep) applySubset(cs *Changeset, spec FieldSpec, cat *i18n.Catalog, value any) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		cs.AddError(spec.Name, cat.Format(i18n.CodeSubsetNotList, nil))
		return
	}
	for i := 0; i < rv.Len(); i++ {
		if !setContains(s.Set, rv.Index(i).Interface()) {
			cs.AddError(spec.Name, cat.Format(i18n.CodeSubset, map[string]string{"values": setString(s.Set)}))
			return
		}
	}
}

func (s ValidatorStep) applyConfirmation(cs *Changeset, spec FieldSpec, cat *i18n.Catalog, value any) {
	sibling, ok := cs.Params[spec.Name+"_confirmation"]
	if !ok || sibling == nil {
		cs.AddError(spec.Name, cat.Format(i18n.CodeConfirmationMissing, nil))
		return
	}
	cast, err := castValue(sibling, spec.Type)
	if err != nil || !looseEqual(value, cast) {
		cs.AddError(spec.Name, cat.Format(i18n.CodeConfirmation, nil))
	}
}

// valueLength measures strings by rune count and lists and maps by element
// count.
func valueLength(value any) (int, bool) {
	if str, ok := value.(string); ok {
		return utf8.RuneCountInString(str), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

func setContains(set []any, value any) bool {
	for _, member := range set {
		if looseEqual(member, value) {
			return true
		}
	}
	return false
}

// looseEqual compares values after numeric normalization so that an int
// field cast to 5 matches a set declared with 5 or 5.0.
func looseEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	af, aok := numericValue(a)
	bf, bok := numericValue(b)
	return aok && bok && af == bf
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func setString(set []any) string {
	parts := make([]string, len(set))
	for i, member := range set {
		parts[i] = fmt.Sprintf("%v", member)
	}
	return strings.Join(parts, ", ")
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
