// Package command implements typed command definitions: an ordered field
// registry, a casting and validation engine producing changesets, internal
// field filling, and assembly of validated command instances.
package command

// Type enumerates the value types a field can declare.
type Type int

const (
	// TypeString holds a text value.
	TypeString Type = iota
	// TypeInt holds an integer value.
	TypeInt
	// TypeFloat holds a float64 value.
	TypeFloat
	// TypeBool holds a boolean value.
	TypeBool
	// TypeStringList holds a []string value.
	TypeStringList
	// TypeIntList holds a []int value.
	TypeIntList
	// TypeAny holds the raw value without casting.
	TypeAny
)

// String returns the type name used in cast error messages and schemas.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeStringList:
		return "string list"
	case TypeIntList:
		return "int list"
	case TypeAny:
		return "any"
	default:
		return "unknown"
	}
}

// FieldSpec describes one declared command field.
//
// Internal fields are never cast from caller input; they are computed by
// the definition's fill callback after validation succeeds. Trim strips
// leading and trailing whitespace from string values after casting and is
// only legal on string fields.
type FieldSpec struct {
	Name       string
	Type       Type
	Required   bool
	Internal   bool
	Trim       bool
	Validators []ValidatorStep
}
