// Package coerce converts raw untyped input values into declared field types.
//
// Casting is delegated to spf13/cast so that the permissive conversions
// callers expect from loosely typed payloads (e.g. "42" into an int field)
// behave the same way across every field type.
package coerce

import (
	"fmt"

	"github.com/spf13/cast"
)

// ToString converts value to a string.
func ToString(value any) (string, error) {
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", fmt.Errorf("cast to string: %w", err)
	}
	return s, nil
}

// ToInt converts value to an int.
func ToInt(value any) (int, error) {
	n, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("cast to int: %w", err)
	}
	return n, nil
}

// ToFloat converts value to a float64.
func ToFloat(value any) (float64, error) {
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, fmt.Errorf("cast to float: %w", err)
	}
	return f, nil
}

// ToBool converts value to a bool.
func ToBool(value any) (bool, error) {
	b, err := cast.ToBoolE(value)
	if err != nil {
		return false, fmt.Errorf("cast to bool: %w", err)
	}
	return b, nil
}

// ToStringList converts value to a []string.
func ToStringList(value any) ([]string, error) {
	list, err := cast.ToStringSliceE(value)
	if err != nil {
		return nil, fmt.Errorf("cast to string list: %w", err)
	}
	return list, nil
}

// ToIntList converts value to a []int.
func ToIntList(value any) ([]int, error) {
	list, err := cast.ToIntSliceE(value)
	if err != nil {
		return nil, fmt.Errorf("cast to int list: %w", err)
	}
	return list, nil
}
