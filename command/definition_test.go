package command

import (
	"errors"
	"testing"
)

func TestNewDefinitionRejectsEmptyName(t *testing.T) {
	_, err := NewDefinition("")
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected %v, got %v", ErrEmptyName, err)
	}
}

func TestNewDefinitionRejectsTrimOnNonString(t *testing.T) {
	_, err := NewDefinition("user.create",
		WithField(FieldSpec{Name: "age", Type: TypeInt, Trim: true}),
	)
	if !errors.Is(err, ErrTrimNonString) {
		t.Fatalf("expected %v, got %v", ErrTrimNonString, err)
	}
}

func TestNewDefinitionAllowsTrimOnString(t *testing.T) {
	def, err := NewDefinition("user.create",
		WithField(FieldSpec{Name: "name", Type: TypeString, Trim: true}),
	)
	if err != nil {
		t.Fatalf("new definition: %v", err)
	}
	if def.Name() != "user.create" {
		t.Fatalf("expected name user.create, got %q", def.Name())
	}
}

func TestNewDefinitionRejectsDuplicateFields(t *testing.T) {
	_, err := NewDefinition("user.create",
		WithField(FieldSpec{Name: "name", Type: TypeString}),
		WithField(FieldSpec{Name: "name", Type: TypeString}),
	)
	if !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("expected %v, got %v", ErrDuplicateField, err)
	}
}

func TestNewDefinitionRejectsUnnamedField(t *testing.T) {
	_, err := NewDefinition("user.create",
		WithField(FieldSpec{Type: TypeString}),
	)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestMustDefinitionPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustDefinition("user.create",
		WithField(FieldSpec{Name: "tags", Type: TypeStringList, Trim: true}),
	)
}

func TestRequiredFlagBecomesLeadingStep(t *testing.T) {
	def := MustDefinition("user.create",
		WithField(FieldSpec{
			Name: "name", Type: TypeString, Required: true,
			Validators: []ValidatorStep{Length(LengthOpts{Min: Int(3)})},
		}),
	)
	fields := def.Fields()
	if len(fields) != 1 {
		t.Fatalf("expected one field, got %d", len(fields))
	}
	steps := fields[0].Validators
	if len(steps) != 2 {
		t.Fatalf("expected two steps, got %d", len(steps))
	}
	if steps[0].Kind != KindRequired || steps[1].Kind != KindLength {
		t.Fatalf("expected required step first, got %v then %v", steps[0].Kind, steps[1].Kind)
	}
}

func TestRequiredFlagDoesNotDuplicateDeclaredStep(t *testing.T) {
	def := MustDefinition("user.create",
		WithField(FieldSpec{
			Name: "name", Type: TypeString, Required: true,
			Validators: []ValidatorStep{Required()},
		}),
	)
	steps := def.Fields()[0].Validators
	if len(steps) != 1 {
		t.Fatalf("expected one step, got %d", len(steps))
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	def := MustDefinition("user.create",
		WithField(FieldSpec{Name: "name", Type: TypeString}),
	)
	fields := def.Fields()
	fields[0].Name = "mutated"
	if def.Fields()[0].Name != "name" {
		t.Fatal("expected definition fields to be immutable")
	}
}
