package pipeline

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/opkit/command"
)

func profileDefinition(t *testing.T, opts ...command.Option) *command.Definition {
	t.Helper()
	base := []command.Option{
		command.WithField(command.FieldSpec{Name: "name", Type: command.TypeString, Required: true}),
		command.WithField(command.FieldSpec{Name: "surname", Type: command.TypeString, Required: true}),
	}
	return command.MustDefinition("profile.create", append(base, opts...)...)
}

func executedHandler(ctx context.Context, cmd *command.Command) (any, error) {
	return "executed", nil
}

func TestRunExecutesValidCommand(t *testing.T) {
	def := profileDefinition(t, command.WithHandler(executedHandler))

	response, err := Run(context.Background(), def, map[string]any{"name": "foo", "surname": "bar"}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if response != "executed" {
		t.Fatalf("expected handler response, got %v", response)
	}
}

func TestRunReturnsValidationErrorForInvalidInput(t *testing.T) {
	def := profileDefinition(t, command.WithHandler(executedHandler))

	_, err := Run(context.Background(), def, map[string]any{}, nil)
	var verr *command.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "surname"} {
		if len(verr.Changeset.FieldErrors(field)) == 0 {
			t.Fatalf("expected errors for %s, got %v", field, verr.Changeset.Errors)
		}
	}
}

func TestRunMiddlewareOrdering(t *testing.T) {
	var calls []string
	def := profileDefinition(t, command.WithHandler(executedHandler))

	_, err := Run(context.Background(), def, map[string]any{"name": "foo", "surname": "bar"}, nil,
		Use(&recorder{name: "a", calls: &calls}, nil),
		Use(&recorder{name: "b", calls: &calls}, nil),
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{
		"a:before_execution",
		"b:before_execution",
		"b:after_execution",
		"a:after_execution",
	}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
}

func TestRunGlobalMiddlewaresComposeBeforeLocal(t *testing.T) {
	var calls []string
	def := profileDefinition(t, command.WithHandler(executedHandler))

	runner := &Runner{Global: []Entry{Use(&recorder{name: "global", calls: &calls}, nil)}}
	_, err := runner.Run(context.Background(), def, map[string]any{"name": "foo", "surname": "bar"}, nil,
		Use(&recorder{name: "local", calls: &calls}, nil),
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{
		"global:before_execution",
		"local:before_execution",
		"local:after_execution",
		"global:after_execution",
	}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
}

func TestRunHaltPreventsExecutionAndLaterMiddlewares(t *testing.T) {
	var calls []string
	executed := false
	def := profileDefinition(t, command.WithHandler(func(ctx context.Context, cmd *command.Command) (any, error) {
		executed = true
		return "executed", nil
	}))

	response, err := Run(context.Background(), def, map[string]any{"name": "foo", "surname": "bar"}, nil,
		Use(&halter{response: "halted"}, nil),
		Use(&recorder{name: "b", calls: &calls}, nil),
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if response != "halted" {
		t.Fatalf("expected halt response, got %v", response)
	}
	if executed {
		t.Fatal("expected handler to be skipped after halt")
	}
	if len(calls) != 0 {
		t.Fatalf("expected no later middleware calls, got %v", calls)
	}
}

func TestRunHaltWithErrorIsTerminal(t *testing.T) {
	var calls []string
	halt := errors.New("not authorized")
	def := profileDefinition(t, command.WithHandler(executedHandler))

	_, err := Run(context.Background(), def, map[string]any{"name": "foo", "surname": "bar"}, nil,
		Use(&halter{err: halt}, nil),
		Use(&recorder{name: "b", calls: &calls}, nil),
	)
	if !errors.Is(err, halt) {
		t.Fatalf("expected halt error, got %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("expected after stages to be skipped, got %v", calls)
	}
}

func TestRunRoutesExecutionErrorToAfterFailure(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	def := profileDefinition(t, command.WithHandler(func(ctx context.Context, cmd *command.Command) (any, error) {
		return nil, boom
	}))

	_, err := Run(context.Background(), def, map[string]any{"name": "foo", "surname": "bar"}, nil,
		Use(&recorder{name: "a", calls: &calls}, nil),
		Use(&recorder{name: "b", calls: &calls}, nil),
	)
	if !errors.Is(err, boom) {
		t.Fatalf("expected execution error, got %v", err)
	}
	want := []string{
		"a:before_execution",
		"b:before_execution",
		"b:after_failure",
		"a:after_failure",
	}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
}

func TestRunInvalidInputRunsOnlyInvalidStage(t *testing.T) {
	var calls []string
	def := profileDefinition(t, command.WithHandler(executedHandler))

	_, err := Run(context.Background(), def, map[string]any{}, nil,
		Use(&recorder{name: "a", calls: &calls}, nil),
		Use(&recorder{name: "b", calls: &calls}, nil),
	)
	if err == nil {
		t.Fatal("expected validation error")
	}
	want := []string{"a:invalid", "b:invalid"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
}

func TestRunWithoutHandlerIsUsageError(t *testing.T) {
	def := profileDefinition(t)

	_, err := Run(context.Background(), def, map[string]any{"name": "foo", "surname": "bar"}, nil)
	if !errors.Is(err, ErrNoHandler) {
		t.Fatalf("expected %v, got %v", ErrNoHandler, err)
	}
}

func TestExecuteWithoutCommandIsUsageError(t *testing.T) {
	c := Execute(testContext(), executedHandler)
	if !errors.Is(c.Err(), ErrNoCommand) {
		t.Fatalf("expected %v, got %v", ErrNoCommand, c.Err())
	}
	if !c.Halted() {
		t.Fatal("expected halted context")
	}
}

func TestExecuteSkipsHaltedContext(t *testing.T) {
	executed := false
	c := testContext().HaltWithResponse("halted")
	Execute(c, func(ctx context.Context, cmd *command.Command) (any, error) {
		executed = true
		return nil, nil
	})
	if executed {
		t.Fatal("expected handler to be skipped")
	}
	if c.Response() != "halted" {
		t.Fatalf("expected halt response to survive, got %v", c.Response())
	}
}

func TestResponseExtractsErrorFirst(t *testing.T) {
	c := testContext()
	if response, err := Response(c); err != nil || response != nil {
		t.Fatalf("expected nil response on fresh context, got %v / %v", response, err)
	}

	c.SetResponse("ok")
	if response, err := Response(c); err != nil || response != "ok" {
		t.Fatalf("expected ok, got %v / %v", response, err)
	}

	boom := errors.New("boom")
	c.SetError(boom)
	if _, err := Response(c); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestRunMetadataReachesHandler(t *testing.T) {
	def := profileDefinition(t, command.WithHandler(func(ctx context.Context, cmd *command.Command) (any, error) {
		return cmd.Meta["user_id"], nil
	}))

	response, err := Run(context.Background(), def, map[string]any{"name": "foo", "surname": "bar"}, map[string]any{"user_id": "u-1"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if response != "u-1" {
		t.Fatalf("expected metadata response, got %v", response)
	}
}
