package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct {
	Value string
	fail  bool
}

func (testMessage) Type() string { return "press.test.message" }

func (m testMessage) Validate() error {
	if m.fail {
		return errors.New("invalid message")
	}
	return nil
}

func TestHandlerExecutesCommand(t *testing.T) {
	var got string
	handler := NewHandler(func(_ context.Context, msg testMessage) error {
		got = msg.Value
		return nil
	})

	if err := handler.Execute(context.Background(), testMessage{Value: "hello"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != "hello" {
		t.Fatalf("command function not invoked, got %q", got)
	}
}

func TestHandlerValidationFailure(t *testing.T) {
	handler := NewHandler(func(_ context.Context, _ testMessage) error {
		t.Fatal("exec must not run for invalid messages")
		return nil
	})

	err := handler.Execute(context.Background(), testMessage{fail: true})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	boom := errors.New("boom")
	handler := NewHandler(func(_ context.Context, _ testMessage) error {
		return boom
	})

	err := handler.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("wrapped error must preserve cause, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerTimeout(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, _ testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := handler.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestHandlerTelemetryCallback(t *testing.T) {
	var status TelemetryStatus
	handler := NewHandler(func(_ context.Context, _ testMessage) error {
		return nil
	}, WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
		status = info.Status
	}))

	if err := handler.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if status != TelemetryStatusSuccess {
		t.Fatalf("expected success telemetry, got %q", status)
	}
}

func TestHandlerNilContext(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, _ testMessage) error {
		if ctx == nil {
			t.Fatal("handler must supply a context")
		}
		return nil
	})

	//lint:ignore SA1012 exercising the nil-context guard
	if err := handler.Execute(nil, testMessage{}); err != nil { //nolint:staticcheck
		t.Fatalf("execute: %v", err)
	}
}
