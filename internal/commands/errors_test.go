package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestWrapValidationError(t *testing.T) {
	cause := errors.New("title required")

	err := wrapValidationError(cause)
	if err == nil {
		t.Fatal("expected wrapped error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped error must preserve cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "press command") {
		t.Fatalf("wrap message must identify the press command pipeline, got %q", err.Error())
	}

	if again := wrapValidationError(err); again != err {
		t.Fatalf("already-wrapped error must pass through, got %v", again)
	}
}

func TestWrapContextErrorDistinguishesCancellation(t *testing.T) {
	canceled := wrapContextError(context.Canceled)
	if !errors.Is(canceled, context.Canceled) {
		t.Fatalf("expected canceled cause, got %v", canceled)
	}
	if !goerrors.IsCategory(canceled, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", canceled)
	}

	expired := wrapContextError(context.DeadlineExceeded)
	if !errors.Is(expired, context.DeadlineExceeded) {
		t.Fatalf("expected deadline cause, got %v", expired)
	}
	if canceled.Error() == expired.Error() {
		t.Fatal("cancellation and deadline expiry must produce distinct messages")
	}
}

func TestWrapExecuteError(t *testing.T) {
	cause := errors.New("sync failed")

	err := wrapExecuteError(cause)
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped error must preserve cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "press command") {
		t.Fatalf("wrap message must identify the press command pipeline, got %q", err.Error())
	}

	if err := wrapExecuteError(nil); err != nil {
		t.Fatalf("nil must stay nil, got %v", err)
	}
}
