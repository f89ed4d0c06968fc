package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes let callers match failures from the press command pipeline
// without string-comparing wrap messages.
const (
	textCodeInvalidMessage   = "PRESS_COMMAND_INVALID_MESSAGE"
	textCodeCanceled         = "PRESS_COMMAND_CANCELED"
	textCodeDeadlineExceeded = "PRESS_COMMAND_DEADLINE_EXCEEDED"
	textCodeContextFailure   = "PRESS_COMMAND_CONTEXT_FAILURE"
	textCodeExecutionFailed  = "PRESS_COMMAND_FAILED"
)

// wrapValidationError tags message validation failures so sync callers can
// distinguish a bad payload from a failed run. Already-wrapped errors pass
// through untouched.
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "press command message failed validation").
		WithTextCode(textCodeInvalidMessage)
}

// wrapContextError distinguishes cancellation from deadline expiry, which for
// directory syncs separates an operator abort from a slow content checkout.
func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "press command canceled before completion").
			WithTextCode(textCodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "press command deadline exceeded").
			WithTextCode(textCodeDeadlineExceeded)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "press command context failure").
			WithTextCode(textCodeContextFailure)
	}
}

// wrapExecuteError tags failures raised by the wrapped command function.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "press command execution failed").
		WithTextCode(textCodeExecutionFailed)
}
