package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-config-i18n/internal/validation"
)

// Text codes attached to wrapped command errors.
const (
	CodeValidationFailed = "COMMAND_VALIDATION_FAILED"
	CodeContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	CodeContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	CodeContextError     = "COMMAND_CONTEXT_ERROR"
	CodeExecuteFailed    = "COMMAND_EXECUTION_FAILED"
	CodeConfigSchema     = "CONFIG_SCHEMA_INVALID"
	CodeConfigData       = "CONFIG_DATA_INVALID"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(CodeValidationFailed)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(CodeContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(CodeContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(CodeContextError)
	}
}

// wrapExecuteError classifies handler failures. Config documents rejected by
// their schema surface as validation errors so callers can report them to
// the author.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrapContextError(err)
	case errors.Is(err, validation.ErrSchemaInvalid):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "config schema is invalid").
			WithTextCode(CodeConfigSchema)
	case errors.Is(err, validation.ErrSchemaValidation):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "config data does not match schema").
			WithTextCode(CodeConfigData)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
			WithTextCode(CodeExecuteFailed)
	}
}
