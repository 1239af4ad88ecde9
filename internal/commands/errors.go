package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors returned by Handler.Execute.
const (
	CodeInvalidCommand = "CONTENTKIT_COMMAND_INVALID"
	CodeCancelled      = "CONTENTKIT_COMMAND_CANCELLED"
	CodeTimedOut       = "CONTENTKIT_COMMAND_TIMED_OUT"
	CodeStepFailed     = "CONTENTKIT_STEP_FAILED"
)

type errorClass struct {
	category goerrors.Category
	message  string
	code     string
}

var (
	invalidClass   = errorClass{goerrors.CategoryValidation, "invalid build command", CodeInvalidCommand}
	cancelledClass = errorClass{goerrors.CategoryCommand, "build step cancelled", CodeCancelled}
	timeoutClass   = errorClass{goerrors.CategoryCommand, "build step timed out", CodeTimedOut}
	failedClass    = errorClass{goerrors.CategoryCommand, "build step failed", CodeStepFailed}
)

// tag wraps err with class unless it already carries a go-errors category.
func tag(err error, class errorClass) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, class.category, class.message).WithTextCode(class.code)
}

func classify(err error) (TelemetryStatus, errorClass) {
	switch {
	case err == nil:
		return TelemetryStatusSuccess, errorClass{}
	case errors.Is(err, context.DeadlineExceeded):
		return TelemetryStatusContextError, timeoutClass
	case errors.Is(err, context.Canceled):
		return TelemetryStatusContextError, cancelledClass
	default:
		return TelemetryStatusFailed, failedClass
	}
}
