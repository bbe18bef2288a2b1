package dispatch

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Failure kinds. Every error returned by Dispatcher.Run is an *Error whose
// Kind is one of these, so errors.Is(err, ErrActionNotFound) works.
var (
	ErrActionNotFound   = errors.New("action not found")
	ErrMissingService   = errors.New("service not configured")
	ErrMissingMethod    = errors.New("method not configured")
	ErrMissingAccessKey = errors.New("access key missing")
	ErrMissingSecretKey = errors.New("secret key missing")
	ErrMissingEndpoint  = errors.New("endpoint not configured")
	ErrClientInit       = errors.New("client initialisation failed")
	ErrModuleLoad       = errors.New("module not found")
	ErrClassNotFound    = errors.New("class not found")
	ErrMethodInvocation = errors.New("method failed")
)

// Error is a terminating failure of one dispatch stage. Message is what the
// operator sees; Cause, when set, is appended to it.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	if e.Message == "" {
		return describe(e.Cause)
	}
	return e.Message + ": " + describe(e.Cause)
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func fail(kind error, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// describe renders API errors the way operators of the service are used
// to reading them; other errors are returned as is.
func describe(err error) string {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	op := "unknown"
	var opErr *smithy.OperationError
	if errors.As(err, &opErr) {
		op = opErr.Operation()
	}
	return fmt.Sprintf("An error occurred (%s) when calling the %s operation: %s", apiErr.ErrorCode(), op, apiErr.ErrorMessage())
}
