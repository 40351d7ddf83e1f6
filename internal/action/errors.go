package action

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"studiofin-backend/internal/remote"
	"studiofin-backend/internal/schema"
)

// Kind is the closed set of guarded-action failure classes. Every error
// reaching the pipeline boundary is normalized into exactly one of these.
type Kind string

const (
	KindNone          Kind = ""
	KindAuthorization Kind = "authorization"
	KindValidation    Kind = "validation"
	KindRemote        Kind = "remote"
	KindRateLimit     Kind = "rate_limit"
	KindUnexpected    Kind = "unexpected"
)

// ErrUnauthorized is returned by the guard when no authenticated identity is
// available. Fatal to the call; the caller must re-authenticate.
var ErrUnauthorized = errors.New("authentication required")

const (
	unauthorizedMessage = "authentication required"
	genericMessage      = "something went wrong, please try again"
)

// Error is a classified action failure. Fields is populated only for
// validation failures, RetryAfter only for rate limiting.
type Error struct {
	Kind       Kind
	Message    string
	Fields     map[string][]string
	RetryAfter time.Duration
	cause      error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Result converts the classified error into the uniform action result.
func (e *Error) Result() Result {
	if e.Kind == KindValidation {
		return Result{Success: false, Errors: e.Fields, Kind: e.Kind}
	}
	return Result{Success: false, Error: e.Message, Kind: e.Kind}
}

// Normalize maps an arbitrary error onto the closed taxonomy. It is the only
// place raw errors are classified; nothing downstream re-throws unknown
// values.
func Normalize(err error) *Error {
	if err == nil {
		return &Error{Kind: KindUnexpected, Message: genericMessage}
	}

	var fields schema.Errors
	if errors.As(err, &fields) {
		return &Error{Kind: KindValidation, Fields: fields, Message: fields.Error(), cause: err}
	}

	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		if apiErr.RateLimited() {
			minutes := int(math.Ceil(apiErr.RetryAfter.Minutes()))
			if minutes < 1 {
				minutes = 1
			}
			return &Error{
				Kind:       KindRateLimit,
				Message:    fmt.Sprintf("too many attempts, wait %d minutes and try again", minutes),
				RetryAfter: apiErr.RetryAfter,
				cause:      err,
			}
		}
		return &Error{Kind: KindRemote, Message: apiErr.Message, cause: err}
	}

	if errors.Is(err, ErrUnauthorized) {
		return &Error{Kind: KindAuthorization, Message: unauthorizedMessage, cause: err}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindUnexpected, Message: genericMessage, cause: err}
	}

	return &Error{Kind: KindUnexpected, Message: genericMessage, cause: err}
}
