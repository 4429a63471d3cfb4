package odoo

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a remote call did not succeed.
type FailureKind int

const (
	// FailureTransport covers network errors, non-2xx statuses and undecodable bodies.
	FailureTransport FailureKind = iota + 1
	// FailureServer means the backend answered with an error object.
	FailureServer
	// FailureInvalidCredentials means authenticate answered without a user id.
	FailureInvalidCredentials
	// FailureUnauthenticated means the call needs a logged-in user and none is cached.
	FailureUnauthenticated
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureServer:
		return "server"
	case FailureInvalidCredentials:
		return "invalid_credentials"
	case FailureUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Sentinels for errors.Is checks against a *Failure.
var (
	ErrTransport          = errors.New("odoo: transport failure")
	ErrServer             = errors.New("odoo: server error")
	ErrInvalidCredentials = errors.New("odoo: invalid credentials")
	ErrUnauthenticated    = errors.New("odoo: user is not logged in")
)

// Failure is the failure half of a Result.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error // underlying cause, if any
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Is matches the kind sentinels so callers can write errors.Is(err, odoo.ErrTransport).
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrTransport:
		return f.Kind == FailureTransport
	case ErrServer:
		return f.Kind == FailureServer
	case ErrInvalidCredentials:
		return f.Kind == FailureInvalidCredentials
	case ErrUnauthenticated:
		return f.Kind == FailureUnauthenticated
	}
	return false
}

// Result is the tagged success/failure value returned by every remote operation.
// Exactly one of value or failure is meaningful.
type Result[T any] struct {
	value   T
	failure *Failure
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail wraps a failure. A nil failure is treated as a transport failure so the
// result is never accidentally successful.
func Fail[T any](f *Failure) Result[T] {
	if f == nil {
		f = &Failure{Kind: FailureTransport, Message: "unknown failure"}
	}
	return Result[T]{failure: f}
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool { return r.failure == nil }

// Value returns the success value, or the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Failure returns the failure, or nil on success.
func (r Result[T]) Failure() *Failure { return r.failure }

// Unwrap converts the result into Go's (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	if r.failure != nil {
		var zero T
		return zero, r.failure
	}
	return r.value, nil
}

func transportFailure(err error) *Failure {
	return &Failure{Kind: FailureTransport, Message: err.Error(), Err: err}
}
