// Package failure is the error taxonomy shared by every bounded context.
//
// Domain and validation failures are final for the caller. Infrastructure
// failures come from ports and may be retried with backoff.
package failure

import (
	"context"
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindDomain         Kind = "domain"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindInfrastructure Kind = "infrastructure"
)

// Module tags the bounded context that raised a failure.
type Module string

const (
	ModuleCart         Module = "cart"
	ModuleOrder        Module = "order"
	ModuleInventory    Module = "inventory"
	ModuleIdentity     Module = "identity"
	ModulePromotion    Module = "promotion"
	ModuleLogistics    Module = "logistics"
	ModuleReport       Module = "report"
	ModuleChat         Module = "chat"
	ModuleNotification Module = "notification"
	ModuleProduct      Module = "product"
)

// Error is a module-scoped failure. The message is fixed at construction.
type Error struct {
	Kind   Kind
	Module Module
	Cause  error

	msg string
}

// New builds a failure. An empty message is replaced so every failure carries one.
func New(kind Kind, module Module, msg string) *Error {
	if msg == "" {
		msg = fmt.Sprintf("unspecified %s %s failure", module, kind)
	}
	return &Error{Kind: kind, Module: module, msg: msg}
}

func Validation(module Module, msg string) *Error { return New(KindValidation, module, msg) }
func Domain(module Module, msg string) *Error     { return New(KindDomain, module, msg) }
func NotFound(module Module, msg string) *Error   { return New(KindNotFound, module, msg) }
func Conflict(module Module, msg string) *Error   { return New(KindConflict, module, msg) }

// Infrastructure wraps a port or adapter error.
func Infrastructure(module Module, msg string, cause error) *Error {
	e := New(KindInfrastructure, module, msg)
	e.Cause = cause
	return e
}

// Message returns the human-readable message without module prefix or cause.
func (e *Error) Message() string { return e.msg }

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Module, e.msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Module, e.msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports value equality on kind, module and message, so sentinel
// failures match even after being wrapped with a cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Module == t.Module && e.msg == t.msg
}

// WithCause returns a copy of e carrying cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// As extracts the outermost failure from an error chain.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// KindOf returns the failure kind of err, or "" when err is not a failure.
func KindOf(err error) Kind {
	if fe, ok := As(err); ok {
		return fe.Kind
	}
	return ""
}

// ModuleOf returns the module that raised err, or "" when unknown.
func ModuleOf(err error) Module {
	if fe, ok := As(err); ok {
		return fe.Module
	}
	return ""
}

// Retryable reports whether a caller may retry err with backoff.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return KindOf(err) == KindInfrastructure
}

// FromPort translates an error returned by an outbound port. Typed failures
// and caller cancellation pass through; everything else becomes an
// infrastructure failure for op.
func FromPort(module Module, op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return Infrastructure(module, op+" failed", err)
}
