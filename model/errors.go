package model

import (
	"fmt"
	"strings"
)

// PrecheckFailedError reports that the Source Validator rejected the
// input; it carries the joined diagnostic list.
type PrecheckFailedError struct {
	Diagnostics []string
}

func (e *PrecheckFailedError) Error() string {
	return fmt.Sprintf("precheck failed: %s", strings.Join(e.Diagnostics, "; "))
}

// UnknownSymbolError reports an identifier used without a prior
// declaration reaching it from any ancestor Root context.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol: %s", e.Symbol)
}

// UnsupportedTypeError reports a declared type outside {number, boolean}.
type UnsupportedTypeError struct {
	Symbol string
	Type   string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %q for %s", e.Type, e.Symbol)
}

// SolverError wraps a solver failure, timeout, or setup failure.
type SolverError struct {
	Cause error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver error: %v", e.Cause)
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}

// InternalError is a bug; it is exposed to callers as a generic message
// while retaining the real cause for logs.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	return "internal error"
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}
