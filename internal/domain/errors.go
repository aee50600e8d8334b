package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrEmptyName       = errors.New("empty card name")
	ErrCardNotFound    = errors.New("card not found")
	ErrLookupService   = errors.New("lookup service error")
	ErrLookupTransport = errors.New("lookup transport error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindExecution     ErrorKind = "execution"
	KindIO            ErrorKind = "io"
	KindCanceled      ErrorKind = "canceled"

	KindMalformedLine   ErrorKind = "empty_or_malformed_line"
	KindLookupNotFound  ErrorKind = "lookup_not_found"
	KindLookupTransport ErrorKind = "lookup_transport"
	KindLookupService   ErrorKind = "lookup_service"
)

// IsLookupKind reports whether k describes a failure to resolve a single entry.
func (k ErrorKind) IsLookupKind() bool {
	switch k {
	case KindMalformedLine, KindLookupNotFound, KindLookupTransport, KindLookupService:
		return true
	}
	return false
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost OpError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}
