package weather

import (
	"errors"
)

// ErrorKind tags where in the pipeline an error originated.
type ErrorKind string

const (
	KindProvider    ErrorKind = "provider"
	KindValidation  ErrorKind = "validation"
	KindAggregation ErrorKind = "aggregation"
)

// Error is a pipeline error tagged with its kind.
type Error struct {
	Kind ErrorKind
	Err  error
}

// NewError tags err with kind. A nil err stays nil.
func NewError(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first tagged error in err's chain, or "" if untagged.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
