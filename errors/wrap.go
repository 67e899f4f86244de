package errors

import (
	stderrors "errors"
)

// Re-exports so callers need only this package.

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

func Unwrap(err error) error { return stderrors.Unwrap(err) }

// Join wraps errs, dropping nils; KindOf reports the first kinded error.
func Join(errs ...error) error { return stderrors.Join(errs...) }
