package commands

import "errors"

const (
	// exitNotPalindrome is used by check --exit-code when any input fails
	exitNotPalindrome = 1
	// exitInputError is used when no usable input could be read
	exitInputError = 2
)

// An error type that includes an exit code
type ExitError struct {
	Code int
	Err  error
}

// Implement the error interface
func (e *ExitError) Error() string {
	return e.Err.Error()
}
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitWithCode wraps err with an exit code; a nil err stays nil
func ExitWithCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{
		Code: code,
		Err:  err,
	}
}

type UsageError struct{ error }

func (e UsageError) Unwrap() error {
	return e.error
}

// ExitCode returns the process exit status for an error returned by Execute
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var usageErr UsageError
	if errors.As(err, &usageErr) {
		return exitInputError
	}
	return 1
}
