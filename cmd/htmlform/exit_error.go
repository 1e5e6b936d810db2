package main

import "fmt"

// ExitError carries a process exit code out of a command without calling
// os.Exit inside RunE. A nil Err exits quietly.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// errInvalid reports a form that failed validation after the report was
// printed.
var errInvalid = &ExitError{Code: 1}
