package main

import "fmt"

const (
	exitCodeFailure = 1
	// exitCodePartial reports a refresh in which some resources failed.
	exitCodePartial  = 2
	exitCodeCanceled = 130
)

// exitError carries a specific process exit code. A silent exitError has
// already been reported by the command.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e == nil {
		return ""
	}
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit %d", e.code)
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

func (e *exitError) cause(fallback error) error {
	if e != nil && e.err != nil {
		return e.err
	}
	return fallback
}
