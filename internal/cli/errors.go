package cli

import "fmt"

// Exit codes returned to the shell. Findings are naming problems in the
// user's manifests; failures are everything that kept a command from
// completing.
const (
	ExitOK       = 0
	ExitFindings = 1
	ExitFailure  = 2
)

// ExitError pairs an error with the process exit code it should produce.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("command failed with exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WrapExit attaches an exit code to err; nil stays nil.
func WrapExit(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// findingsError signals naming problems that were already rendered to
// the user, so main prints nothing further.
type findingsError struct {
	count int
}

func (e *findingsError) Error() string {
	return fmt.Sprintf("found %s", plural(e.count, "naming problem"))
}

func (e *findingsError) AlreadyPrinted() bool { return true }
