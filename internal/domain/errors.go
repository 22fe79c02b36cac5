package domain

import "errors"

// Domain errors.
var (
	ErrSourceNotFound   = errors.New("source directory not found")
	ErrInvalidInput     = errors.New("invalid locale file")
	ErrExecutionFailure = errors.New("locale script evaluation failed")
	ErrWriteFailure     = errors.New("cannot write target")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrSourceNotFound, "source_not_found"},
	{ErrInvalidInput, "invalid_input"},
	{ErrExecutionFailure, "execution_failure"},
	{ErrWriteFailure, "write_failure"},
}

// Code returns the stable code of the domain error wrapped by err,
// or "" when err does not wrap one.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
