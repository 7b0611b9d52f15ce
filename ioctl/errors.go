package ioctl

import (
	"errors"
	"fmt"
)

// InvalidCommandParametersError is returned by Encode when a field does not
// fit the request-code layout.
type InvalidCommandParametersError struct {
	// Field is the name of the offending field
	Field string

	// Value is the rejected value
	Value int

	// Max is the largest accepted value
	Max int
}

func (e *InvalidCommandParametersError) Error() string {
	return fmt.Sprintf("invalid command parameters: %s %d out of range 0-%d", e.Field, e.Value, e.Max)
}

// IsInvalidCommandParameters returns true if err is or wraps an InvalidCommandParametersError.
func IsInvalidCommandParameters(err error) bool {
	var e *InvalidCommandParametersError
	return errors.As(err, &e)
}
