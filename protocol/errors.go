package protocol

import (
	"errors"
	"fmt"
)

// PayloadTooLargeError is returned when a WriteText payload does not fit the
// driver's text buffer. Payloads are rejected, never truncated.
type PayloadTooLargeError struct {
	// Size is the rejected payload size in bytes
	Size int

	// Max is the largest accepted size
	Max int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload too large: %d bytes, maximum is %d", e.Size, e.Max)
}

// IsPayloadTooLarge returns true if err is or wraps a PayloadTooLargeError.
func IsPayloadTooLarge(err error) bool {
	var e *PayloadTooLargeError
	return errors.As(err, &e)
}

// DecodeError is returned when a record received from (or meant for) the
// driver does not have the expected layout or content.
type DecodeError struct {
	// Record names the record being decoded
	Record string

	// Reason describes what was wrong
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Record, e.Reason)
}

// IsDecodeError returns true if err is or wraps a DecodeError.
func IsDecodeError(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}
