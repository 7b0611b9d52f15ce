package device

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when a closed device is used or closed again.
var ErrClosed = errors.New("device already closed")

// DeviceOpenError indicates that a device node could not be opened.
type DeviceOpenError struct {
	// Path is the device node
	Path string

	// Err is the underlying cause
	Err error
}

func (e *DeviceOpenError) Error() string {
	return fmt.Sprintf("open device %s: %v", e.Path, e.Err)
}

func (e *DeviceOpenError) Unwrap() error {
	return e.Err
}

// IsDeviceOpenError returns true if the error is a DeviceOpenError.
func IsDeviceOpenError(err error) bool {
	var e *DeviceOpenError
	return errors.As(err, &e)
}
