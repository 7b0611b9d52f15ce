//go:build !linux

package device

import (
	"errors"

	"github.com/moffa90/go-lcd1602/ioctl"
)

// File is an open lcd1602 device node. It cannot be opened on this platform.
type File struct {
	path string
}

// Open always fails: ioctl-driven character devices are Linux only.
func Open(path string) (*File, error) {
	return nil, &DeviceOpenError{Path: path, Err: errors.ErrUnsupported}
}

// Path returns the device node path.
func (f *File) Path() string {
	return f.path
}

// Ioctl is not supported on this platform.
func (f *File) Ioctl(code ioctl.Code, arg []byte) error {
	return errors.ErrUnsupported
}

// Close is not supported on this platform.
func (f *File) Close() error {
	return errors.ErrUnsupported
}
