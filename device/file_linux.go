//go:build linux

package device

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/moffa90/go-lcd1602/ioctl"
)

// scratchSize is the size of the zeroed buffer every argument is passed
// through. The driver copies fixed-size records out of userspace (32 bytes
// for WriteText even when the text is shorter).
const scratchSize = 1024

// File is an open lcd1602 device node.
type File struct {
	path string
	fd   int

	mu     sync.Mutex
	closed bool
}

// Open opens the device node at path for exclusive use.
// A second Open of the same node fails until the first File is closed.
func Open(path string) (*File, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &DeviceOpenError{Path: path, Err: err}
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		_ = unix.Close(fd)
		return nil, &DeviceOpenError{Path: path, Err: fmt.Errorf("stat: %w", err)}
	}
	if st.Mode&unix.S_IFMT != unix.S_IFCHR {
		_ = unix.Close(fd)
		return nil, &DeviceOpenError{Path: path, Err: errors.New("not a character device")}
	}

	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = unix.Close(fd)
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, &DeviceOpenError{Path: path, Err: fmt.Errorf("device is in use: %w", err)}
		}
		return nil, &DeviceOpenError{Path: path, Err: fmt.Errorf("lock: %w", err)}
	}

	return &File{path: path, fd: fd}, nil
}

// Path returns the device node path.
func (f *File) Path() string {
	return f.path
}

// Ioctl issues a single ioctl(2) call with the given request code.
// A nil arg passes a zero argument. For read requests the driver's output
// is copied back into arg.
func (f *File) Ioctl(code ioctl.Code, arg []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if len(arg) > scratchSize {
		return fmt.Errorf("argument of %d bytes exceeds %d", len(arg), scratchSize)
	}

	var errno unix.Errno
	if arg == nil {
		_, _, errno = unix.Syscall(unix.SYS_IOCTL, uintptr(f.fd), uintptr(code), 0)
	} else {
		buf := make([]byte, scratchSize)
		copy(buf, arg)
		_, _, errno = unix.Syscall(unix.SYS_IOCTL, uintptr(f.fd), uintptr(code), uintptr(unsafe.Pointer(&buf[0])))
		runtime.KeepAlive(buf)
		if errno == 0 && code.Direction() == ioctl.Read {
			copy(arg, buf)
		}
	}
	if errno != 0 {
		return errno
	}

	return nil
}

// Close releases the lock and closes the device node.
// Closing an already closed File returns ErrClosed.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	f.closed = true

	if err := unix.Close(f.fd); err != nil {
		return fmt.Errorf("close %s: %w", f.path, err)
	}
	return nil
}
