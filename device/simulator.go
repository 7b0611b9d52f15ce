package device

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/moffa90/go-lcd1602/ioctl"
	"github.com/moffa90/go-lcd1602/protocol"
)

// Call records one ioctl received by a Simulator.
type Call struct {
	Command protocol.Command
	Code    ioctl.Code
	Arg     []byte
	Known   bool
}

// Simulator mimics the lcd1602 driver in memory.
//
// Like the driver it keeps a 32-byte text buffer that WriteText appends to
// until full, a row index advanced by newlines and row overflow, and a
// backlight that is on after probe. Unknown codes are accepted and ignored.
//
// Simulator is safe for concurrent use.
type Simulator struct {
	mu sync.Mutex

	data          []byte
	row           int
	backlight     bool
	shifts        []protocol.ShiftParams
	cursorReturns int
	calls         []Call
	closed        bool
}

// NewSimulator returns a Simulator in the driver's post-probe state.
func NewSimulator() *Simulator {
	return &Simulator{
		data:      make([]byte, 0, protocol.TextBufferSize),
		backlight: true,
	}
}

// Ioctl handles a request the way the driver's ioctl handler does.
func (s *Simulator) Ioctl(code ioctl.Code, arg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	cmd, known := protocol.CommandFor(code)
	s.calls = append(s.calls, Call{
		Command: cmd,
		Code:    code,
		Arg:     append([]byte(nil), arg...),
		Known:   known,
	})
	if !known {
		return nil
	}

	switch cmd {
	case protocol.CmdClearScreen:
		s.data = s.data[:0]
		s.row = 0
	case protocol.CmdBacklightOn:
		s.backlight = true
	case protocol.CmdBacklightOff:
		s.backlight = false
	case protocol.CmdWriteText:
		s.write(arg)
	case protocol.CmdReadText:
		return s.read(arg)
	case protocol.CmdShift:
		return s.shift(arg)
	case protocol.CmdCursorReturn:
		s.cursorReturns++
	}

	return nil
}

// write appends text up to the first NUL until the buffer is full.
func (s *Simulator) write(arg []byte) {
	if i := bytes.IndexByte(arg, 0); i >= 0 {
		arg = arg[:i]
	}
	for _, b := range arg {
		if len(s.data) >= protocol.TextBufferSize {
			return
		}
		if b == '\n' {
			s.row++
		} else if s.row == 0 && len(s.data) > protocol.RowLength-1 {
			s.row++
		}
		s.data = append(s.data, b)
	}
}

func (s *Simulator) read(arg []byte) error {
	if len(arg) != protocol.ReadResultSize {
		return fmt.Errorf("read text: argument is %d bytes, expected %d", len(arg), protocol.ReadResultSize)
	}
	clear(arg)
	copy(arg, s.data)
	binary.LittleEndian.PutUint64(arg[protocol.ReadDataSize:], uint64(len(s.data)))
	return nil
}

func (s *Simulator) shift(arg []byte) error {
	if len(arg) < protocol.ShiftParamsSize {
		return fmt.Errorf("shift: argument is %d bytes, expected %d", len(arg), protocol.ShiftParamsSize)
	}
	s.shifts = append(s.shifts, protocol.ShiftParams{
		ShiftCursor: arg[0] != 0,
		RightLeft:   arg[1] != 0,
	})
	return nil
}

// Close marks the simulator closed. Closing twice returns ErrClosed.
func (s *Simulator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return nil
}

// Text returns the current contents of the text buffer.
func (s *Simulator) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data)
}

// Row returns the row the next character is written to.
func (s *Simulator) Row() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.row
}

// Backlight reports whether the backlight is on.
func (s *Simulator) Backlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backlight
}

// Shifts returns the shift requests received so far.
func (s *Simulator) Shifts() []protocol.ShiftParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]protocol.ShiftParams(nil), s.shifts...)
}

// CursorReturns returns how many cursor-return requests were received.
func (s *Simulator) CursorReturns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorReturns
}

// Calls returns every request received so far, in order.
func (s *Simulator) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Closed reports whether Close has been called.
func (s *Simulator) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
