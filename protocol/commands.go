package protocol

import (
	"github.com/moffa90/go-lcd1602/ioctl"
)

// Request is a single ioctl call ready to be issued against the device.
type Request struct {
	// Command is the logical command
	Command Command

	// Code is the request code from the catalog
	Code ioctl.Code

	// Arg is the argument buffer, nil for commands without one.
	// For ReadText it is a zeroed ReadResultSize buffer the driver fills.
	Arg []byte
}

func newRequest(cmd Command, arg []byte) *Request {
	return &Request{
		Command: cmd,
		Code:    catalog[cmd].Code,
		Arg:     arg,
	}
}

// BuildClearScreenCmd constructs a Clear Screen request.
// The driver resets its text buffer and cursor position.
func BuildClearScreenCmd() (*Request, error) {
	return newRequest(CmdClearScreen, nil), nil
}

// BuildBacklightOnCmd constructs a Backlight On request.
func BuildBacklightOnCmd() (*Request, error) {
	return newRequest(CmdBacklightOn, nil), nil
}

// BuildBacklightOffCmd constructs a Backlight Off request.
func BuildBacklightOffCmd() (*Request, error) {
	return newRequest(CmdBacklightOff, nil), nil
}

// BuildWriteTextCmd constructs a Write Text request.
// The text is appended to what the display already shows; a newline moves
// to the second row.
//
// Argument format (up to TextBufferSize bytes, no padding):
//
//	[TEXT...]
func BuildWriteTextCmd(text []byte) (*Request, error) {
	arg, err := EncodeWriteText(text)
	if err != nil {
		return nil, err
	}
	return newRequest(CmdWriteText, arg), nil
}

// BuildReadTextCmd constructs a Read Text request.
// The returned Arg is a zeroed buffer that the driver fills with an
// lcd_string_data record; decode it with UnmarshalReadResult.
func BuildReadTextCmd() (*Request, error) {
	return newRequest(CmdReadText, make([]byte, ReadResultSize)), nil
}

// BuildShiftCmd constructs a Shift request.
//
// Argument format (ShiftParamsSize bytes):
//
//	[SC][RL]
func BuildShiftCmd(params ShiftParams) (*Request, error) {
	arg, err := params.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return newRequest(CmdShift, arg), nil
}

// BuildCursorReturnCmd constructs a Cursor Return request.
func BuildCursorReturnCmd() (*Request, error) {
	return newRequest(CmdCursorReturn, nil), nil
}
