package protocol

import "fmt"

// ShiftParams is the argument of the Shift command.
// It mirrors the driver's packed lcd_shift_data record:
//
//	[SC(1)][RL(1)]
//
// The driver reads SC=1 as a whole-display shift and SC=0 as a cursor move.
type ShiftParams struct {
	// ShiftCursor is the SC flag
	ShiftCursor bool

	// RightLeft selects the direction: true moves right
	RightLeft bool
}

// ReadResult is the argument of the ReadText command, filled by the driver.
// It mirrors the driver's packed lcd_string_data record:
//
//	[DATA(33)][LENGTH(8, little-endian)]
type ReadResult struct {
	// Data is the text buffer, TextBufferSize bytes plus a terminator
	Data [ReadDataSize]byte

	// Length is the number of valid bytes in Data
	Length uint64
}

// DecodeMode selects how non-ASCII bytes in read-back text are handled.
type DecodeMode int

const (
	// DecodeStrict rejects any byte above 0x7F with a DecodeError
	DecodeStrict DecodeMode = iota

	// DecodePermissive passes raw bytes through unchanged
	DecodePermissive
)

func (m DecodeMode) String() string {
	switch m {
	case DecodeStrict:
		return "strict"
	case DecodePermissive:
		return "permissive"
	default:
		return "unknown"
	}
}

// ParseDecodeMode parses "strict" or "permissive".
func ParseDecodeMode(s string) (DecodeMode, error) {
	switch s {
	case "strict", "":
		return DecodeStrict, nil
	case "permissive":
		return DecodePermissive, nil
	default:
		return DecodeStrict, fmt.Errorf("unknown decode mode %q", s)
	}
}
