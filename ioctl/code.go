package ioctl

import "fmt"

// Code is a packed ioctl request code.
type Code uint32

// Fields holds the unpacked fields of a Code.
type Fields struct {
	Direction Direction
	Type      uint8
	Number    uint8
	Size      uint16
}

// Encode packs a request code from its fields.
// The arguments are plain ints so that out-of-range values can be reported
// instead of silently wrapping.
//
// Example:
//
//	code, err := ioctl.Encode(ioctl.None, 0x5A, 0, 0) // 0x5A00
func Encode(dir Direction, typ, nr, size int) (Code, error) {
	if dir != None && dir != Write && dir != Read {
		return 0, &InvalidCommandParametersError{Field: "direction", Value: int(dir), Max: int(Read)}
	}
	if typ < 0 || typ > MaxType {
		return 0, &InvalidCommandParametersError{Field: "type", Value: typ, Max: MaxType}
	}
	if nr < 0 || nr > MaxNumber {
		return 0, &InvalidCommandParametersError{Field: "number", Value: nr, Max: MaxNumber}
	}
	if size < 0 || size > MaxSize {
		return 0, &InvalidCommandParametersError{Field: "size", Value: size, Max: MaxSize}
	}

	return Code(uint32(dir)<<DirectionShift |
		uint32(size)<<SizeShift |
		uint32(typ)<<TypeShift |
		uint32(nr)<<NumberShift), nil
}

// MustEncode is like Encode but panics if the fields are invalid.
// It is meant for package-level command tables built from constants.
func MustEncode(dir Direction, typ, nr, size int) Code {
	code, err := Encode(dir, typ, nr, size)
	if err != nil {
		panic(err)
	}
	return code
}

// IO returns the code of a request without an argument (kernel _IO).
func IO(typ, nr int) Code {
	return MustEncode(None, typ, nr, 0)
}

// IOW returns the code of a request passing size bytes to the driver (kernel _IOW).
func IOW(typ, nr, size int) Code {
	return MustEncode(Write, typ, nr, size)
}

// IOR returns the code of a request reading size bytes from the driver (kernel _IOR).
func IOR(typ, nr, size int) Code {
	return MustEncode(Read, typ, nr, size)
}

// Decode unpacks a request code into its fields.
func Decode(c Code) Fields {
	return Fields{
		Direction: Direction((uint32(c) >> DirectionShift) & (1<<DirectionBits - 1)),
		Type:      uint8((uint32(c) >> TypeShift) & MaxType),
		Number:    uint8((uint32(c) >> NumberShift) & MaxNumber),
		Size:      uint16((uint32(c) >> SizeShift) & MaxSize),
	}
}

// Direction returns the direction field of the code.
func (c Code) Direction() Direction { return Decode(c).Direction }

// Type returns the type (magic) field of the code.
func (c Code) Type() uint8 { return Decode(c).Type }

// Number returns the command number field of the code.
func (c Code) Number() uint8 { return Decode(c).Number }

// Size returns the argument size field of the code.
func (c Code) Size() uint16 { return Decode(c).Size }

func (c Code) String() string {
	f := Decode(c)
	return fmt.Sprintf("0x%08X(dir=%s type=0x%02X nr=%d size=%d)",
		uint32(c), f.Direction, f.Type, f.Number, f.Size)
}
