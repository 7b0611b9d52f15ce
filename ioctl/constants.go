package ioctl

// Field widths of the request-code layout, in bits.
const (
	// NumberBits is the width of the command number field
	NumberBits = 8

	// TypeBits is the width of the type (magic) field
	TypeBits = 8

	// SizeBits is the width of the argument size field
	SizeBits = 14

	// DirectionBits is the width of the direction field
	DirectionBits = 2
)

// Field offsets of the request-code layout, counted from the least significant bit.
const (
	NumberShift    = 0
	TypeShift      = NumberShift + NumberBits
	SizeShift      = TypeShift + TypeBits
	DirectionShift = SizeShift + SizeBits
)

// Largest value each field can hold.
const (
	MaxNumber = 1<<NumberBits - 1
	MaxType   = 1<<TypeBits - 1
	MaxSize   = 1<<SizeBits - 1
)

// Direction is the data transfer direction of a request, as seen from userspace.
type Direction uint8

// Transfer directions.
const (
	// None means the request carries no argument
	None Direction = 0

	// Write means userspace passes an argument to the driver
	Write Direction = 1

	// Read means the driver fills an argument supplied by userspace
	Read Direction = 2
)

func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Write:
		return "write"
	case Read:
		return "read"
	default:
		return "invalid"
	}
}
