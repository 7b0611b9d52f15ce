package protocol

import (
	"fmt"

	"github.com/moffa90/go-lcd1602/ioctl"
)

// Command identifies one of the operations the lcd1602 driver accepts.
type Command uint8

// Entry binds a Command to its ioctl request code.
type Entry struct {
	// Command is the logical command
	Command Command

	// Direction is the transfer direction encoded into Code
	Direction ioctl.Direction

	// Size is the argument size encoded into Code
	Size int

	// Code is the packed request code sent to the driver
	Code ioctl.Code
}

// catalog is built once at package initialization and never modified.
// Index i holds the entry for Command(i).
var catalog = [...]Entry{
	newEntry(CmdClearScreen, ioctl.None, 0),
	newEntry(CmdBacklightOn, ioctl.None, 0),
	newEntry(CmdBacklightOff, ioctl.None, 0),
	newEntry(CmdWriteText, ioctl.Write, IntSize),
	newEntry(CmdReadText, ioctl.Read, ReadResultSize),
	newEntry(CmdShift, ioctl.Write, IntSize),
	newEntry(CmdCursorReturn, ioctl.None, 0),
}

func newEntry(cmd Command, dir ioctl.Direction, size int) Entry {
	return Entry{
		Command:   cmd,
		Direction: dir,
		Size:      size,
		Code:      ioctl.MustEncode(dir, Magic, int(cmd), size),
	}
}

// Lookup returns the catalog entry for cmd.
func Lookup(cmd Command) (Entry, bool) {
	if int(cmd) >= len(catalog) {
		return Entry{}, false
	}
	return catalog[cmd], true
}

// Catalog returns a copy of the full command table in command-number order.
func Catalog() []Entry {
	entries := make([]Entry, len(catalog))
	copy(entries, catalog[:])
	return entries
}

// CodeOf returns the request code for cmd.
func CodeOf(cmd Command) (ioctl.Code, error) {
	entry, ok := Lookup(cmd)
	if !ok {
		return 0, fmt.Errorf("unknown command %d", uint8(cmd))
	}
	return entry.Code, nil
}

// CommandFor maps a request code back to its command.
// Codes with a foreign magic, direction or size are not recognized.
func CommandFor(code ioctl.Code) (Command, bool) {
	for _, entry := range catalog {
		if entry.Code == code {
			return entry.Command, true
		}
	}
	return 0, false
}

// Valid reports whether c is part of the catalog.
func (c Command) Valid() bool {
	return int(c) < len(catalog)
}

// String returns a human-readable command name.
func (c Command) String() string {
	switch c {
	case CmdClearScreen:
		return "clear screen"
	case CmdBacklightOn:
		return "backlight on"
	case CmdBacklightOff:
		return "backlight off"
	case CmdWriteText:
		return "write text"
	case CmdReadText:
		return "read text"
	case CmdShift:
		return "shift"
	case CmdCursorReturn:
		return "cursor return"
	default:
		return fmt.Sprintf("unknown command %d", uint8(c))
	}
}
