package sequence

import (
	"fmt"
	"time"

	"github.com/moffa90/go-lcd1602/protocol"
)

// Kind distinguishes command steps from wait steps.
type Kind int

const (
	// KindCommand issues one command against the device
	KindCommand Kind = iota

	// KindWait pauses for the display to settle
	KindWait
)

// Step is one entry of a sequence.
type Step struct {
	// Kind selects between a command and a wait
	Kind Kind

	// Command is the command to issue (KindCommand only)
	Command protocol.Command

	// Text is the WriteText payload
	Text []byte

	// Shift is the Shift payload
	Shift protocol.ShiftParams

	// Delay is the pause of a wait step; zero means the session's settle delay
	Delay time.Duration
}

// Cmd returns a step issuing a command without payload.
func Cmd(cmd protocol.Command) Step {
	return Step{Kind: KindCommand, Command: cmd}
}

// WriteText returns a step writing text to the display.
func WriteText(text string) Step {
	return Step{Kind: KindCommand, Command: protocol.CmdWriteText, Text: []byte(text)}
}

// Shift returns a step shifting the display (shiftCursor=true in driver
// terms) or moving the cursor, to the right when rightLeft is true.
func Shift(shiftCursor, rightLeft bool) Step {
	return Step{
		Kind:    KindCommand,
		Command: protocol.CmdShift,
		Shift:   protocol.ShiftParams{ShiftCursor: shiftCursor, RightLeft: rightLeft},
	}
}

// Wait returns a step pausing for the session's settle delay.
func Wait() Step {
	return Step{Kind: KindWait}
}

// WaitFor returns a step pausing for d.
func WaitFor(d time.Duration) Step {
	return Step{Kind: KindWait, Delay: d}
}

// Canonical returns the demo sequence shipped with the driver:
// write two greetings around a backlight blink, shift the display right
// twice, read the buffer back, move the cursor right twice and return home.
func Canonical() []Step {
	return []Step{
		Cmd(protocol.CmdClearScreen),
		WriteText("hello from Python"),
		Wait(),
		Cmd(protocol.CmdBacklightOff),
		Wait(),
		Cmd(protocol.CmdBacklightOn),
		Wait(),
		WriteText("hello from Python once more"),
		Wait(),
		Shift(true, true),
		Wait(),
		Shift(true, true),
		Wait(),
		Cmd(protocol.CmdReadText),
		Shift(false, true),
		Wait(),
		Shift(false, true),
		Wait(),
		Cmd(protocol.CmdCursorReturn),
		Wait(),
	}
}

// Commands returns the commands of steps in order, skipping waits.
func Commands(steps []Step) []protocol.Command {
	cmds := make([]protocol.Command, 0, len(steps))
	for _, s := range steps {
		if s.Kind == KindCommand {
			cmds = append(cmds, s.Command)
		}
	}
	return cmds
}

func (s Step) String() string {
	if s.Kind == KindWait {
		if s.Delay == 0 {
			return "wait"
		}
		return fmt.Sprintf("wait %s", s.Delay)
	}

	switch s.Command {
	case protocol.CmdWriteText:
		return fmt.Sprintf("write %q", s.Text)
	case protocol.CmdShift:
		return fmt.Sprintf("shift sc=%d rl=%d", b2i(s.Shift.ShiftCursor), b2i(s.Shift.RightLeft))
	default:
		return s.Command.String()
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
