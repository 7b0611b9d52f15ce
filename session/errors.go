package session

import (
	"fmt"

	"github.com/moffa90/go-lcd1602/ioctl"
	"github.com/moffa90/go-lcd1602/protocol"
	"github.com/moffa90/go-lcd1602/sequence"
)

// DeviceCallError indicates that the device rejected or failed a command.
type DeviceCallError struct {
	// Command is the command that failed
	Command protocol.Command

	// Code is the request code that was issued
	Code ioctl.Code

	// Err is the error returned by the device
	Err error
}

func (e *DeviceCallError) Error() string {
	return fmt.Sprintf("%s failed: device call 0x%08X: %v", e.Command, uint32(e.Code), e.Err)
}

func (e *DeviceCallError) Unwrap() error {
	return e.Err
}

// StepError reports the step of a sequence that aborted it.
// Steps before Index were executed and are not rolled back.
type StepError struct {
	// Index is the 0-based position of the step in the sequence
	Index int

	// Step is the failed step
	Step sequence.Step

	// Err is the cause
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
