package session

import "time"

// Progress phases.
const (
	// PhaseCommand means a command is being issued
	PhaseCommand = "command"

	// PhaseWaiting means the session is waiting for the display to settle
	PhaseWaiting = "waiting"

	// PhaseComplete means every step finished successfully
	PhaseComplete = "complete"
)

// Progress contains information about the progress of a sequence.
// Passed to ProgressCallback before each step and once on completion.
type Progress struct {
	// Phase describes the current step:
	//   "command"  - issuing a command
	//   "waiting"  - settling delay
	//   "complete" - sequence finished successfully
	Phase string

	// Step is the 1-based index of the current step (TotalSteps when complete)
	Step int

	// TotalSteps is the number of steps in the sequence
	TotalSteps int

	// Description is a human-readable form of the current step
	Description string

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// ElapsedTime is the time elapsed since the sequence started
	ElapsedTime time.Duration
}

// ProgressCallback is called before each step of a sequence.
// Implementations should return quickly: the device is idle meanwhile.
//
// Example:
//
//	sess := session.New(dev,
//	    session.WithProgressCallback(func(p session.Progress) {
//	        fmt.Printf("[%s] %d/%d %s\n", p.Phase, p.Step, p.TotalSteps, p.Description)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the session.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	sess := session.New(dev, session.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
