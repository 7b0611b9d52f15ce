package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-lcd1602/device"
	"github.com/moffa90/go-lcd1602/ioctl"
	"github.com/moffa90/go-lcd1602/protocol"
	"github.com/moffa90/go-lcd1602/sequence"
)

// Device is the device-control primitive a Session issues commands through.
// device.File and device.Simulator implement it.
type Device interface {
	// Ioctl issues one blocking request. For read requests the driver's
	// output is copied into arg.
	Ioctl(code ioctl.Code, arg []byte) error

	// Close releases the device.
	Close() error
}

// Session issues lcd1602 commands against an open device.
//
// Session is not safe for concurrent use: commands are strictly sequential.
type Session struct {
	device Device
	config Config
}

// Report summarizes an executed sequence.
type Report struct {
	// SessionID identifies the session
	SessionID uuid.UUID

	// Executed is the number of steps that completed
	Executed int

	// Reads holds the decoded text of every ReadText step, in order
	Reads []string

	// Elapsed is the wall-clock time spent executing
	Elapsed time.Duration
}

// New creates a new Session over an already open device.
// The caller keeps ownership of the device and must close it.
//
// Example:
//
//	sim := device.NewSimulator()
//	sess := session.New(sim, session.WithSettleDelay(0))
func New(dev Device, opts ...Option) *Session {
	if dev == nil {
		panic("device cannot be nil")
	}

	return &Session{
		device: dev,
		config: buildConfig(opts),
	}
}

// Run opens the device at path, executes steps and closes the device.
// The device is closed exactly once on every path. When a step fails its
// error is returned and a close failure is only logged; otherwise a close
// failure is returned.
//
// Example:
//
//	report, err := session.Run(ctx, "/dev/lcd1602_0", sequence.Canonical())
func Run(ctx context.Context, path string, steps []sequence.Step, opts ...Option) (report *Report, err error) {
	cfg := buildConfig(opts)

	dev, err := cfg.Opener(path)
	if err != nil {
		if !device.IsDeviceOpenError(err) {
			err = &device.DeviceOpenError{Path: path, Err: err}
		}
		return nil, err
	}

	s := &Session{device: dev, config: cfg}
	s.logInfo("device opened", "path", path)

	defer func() {
		if cerr := dev.Close(); cerr != nil {
			if err == nil {
				err = fmt.Errorf("close device: %w", cerr)
			} else {
				s.logError("close device failed", "path", path, "error", cerr)
			}
			return
		}
		s.logInfo("device closed", "path", path)
	}()

	return s.Execute(ctx, steps)
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.config.SessionID
}

// Execute runs steps in order. The first failing step aborts the sequence
// and is returned as a *StepError; the report still lists what completed.
func (s *Session) Execute(ctx context.Context, steps []sequence.Step) (*Report, error) {
	startTime := time.Now()
	report := &Report{SessionID: s.config.SessionID}

	s.logInfo("sequence started", "steps", len(steps))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(startTime)
			return report, &StepError{Index: i, Step: step, Err: fmt.Errorf("cancelled: %w", err)}
		}

		phase := PhaseCommand
		if step.Kind == sequence.KindWait {
			phase = PhaseWaiting
		}
		s.reportProgress(Progress{
			Phase:       phase,
			Step:        i + 1,
			TotalSteps:  len(steps),
			Description: step.String(),
			Percentage:  float64(i) / float64(len(steps)) * 100,
			ElapsedTime: time.Since(startTime),
		})

		if err := s.runStep(ctx, step, report); err != nil {
			report.Elapsed = time.Since(startTime)
			s.logError("sequence aborted",
				"step", i,
				"description", step.String(),
				"executed", report.Executed,
				"error", err,
			)
			return report, &StepError{Index: i, Step: step, Err: err}
		}
		report.Executed++
	}

	report.Elapsed = time.Since(startTime)
	s.reportProgress(Progress{
		Phase:       PhaseComplete,
		Step:        len(steps),
		TotalSteps:  len(steps),
		Percentage:  100,
		ElapsedTime: report.Elapsed,
	})

	s.logInfo("sequence complete",
		"steps", len(steps),
		"reads", len(report.Reads),
		"elapsed", report.Elapsed.String(),
	)

	return report, nil
}

// runStep executes a single step.
func (s *Session) runStep(ctx context.Context, step sequence.Step, report *Report) error {
	switch step.Kind {
	case sequence.KindWait:
		d := step.Delay
		if d == 0 {
			d = s.config.SettleDelay
		}
		return s.config.Sleeper(ctx, d)

	case sequence.KindCommand:
		switch step.Command {
		case protocol.CmdClearScreen:
			return s.ClearScreen(ctx)
		case protocol.CmdBacklightOn:
			return s.BacklightOn(ctx)
		case protocol.CmdBacklightOff:
			return s.BacklightOff(ctx)
		case protocol.CmdWriteText:
			return s.WriteText(ctx, step.Text)
		case protocol.CmdReadText:
			text, err := s.ReadText(ctx)
			if err != nil {
				return err
			}
			report.Reads = append(report.Reads, text)
			return nil
		case protocol.CmdShift:
			return s.Shift(ctx, step.Shift)
		case protocol.CmdCursorReturn:
			return s.CursorReturn(ctx)
		default:
			return fmt.Errorf("unknown command %d", uint8(step.Command))
		}

	default:
		return fmt.Errorf("unknown step kind %d", step.Kind)
	}
}

// ClearScreen clears the display and the driver's text buffer.
func (s *Session) ClearScreen(ctx context.Context) error {
	req, err := protocol.BuildClearScreenCmd()
	if err != nil {
		return err
	}
	return s.issue(ctx, req)
}

// BacklightOn switches the backlight on.
func (s *Session) BacklightOn(ctx context.Context) error {
	req, err := protocol.BuildBacklightOnCmd()
	if err != nil {
		return err
	}
	return s.issue(ctx, req)
}

// BacklightOff switches the backlight off.
func (s *Session) BacklightOff(ctx context.Context) error {
	req, err := protocol.BuildBacklightOffCmd()
	if err != nil {
		return err
	}
	return s.issue(ctx, req)
}

// WriteText appends text to the display.
// Text longer than protocol.TextBufferSize is rejected before reaching the device.
func (s *Session) WriteText(ctx context.Context, text []byte) error {
	req, err := protocol.BuildWriteTextCmd(text)
	if err != nil {
		return err
	}
	return s.issue(ctx, req)
}

// Shift shifts the display or moves the cursor by one position.
func (s *Session) Shift(ctx context.Context, params protocol.ShiftParams) error {
	req, err := protocol.BuildShiftCmd(params)
	if err != nil {
		return err
	}
	return s.issue(ctx, req)
}

// ReadText reads back the driver's text buffer and decodes it with the
// configured decode mode.
func (s *Session) ReadText(ctx context.Context) (string, error) {
	req, err := protocol.BuildReadTextCmd()
	if err != nil {
		return "", err
	}
	if err := s.issue(ctx, req); err != nil {
		return "", err
	}

	text, err := protocol.DecodeReadText(req.Arg, s.config.DecodeMode)
	if err != nil {
		return "", err
	}

	s.logDebug("read text", "text", text, "length", len(text))
	return text, nil
}

// CursorReturn returns the cursor to the home position.
func (s *Session) CursorReturn(ctx context.Context) error {
	req, err := protocol.BuildCursorReturnCmd()
	if err != nil {
		return err
	}
	return s.issue(ctx, req)
}

// issue sends one request to the device. Failures are not retried.
func (s *Session) issue(ctx context.Context, req *protocol.Request) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("cancelled: %w", err)
	}

	if err := s.device.Ioctl(req.Code, req.Arg); err != nil {
		s.logError("device call failed",
			"command", req.Command.String(),
			"code", req.Code.String(),
			"error", err,
		)
		return &DeviceCallError{Command: req.Command, Code: req.Code, Err: err}
	}

	s.logDebug("device call",
		"command", req.Command.String(),
		"code", fmt.Sprintf("0x%08X", uint32(req.Code)),
		"arg_len", len(req.Arg),
	)
	return nil
}

// reportProgress calls the progress callback if configured.
func (s *Session) reportProgress(progress Progress) {
	if s.config.ProgressCallback != nil {
		s.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (s *Session) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, s.withSession(keysAndValues)...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Session) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, s.withSession(keysAndValues)...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Session) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, s.withSession(keysAndValues)...)
	}
}

func (s *Session) withSession(keysAndValues []interface{}) []interface{} {
	return append([]interface{}{"session_id", s.config.SessionID.String()}, keysAndValues...)
}
