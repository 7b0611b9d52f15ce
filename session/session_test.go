package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-lcd1602/device"
	"github.com/moffa90/go-lcd1602/ioctl"
	"github.com/moffa90/go-lcd1602/protocol"
	"github.com/moffa90/go-lcd1602/sequence"
)

// fakeDevice records every request and can fail the n-th one.
type fakeDevice struct {
	codes      []ioctl.Code
	args       [][]byte
	failAt     int // 1-based request index, 0 never fails
	failErr    error
	readBack   []byte
	readLength uint64
	closeCount int
	closeErr   error
}

func newFakeDevice(readBack string) *fakeDevice {
	return &fakeDevice{
		readBack:   []byte(readBack),
		readLength: uint64(len(readBack)),
		failErr:    errors.New("input/output error"),
	}
}

func (d *fakeDevice) Ioctl(code ioctl.Code, arg []byte) error {
	d.codes = append(d.codes, code)
	d.args = append(d.args, append([]byte(nil), arg...))

	if d.failAt == len(d.codes) {
		return d.failErr
	}

	if code.Direction() == ioctl.Read {
		var r protocol.ReadResult
		copy(r.Data[:], d.readBack)
		r.Length = d.readLength
		data, _ := r.MarshalBinary()
		copy(arg, data)
	}
	return nil
}

func (d *fakeDevice) Close() error {
	d.closeCount++
	return d.closeErr
}

// sleepRecorder replaces real waits.
type sleepRecorder struct {
	waits []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

// Mock logger for testing
type MockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	errorMsgs []string
	lastKV    []interface{}
}

func (l *MockLogger) Debug(msg string, kv ...interface{}) {
	l.debugMsgs = append(l.debugMsgs, msg)
	l.lastKV = kv
}

func (l *MockLogger) Info(msg string, kv ...interface{}) {
	l.infoMsgs = append(l.infoMsgs, msg)
	l.lastKV = kv
}

func (l *MockLogger) Error(msg string, kv ...interface{}) {
	l.errorMsgs = append(l.errorMsgs, msg)
	l.lastKV = kv
}

func codeOf(t *testing.T, cmd protocol.Command) ioctl.Code {
	t.Helper()
	code, err := protocol.CodeOf(cmd)
	if err != nil {
		t.Fatal(err)
	}
	return code
}

func canonicalCodes(t *testing.T) []ioctl.Code {
	var codes []ioctl.Code
	for _, cmd := range sequence.Commands(sequence.Canonical()) {
		codes = append(codes, codeOf(t, cmd))
	}
	return codes
}

func TestNew(t *testing.T) {
	dev := newFakeDevice("")

	tests := []struct {
		name    string
		options []Option
	}{
		{
			name:    "with no options",
			options: nil,
		},
		{
			name: "with all options",
			options: []Option{
				WithProgressCallback(func(p Progress) {}),
				WithLogger(&MockLogger{}),
				WithSettleDelay(10 * time.Millisecond),
				WithSleeper(func(context.Context, time.Duration) error { return nil }),
				WithDecodeMode(protocol.DecodePermissive),
				WithOpener(func(string) (Device, error) { return dev, nil }),
				WithSessionID(uuid.New()),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := New(dev, tt.options...)
			if sess == nil {
				t.Fatal("New() returned nil")
			}
			if sess.device != dev {
				t.Error("device not set correctly")
			}
			if sess.ID() == uuid.Nil {
				t.Error("session id not generated")
			}
		})
	}
}

func TestNewNilDevicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil) did not panic")
		}
	}()
	New(nil)
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	sess := New(newFakeDevice(""),
		WithSettleDelay(-time.Second),
		WithSleeper(nil),
		WithOpener(nil),
	)

	if sess.config.SettleDelay != DefaultSettleDelay {
		t.Errorf("SettleDelay = %v, want %v", sess.config.SettleDelay, DefaultSettleDelay)
	}
	if sess.config.Sleeper == nil || sess.config.Opener == nil {
		t.Error("nil sleeper or opener replaced the defaults")
	}
}

func TestExecuteCanonicalOrder(t *testing.T) {
	dev := newFakeDevice("hello from Python")
	sleeper := &sleepRecorder{}
	sess := New(dev, WithSleeper(sleeper.sleep))

	report, err := sess.Execute(context.Background(), sequence.Canonical())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(dev.codes, canonicalCodes(t)) {
		t.Errorf("codes = %v, want %v", dev.codes, canonicalCodes(t))
	}

	// Payloads of the write and shift commands.
	wantArgs := map[int][]byte{
		1:  []byte("hello from Python"),
		4:  []byte("hello from Python once more"),
		5:  {0x01, 0x01},
		6:  {0x01, 0x01},
		8:  {0x00, 0x01},
		9:  {0x00, 0x01},
		10: {},
	}
	for i, want := range wantArgs {
		if !bytes.Equal(dev.args[i], want) {
			t.Errorf("args[%d] = % X, want % X", i, dev.args[i], want)
		}
	}
	if len(dev.args[7]) != protocol.ReadResultSize {
		t.Errorf("read buffer = %d bytes, want %d", len(dev.args[7]), protocol.ReadResultSize)
	}

	if len(sleeper.waits) != 9 {
		t.Errorf("waits = %d, want 9", len(sleeper.waits))
	}
	for _, d := range sleeper.waits {
		if d != DefaultSettleDelay {
			t.Errorf("wait = %v, want %v", d, DefaultSettleDelay)
		}
	}

	if report.Executed != len(sequence.Canonical()) {
		t.Errorf("Executed = %d, want %d", report.Executed, len(sequence.Canonical()))
	}
	if !reflect.DeepEqual(report.Reads, []string{"hello from Python"}) {
		t.Errorf("Reads = %q", report.Reads)
	}
	if report.SessionID != sess.ID() {
		t.Error("report carries a different session id")
	}
	if dev.closeCount != 0 {
		t.Error("Execute must not close a device it does not own")
	}
}

func TestExecuteExplicitDelay(t *testing.T) {
	sleeper := &sleepRecorder{}
	sess := New(newFakeDevice(""), WithSleeper(sleeper.sleep), WithSettleDelay(time.Millisecond))

	steps := []sequence.Step{sequence.WaitFor(250 * time.Millisecond), sequence.Wait()}
	if _, err := sess.Execute(context.Background(), steps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Duration{250 * time.Millisecond, time.Millisecond}
	if !reflect.DeepEqual(sleeper.waits, want) {
		t.Errorf("waits = %v, want %v", sleeper.waits, want)
	}
}

func TestRunFailureAtThirdCommand(t *testing.T) {
	dev := newFakeDevice("")
	dev.failAt = 3
	logger := &MockLogger{}
	sleeper := &sleepRecorder{}

	report, err := Run(context.Background(), "/dev/lcd1602_0", sequence.Canonical(),
		WithOpener(func(string) (Device, error) { return dev, nil }),
		WithSleeper(sleeper.sleep),
		WithLogger(logger),
	)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if dev.closeCount != 1 {
		t.Errorf("Close called %d times, want 1", dev.closeCount)
	}
	if len(dev.codes) != 3 {
		t.Errorf("issued %d commands after failure, want 3", len(dev.codes))
	}

	var callErr *DeviceCallError
	if !errors.As(err, &callErr) {
		t.Fatalf("error = %v, want DeviceCallError", err)
	}
	if callErr.Command != protocol.CmdBacklightOff {
		t.Errorf("failed command = %v, want %v", callErr.Command, protocol.CmdBacklightOff)
	}
	if callErr.Code != 23042 {
		t.Errorf("failed code = %d, want 23042", callErr.Code)
	}
	if !errors.Is(err, dev.failErr) {
		t.Error("cause not preserved")
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("error = %v, want StepError", err)
	}
	if stepErr.Index != 3 || stepErr.Step.Command != protocol.CmdBacklightOff {
		t.Errorf("StepError = %+v", stepErr)
	}
	if !strings.Contains(err.Error(), "backlight off") {
		t.Errorf("error message should name the command, got: %s", err.Error())
	}

	if report == nil || report.Executed != 3 {
		t.Errorf("report = %+v, want 3 executed steps", report)
	}
	if len(logger.errorMsgs) == 0 {
		t.Error("failure was not logged")
	}
}

func TestRunOpenFailure(t *testing.T) {
	opened := false
	_, err := Run(context.Background(), "/dev/lcd1602_9", sequence.Canonical(),
		WithOpener(func(string) (Device, error) {
			opened = true
			return nil, os.ErrPermission
		}),
	)

	if !opened {
		t.Fatal("opener not called")
	}
	if !device.IsDeviceOpenError(err) {
		t.Fatalf("error = %v, want DeviceOpenError", err)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("cause not preserved")
	}
	if !strings.Contains(err.Error(), "/dev/lcd1602_9") {
		t.Errorf("error message should contain the path, got: %s", err.Error())
	}
}

func TestRunCloseFailure(t *testing.T) {
	dev := newFakeDevice("")
	dev.closeErr = errors.New("bad file descriptor")

	report, err := Run(context.Background(), "/dev/lcd1602_0", []sequence.Step{sequence.Cmd(protocol.CmdClearScreen)},
		WithOpener(func(string) (Device, error) { return dev, nil }),
	)

	if err == nil || !strings.Contains(err.Error(), "close device") {
		t.Fatalf("error = %v, want close failure", err)
	}
	if !errors.Is(err, dev.closeErr) {
		t.Error("close cause not preserved")
	}
	if dev.closeCount != 1 {
		t.Errorf("Close called %d times, want 1", dev.closeCount)
	}
	if report == nil || report.Executed != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestRunStepAndCloseFailure(t *testing.T) {
	dev := newFakeDevice("")
	dev.failAt = 1
	dev.closeErr = errors.New("bad file descriptor")
	logger := &MockLogger{}

	_, err := Run(context.Background(), "/dev/lcd1602_0", []sequence.Step{sequence.Cmd(protocol.CmdClearScreen)},
		WithOpener(func(string) (Device, error) { return dev, nil }),
		WithLogger(logger),
	)

	var callErr *DeviceCallError
	if !errors.As(err, &callErr) {
		t.Fatalf("error = %v, want the step failure", err)
	}
	if errors.Is(err, dev.closeErr) {
		t.Error("close failure replaced the step failure")
	}

	found := false
	for _, msg := range logger.errorMsgs {
		if msg == "close device failed" {
			found = true
		}
	}
	if !found {
		t.Errorf("close failure not logged, got %v", logger.errorMsgs)
	}
}

func TestRunWithSimulator(t *testing.T) {
	sim := device.NewSimulator()

	report, err := Run(context.Background(), protocol.DefaultDevicePath, sequence.Canonical(),
		WithOpener(func(string) (Device, error) { return sim, nil }),
		WithSettleDelay(0),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "hello from Pythonhello from Pyth"
	if !reflect.DeepEqual(report.Reads, []string{want}) {
		t.Errorf("Reads = %q, want [%q]", report.Reads, want)
	}
	if !sim.Closed() {
		t.Error("simulator not closed")
	}
	if !sim.Backlight() {
		t.Error("backlight should be back on")
	}
	if len(sim.Shifts()) != 4 || sim.CursorReturns() != 1 {
		t.Errorf("shifts = %d, cursor returns = %d", len(sim.Shifts()), sim.CursorReturns())
	}
}

func TestWriteTextTooLarge(t *testing.T) {
	dev := newFakeDevice("")
	sess := New(dev)

	err := sess.WriteText(context.Background(), bytes.Repeat([]byte("x"), 33))
	if !protocol.IsPayloadTooLarge(err) {
		t.Fatalf("error = %v, want PayloadTooLargeError", err)
	}
	if len(dev.codes) != 0 {
		t.Error("oversized payload reached the device")
	}
}

func TestRunOversizedWriteStep(t *testing.T) {
	dev := newFakeDevice("")
	steps := []sequence.Step{sequence.WriteText(strings.Repeat("x", protocol.TextBufferSize+1))}

	_, err := Run(context.Background(), "/dev/lcd1602_0", steps,
		WithOpener(func(string) (Device, error) { return dev, nil }),
	)

	if !protocol.IsPayloadTooLarge(err) {
		t.Fatalf("error = %v, want PayloadTooLargeError", err)
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Index != 0 {
		t.Errorf("error = %v, want StepError at index 0", err)
	}
	if len(dev.codes) != 0 {
		t.Error("oversized payload reached the device")
	}
	if dev.closeCount != 1 {
		t.Errorf("Close called %d times, want 1", dev.closeCount)
	}
}

func TestRunDecodeErrorStep(t *testing.T) {
	dev := newFakeDevice("caf\xe9")

	_, err := Run(context.Background(), "/dev/lcd1602_0", []sequence.Step{sequence.Cmd(protocol.CmdReadText)},
		WithOpener(func(string) (Device, error) { return dev, nil }),
	)

	if !protocol.IsDecodeError(err) {
		t.Errorf("error = %v, want DecodeError", err)
	}
}

func TestReadTextDecodeModes(t *testing.T) {
	tests := []struct {
		name    string
		mode    protocol.DecodeMode
		want    string
		wantErr bool
	}{
		{name: "strict", mode: protocol.DecodeStrict, wantErr: true},
		{name: "permissive", mode: protocol.DecodePermissive, want: "caf\xe9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := New(newFakeDevice("caf\xe9"), WithDecodeMode(tt.mode))

			text, err := sess.ReadText(context.Background())
			if tt.wantErr {
				var decErr *protocol.DecodeError
				if !errors.As(err, &decErr) {
					t.Fatalf("error = %v, want DecodeError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if text != tt.want {
				t.Errorf("text = %q, want %q", text, tt.want)
			}
		})
	}
}

func TestReadTextBadLength(t *testing.T) {
	dev := newFakeDevice("HELLO")
	dev.readLength = 99
	sess := New(dev)

	_, err := sess.ReadText(context.Background())
	if !protocol.IsDecodeError(err) {
		t.Errorf("error = %v, want DecodeError", err)
	}
}

func TestExecuteCancelled(t *testing.T) {
	dev := newFakeDevice("")
	sess := New(dev)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sess.Execute(ctx, sequence.Canonical())

	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Index != 0 {
		t.Fatalf("error = %v, want StepError at index 0", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("context error not preserved")
	}
	if len(dev.codes) != 0 {
		t.Error("commands issued after cancellation")
	}
}

func TestSleepContext(t *testing.T) {
	if err := sleepContext(context.Background(), 0); err != nil {
		t.Errorf("zero delay: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled sleep = %v, want context.Canceled", err)
	}
}

func TestProgressCallback(t *testing.T) {
	var updates []Progress
	sess := New(newFakeDevice(""),
		WithSleeper((&sleepRecorder{}).sleep),
		WithProgressCallback(func(p Progress) { updates = append(updates, p) }),
	)

	steps := []sequence.Step{
		sequence.Cmd(protocol.CmdClearScreen),
		sequence.Wait(),
	}
	if _, err := sess.Execute(context.Background(), steps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(updates) != 3 {
		t.Fatalf("got %d updates, want 3", len(updates))
	}
	wantPhases := []string{PhaseCommand, PhaseWaiting, PhaseComplete}
	for i, p := range updates {
		if p.Phase != wantPhases[i] {
			t.Errorf("update %d phase = %q, want %q", i, p.Phase, wantPhases[i])
		}
		if p.TotalSteps != 2 {
			t.Errorf("update %d TotalSteps = %d, want 2", i, p.TotalSteps)
		}
	}
	if updates[0].Description != "clear screen" {
		t.Errorf("Description = %q", updates[0].Description)
	}
	if updates[2].Percentage != 100 {
		t.Errorf("final percentage = %v, want 100", updates[2].Percentage)
	}
}

func TestLogsCarrySessionID(t *testing.T) {
	logger := &MockLogger{}
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	sess := New(newFakeDevice(""), WithLogger(logger), WithSessionID(id))

	if err := sess.ClearScreen(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logger.debugMsgs) != 1 || logger.debugMsgs[0] != "device call" {
		t.Fatalf("debug messages = %v", logger.debugMsgs)
	}
	if len(logger.lastKV) < 2 || logger.lastKV[0] != "session_id" || logger.lastKV[1] != id.String() {
		t.Errorf("key-values = %v, want session_id first", logger.lastKV)
	}
}

func TestSingleCommands(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Session) error
		cmd  protocol.Command
	}{
		{"clear screen", func(s *Session) error { return s.ClearScreen(context.Background()) }, protocol.CmdClearScreen},
		{"backlight on", func(s *Session) error { return s.BacklightOn(context.Background()) }, protocol.CmdBacklightOn},
		{"backlight off", func(s *Session) error { return s.BacklightOff(context.Background()) }, protocol.CmdBacklightOff},
		{"cursor return", func(s *Session) error { return s.CursorReturn(context.Background()) }, protocol.CmdCursorReturn},
		{"shift", func(s *Session) error {
			return s.Shift(context.Background(), protocol.ShiftParams{RightLeft: true})
		}, protocol.CmdShift},
		{"write text", func(s *Session) error {
			return s.WriteText(context.Background(), []byte("hi"))
		}, protocol.CmdWriteText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newFakeDevice("")
			if err := tt.run(New(dev)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(dev.codes) != 1 || dev.codes[0] != codeOf(t, tt.cmd) {
				t.Errorf("codes = %v, want [%v]", dev.codes, codeOf(t, tt.cmd))
			}
		})
	}
}
