// Package session runs lcd1602 command sequences against a device.
//
// # Overview
//
// A Session owns nothing but a Device (anything with Ioctl and Close) and
// issues one blocking ioctl per command:
//   - Clear screen, backlight on/off, cursor return (no argument)
//   - Write text (up to 32 bytes, rejected when longer)
//   - Shift display or cursor (2-byte record)
//   - Read text (41-byte record, decoded to a string)
//
// # Basic Usage
//
// Run opens the device, executes a sequence and always closes the device:
//
//	report, err := session.Run(ctx, "/dev/lcd1602_0", sequence.Canonical())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Reads)
//
// For finer control, wrap an already open device with New:
//
//	f, err := device.Open("/dev/lcd1602_0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	sess := session.New(f)
//	err = sess.WriteText(ctx, []byte("hello"))
//
// # Configuration Options
//
// Customize behavior with functional options:
//
//	report, err := session.Run(ctx, path, steps,
//	    session.WithProgressCallback(progressFunc),
//	    session.WithLogger(myLogger),
//	    session.WithSettleDelay(500*time.Millisecond),
//	    session.WithDecodeMode(protocol.DecodePermissive),
//	)
//
// # Error Handling
//
// The first failing step aborts the sequence. Commands already issued are
// not rolled back and nothing is retried. Errors are structured:
//   - StepError: which step aborted the sequence (wraps the cause)
//   - DeviceCallError: the device rejected a command
//   - device.DeviceOpenError: the device could not be opened
//   - protocol.PayloadTooLargeError: write text longer than 32 bytes
//   - protocol.DecodeError: read-back record could not be decoded
//
// Use errors.As to inspect them:
//
//	var callErr *session.DeviceCallError
//	if errors.As(err, &callErr) {
//	    fmt.Println("failed command:", callErr.Command)
//	}
//
// # Timing
//
// Wait steps sleep for real time so the display can visibly settle. They are
// not synchronization points. WithSleeper replaces the sleep, which tests use
// to run sequences instantly.
package session
