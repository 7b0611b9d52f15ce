// Package device provides access to lcd1602 character devices.
//
// On Linux, Open opens the device node read-write, takes an exclusive
// advisory lock on it and returns a File whose Ioctl method issues raw
// ioctl(2) calls:
//
//	f, err := device.Open("/dev/lcd1602_0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	code, _ := protocol.CodeOf(protocol.CmdClearScreen)
//	err = f.Ioctl(code, nil)
//
// Other platforms compile, but Open always fails with a DeviceOpenError
// wrapping errors.ErrUnsupported.
//
// # Simulator
//
// Simulator is an in-memory stand-in for the driver. It keeps the same
// observable state (text buffer, backlight, cursor moves) and can be used
// wherever a File is expected:
//
//	sim := device.NewSimulator()
//	sess := session.New(sim)
package device
