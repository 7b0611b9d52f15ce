// Package protocol implements the command catalog and payload records of the
// lcd1602 character-display driver.
//
// The driver is controlled exclusively through ioctl. Every command has a
// fixed request code built from the driver magic (0x5A), a command number,
// a direction and an argument size:
//
//	#  command        dir    size  code
//	0  clear screen   none   0     0x00005A00
//	1  backlight on   none   0     0x00005A01
//	2  backlight off  none   0     0x00005A02
//	3  write text     write  4     0x40045A03
//	4  read text      read   41    0x80295A04
//	5  shift          write  4     0x40045A05
//	6  cursor return  none   0     0x00005A06
//
// These values mirror the driver header. They are an external ABI and must
// match the driver bit for bit.
//
// # Request Builders
//
// Use the Build* functions to create requests:
//
//	req, err := protocol.BuildWriteTextCmd([]byte("hello"))
//	req, err := protocol.BuildShiftCmd(protocol.ShiftParams{ShiftCursor: true, RightLeft: true})
//	// ... etc
//
// # Records
//
// Two arguments are structured, packed records without padding:
//
//	lcd_shift_data:  [SC(1)][RL(1)]
//	lcd_string_data: [DATA(33)][LENGTH(8, little-endian)]
//
// The length field is a size_t in the driver. This package fixes it to
// 8 bytes, little-endian, which matches 64-bit ARM and x86 targets. A 32-bit
// kernel would expect a 37-byte record and a different ReadText code.
//
// Read-back text is decoded strictly as ASCII by default. Pass
// DecodePermissive to ReadResult.Text to accept raw bytes instead.
//
// # Error Handling
//
// Payload problems are reported with structured errors:
//
//	_, err := protocol.BuildWriteTextCmd(make([]byte, 33))
//	if protocol.IsPayloadTooLarge(err) {
//	    // err.Error() returns: "payload too large: 33 bytes, maximum is 32"
//	}
package protocol
