package protocol

// DriverName is the name the lcd1602 driver registers its character devices under.
const DriverName = "lcd1602"

// DefaultDevicePath is the node created for the first probed display.
const DefaultDevicePath = "/dev/lcd1602_0"

// Magic is the ioctl type tag shared by every lcd1602 command.
// It mirrors LCD_MAGIC in the driver header and must be kept in sync with it.
const Magic = 0x5A

// Command numbers, in driver header order.
const (
	// CmdClearScreen clears the display and the driver's text buffer
	CmdClearScreen Command = 0

	// CmdBacklightOn switches the backlight on
	CmdBacklightOn Command = 1

	// CmdBacklightOff switches the backlight off
	CmdBacklightOff Command = 2

	// CmdWriteText appends text to the display
	CmdWriteText Command = 3

	// CmdReadText reads back the driver's text buffer
	CmdReadText Command = 4

	// CmdShift shifts the display or moves the cursor by one position
	CmdShift Command = 5

	// CmdCursorReturn returns the cursor (and display shift) to home
	CmdCursorReturn Command = 6
)

// Display geometry.
const (
	// DisplayRows is the number of text rows
	DisplayRows = 2

	// RowLength is the number of characters per row
	RowLength = 16

	// TextBufferSize is the capacity of the driver's text buffer (16 chars * 2 rows)
	TextBufferSize = DisplayRows * RowLength
)

// Argument record sizes, in bytes.
const (
	// IntSize is sizeof(int) on the driver's targets. The driver declares
	// WriteText and Shift as _IOW(LCD_MAGIC, n, int), so this is the size
	// encoded into their codes regardless of the actual payload.
	IntSize = 4

	// ShiftParamsSize is the size of the packed lcd_shift_data record
	ShiftParamsSize = 2

	// ReadDataSize is the text field of lcd_string_data (buffer + NUL)
	ReadDataSize = TextBufferSize + 1

	// LengthFieldSize is the width of the size_t length field of
	// lcd_string_data. Fixed to 8 bytes (64-bit targets).
	LengthFieldSize = 8

	// ReadResultSize is the size of the packed lcd_string_data record
	ReadResultSize = ReadDataSize + LengthFieldSize
)

// Terminator ends the text in a read-back buffer.
const Terminator = 0x00
