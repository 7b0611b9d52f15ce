// Package sequence describes ordered lcd1602 command sequences.
//
// A sequence is a slice of Steps. A step either issues one command or waits
// for the display to settle. Canonical returns the demo sequence the driver
// ships with; Parse loads a sequence from a file.
//
// # Script Format
//
// Scripts are line oriented. Blank lines and lines starting with '#' are
// ignored:
//
//	clear
//	write hello from Python
//	wait
//	backlight off
//	wait 500ms
//	backlight on
//	write "two\nrows"
//	shift display right
//	shift cursor left
//	read
//	return
//
// "wait" without a duration uses the session's settle delay. Text after
// "write" is taken verbatim unless it is double quoted, in which case Go
// escape sequences are interpreted.
//
// # YAML Format
//
// Files ending in .yaml or .yml are decoded as YAML:
//
//	steps:
//	  - op: clear
//	  - op: write
//	    text: hello from Python
//	  - op: wait
//	    delay: 1s
//	  - op: backlight
//	    state: off
//	  - op: shift
//	    target: display
//	    direction: right
//	  - op: read
//	  - op: return
package sequence
