// Package ioctl implements the Linux ioctl request-code encoding.
//
// A request code is a 32-bit integer that packs four fields, exactly as the
// kernel's _IOC macro does on x86, ARM and most other architectures:
//
//	 31 30 29                    16 15          8 7           0
//	[ DIR ][        SIZE (14)       ][  TYPE (8)  ][  NUMBER (8) ]
//
// Where:
//   - DIR = transfer direction (None=0, Write=1, Read=2), seen from userspace
//   - SIZE = byte size of the argument record (0 for commands without one)
//   - TYPE = driver "magic" shared by every command of a device family
//   - NUMBER = command number within that family
//
// # Encoding
//
// Use Encode for checked encoding, or the IO/IOW/IOR helpers that mirror
// the kernel macros of the same name:
//
//	code, err := ioctl.Encode(ioctl.Write, 0x5A, 3, 4)
//	code := ioctl.IOW(0x5A, 3, 4) // panics on invalid input
//
// # Decoding
//
// Decode is the exact inverse of Encode:
//
//	f := ioctl.Decode(code)
//	fmt.Println(f.Direction, f.Type, f.Number, f.Size)
//
// The layout is a fixed contract with the driver. Architectures with a
// different _IOC layout (alpha, mips, powerpc, sparc) are not supported.
package ioctl
