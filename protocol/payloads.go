package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeWriteText validates a Write Text payload.
// Payloads longer than TextBufferSize are rejected with a PayloadTooLargeError.
// Accepted payloads are returned as given.
func EncodeWriteText(text []byte) ([]byte, error) {
	if len(text) > TextBufferSize {
		return nil, &PayloadTooLargeError{Size: len(text), Max: TextBufferSize}
	}
	return text, nil
}

// MarshalBinary encodes the record as [SC][RL], each 0 or 1.
func (p ShiftParams) MarshalBinary() ([]byte, error) {
	return []byte{boolToByte(p.ShiftCursor), boolToByte(p.RightLeft)}, nil
}

// UnmarshalShiftParams decodes a [SC][RL] record.
// The data must be exactly ShiftParamsSize bytes and each flag 0 or 1.
func UnmarshalShiftParams(data []byte) (ShiftParams, error) {
	if len(data) != ShiftParamsSize {
		return ShiftParams{}, &DecodeError{
			Record: "shift params",
			Reason: fmt.Sprintf("got %d bytes, expected %d", len(data), ShiftParamsSize),
		}
	}

	sc, err := byteToBool(data[0])
	if err != nil {
		return ShiftParams{}, &DecodeError{Record: "shift params", Reason: "sc " + err.Error()}
	}
	rl, err := byteToBool(data[1])
	if err != nil {
		return ShiftParams{}, &DecodeError{Record: "shift params", Reason: "rl " + err.Error()}
	}

	return ShiftParams{ShiftCursor: sc, RightLeft: rl}, nil
}

// MarshalBinary encodes the record as [DATA(33)][LENGTH(8)].
func (r *ReadResult) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ReadResultSize)
	copy(buf, r.Data[:])
	binary.LittleEndian.PutUint64(buf[ReadDataSize:], r.Length)
	return buf, nil
}

// UnmarshalReadResult decodes an lcd_string_data record.
// The data must be exactly ReadResultSize bytes and the length field must
// not exceed TextBufferSize.
func UnmarshalReadResult(data []byte) (*ReadResult, error) {
	if len(data) != ReadResultSize {
		return nil, &DecodeError{
			Record: "read result",
			Reason: fmt.Sprintf("got %d bytes, expected %d", len(data), ReadResultSize),
		}
	}

	r := &ReadResult{
		Length: binary.LittleEndian.Uint64(data[ReadDataSize:]),
	}
	if r.Length > TextBufferSize {
		return nil, &DecodeError{
			Record: "read result",
			Reason: fmt.Sprintf("length %d exceeds buffer size %d", r.Length, TextBufferSize),
		}
	}
	copy(r.Data[:], data[:ReadDataSize])

	return r, nil
}

// Text returns the buffer contents up to Length or the first terminator,
// whichever comes first.
//
// In DecodeStrict mode any byte above 0x7F yields a DecodeError.
// In DecodePermissive mode the bytes are returned unchanged.
func (r *ReadResult) Text(mode DecodeMode) (string, error) {
	n := int(r.Length)
	if n > TextBufferSize {
		n = TextBufferSize
	}
	text := r.Data[:n]
	if i := bytes.IndexByte(text, Terminator); i >= 0 {
		text = text[:i]
	}

	if mode == DecodeStrict {
		for i, b := range text {
			if b > 0x7F {
				return "", &DecodeError{
					Record: "read result",
					Reason: fmt.Sprintf("non-ASCII byte 0x%02X at offset %d", b, i),
				}
			}
		}
	}

	return string(text), nil
}

// DecodeReadText decodes a filled ReadText argument buffer straight to text.
func DecodeReadText(data []byte, mode DecodeMode) (string, error) {
	r, err := UnmarshalReadResult(data)
	if err != nil {
		return "", err
	}
	return r.Text(mode)
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func byteToBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("flag 0x%02X is not 0 or 1", b)
	}
}
