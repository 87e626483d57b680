package txn

import "fmt"

// Compact-u16 is the variable-length count encoding used throughout the
// transaction wire format: little-endian 7-bit groups with a continuation
// bit, at most 3 bytes for values up to 0xffff.

const maxCompactU16 = 0xffff

func appendCompactU16(buf []byte, n int) ([]byte, error) {
	if n < 0 || n > maxCompactU16 {
		return nil, fmt.Errorf("compact-u16 value out of range: %d", n)
	}

	v := uint16(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(buf, b), nil
		}
		buf = append(buf, b|0x80)
	}
}

// decodeCompactU16 reads a compact-u16 from the front of data, returning the
// value and the number of bytes consumed.
func decodeCompactU16(data []byte) (int, int, error) {
	var value uint32
	for i := 0; i < 3; i++ {
		if i >= len(data) {
			return 0, 0, fmt.Errorf("truncated compact-u16")
		}
		b := data[i]
		value |= uint32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			if value > maxCompactU16 {
				return 0, 0, fmt.Errorf("compact-u16 value out of range: %d", value)
			}
			return int(value), i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("compact-u16 too long")
}
