// Package varint implements unsigned LEB128 variable-length integer
// encoding, the wire representation used throughout Imprint for
// directory entry counts, value length prefixes, and array/map counts.
//
// Each byte carries 7 bits of payload in its low bits; the high bit
// (0x80) signals that another byte follows. Encoding a uint32 takes at
// most 5 bytes; a uint64 takes at most 10.
package varint

import "github.com/imprintio/imprint/errs"

const (
	// MaxBytesUint32 is the maximum number of bytes a varint-encoded uint32 can occupy.
	MaxBytesUint32 = 5
	// MaxBytesUint64 is the maximum number of bytes a varint-encoded uint64 can occupy.
	MaxBytesUint64 = 10
)

// AppendUint32 appends the varint encoding of v to buf and returns the
// extended slice.
func AppendUint32(buf []byte, v uint32) []byte {
	return appendUvarint(buf, uint64(v))
}

// AppendUint64 appends the varint encoding of v to buf and returns the
// extended slice.
func AppendUint64(buf []byte, v uint64) []byte {
	return appendUvarint(buf, v)
}

func appendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}

	return append(buf, byte(v))
}

// DecodeUint32 reads a varint from data and validates it fits in 32
// bits. It returns the decoded value and the number of bytes consumed.
//
// Fails with errs.ErrMalformedVarint if data ends before a terminating
// byte, if more than MaxBytesUint32 bytes are consumed, or if the
// decoded value exceeds math.MaxUint32.
func DecodeUint32(data []byte) (uint32, int, error) {
	v, n, err := decodeUvarint(data, MaxBytesUint32)
	if err != nil {
		return 0, 0, err
	}
	if v > 0xFFFFFFFF {
		return 0, 0, errs.ErrMalformedVarint
	}

	return uint32(v), n, nil
}

// DecodeUint64 reads a varint from data. It returns the decoded value
// and the number of bytes consumed.
//
// Fails with errs.ErrMalformedVarint if data ends before a terminating
// byte or if more than MaxBytesUint64 bytes are consumed.
func DecodeUint64(data []byte) (uint64, int, error) {
	return decodeUvarint(data, MaxBytesUint64)
}

// decodeUvarint is the shared decode loop; maxBytes bounds how many
// bytes may be consumed before the stream is considered malformed.
func decodeUvarint(data []byte, maxBytes int) (uint64, int, error) {
	var result uint64
	var shift uint

	for i := 0; i < maxBytes; i++ {
		if i >= len(data) {
			return 0, 0, errs.ErrMalformedVarint
		}

		b := data[i]
		result |= uint64(b&0x7F) << shift

		if b&0x80 == 0 {
			return result, i + 1, nil
		}

		shift += 7
	}

	return 0, 0, errs.ErrMalformedVarint
}

// Size returns the number of bytes AppendUint64 would emit for v.
func Size(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}
