// Package endian provides byte order utilities for binary encoding and
// decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine
// interface, so header, directory, and value codecs share one byte-order
// handle instead of each importing encoding/binary directly.
//
// # Basic Usage
//
// The wire format is fixed little-endian (spec.md §6); every codec in
// this module uses the shared LittleEndian engine:
//
//	import "github.com/imprintio/imprint/endian"
//
//	endian.LittleEndian.PutUint32(dst, value)
//	v := endian.LittleEndian.Uint32(src)
//
// # Performance
//
// AppendByteOrder avoids the intermediate buffer a ByteOrder-only call
// needs:
//
//	// engine.AppendUint64 writes directly onto buf's tail.
//	buf = endian.LittleEndian.AppendUint64(buf, value)
//
// # Thread Safety
//
// EndianEngine values are immutable and stateless; safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. binary.LittleEndian and binary.BigEndian both
// satisfy it already.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// LittleEndian is the engine every codec in this module uses; the wire
// format has no big-endian mode.
var LittleEndian EndianEngine = binary.LittleEndian

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// RequiresByteSwap reports whether decoding the wire format (always
// little-endian) on this host needs byte-swapped reads. The fixed-width
// codecs in this module never take this path since encoding/binary already
// handles host-independent access, but callers doing unsafe pointer-cast
// decoding of a memory-mapped record should consult it first.
func RequiresByteSwap() bool {
	return !IsNativeLittleEndian()
}
