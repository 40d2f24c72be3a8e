// Package header implements the fixed 15-byte Imprint record header
// (spec §4.4, §6): magic, version, flags, fieldspace id, schema hash,
// and payload size, all little-endian.
package header

import (
	"github.com/imprintio/imprint/endian"
	"github.com/imprintio/imprint/errs"
)

const (
	// Size is the fixed byte length of an Imprint header.
	Size = 15

	// Magic is the required first header byte, ASCII 'I'.
	Magic byte = 0x49
	// Version is the only version byte this implementation accepts.
	Version byte = 0x01

	// FlagDirectoryPresent is bit 0 of the flags byte: set iff a field directory follows the header.
	FlagDirectoryPresent byte = 0x01
	// reservedFlagMask covers bits 1-7, which must be zero in v1.
	reservedFlagMask byte = 0xFE
)

// Header is the parsed fixed-layout header shared by every Imprint record.
type Header struct {
	Flags        byte
	FieldspaceID uint32
	SchemaHash   uint32
	PayloadSize  uint32
}

// HasDirectory reports whether the record carries a field directory.
func (h Header) HasDirectory() bool {
	return h.Flags&FlagDirectoryPresent != 0
}

// New builds a header for a record that will carry a directory (the
// only form the builder ever emits, per invariant 7's canonical form).
func New(fieldspaceID, schemaHash uint32) Header {
	return Header{
		Flags:        FlagDirectoryPresent,
		FieldspaceID: fieldspaceID,
		SchemaHash:   schemaHash,
	}
}

// Parse decodes a Header from the first Size bytes of data.
//
// Fails with errs.ErrInvalidHeaderSize if data is shorter than Size,
// errs.ErrBadMagic if the magic byte doesn't match, errs.ErrUnsupportedVersion
// if the version byte isn't Version, or errs.ErrReservedFlagSet if any
// of flag bits 1-7 are set.
func Parse(data []byte) (Header, error) {
	if len(data) < Size {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	if data[0] != Magic {
		return Header{}, errs.WithOffset(errs.ErrBadMagic, 0)
	}
	if data[1] != Version {
		return Header{}, errs.WithOffset(errs.ErrUnsupportedVersion, 1)
	}
	flags := data[2]
	if flags&reservedFlagMask != 0 {
		return Header{}, errs.WithOffset(errs.ErrReservedFlagSet, 2)
	}

	return Header{
		Flags:        flags,
		FieldspaceID: endian.LittleEndian.Uint32(data[3:7]),
		SchemaHash:   endian.LittleEndian.Uint32(data[7:11]),
		PayloadSize:  endian.LittleEndian.Uint32(data[11:15]),
	}, nil
}

// Bytes serializes h into a new Size-byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, Size)
	h.WriteTo(b)
	return b
}

// WriteTo writes h into the first Size bytes of dst, which must have
// at least that much capacity.
func (h Header) WriteTo(dst []byte) {
	dst[0] = Magic
	dst[1] = Version
	dst[2] = h.Flags
	endian.LittleEndian.PutUint32(dst[3:7], h.FieldspaceID)
	endian.LittleEndian.PutUint32(dst[7:11], h.SchemaHash)
	endian.LittleEndian.PutUint32(dst[11:15], h.PayloadSize)
}
