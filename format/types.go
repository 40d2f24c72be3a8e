// Package format defines the closed, wire-visible enumerations shared
// across the Imprint core and its external collaborators: the value
// TypeCode tagging every encoded field (§6), and the CompressionType
// tagging optional transport framing applied outside the core (§1, §4.10).
package format

type (
	// TypeCode identifies the logical type of an encoded value.
	TypeCode uint8

	// CompressionType identifies an optional wire-framing compression
	// algorithm used by external collaborators such as imprintwire.
	// It has no bearing on the core's byte layout.
	CompressionType uint8
)

const (
	// TypeNull represents the null value; it occupies 0 bytes.
	TypeNull TypeCode = 0x0
	// TypeBool represents a boolean, encoded as a single 0/1 byte.
	TypeBool TypeCode = 0x1
	// TypeInt32 represents a signed 32-bit integer, 4 bytes little-endian.
	TypeInt32 TypeCode = 0x2
	// TypeInt64 represents a signed 64-bit integer, 8 bytes little-endian.
	TypeInt64 TypeCode = 0x3
	// TypeFloat32 represents an IEEE-754 single-precision float, 4 bytes little-endian.
	TypeFloat32 TypeCode = 0x4
	// TypeFloat64 represents an IEEE-754 double-precision float, 8 bytes little-endian.
	TypeFloat64 TypeCode = 0x5
	// TypeBytes represents a varint-length-prefixed raw byte string.
	TypeBytes TypeCode = 0x6
	// TypeString represents a varint-length-prefixed UTF-8 string.
	TypeString TypeCode = 0x7
	// TypeArray represents a homogeneous array: varint count, element type, elements.
	TypeArray TypeCode = 0x8
	// TypeMap represents a homogeneous map: varint count, key type, value type, entries.
	TypeMap TypeCode = 0x9
	// TypeRow represents a nested, complete, self-contained Imprint record.
	TypeRow TypeCode = 0xA

	// CompressionNone represents no compression applied to framed bytes.
	CompressionNone CompressionType = 0x1
	// CompressionZstd represents Zstandard compression, via klauspost/compress.
	CompressionZstd CompressionType = 0x2
	// CompressionLZ4 represents LZ4 compression, via pierrec/lz4.
	CompressionLZ4 CompressionType = 0x3
)

// IsValid reports whether t is one of the defined, emittable type
// codes. Codes 0xB-0xFF are reserved and must never be emitted.
func (t TypeCode) IsValid() bool {
	return t <= TypeRow
}

// IsFixedWidth reports whether values of this type have a statically
// known byte length (no embedded length prefix or structural bytes).
func (t TypeCode) IsFixedWidth() bool {
	switch t {
	case TypeNull, TypeBool, TypeInt32, TypeInt64, TypeFloat32, TypeFloat64:
		return true
	default:
		return false
	}
}

// FixedWidth returns the byte length of a fixed-width type. Use
// IsFixedWidth first to distinguish a genuine 0 (TypeNull) from "not
// fixed-width".
func (t TypeCode) FixedWidth() int {
	switch t {
	case TypeNull:
		return 0
	case TypeBool:
		return 1
	case TypeInt32, TypeFloat32:
		return 4
	case TypeInt64, TypeFloat64:
		return 8
	default:
		return 0
	}
}

// IsValidMapKeyType reports whether t may be used as a map key type,
// per the data model's invariant 6 (int32, int64, bytes, string).
func (t TypeCode) IsValidMapKeyType() bool {
	switch t {
	case TypeInt32, TypeInt64, TypeBytes, TypeString:
		return true
	default:
		return false
	}
}

func (t TypeCode) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeBytes:
		return "bytes"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeMap:
		return "map"
	case TypeRow:
		return "row"
	default:
		return "reserved"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
