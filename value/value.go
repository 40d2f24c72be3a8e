// Package value implements the recursive value codec described in
// spec §4.2: encode/decode of typed scalars, byte strings, UTF-8
// strings, homogeneous arrays, homogeneous maps, and nested rows.
//
// Value is a tagged union dispatching on format.TypeCode, per the
// re-architecture guidance to avoid runtime reflection (spec §9).
// Containers hold borrowed inner byte slices where the implementation
// allows, matching the reader's zero-copy borrow discipline (spec §3).
package value

import (
	"math"
	"unicode/utf8"

	"github.com/imprintio/imprint/endian"
	"github.com/imprintio/imprint/errs"
	"github.com/imprintio/imprint/format"
	"github.com/imprintio/imprint/varint"
)

// Value is a decoded Imprint value. Exactly one field is meaningful,
// selected by Type.
type Value struct {
	Type format.TypeCode

	Bool    bool
	Int32   int32
	Int64   int64
	Float32 float32
	Float64 float64

	// Bytes holds the payload for TypeBytes (raw) and TypeString (UTF-8),
	// borrowed from the decoded input unless the caller clones it.
	Bytes []byte

	Array *Array
	Map   *Map

	// Row holds the complete, self-contained nested record's raw bytes
	// for TypeRow, borrowed from the decoded input. Use a record.Reader
	// to parse its fields; the value codec does not recurse into it.
	Row []byte
}

// Array is a decoded homogeneous array value.
type Array struct {
	ElemType format.TypeCode
	Elems    []Value
}

// Map is a decoded homogeneous map value.
type Map struct {
	KeyType format.TypeCode
	ValType format.TypeCode
	Entries []MapEntry
}

// MapEntry is a single key/value pair of a decoded Map.
type MapEntry struct {
	Key Value
	Val Value
}

// Str returns v's string interpretation for TypeString values.
func (v Value) Str() string {
	return string(v.Bytes)
}

// MaxRowDepth bounds how deeply arrays and maps may nest during decode,
// guarding against adversarial inputs. Row values are not recursed
// into (decodeRow only captures their bytes), so they do not count
// toward this depth.
const MaxRowDepth = 64

// Encode appends t's wire encoding of v to buf and returns the
// extended slice.
//
// Callers are responsible for ensuring v's populated fields match t;
// Encode does not itself validate that Type == t.
func Encode(buf []byte, t format.TypeCode, v Value) []byte {
	switch t {
	case format.TypeNull:
		return buf
	case format.TypeBool:
		if v.Bool {
			return append(buf, 1)
		}
		return append(buf, 0)
	case format.TypeInt32:
		var b [4]byte
		endian.LittleEndian.PutUint32(b[:], uint32(v.Int32))
		return append(buf, b[:]...)
	case format.TypeInt64:
		var b [8]byte
		endian.LittleEndian.PutUint64(b[:], uint64(v.Int64))
		return append(buf, b[:]...)
	case format.TypeFloat32:
		var b [4]byte
		endian.LittleEndian.PutUint32(b[:], math.Float32bits(v.Float32))
		return append(buf, b[:]...)
	case format.TypeFloat64:
		var b [8]byte
		endian.LittleEndian.PutUint64(b[:], math.Float64bits(v.Float64))
		return append(buf, b[:]...)
	case format.TypeBytes, format.TypeString:
		buf = varint.AppendUint64(buf, uint64(len(v.Bytes)))
		return append(buf, v.Bytes...)
	case format.TypeArray:
		return encodeArray(buf, v.Array)
	case format.TypeMap:
		return encodeMap(buf, v.Map)
	case format.TypeRow:
		return append(buf, v.Row...)
	default:
		return buf
	}
}

func encodeArray(buf []byte, a *Array) []byte {
	n := 0
	if a != nil {
		n = len(a.Elems)
	}
	buf = varint.AppendUint64(buf, uint64(n))
	if n == 0 {
		return buf
	}

	buf = append(buf, byte(a.ElemType))
	for _, elem := range a.Elems {
		buf = Encode(buf, a.ElemType, elem)
	}

	return buf
}

func encodeMap(buf []byte, m *Map) []byte {
	n := 0
	if m != nil {
		n = len(m.Entries)
	}
	buf = varint.AppendUint64(buf, uint64(n))
	if n == 0 {
		return buf
	}

	buf = append(buf, byte(m.KeyType), byte(m.ValType))
	for _, e := range m.Entries {
		buf = Encode(buf, m.KeyType, e.Key)
		buf = Encode(buf, m.ValType, e.Val)
	}

	return buf
}

// Decode decodes a value of type t from the start of data, returning
// the value and the number of bytes consumed.
//
// Fails with errs.ErrUnknownType for reserved codes, errs.ErrInvalidUtf8
// for malformed strings, errs.ErrInvalidMapKeyType for disallowed map
// key types, errs.ErrTruncated for short input, or errs.ErrRecursionTooDeep
// if nested arrays/maps exceed MaxRowDepth.
func Decode(data []byte, t format.TypeCode) (Value, int, error) {
	return decode(data, t, 0)
}

func decode(data []byte, t format.TypeCode, depth int) (Value, int, error) {
	if depth > MaxRowDepth {
		return Value{}, 0, errs.ErrRecursionTooDeep
	}

	switch t {
	case format.TypeNull:
		return Value{Type: t}, 0, nil
	case format.TypeBool:
		if len(data) < 1 {
			return Value{}, 0, errs.ErrTruncated
		}
		return Value{Type: t, Bool: data[0] != 0}, 1, nil
	case format.TypeInt32:
		if len(data) < 4 {
			return Value{}, 0, errs.ErrTruncated
		}
		return Value{Type: t, Int32: int32(endian.LittleEndian.Uint32(data))}, 4, nil
	case format.TypeInt64:
		if len(data) < 8 {
			return Value{}, 0, errs.ErrTruncated
		}
		return Value{Type: t, Int64: int64(endian.LittleEndian.Uint64(data))}, 8, nil
	case format.TypeFloat32:
		if len(data) < 4 {
			return Value{}, 0, errs.ErrTruncated
		}
		return Value{Type: t, Float32: math.Float32frombits(endian.LittleEndian.Uint32(data))}, 4, nil
	case format.TypeFloat64:
		if len(data) < 8 {
			return Value{}, 0, errs.ErrTruncated
		}
		return Value{Type: t, Float64: math.Float64frombits(endian.LittleEndian.Uint64(data))}, 8, nil
	case format.TypeBytes:
		b, n, err := decodeLenPrefixed(data)
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Type: t, Bytes: b}, n, nil
	case format.TypeString:
		b, n, err := decodeLenPrefixed(data)
		if err != nil {
			return Value{}, 0, err
		}
		if !utf8.Valid(b) {
			return Value{}, 0, errs.ErrInvalidUtf8
		}
		return Value{Type: t, Bytes: b}, n, nil
	case format.TypeArray:
		return decodeArray(data, depth)
	case format.TypeMap:
		return decodeMap(data, depth)
	case format.TypeRow:
		return decodeRow(data)
	default:
		return Value{}, 0, errs.ErrUnknownType
	}
}

func decodeLenPrefixed(data []byte) ([]byte, int, error) {
	length, n, err := varint.DecodeUint64(data)
	if err != nil {
		return nil, 0, err
	}
	total := n + int(length)
	if len(data) < total {
		return nil, 0, errs.ErrTruncated
	}

	return data[n:total], total, nil
}

func decodeArray(data []byte, depth int) (Value, int, error) {
	count, n, err := varint.DecodeUint64(data)
	if err != nil {
		return Value{}, 0, err
	}
	if count == 0 {
		return Value{Type: format.TypeArray, Array: &Array{}}, n, nil
	}

	if len(data) < n+1 {
		return Value{}, 0, errs.ErrTruncated
	}
	elemType := format.TypeCode(data[n])
	n++

	elems := make([]Value, count)
	for i := uint64(0); i < count; i++ {
		elem, consumed, err := decode(data[n:], elemType, depth+1)
		if err != nil {
			return Value{}, 0, err
		}
		elems[i] = elem
		n += consumed
	}

	return Value{Type: format.TypeArray, Array: &Array{ElemType: elemType, Elems: elems}}, n, nil
}

func decodeMap(data []byte, depth int) (Value, int, error) {
	count, n, err := varint.DecodeUint64(data)
	if err != nil {
		return Value{}, 0, err
	}
	if count == 0 {
		return Value{Type: format.TypeMap, Map: &Map{}}, n, nil
	}

	if len(data) < n+2 {
		return Value{}, 0, errs.ErrTruncated
	}
	keyType := format.TypeCode(data[n])
	valType := format.TypeCode(data[n+1])
	n += 2

	if !keyType.IsValidMapKeyType() {
		return Value{}, 0, errs.ErrInvalidMapKeyType
	}

	entries := make([]MapEntry, count)
	for i := uint64(0); i < count; i++ {
		key, consumed, err := decode(data[n:], keyType, depth+1)
		if err != nil {
			return Value{}, 0, err
		}
		n += consumed

		val, consumed, err := decode(data[n:], valType, depth+1)
		if err != nil {
			return Value{}, 0, err
		}
		n += consumed

		entries[i] = MapEntry{Key: key, Val: val}
	}

	return Value{Type: format.TypeMap, Map: &Map{KeyType: keyType, ValType: valType, Entries: entries}}, n, nil
}

// decodeRow captures the raw bytes of a complete nested record without
// recursing into its fields; record.NewReader can parse them on
// demand. The byte length is determined structurally via Len.
func decodeRow(data []byte) (Value, int, error) {
	n, err := Len(data, format.TypeRow)
	if err != nil {
		return Value{}, 0, err
	}

	return Value{Type: format.TypeRow, Row: data[:n]}, n, nil
}
