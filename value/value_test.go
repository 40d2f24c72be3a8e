package value

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imprintio/imprint/errs"
	"github.com/imprintio/imprint/format"
)

func roundtrip(t *testing.T, typ format.TypeCode, v Value) Value {
	t.Helper()
	buf := Encode(nil, typ, v)
	got, n, err := Decode(buf, typ)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)

	return got
}

func TestRoundtrip_Primitives(t *testing.T) {
	require.Equal(t, true, roundtrip(t, format.TypeBool, Value{Bool: true}).Bool)
	require.Equal(t, int32(-42), roundtrip(t, format.TypeInt32, Value{Int32: -42}).Int32)
	require.Equal(t, int64(-9000000000), roundtrip(t, format.TypeInt64, Value{Int64: -9000000000}).Int64)
	require.InDelta(t, float32(3.5), roundtrip(t, format.TypeFloat32, Value{Float32: 3.5}).Float32, 0)
	require.InDelta(t, 2.71828, roundtrip(t, format.TypeFloat64, Value{Float64: 2.71828}).Float64, 0)
}

func TestRoundtrip_Null(t *testing.T) {
	buf := Encode(nil, format.TypeNull, Value{})
	require.Empty(t, buf)

	got, n, err := Decode(buf, format.TypeNull)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Equal(t, format.TypeNull, got.Type)
}

func TestRoundtrip_StringAndBytes(t *testing.T) {
	got := roundtrip(t, format.TypeString, Value{Bytes: []byte("hi")})
	require.Equal(t, "hi", got.Str())

	got = roundtrip(t, format.TypeBytes, Value{Bytes: []byte{0xDE, 0xAD}})
	require.Equal(t, []byte{0xDE, 0xAD}, got.Bytes)
}

func TestEncode_S1PrimitiveLayout(t *testing.T) {
	// Scenario S1: field 1 = int32(42), field 2 = string("hi").
	buf := Encode(nil, format.TypeInt32, Value{Int32: 42})
	buf = Encode(buf, format.TypeString, Value{Bytes: []byte("hi")})

	want := []byte{0x2A, 0x00, 0x00, 0x00, 0x02, 'h', 'i'}
	require.Equal(t, want, buf)
}

func TestEmptyStringZeroPayload(t *testing.T) {
	buf := Encode(nil, format.TypeString, Value{Bytes: nil})
	require.Equal(t, []byte{0x00}, buf)
}

func TestDecode_InvalidUtf8(t *testing.T) {
	buf := []byte{0x02, 0xFF, 0xFE}
	_, _, err := Decode(buf, format.TypeString)
	require.True(t, errors.Is(err, errs.ErrInvalidUtf8))
}

func TestDecode_Truncated(t *testing.T) {
	_, _, err := Decode([]byte{0x01, 0x02}, format.TypeInt32)
	require.True(t, errors.Is(err, errs.ErrTruncated))
}

func TestDecode_UnknownType(t *testing.T) {
	_, _, err := Decode([]byte{}, format.TypeCode(0x20))
	require.True(t, errors.Is(err, errs.ErrUnknownType))
}

func TestRoundtrip_Array(t *testing.T) {
	arr := &Array{ElemType: format.TypeInt32, Elems: []Value{{Int32: 1}, {Int32: 2}, {Int32: 3}}}
	got := roundtrip(t, format.TypeArray, Value{Array: arr})

	require.Equal(t, format.TypeInt32, got.Array.ElemType)
	require.Len(t, got.Array.Elems, 3)
	require.Equal(t, int32(2), got.Array.Elems[1].Int32)
}

func TestArray_EmptyOmitsElemTypeByte(t *testing.T) {
	buf := Encode(nil, format.TypeArray, Value{Array: &Array{}})
	require.Equal(t, []byte{0x00}, buf)

	got, n, err := Decode(buf, format.TypeArray)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Empty(t, got.Array.Elems)
}

func TestRoundtrip_Map(t *testing.T) {
	m := &Map{
		KeyType: format.TypeString,
		ValType: format.TypeInt64,
		Entries: []MapEntry{
			{Key: Value{Bytes: []byte("a")}, Val: Value{Int64: 1}},
			{Key: Value{Bytes: []byte("b")}, Val: Value{Int64: 2}},
		},
	}
	got := roundtrip(t, format.TypeMap, Value{Map: m})

	require.Len(t, got.Map.Entries, 2)
	require.Equal(t, "a", got.Map.Entries[0].Key.Str())
	require.Equal(t, int64(2), got.Map.Entries[1].Val.Int64)
}

func TestMap_EmptyOmitsTypeBytes(t *testing.T) {
	buf := Encode(nil, format.TypeMap, Value{Map: &Map{}})
	require.Equal(t, []byte{0x00}, buf)
}

func TestDecode_InvalidMapKeyType(t *testing.T) {
	// count=1, keyType=float64 (invalid), valType=int32
	buf := []byte{0x01, byte(format.TypeFloat64), byte(format.TypeInt32)}
	_, _, err := Decode(buf, format.TypeMap)
	require.True(t, errors.Is(err, errs.ErrInvalidMapKeyType))
}

func TestLen_MatchesEncodedSize(t *testing.T) {
	buf := Encode(nil, format.TypeString, Value{Bytes: []byte("hello world")})
	n, err := Len(buf, format.TypeString)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
}

func TestLen_Array(t *testing.T) {
	arr := &Array{ElemType: format.TypeInt64, Elems: []Value{{Int64: 1}, {Int64: 2}}}
	buf := Encode(nil, format.TypeArray, Value{Array: arr})

	n, err := Len(buf, format.TypeArray)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
}

func TestLen_TrailingBytesIgnored(t *testing.T) {
	buf := Encode(nil, format.TypeInt32, Value{Int32: 7})
	buf = append(buf, 0xFF, 0xFF, 0xFF) // trailing garbage from a following field

	n, err := Len(buf, format.TypeInt32)
	require.NoError(t, err)
	require.Equal(t, 4, n)
}
