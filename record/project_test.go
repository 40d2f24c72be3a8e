package record

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imprintio/imprint/format"
	"github.com/imprintio/imprint/value"
)

func TestProject_S2(t *testing.T) {
	src := buildRecord(t, 7, 0,
		map[uint32]value.Value{1: {Int32: 42}, 2: {Bytes: []byte("hi")}},
		map[uint32]format.TypeCode{1: format.TypeInt32, 2: format.TypeString},
	)

	out, err := Project(src, map[uint32]struct{}{2: {}})
	require.NoError(t, err)

	r, err := NewReader(out)
	require.NoError(t, err)
	require.Equal(t, 1, r.FieldCount())

	typ, raw, ok, err := r.GetRaw(2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, format.TypeString, typ)
	require.Equal(t, []byte{0x02, 'h', 'i'}, raw)

	fieldspaceID, schemaHash := r.Schema()
	require.Equal(t, uint32(7), fieldspaceID)
	require.Equal(t, uint32(0), schemaHash)
}

func TestProject_EmptySetProducesEmptyRecord(t *testing.T) {
	src := buildRecord(t, 7, 0,
		map[uint32]value.Value{1: {Int32: 42}},
		map[uint32]format.TypeCode{1: format.TypeInt32},
	)

	out, err := Project(src, map[uint32]struct{}{})
	require.NoError(t, err)

	r, err := NewReader(out)
	require.NoError(t, err)
	require.Equal(t, 0, r.FieldCount())
}

func TestProject_AbsentFieldIdsIgnored(t *testing.T) {
	src := buildRecord(t, 7, 0,
		map[uint32]value.Value{1: {Int32: 42}},
		map[uint32]format.TypeCode{1: format.TypeInt32},
	)

	out, err := Project(src, map[uint32]struct{}{1: {}, 99: {}})
	require.NoError(t, err)

	r, err := NewReader(out)
	require.NoError(t, err)
	require.Equal(t, 1, r.FieldCount())
}

func TestProject_Idempotent(t *testing.T) {
	src := buildRecord(t, 7, 0,
		map[uint32]value.Value{1: {Int32: 1}, 2: {Int32: 2}, 3: {Int32: 3}},
		map[uint32]format.TypeCode{1: format.TypeInt32, 2: format.TypeInt32, 3: format.TypeInt32},
	)

	set := map[uint32]struct{}{1: {}, 3: {}}
	once, err := Project(src, set)
	require.NoError(t, err)
	twice, err := Project(once, set)
	require.NoError(t, err)

	require.Equal(t, once, twice)
}

func TestProject_PreserveSchemaHash(t *testing.T) {
	src := buildRecord(t, 7, 0xABCD1234,
		map[uint32]value.Value{1: {Int32: 1}},
		map[uint32]format.TypeCode{1: format.TypeInt32},
	)

	out, err := Project(src, map[uint32]struct{}{1: {}}, WithPreserveSchemaHash())
	require.NoError(t, err)

	r, err := NewReader(out)
	require.NoError(t, err)
	_, schemaHash := r.Schema()
	require.Equal(t, uint32(0xABCD1234), schemaHash)
}
