package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imprintio/imprint/errs"
	"github.com/imprintio/imprint/format"
	"github.com/imprintio/imprint/value"
)

func TestBuilder_S1PrimitiveRoundtrip(t *testing.T) {
	b := NewBuilder()
	b.Set(1, format.TypeInt32, value.Value{Int32: 42})
	b.Set(2, format.TypeString, value.Value{Bytes: []byte("hi")})

	out, err := b.Finalize(7, 0)
	require.NoError(t, err)

	want := []byte{
		0x49, 0x01, 0x01, 0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x07, 0x00, 0x00, 0x00,
		0x02,
		0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00, 0x07, 0x04, 0x00, 0x00, 0x00,
		0x2A, 0x00, 0x00, 0x00,
		0x02, 'h', 'i',
	}
	require.Equal(t, want, out)
}

func TestBuilder_LastWriteWins(t *testing.T) {
	b := NewBuilder()
	b.Set(1, format.TypeInt32, value.Value{Int32: 1})
	b.Set(1, format.TypeInt32, value.Value{Int32: 2})

	out, err := b.Finalize(1, 0)
	require.NoError(t, err)

	r, err := NewReader(out)
	require.NoError(t, err)
	require.Equal(t, 1, r.FieldCount())

	v, ok, err := r.GetValue(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(2), v.Int32)
}

func TestBuilder_RejectDuplicates(t *testing.T) {
	b := NewBuilder(WithRejectDuplicates())
	b.Set(1, format.TypeInt32, value.Value{Int32: 1})
	b.Set(1, format.TypeInt32, value.Value{Int32: 2})

	_, err := b.Finalize(1, 0)
	require.True(t, errors.Is(err, errs.ErrDuplicateFieldId))
}

func TestBuilder_ZeroFieldRecord(t *testing.T) {
	b := NewBuilder()
	out, err := b.Finalize(1, 0)
	require.NoError(t, err)

	r, err := NewReader(out)
	require.NoError(t, err)
	require.Equal(t, 0, r.FieldCount())
}

func TestBuilder_CanonicalOrderingIndependentOfSetOrder(t *testing.T) {
	b1 := NewBuilder()
	b1.Set(2, format.TypeInt32, value.Value{Int32: 2})
	b1.Set(1, format.TypeInt32, value.Value{Int32: 1})
	out1, err := b1.Finalize(1, 0)
	require.NoError(t, err)

	b2 := NewBuilder()
	b2.Set(1, format.TypeInt32, value.Value{Int32: 1})
	b2.Set(2, format.TypeInt32, value.Value{Int32: 2})
	out2, err := b2.Finalize(1, 0)
	require.NoError(t, err)

	require.Equal(t, out1, out2)
}
