package directory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imprintio/imprint/errs"
	"github.com/imprintio/imprint/format"
)

func buildRaw(entries []Entry) []byte {
	buf := AppendHeader(nil, len(entries))
	for _, e := range entries {
		buf = AppendEntry(buf, e)
	}

	return buf
}

func TestParse_S1GoldenLayout(t *testing.T) {
	entries := []Entry{
		{FieldID: 1, Type: format.TypeInt32, Offset: 0},
		{FieldID: 2, Type: format.TypeString, Offset: 4},
	}
	data := buildRaw(entries)

	want := []byte{
		0x02,
		0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00, 0x07, 0x04, 0x00, 0x00, 0x00,
	}
	require.Equal(t, want, data)

	dir, n, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, 2, dir.Len())
	require.Equal(t, entries[0], dir.At(0))
	require.Equal(t, entries[1], dir.At(1))
}

func TestFind(t *testing.T) {
	entries := []Entry{
		{FieldID: 1, Type: format.TypeInt32, Offset: 0},
		{FieldID: 5, Type: format.TypeBool, Offset: 4},
		{FieldID: 9, Type: format.TypeString, Offset: 5},
	}
	dir, _, err := Parse(buildRaw(entries))
	require.NoError(t, err)

	e, idx, ok := dir.Find(5)
	require.True(t, ok)
	require.Equal(t, 1, idx)
	require.Equal(t, entries[1], e)

	_, _, ok = dir.Find(6)
	require.False(t, ok)
}

func TestParse_ZeroFieldRecord(t *testing.T) {
	dir, n, err := Parse(buildRaw(nil))
	require.NoError(t, err)
	require.Equal(t, 1, n) // single zero-count varint byte
	require.Equal(t, 0, dir.Len())

	_, _, ok := dir.Find(1)
	require.False(t, ok)
}

func TestParse_UnsortedFails(t *testing.T) {
	data := buildRaw(nil)
	data[0] = 2
	data = AppendEntry(data, Entry{FieldID: 5, Type: format.TypeInt32})
	data = AppendEntry(data, Entry{FieldID: 3, Type: format.TypeInt32})

	_, _, err := Parse(data)
	require.True(t, errors.Is(err, errs.ErrDirectoryUnsorted))
}

func TestParse_DuplicateFieldIdIsUnsorted(t *testing.T) {
	data := buildRaw(nil)
	data[0] = 2
	data = AppendEntry(data, Entry{FieldID: 5, Type: format.TypeInt32})
	data = AppendEntry(data, Entry{FieldID: 5, Type: format.TypeInt32})

	_, _, err := Parse(data)
	require.True(t, errors.Is(err, errs.ErrDirectoryUnsorted))
}

func TestParse_TooShortForDeclaredCount(t *testing.T) {
	data := buildRaw([]Entry{{FieldID: 1}})
	truncated := data[:len(data)-1]

	_, _, err := Parse(truncated)
	require.True(t, errors.Is(err, errs.ErrInvalidDirectorySize))
}

func TestFieldIDs(t *testing.T) {
	entries := []Entry{{FieldID: 1}, {FieldID: 2}, {FieldID: 9}}
	dir, _, err := Parse(buildRaw(entries))
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2, 9}, dir.FieldIDs())
}
