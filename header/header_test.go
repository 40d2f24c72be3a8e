package header

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imprintio/imprint/errs"
)

func TestRoundtrip(t *testing.T) {
	h := New(7, 0)
	h.PayloadSize = 7

	buf := h.Bytes()
	require.Len(t, buf, Size)

	got, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
	require.True(t, got.HasDirectory())
}

func TestBytes_S1GoldenLayout(t *testing.T) {
	// Scenario S1 from the spec: fieldspace=7, hash=0, payload_size=7.
	want := []byte{0x49, 0x01, 0x01, 0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x07, 0x00, 0x00, 0x00}

	h := New(7, 0)
	h.PayloadSize = 7
	require.Equal(t, want, h.Bytes())
}

func TestParse_BadMagic(t *testing.T) {
	data := New(1, 1).Bytes()
	data[0] = 0x4A

	_, err := Parse(data)
	require.True(t, errors.Is(err, errs.ErrBadMagic))
}

func TestParse_UnsupportedVersion(t *testing.T) {
	data := New(1, 1).Bytes()
	data[1] = 0x02

	_, err := Parse(data)
	require.True(t, errors.Is(err, errs.ErrUnsupportedVersion))
}

func TestParse_ReservedFlagSet(t *testing.T) {
	data := New(1, 1).Bytes()
	data[2] |= 0x02

	_, err := Parse(data)
	require.True(t, errors.Is(err, errs.ErrReservedFlagSet))
}

func TestParse_TooShort(t *testing.T) {
	_, err := Parse(make([]byte, Size-1))
	require.True(t, errors.Is(err, errs.ErrInvalidHeaderSize))
}
