// Package directory implements the sorted field directory described in
// spec §4.3: a varint entry count followed by fixed 9-byte entries
// (field_id u32 LE, type u8, offset u32 LE), strictly ascending by
// field id, supporting O(log N) lookup by binary search.
package directory

import (
	"github.com/imprintio/imprint/endian"
	"github.com/imprintio/imprint/errs"
	"github.com/imprintio/imprint/format"
	"github.com/imprintio/imprint/varint"
)

// EntrySize is the fixed byte length of a single directory entry.
const EntrySize = 9

// Entry is a single (field_id, type, offset) directory triple. Offset
// is measured from the start of the payload region.
type Entry struct {
	FieldID uint32
	Type    format.TypeCode
	Offset  uint32
}

// Directory is a parsed, borrowed view over a record's directory
// bytes. It holds no copies: Find and At read directly from data.
type Directory struct {
	data  []byte // the N entries, EntrySize bytes each, not including the leading varint count
	count int
}

// Parse reads the varint entry count and the following entries from
// data, validating that field ids are strictly ascending. It returns
// the Directory and the number of bytes consumed (count varint plus
// entries).
//
// Fails with errs.ErrMalformedVarint, errs.ErrInvalidDirectorySize (not
// enough bytes for the declared entry count), or errs.ErrDirectoryUnsorted.
func Parse(data []byte) (Directory, int, error) {
	count, n, err := varint.DecodeUint32(data)
	if err != nil {
		return Directory{}, 0, err
	}

	entriesSize := int(count) * EntrySize
	if len(data) < n+entriesSize {
		return Directory{}, 0, errs.ErrInvalidDirectorySize
	}

	entries := data[n : n+entriesSize]

	var lastID uint32
	for i := 0; i < int(count); i++ {
		id := endian.LittleEndian.Uint32(entries[i*EntrySize:])
		if i > 0 && id <= lastID {
			return Directory{}, 0, errs.WithOffset(errs.ErrDirectoryUnsorted, n+i*EntrySize)
		}
		lastID = id
	}

	return Directory{data: entries, count: int(count)}, n + entriesSize, nil
}

// Len returns the number of entries in the directory.
func (d Directory) Len() int {
	return d.count
}

// At returns the entry at index i, in ascending field-id order.
func (d Directory) At(i int) Entry {
	off := i * EntrySize
	b := d.data[off : off+EntrySize]

	return Entry{
		FieldID: endian.LittleEndian.Uint32(b[0:4]),
		Type:    format.TypeCode(b[4]),
		Offset:  endian.LittleEndian.Uint32(b[5:9]),
	}
}

// Find performs a binary search for fieldID and returns its entry and
// index, or ok=false if not present.
func (d Directory) Find(fieldID uint32) (entry Entry, index int, ok bool) {
	lo, hi := 0, d.count
	for lo < hi {
		mid := (lo + hi) / 2
		id := endian.LittleEndian.Uint32(d.data[mid*EntrySize:])
		switch {
		case id == fieldID:
			return d.At(mid), mid, true
		case id < fieldID:
			lo = mid + 1
		default:
			hi = mid
		}
	}

	return Entry{}, 0, false
}

// FieldIDs returns the field ids present, in ascending order. The
// returned slice is freshly allocated.
func (d Directory) FieldIDs() []uint32 {
	ids := make([]uint32, d.count)
	for i := range ids {
		ids[i] = endian.LittleEndian.Uint32(d.data[i*EntrySize:])
	}

	return ids
}

// AppendEntry appends entry's wire encoding (9 bytes) to buf.
func AppendEntry(buf []byte, e Entry) []byte {
	var b [EntrySize]byte
	endian.LittleEndian.PutUint32(b[0:4], e.FieldID)
	b[4] = byte(e.Type)
	endian.LittleEndian.PutUint32(b[5:9], e.Offset)

	return append(buf, b[:]...)
}

// AppendHeader appends the varint entry count prefix for n entries to buf.
func AppendHeader(buf []byte, n int) []byte {
	return varint.AppendUint32(buf, uint32(n))
}

// HeaderSize returns the byte length of the varint count prefix for n entries.
func HeaderSize(n int) int {
	return varint.Size(uint64(n))
}
