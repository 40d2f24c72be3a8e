// Package record implements the reader, builder, projection, and
// composition operators described in spec §4.5–§4.8: parsing an
// encoded Imprint record, accumulating one from scratch, and the two
// zero-value-decode byte algebra operators over encoded records.
package record

import (
	"iter"

	"github.com/imprintio/imprint/directory"
	"github.com/imprintio/imprint/errs"
	"github.com/imprintio/imprint/format"
	"github.com/imprintio/imprint/header"
	"github.com/imprintio/imprint/value"
)

// RawField is a single directory-ordered (type, raw bytes) pair
// yielded by Reader.Iter.
type RawField struct {
	Type  format.TypeCode
	Bytes []byte
}

// Reader parses a byte slice into a handle exposing field lookup, raw
// byte access, and typed value access.
//
// Reader is NOT thread-safe to construct concurrently with use of the
// same instance, but once constructed its methods only read from the
// borrowed slice and are safe for concurrent use by multiple readers.
type Reader struct {
	data []byte
	hdr  header.Header
	dir  directory.Directory

	payload []byte
}

// NewReader parses data's header and directory. The returned Reader
// borrows data; it is never copied.
//
// Fails with errs.ErrInvalidHeaderSize, errs.ErrBadMagic,
// errs.ErrUnsupportedVersion, errs.ErrReservedFlagSet (header
// issues), or errs.ErrMalformedVarint/errs.ErrDirectoryUnsorted/
// errs.ErrInvalidDirectorySize (directory issues).
func NewReader(data []byte) (*Reader, error) {
	h, err := header.Parse(data)
	if err != nil {
		return nil, err
	}

	r := &Reader{data: data, hdr: h}

	n := header.Size
	if h.HasDirectory() {
		dir, dn, err := directory.Parse(data[n:])
		if err != nil {
			return nil, err
		}
		r.dir = dir
		n += dn
	}

	if len(data) < n+int(h.PayloadSize) {
		return nil, errs.ErrTruncated
	}
	r.payload = data[n : n+int(h.PayloadSize)]

	return r, nil
}

// FieldCount returns the number of fields the record's directory declares.
func (r *Reader) FieldCount() int {
	return r.dir.Len()
}

// Schema returns the record's fieldspace id and schema hash.
func (r *Reader) Schema() (fieldspaceID, schemaHash uint32) {
	return r.hdr.FieldspaceID, r.hdr.SchemaHash
}

// Find performs a binary search for fieldID's directory entry.
func (r *Reader) Find(fieldID uint32) (directory.Entry, bool) {
	entry, _, ok := r.dir.Find(fieldID)
	return entry, ok
}

// GetRaw returns the type code and raw byte range covering fieldID's
// value, exactly as the value codec would consume it (length prefix
// included, not stripped). ok is false if fieldID is absent; this is
// not an error. An error is returned only if the field is present but
// its byte range cannot be determined (e.g. truncated payload).
func (r *Reader) GetRaw(fieldID uint32) (t format.TypeCode, raw []byte, ok bool, err error) {
	entry, idx, found := r.dir.Find(fieldID)
	if !found {
		return 0, nil, false, nil
	}

	n, err := r.valueLenAt(entry, idx)
	if err != nil {
		return 0, nil, true, err
	}

	return entry.Type, r.payload[entry.Offset : entry.Offset+uint32(n)], true, nil
}

// GetValue returns fieldID's decoded Value. ok is false if fieldID is
// absent. An error is returned if the field is present but its bytes
// fail to decode.
func (r *Reader) GetValue(fieldID uint32) (v value.Value, ok bool, err error) {
	t, raw, found, err := r.GetRaw(fieldID)
	if !found || err != nil {
		return value.Value{}, found, err
	}

	v, _, err = value.Decode(raw, t)
	return v, true, err
}

// Iter yields (field id, RawField) pairs in canonical ascending field
// id order, without decoding any value.
func (r *Reader) Iter() iter.Seq2[uint32, RawField] {
	return func(yield func(uint32, RawField) bool) {
		for i := 0; i < r.dir.Len(); i++ {
			entry := r.dir.At(i)
			n, err := r.valueLenAt(entry, i)
			if err != nil {
				return
			}

			field := RawField{Type: entry.Type, Bytes: r.payload[entry.Offset : entry.Offset+uint32(n)]}
			if !yield(entry.FieldID, field) {
				return
			}
		}
	}
}

// valueLenAt determines the byte length of entry's value (found at
// directory index idx) without decoding it, per §4.5's sizing rule:
// a fixed-width entry's length is its type's width; otherwise the last
// entry's length is payload_size - offset, and any other entry's
// length comes from value.Len peeking only structural bytes.
//
// entry.Offset is untrusted input (it comes from the directory, which
// is validated only for sort order on parse, not for in-range offsets
// per §4.3/§4.5's on-demand validation model), so every path checks it
// against len(r.payload) before slicing, failing with errs.ErrTruncated
// instead of panicking.
func (r *Reader) valueLenAt(entry directory.Entry, idx int) (int, error) {
	if int(entry.Offset) > len(r.payload) {
		return 0, errs.WithOffset(errs.ErrTruncated, int(entry.Offset))
	}

	if entry.Type.IsFixedWidth() {
		width := entry.Type.FixedWidth()
		if int(entry.Offset)+width > len(r.payload) {
			return 0, errs.WithOffset(errs.ErrTruncated, int(entry.Offset))
		}
		return width, nil
	}

	if idx == r.dir.Len()-1 {
		return len(r.payload) - int(entry.Offset), nil
	}

	n, err := value.Len(r.payload[entry.Offset:], entry.Type)
	if err != nil {
		return 0, err
	}
	if int(entry.Offset)+n > len(r.payload) {
		return 0, errs.WithOffset(errs.ErrTruncated, int(entry.Offset))
	}

	return n, nil
}
