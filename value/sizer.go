package value

import (
	"github.com/imprintio/imprint/errs"
	"github.com/imprintio/imprint/format"
	"github.com/imprintio/imprint/header"
	"github.com/imprintio/imprint/varint"
)

// Len returns the byte length of the value of type t encoded at the
// start of data, without decoding the value's body.
//
// Fixed-width types have a statically known size. Variable-width types
// (bytes, string, array, map, row) are measured by peeking only their
// structural bytes — counts, type codes, length prefixes, and (for
// nested rows) the outer header's payload_size field — per spec §4.5.
// This is the function Reader, Projection, and Composition use to
// determine value byte ranges without invoking value decoding.
func Len(data []byte, t format.TypeCode) (int, error) {
	if t.IsFixedWidth() {
		n := t.FixedWidth()
		if len(data) < n {
			return 0, errs.ErrTruncated
		}
		return n, nil
	}

	switch t {
	case format.TypeBytes, format.TypeString:
		return lenPrefixed(data)
	case format.TypeArray:
		return lenArray(data)
	case format.TypeMap:
		return lenMap(data)
	case format.TypeRow:
		return lenRow(data)
	default:
		return 0, errs.ErrUnknownType
	}
}

func lenPrefixed(data []byte) (int, error) {
	length, n, err := varint.DecodeUint64(data)
	if err != nil {
		return 0, err
	}
	total := n + int(length)
	if len(data) < total {
		return 0, errs.ErrTruncated
	}

	return total, nil
}

func lenArray(data []byte) (int, error) {
	count, n, err := varint.DecodeUint64(data)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return n, nil
	}

	if len(data) < n+1 {
		return 0, errs.ErrTruncated
	}
	elemType := format.TypeCode(data[n])
	n++

	for i := uint64(0); i < count; i++ {
		elemLen, err := Len(data[n:], elemType)
		if err != nil {
			return 0, err
		}
		n += elemLen
	}

	return n, nil
}

func lenMap(data []byte) (int, error) {
	count, n, err := varint.DecodeUint64(data)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return n, nil
	}

	if len(data) < n+2 {
		return 0, errs.ErrTruncated
	}
	keyType := format.TypeCode(data[n])
	valType := format.TypeCode(data[n+1])
	n += 2

	for i := uint64(0); i < count; i++ {
		keyLen, err := Len(data[n:], keyType)
		if err != nil {
			return 0, err
		}
		n += keyLen

		valLen, err := Len(data[n:], valType)
		if err != nil {
			return 0, err
		}
		n += valLen
	}

	return n, nil
}

// lenRow measures a nested record's total byte length using only its
// outer header and directory structure: header.Size + directory size
// + header.PayloadSize. It never inspects the nested payload's values.
func lenRow(data []byte) (int, error) {
	if len(data) < header.Size {
		return 0, errs.ErrTruncated
	}
	h, err := header.Parse(data)
	if err != nil {
		return 0, err
	}

	n := header.Size
	if h.HasDirectory() {
		count, cn, err := varint.DecodeUint32(data[n:])
		if err != nil {
			return 0, err
		}
		n += cn + int(count)*directoryEntrySize
	}

	total := n + int(h.PayloadSize)
	if len(data) < total {
		return 0, errs.ErrTruncated
	}

	return total, nil
}

// directoryEntrySize mirrors directory.EntrySize; duplicated as a
// constant here to avoid an import cycle (directory does not need to
// depend on value, and value only needs the size, not directory's
// parsing/search logic).
const directoryEntrySize = 9
