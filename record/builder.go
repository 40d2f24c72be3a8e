package record

import (
	"fmt"
	"slices"

	"github.com/imprintio/imprint/directory"
	"github.com/imprintio/imprint/errs"
	"github.com/imprintio/imprint/format"
	"github.com/imprintio/imprint/header"
	"github.com/imprintio/imprint/internal/options"
	"github.com/imprintio/imprint/internal/pool"
	"github.com/imprintio/imprint/value"
)

// Builder accumulates (field id, type, value) triples and emits
// canonical record bytes on Finalize.
//
// Builder is NOT thread-safe and NOT reusable: after Finalize is
// called, construct a new Builder for further encoding.
type Builder struct {
	entries []builderEntry
	index   map[uint32]int // field id -> index into entries, for replace-in-place

	rejectDuplicates bool
	err              error // deferred error from a rejected duplicate Set, surfaced by Finalize
}

type builderEntry struct {
	fieldID uint32
	typ     format.TypeCode
	bytes   []byte
}

// BuilderOption configures a Builder at construction time.
type BuilderOption = options.Option[*Builder]

// WithRejectDuplicates configures the builder to fail with
// errs.ErrDuplicateFieldId on a repeated Set instead of replacing the
// prior value (last-write-wins is the default).
func WithRejectDuplicates() BuilderOption {
	return options.NoError(func(b *Builder) {
		b.rejectDuplicates = true
	})
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{index: make(map[uint32]int)}
	_ = options.Apply(b, opts...)

	return b
}

// Set encodes v as type t and associates it with fieldID.
//
// If fieldID was previously set, the default policy replaces the
// prior entry in place (last write wins). With WithRejectDuplicates,
// Set instead records the error, surfaced by the next Finalize call.
func (b *Builder) Set(fieldID uint32, t format.TypeCode, v value.Value) *Builder {
	return b.SetRaw(fieldID, t, value.Encode(nil, t, v))
}

// SetRaw associates fieldID with an already-encoded value of type t.
// It is the primitive Set builds on; raw is stored as given, without
// passing through the value codec.
func (b *Builder) SetRaw(fieldID uint32, t format.TypeCode, raw []byte) *Builder {
	if idx, exists := b.index[fieldID]; exists {
		if b.rejectDuplicates {
			b.err = fmt.Errorf("%w: field %d", errs.ErrDuplicateFieldId, fieldID)
			return b
		}
		b.entries[idx] = builderEntry{fieldID: fieldID, typ: t, bytes: raw}
		return b
	}

	b.index[fieldID] = len(b.entries)
	b.entries = append(b.entries, builderEntry{fieldID: fieldID, typ: t, bytes: raw})

	return b
}

// Finalize sorts the accumulated entries ascending by field id,
// assigns canonical offsets, and emits header + directory + payload.
//
// Output is canonical (spec invariant 7). Fails with
// errs.ErrDuplicateFieldId if the builder was constructed with
// WithRejectDuplicates and a duplicate was set.
func (b *Builder) Finalize(fieldspaceID, schemaHash uint32) ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}

	slices.SortFunc(b.entries, func(a, c builderEntry) int {
		switch {
		case a.fieldID < c.fieldID:
			return -1
		case a.fieldID > c.fieldID:
			return 1
		default:
			return 0
		}
	})

	dirSize := directory.HeaderSize(len(b.entries)) + len(b.entries)*directory.EntrySize

	payloadSize := 0
	for _, e := range b.entries {
		payloadSize += len(e.bytes)
	}

	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)
	buf.Grow(header.Size + dirSize + payloadSize)

	h := header.New(fieldspaceID, schemaHash)
	h.PayloadSize = uint32(payloadSize)

	buf.MustWrite(h.Bytes())
	buf.B = directory.AppendHeader(buf.B, len(b.entries))

	var offset uint32
	for _, e := range b.entries {
		buf.B = directory.AppendEntry(buf.B, directory.Entry{FieldID: e.fieldID, Type: e.typ, Offset: offset})
		offset += uint32(len(e.bytes))
	}

	for _, e := range b.entries {
		buf.MustWrite(e.bytes)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)

	return out, nil
}
