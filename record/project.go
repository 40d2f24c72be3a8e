package record

import (
	"github.com/imprintio/imprint/directory"
	"github.com/imprintio/imprint/format"
	"github.com/imprintio/imprint/header"
	"github.com/imprintio/imprint/internal/options"
	"github.com/imprintio/imprint/internal/pool"
)

// ProjectOption configures a Project call.
type ProjectOption = options.Option[*projectConfig]

type projectConfig struct {
	preserveSchemaHash bool
	schemaHash         uint32
}

// WithPreserveSchemaHash carries the input record's schema hash
// through to the projected output, instead of zeroing it. Per §4.7,
// a projected record generally has a different field set than its
// source and so a different schema hash, but passthrough is useful
// when the caller knows the projection doesn't change the shape in a
// way that matters to them.
func WithPreserveSchemaHash() ProjectOption {
	return options.NoError(func(c *projectConfig) {
		c.preserveSchemaHash = true
	})
}

// WithSchemaHash sets the output record's schema hash explicitly,
// overriding the zero default. Mutually exclusive in effect with
// WithPreserveSchemaHash; whichever option is applied last wins.
func WithSchemaHash(hash uint32) ProjectOption {
	return options.NoError(func(c *projectConfig) {
		c.preserveSchemaHash = false
		c.schemaHash = hash
	})
}

// Project produces a new record containing exactly the entries of r
// whose field id is in fieldIDs, in the same ascending order, with
// offsets rebased to the new payload. Field ids in fieldIDs absent
// from r are silently ignored (§4.7 edge case). No value decoding
// occurs: selected value lengths are determined structurally via
// value.Len (through Reader.valueLenAt).
func Project(data []byte, fieldIDs map[uint32]struct{}, opts ...ProjectOption) ([]byte, error) {
	cfg := &projectConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	r, err := NewReader(data)
	if err != nil {
		return nil, err
	}

	type selected struct {
		fieldID uint32
		typ     format.TypeCode
		bytes   []byte
	}

	sel := make([]selected, 0, len(fieldIDs))
	for i := 0; i < r.dir.Len(); i++ {
		entry := r.dir.At(i)
		if _, want := fieldIDs[entry.FieldID]; !want {
			continue
		}

		n, err := r.valueLenAt(entry, i)
		if err != nil {
			return nil, err
		}

		sel = append(sel, selected{
			fieldID: entry.FieldID,
			typ:     entry.Type,
			bytes:   r.payload[entry.Offset : entry.Offset+uint32(n)],
		})
	}

	dirSize := directory.HeaderSize(len(sel)) + len(sel)*directory.EntrySize
	payloadSize := 0
	for _, s := range sel {
		payloadSize += len(s.bytes)
	}

	schemaHash := uint32(0)
	if cfg.preserveSchemaHash {
		_, schemaHash = r.Schema()
	} else {
		schemaHash = cfg.schemaHash
	}

	fieldspaceID, _ := r.Schema()

	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)
	buf.Grow(header.Size + dirSize + payloadSize)

	h := header.New(fieldspaceID, schemaHash)
	h.PayloadSize = uint32(payloadSize)
	buf.MustWrite(h.Bytes())
	buf.B = directory.AppendHeader(buf.B, len(sel))

	var offset uint32
	for _, s := range sel {
		buf.B = directory.AppendEntry(buf.B, directory.Entry{FieldID: s.fieldID, Type: s.typ, Offset: offset})
		offset += uint32(len(s.bytes))
	}
	for _, s := range sel {
		buf.MustWrite(s.bytes)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)

	return out, nil
}
