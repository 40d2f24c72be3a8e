package record

import (
	"fmt"

	"github.com/imprintio/imprint/directory"
	"github.com/imprintio/imprint/errs"
	"github.com/imprintio/imprint/format"
	"github.com/imprintio/imprint/header"
	"github.com/imprintio/imprint/internal/options"
	"github.com/imprintio/imprint/internal/pool"
)

// ComposeOption configures a Compose call.
type ComposeOption = options.Option[*composeConfig]

type composeConfig struct {
	compactOnCollision  bool
	lenientTypeMismatch bool
	preserveSchemaHash  bool
	schemaHash          uint32
}

func defaultComposeConfig() *composeConfig {
	return &composeConfig{compactOnCollision: true}
}

// WithLenientTypeMismatch disables the default strict failure on a
// field-id collision whose entries carry differing TypeCodes. Under
// leniency, A's entry (and type) still wins; B's colliding value is
// dropped exactly as on a same-type collision. Per §4.8, strict is the
// core invariant; leniency is an offered, non-core convenience.
func WithLenientTypeMismatch() ComposeOption {
	return options.NoError(func(c *composeConfig) {
		c.lenientTypeMismatch = true
	})
}

// WithKeepCollisionBytes disables compact_on_collision: B's colliding
// value bytes are still appended to the output payload as dead bytes,
// but the directory never references them. The default is compact
// (collision bytes dropped entirely).
func WithKeepCollisionBytes() ComposeOption {
	return options.NoError(func(c *composeConfig) {
		c.compactOnCollision = false
	})
}

// WithComposePreserveSchemaHash and WithComposeSchemaHash follow the
// same caller-assigned-schema-hash policy as projection (§4.7, §4.8):
// by default the output schema hash is zeroed.
func WithComposePreserveSchemaHash() ComposeOption {
	return options.NoError(func(c *composeConfig) {
		c.preserveSchemaHash = true
	})
}

// WithComposeSchemaHash sets the output schema hash explicitly.
func WithComposeSchemaHash(hash uint32) ComposeOption {
	return options.NoError(func(c *composeConfig) {
		c.preserveSchemaHash = false
		c.schemaHash = hash
	})
}

type composeSource struct {
	fieldID uint32
	typ     format.TypeCode
	bytes   []byte
}

// Compose merges records a and b, which must share a fieldspace id,
// into one record containing the union of their fields. On a field-id
// collision, a's entry wins; by default (compact_on_collision=true) b's
// colliding value bytes are excluded from the output payload entirely.
//
// Fails with errs.ErrFieldspaceMismatch if a and b's fieldspace ids
// differ, or errs.ErrTypeMismatch if a collision's two entries carry
// differing TypeCodes under the (default) strict policy. No value
// decoding occurs: the merge operates purely on directory entries and
// payload byte ranges (§4.8 algorithm).
func Compose(a, b []byte, opts ...ComposeOption) ([]byte, error) {
	cfg := defaultComposeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	ra, err := NewReader(a)
	if err != nil {
		return nil, err
	}
	rb, err := NewReader(b)
	if err != nil {
		return nil, err
	}

	fieldspaceID, _ := ra.Schema()
	fieldspaceB, _ := rb.Schema()
	if fieldspaceID != fieldspaceB {
		return nil, fmt.Errorf("%w: %d != %d", errs.ErrFieldspaceMismatch, fieldspaceID, fieldspaceB)
	}

	merged := make([]composeSource, 0, ra.dir.Len()+rb.dir.Len())
	var dead [][]byte // only populated when WithKeepCollisionBytes is set

	i, j := 0, 0
	for i < ra.dir.Len() && j < rb.dir.Len() {
		ea := ra.dir.At(i)
		eb := rb.dir.At(j)

		switch {
		case ea.FieldID < eb.FieldID:
			src, err := sourceBytes(ra, ea, i)
			if err != nil {
				return nil, err
			}
			merged = append(merged, src)
			i++
		case ea.FieldID > eb.FieldID:
			src, err := sourceBytes(rb, eb, j)
			if err != nil {
				return nil, err
			}
			merged = append(merged, src)
			j++
		default:
			if ea.Type != eb.Type && !cfg.lenientTypeMismatch {
				return nil, fmt.Errorf("%w: field %d has %s in A and %s in B",
					errs.ErrTypeMismatch, ea.FieldID, ea.Type, eb.Type)
			}

			srcA, err := sourceBytes(ra, ea, i)
			if err != nil {
				return nil, err
			}
			merged = append(merged, srcA)

			if !cfg.compactOnCollision {
				srcB, err := sourceBytes(rb, eb, j)
				if err != nil {
					return nil, err
				}
				dead = append(dead, srcB.bytes)
			}

			i++
			j++
		}
	}
	for ; i < ra.dir.Len(); i++ {
		ea := ra.dir.At(i)
		src, err := sourceBytes(ra, ea, i)
		if err != nil {
			return nil, err
		}
		merged = append(merged, src)
	}
	for ; j < rb.dir.Len(); j++ {
		eb := rb.dir.At(j)
		src, err := sourceBytes(rb, eb, j)
		if err != nil {
			return nil, err
		}
		merged = append(merged, src)
	}

	dirSize := directory.HeaderSize(len(merged)) + len(merged)*directory.EntrySize
	payloadSize := 0
	for _, s := range merged {
		payloadSize += len(s.bytes)
	}
	deadSize := 0
	for _, d := range dead {
		deadSize += len(d)
	}

	schemaHash := uint32(0)
	if cfg.preserveSchemaHash {
		_, schemaHash = ra.Schema()
	} else {
		schemaHash = cfg.schemaHash
	}

	buf := pool.GetComposeBuffer()
	defer pool.PutComposeBuffer(buf)
	buf.Grow(header.Size + dirSize + payloadSize + deadSize)

	h := header.New(fieldspaceID, schemaHash)
	h.PayloadSize = uint32(payloadSize + deadSize)
	buf.MustWrite(h.Bytes())
	buf.B = directory.AppendHeader(buf.B, len(merged))

	var offset uint32
	for _, s := range merged {
		buf.B = directory.AppendEntry(buf.B, directory.Entry{FieldID: s.fieldID, Type: s.typ, Offset: offset})
		offset += uint32(len(s.bytes))
	}
	for _, s := range merged {
		buf.MustWrite(s.bytes)
	}
	for _, d := range dead {
		buf.MustWrite(d)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)

	return out, nil
}

func sourceBytes(r *Reader, e directory.Entry, idx int) (composeSource, error) {
	n, err := r.valueLenAt(e, idx)
	if err != nil {
		return composeSource{}, err
	}

	return composeSource{
		fieldID: e.FieldID,
		typ:     e.Type,
		bytes:   r.payload[e.Offset : e.Offset+uint32(n)],
	}, nil
}
