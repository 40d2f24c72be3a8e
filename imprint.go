// Package imprint provides a self-describing binary row format for
// stream-processing pipelines where each record is serialized once
// and then projected, merged, filtered, or routed many times.
//
// Its central design commitment is that the common manipulations —
// selecting a subset of fields, concatenating two records' fields
// into one — are performed by pointer arithmetic over the encoded
// bytes, without decoding field values and without access to a schema
// registry.
//
// # Core Features
//
//   - Zero-deserialization projection and composition over encoded records
//   - O(log N) field lookup via a sorted directory
//   - Recursive value encoding: primitives, bytes, strings, arrays, maps, nested rows
//   - Canonical byte-determinism: identical logical rows produce identical bytes
//
// # Basic Usage
//
// Building and reading a record:
//
//	import "github.com/imprintio/imprint"
//	import "github.com/imprintio/imprint/format"
//	import "github.com/imprintio/imprint/value"
//
//	b := imprint.NewBuilder()
//	b.Set(1, format.TypeInt32, value.Value{Int32: 42})
//	b.Set(2, format.TypeString, value.Value{Bytes: []byte("hi")})
//	data, _ := b.Finalize(7, imprint.SchemaHash([]uint32{1, 2}))
//
//	r, _ := imprint.NewReader(data)
//	v, ok, _ := r.GetValue(1)
//
// Projecting a subset of fields, and composing two records:
//
//	projected, _ := imprint.Project(data, []uint32{2})
//	merged, _ := imprint.Compose(recordA, recordB)
//
// # Package Structure
//
// This package is a convenience wrapper around the record, header,
// directory, value, and errs packages, simplifying the most common
// use cases. For advanced usage — raw directory access, raw value
// encoding, the projection/composition option set — use the
// subpackages directly.
package imprint

import (
	"github.com/imprintio/imprint/internal/fieldhash"
	"github.com/imprintio/imprint/record"
)

// NewBuilder creates an empty record.Builder.
//
// Example:
//
//	b := imprint.NewBuilder()
//	b.Set(1, format.TypeInt32, value.Value{Int32: 42})
//	data, err := b.Finalize(fieldspaceID, schemaHash)
func NewBuilder(opts ...record.BuilderOption) *record.Builder {
	return record.NewBuilder(opts...)
}

// NewReader parses data into a record.Reader, borrowing data's bytes.
//
// Example:
//
//	r, err := imprint.NewReader(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, ok, err := r.GetValue(fieldID)
func NewReader(data []byte) (*record.Reader, error) {
	return record.NewReader(data)
}

// Project produces a new record containing only fieldIDs from data,
// by byte slicing. Unlike record.Project, it accepts fieldIDs as a
// slice for call-site convenience; order and duplicates don't matter.
//
// Example:
//
//	subset, err := imprint.Project(data, []uint32{2, 5})
func Project(data []byte, fieldIDs []uint32, opts ...record.ProjectOption) ([]byte, error) {
	set := make(map[uint32]struct{}, len(fieldIDs))
	for _, id := range fieldIDs {
		set[id] = struct{}{}
	}

	return record.Project(data, set, opts...)
}

// Compose merges records a and b, which must share a fieldspace id,
// into one record containing the union of their fields. On a
// field-id collision, a's entry wins.
//
// Example:
//
//	merged, err := imprint.Compose(recordA, recordB)
func Compose(a, b []byte, opts ...record.ComposeOption) ([]byte, error) {
	return record.Compose(a, b, opts...)
}

// SchemaHash derives a stable 32-bit schema hash from a field-id list,
// suitable for the schema_hash header field a Builder.Finalize call
// or a Project/Compose schema-hash option expects. The core itself
// treats schema_hash as an opaque caller-assigned value (spec §3); this
// is the concrete derivation external collaborators may standardize
// on, mirroring the teacher's MetricID name-to-id convenience.
func SchemaHash(fieldIDs []uint32) uint32 {
	return fieldhash.SchemaHash(fieldIDs)
}
