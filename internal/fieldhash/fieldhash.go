// Package fieldhash computes the schema_hash header field from a
// record's sorted field id list.
package fieldhash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// SchemaHash returns a 32-bit digest of the given field ids.
//
// ids must already be in the canonical ascending order a directory
// would store them in; callers build one schema_hash per distinct
// fieldspace shape, not per record, so the sort cost is amortized.
func SchemaHash(ids []uint32) uint32 {
	var buf [4]byte
	d := xxhash.New()
	for _, id := range ids {
		binary.LittleEndian.PutUint32(buf[:], id)
		d.Write(buf[:])
	}

	sum := d.Sum64()
	return uint32(sum) ^ uint32(sum>>32)
}
