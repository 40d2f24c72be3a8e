// Package imprintwire is an optional transport/framing collaborator
// (spec §1's "out of scope" list, §4.10): it wraps a fully-encoded
// Imprint record with a selectable compressor before handing bytes to
// a network layer, and reverses it on receipt. It never inspects the
// record's header, directory, or payload — compression operates on
// the record as an opaque byte string.
package imprintwire

import (
	"fmt"

	"github.com/imprintio/imprint/format"
)

// Codec compresses and decompresses framed Imprint record bytes.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the built-in Codec for the given compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("imprintwire: unsupported compression type: %s", compressionType)
}

// Frame prepends a single CompressionType byte to compressed, marking
// the algorithm used, producing a self-describing wire frame a
// receiver can decode without side-channel configuration.
func Frame(compressionType format.CompressionType, record []byte) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(record)
	if err != nil {
		return nil, fmt.Errorf("imprintwire: compress: %w", err)
	}

	out := make([]byte, 0, 1+len(compressed))
	out = append(out, byte(compressionType))
	out = append(out, compressed...)

	return out, nil
}

// Unframe reverses Frame: it reads the leading CompressionType byte
// and decompresses the remainder back into record bytes.
func Unframe(framed []byte) ([]byte, error) {
	if len(framed) < 1 {
		return nil, fmt.Errorf("imprintwire: frame too short")
	}

	codec, err := GetCodec(format.CompressionType(framed[0]))
	if err != nil {
		return nil, err
	}

	record, err := codec.Decompress(framed[1:])
	if err != nil {
		return nil, fmt.Errorf("imprintwire: decompress: %w", err)
	}

	return record, nil
}
