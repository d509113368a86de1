package compress

import "github.com/arloliu/profio/format"

// ZstdCodec reads and writes Zstandard streams.
//
// The pure Go implementation (klauspost/compress) is used by default; building with cgo
// and the "gozstd" tag switches to the libzstd binding (valyala/gozstd).
type ZstdCodec struct{}

var _ StreamCodec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstandard stream codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

func (c ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}
