package compress

import (
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/profio/format"
)

// lz4ReaderPool pools frame readers; lz4.Reader keeps block buffers across Reset.
var lz4ReaderPool = sync.Pool{
	New: func() any {
		return lz4.NewReader(nil)
	},
}

// LZ4Codec reads and writes the LZ4 frame format used by "*.lz4" containers.
type LZ4Codec struct{}

var _ StreamCodec = (*LZ4Codec)(nil)

// NewLZ4Codec creates a new LZ4 frame codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// NewReader returns a reader decoding the LZ4 frames of r.
func (c LZ4Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, _ := lz4ReaderPool.Get().(*lz4.Reader)
	zr.Reset(r)

	return &readCloser{
		Reader: zr,
		release: func() {
			zr.Reset(nil)
			lz4ReaderPool.Put(zr)
		},
	}, nil
}

// NewWriter returns a writer producing an LZ4 frame on w.
func (c LZ4Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}

func (c LZ4Codec) Type() format.CompressionType {
	return format.CompressionLZ4
}
