package compress

import (
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/profio/format"
)

// S2Codec implements StreamCodec using the framed S2 stream format.
type S2Codec struct{}

var _ StreamCodec = (*S2Codec)(nil)

// NewS2Codec creates a new S2 stream codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// NewReader returns a reader decoding the S2 stream r.
func (c S2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return &readCloser{Reader: s2.NewReader(r)}, nil
}

// NewWriter returns a writer producing an S2 stream on w.
func (c S2Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w), nil
}

func (c S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}
