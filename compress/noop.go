package compress

import (
	"io"

	"github.com/arloliu/profio/format"
)

// NoOpCodec passes bytes through unchanged. It backs the uncompressed "*.bin" and "*.csv" containers.
type NoOpCodec struct{}

var _ StreamCodec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a passthrough codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// NewReader returns r unchanged, wrapped with a no-op Close.
func (c NoOpCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return &readCloser{Reader: r}, nil
}

// NewWriter returns w unchanged, wrapped with a no-op Close.
func (c NoOpCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{Writer: w}, nil
}

func (c NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
