//go:build cgo && gozstd

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// NewReader returns a reader decoding the Zstandard stream r.
func (c ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr := gozstd.NewReader(r)

	return &readCloser{Reader: zr, release: zr.Release}, nil
}

// NewWriter returns a writer producing a Zstandard stream on w.
func (c ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return &gozstdWriter{Writer: gozstd.NewWriterLevel(w, 3)}, nil
}

type gozstdWriter struct {
	*gozstd.Writer
}

// Close finalizes the stream and frees the native encoder.
func (w *gozstdWriter) Close() error {
	err := w.Writer.Close()
	w.Writer.Release()

	return err
}
