package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/profio/errs"
	"github.com/arloliu/profio/format"
)

// StreamCodec wraps byte streams with a compression format.
type StreamCodec interface {
	// NewReader returns a reader yielding the decompressed bytes of r.
	//
	// Closing the returned reader releases codec resources but does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// NewWriter returns a writer compressing into w.
	//
	// Close must be called to flush the final frame; it does not close w.
	NewWriter(w io.Writer) (io.WriteCloser, error)

	// Type returns the compression type implemented by the codec.
	Type() format.CompressionType
}

var builtinCodecs = map[format.CompressionType]StreamCodec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the built-in StreamCodec for the specified compression type.
//
// Returns errs.ErrUnsupportedFormat for an unknown type.
func GetCodec(compressionType format.CompressionType) (StreamCodec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: compression type %s", errs.ErrUnsupportedFormat, compressionType)
}

// readCloser adapts a reader with an optional release hook to io.ReadCloser.
type readCloser struct {
	io.Reader
	release func()
}

func (rc *readCloser) Close() error {
	if rc.release != nil {
		rc.release()
		rc.release = nil
	}

	return nil
}
