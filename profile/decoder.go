package profile

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/arloliu/profio/catalog"
	"github.com/arloliu/profio/compress"
	"github.com/arloliu/profio/endian"
	"github.com/arloliu/profio/errs"
	"github.com/arloliu/profio/section"
)

// payloadChunkValues bounds the staging buffer used when the host is not little-endian.
const payloadChunkValues = 16 * 1024

// Decode reads a binary profile container from r and splits it according to cat.
//
// Options: WithWritable, WithCompression, WithLogger. Catalog options are ignored.
//
// Returns a *errs.FormatError (matching errs.ErrFormat) when:
//   - the version is not section.Version (errs.ErrUnsupportedVersion)
//   - the checksum differs from cat.Checksum() (errs.ErrChecksumMismatch)
//   - the declared total, the payload size or the segmentation disagree with cat
//     (errs.ErrLengthMismatch)
func Decode(r io.Reader, cat *catalog.Catalog, opts ...Option) (*Set, error) {
	if cat == nil {
		return nil, errs.ErrNoCatalog
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	rc, err := wrapReader(r, cfg)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return decode(rc, cat, cfg)
}

// Verify checks a binary profile container against cat without keeping its values.
//
// It fails exactly where Decode would.
func Verify(r io.Reader, cat *catalog.Catalog, opts ...Option) error {
	if cat == nil {
		return errs.ErrNoCatalog
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	rc, err := wrapReader(r, cfg)
	if err != nil {
		return err
	}
	defer rc.Close()

	return verify(rc, cat, cfg)
}

// ReadHeader reads and parses the container header from r without a catalog.
//
// The returned header is populated even when its version is unsupported.
func ReadHeader(r io.Reader) (section.Header, error) {
	return section.ReadHeader(r)
}

func wrapReader(r io.Reader, cfg *Config) (io.ReadCloser, error) {
	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	return codec.NewReader(r)
}

func decode(r io.Reader, cat *catalog.Catalog, cfg *Config) (*Set, error) {
	header, err := readValidatedHeader(r, cat, cfg)
	if err != nil {
		return nil, err
	}

	values := make([]float32, header.TotalLength)
	if err := readPayload(r, values); err != nil {
		return nil, err
	}
	if err := expectEOF(r); err != nil {
		return nil, err
	}

	set, err := segment(cat, values, cfg.writable)
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("Decoded profile container",
		zap.Int("features", set.Len()),
		zap.Int("values", len(values)),
		zap.Bool("writable", cfg.writable))

	return set, nil
}

func verify(r io.Reader, cat *catalog.Catalog, cfg *Config) error {
	header, err := readValidatedHeader(r, cat, cfg)
	if err != nil {
		return err
	}

	n, err := io.CopyN(io.Discard, r, header.PayloadSize())
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewFormatError(errs.ErrLengthMismatch, "payload", uint64(header.TotalLength), uint64(n/section.ValueSize))
		}

		return fmt.Errorf("read payload: %w", err)
	}

	return expectEOF(r)
}

// readValidatedHeader reads the header and checks it against the catalog.
func readValidatedHeader(r io.Reader, cat *catalog.Catalog, cfg *Config) (section.Header, error) {
	header, err := section.ReadHeader(r)
	if err != nil {
		return header, err
	}

	if header.Checksum != cat.Checksum() {
		return header, errs.NewFormatError(errs.ErrChecksumMismatch, "checksum", uint64(cat.Checksum()), uint64(header.Checksum))
	}
	if header.TotalLength != cat.TotalLength() {
		return header, errs.NewFormatError(errs.ErrLengthMismatch, "total_length", uint64(cat.TotalLength()), uint64(header.TotalLength))
	}

	cfg.logger.Debug("Validated profile header",
		zap.Uint8("version", header.Version),
		zap.Uint32("total_length", header.TotalLength),
		zap.Uint32("checksum", header.Checksum))

	return header, nil
}

// readPayload fills values from r. On a little-endian host the bytes land directly in
// the float buffer; otherwise they are staged and converted.
func readPayload(r io.Reader, values []float32) error {
	engine := endian.GetLittleEndianEngine()

	if endian.CompareNativeEndian(engine) {
		n, err := io.ReadFull(r, endian.Float32Bytes(values))
		if err != nil {
			return payloadError(err, len(values), n/section.ValueSize)
		}

		return nil
	}

	buf := make([]byte, min(len(values), payloadChunkValues)*section.ValueSize)
	for start := 0; start < len(values); start += payloadChunkValues {
		end := min(start+payloadChunkValues, len(values))
		chunk := buf[:(end-start)*section.ValueSize]

		n, err := io.ReadFull(r, chunk)
		if err != nil {
			return payloadError(err, len(values), start+n/section.ValueSize)
		}
		endian.DecodeFloat32s(engine, values[start:end], chunk)
	}

	return nil
}

func payloadError(err error, expected, actual int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errs.NewFormatError(errs.ErrLengthMismatch, "payload", uint64(expected), uint64(actual))
	}

	return fmt.Errorf("read payload: %w", err)
}

// expectEOF fails if r holds bytes past the payload.
func expectEOF(r io.Reader) error {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	if n > 0 {
		return errs.NewFormatError(errs.ErrLengthMismatch, "trailing_bytes", 0, uint64(n))
	}

	return nil
}
