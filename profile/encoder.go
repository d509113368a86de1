package profile

import (
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/profio/catalog"
	"github.com/arloliu/profio/compress"
	"github.com/arloliu/profio/endian"
	"github.com/arloliu/profio/errs"
	"github.com/arloliu/profio/internal/pool"
	"github.com/arloliu/profio/section"
)

// Float is the element type of profiles accepted by the encoders.
type Float interface {
	~float32 | ~float64
}

// encodeChunkValues is the number of values staged per payload buffer append.
const encodeChunkValues = 16 * 1024

// lookupFunc resolves a feature name to its values.
type lookupFunc[T Float] func(name string) ([]T, bool)

func mapLookup[T Float](profiles map[string][]T) lookupFunc[T] {
	return func(name string) ([]T, bool) {
		values, ok := profiles[name]
		return values, ok
	}
}

// Encode writes profiles as a binary container in cat order.
//
// Every catalog feature must be present in profiles with exactly the catalog length;
// profiles absent from the catalog are ignored. Nothing is written when validation fails.
//
// Options: WithCompression, WithLogger.
//
// Returns:
//   - errs.ErrProfileNotFound if a catalog feature is missing from profiles
//   - errs.ErrLengthMismatch if a profile length differs from its catalog length
func Encode[T Float](w io.Writer, profiles map[string][]T, cat *catalog.Catalog, opts ...Option) error {
	return encodeStream(w, mapLookup(profiles), cat, opts, encodeBinary[T])
}

// EncodeSet writes a decoded set as a binary container in cat order.
func EncodeSet(w io.Writer, set *Set, cat *catalog.Catalog, opts ...Option) error {
	return encodeStream[float32](w, set.lookup, cat, opts, encodeBinary[float32])
}

// encodeFunc writes already validated profiles to w.
type encodeFunc[T Float] func(w io.Writer, lookup lookupFunc[T], cat *catalog.Catalog) error

func encodeStream[T Float](w io.Writer, lookup lookupFunc[T], cat *catalog.Catalog, opts []Option, encode encodeFunc[T]) error {
	if cat == nil {
		return errs.ErrNoCatalog
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	if err := validateProfiles(lookup, cat); err != nil {
		return err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return err
	}
	cw, err := codec.NewWriter(w)
	if err != nil {
		return err
	}

	if err := encode(cw, lookup, cat); err != nil {
		_ = cw.Close()
		return err
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("flush %s stream: %w", cfg.compression, err)
	}

	cfg.logger.Debug("Encoded profiles",
		zap.Int("features", cat.Len()),
		zap.Uint32("total_length", cat.TotalLength()),
		zap.Stringer("compression", cfg.compression))

	return nil
}

// validateProfiles checks every catalog feature before any byte is emitted.
func validateProfiles[T Float](lookup lookupFunc[T], cat *catalog.Catalog) error {
	for _, e := range cat.All() {
		values, ok := lookup(e.Name)
		if !ok {
			return fmt.Errorf("%w: %q", errs.ErrProfileNotFound, e.Name)
		}
		if uint64(len(values)) != uint64(e.Length) {
			return fmt.Errorf("%w: %q has %d values, catalog declares %d", errs.ErrLengthMismatch, e.Name, len(values), e.Length)
		}
	}

	return nil
}

// encodeBinary writes the header and the concatenated little-endian float32 payload.
func encodeBinary[T Float](w io.Writer, lookup lookupFunc[T], cat *catalog.Catalog) error {
	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	header := section.NewHeader(cat.TotalLength(), cat.Checksum())
	buf.B = header.AppendTo(buf.B)

	for _, e := range cat.All() {
		values, _ := lookup(e.Name)
		for start := 0; start < len(values); start += encodeChunkValues {
			end := min(start+encodeChunkValues, len(values))
			buf.Grow((end - start) * section.ValueSize)
			buf.B = appendValues(buf.B, values[start:end])

			if buf.Len() >= pool.PayloadBufferDefaultSize {
				if _, err := buf.WriteTo(w); err != nil {
					return fmt.Errorf("write payload: %w", err)
				}
				buf.Reset()
			}
		}
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}

	return nil
}

// appendValues appends values as little-endian float32, narrowing wider floats.
func appendValues[T Float](dst []byte, values []T) []byte {
	engine := endian.GetLittleEndianEngine()

	if f32, ok := any(values).([]float32); ok {
		return endian.AppendFloat32s(engine, dst, f32)
	}
	for _, v := range values {
		dst = engine.AppendUint32(dst, math.Float32bits(float32(v)))
	}

	return dst
}
