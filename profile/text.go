package profile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/arloliu/profio/catalog"
)

const textBufferSize = 64 * 1024

// EncodeText writes profiles as delimited text in cat order, one line per feature:
//
//	<name>,<length>,<v0> <v1> ... <vN-1>
//
// Values use five decimal places. The text form has no header or checksum and cannot be
// read back. Validation matches Encode.
func EncodeText[T Float](w io.Writer, profiles map[string][]T, cat *catalog.Catalog, opts ...Option) error {
	return encodeStream(w, mapLookup(profiles), cat, opts, encodeText[T])
}

// EncodeTextSet writes a decoded set as delimited text in cat order.
func EncodeTextSet(w io.Writer, set *Set, cat *catalog.Catalog, opts ...Option) error {
	return encodeStream[float32](w, set.lookup, cat, opts, encodeText[float32])
}

func encodeText[T Float](w io.Writer, lookup lookupFunc[T], cat *catalog.Catalog) error {
	bw := bufio.NewWriterSize(w, textBufferSize)
	line := make([]byte, 0, 256)

	for _, e := range cat.All() {
		values, _ := lookup(e.Name)

		line = append(line[:0], e.Name...)
		line = append(line, ',')
		line = strconv.AppendUint(line, uint64(e.Length), 10)
		line = append(line, ',')
		for i, v := range values {
			if i > 0 {
				line = append(line, ' ')
			}
			line = appendTextValue(line, float64(v))
		}
		line = append(line, '\n')

		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write text: %w", err)
	}

	return nil
}

// appendTextValue formats v with five decimals; non-finite values are spelled nan, inf, -inf.
func appendTextValue(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "nan"...)
	case math.IsInf(v, 1):
		return append(dst, "inf"...)
	case math.IsInf(v, -1):
		return append(dst, "-inf"...)
	default:
		return strconv.AppendFloat(dst, v, 'f', 5, 64)
	}
}
