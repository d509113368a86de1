// Package checksum computes the catalog checksum embedded in profile containers.
//
// The checksum covers the shape of a feature catalog, not profile values: the ordered
// feature lengths are packed as little-endian uint32 and digested with Adler-32. A container
// written with one catalog can only be read back with a catalog of the same length sequence.
package checksum

import (
	"hash/adler32"

	"github.com/arloliu/profio/endian"
)

// Compute returns the Adler-32 checksum of lengths packed as little-endian uint32 values.
//
// The result depends only on the ordered length sequence; an empty sequence yields 1.
func Compute(lengths []uint32) uint32 {
	engine := endian.GetLittleEndianEngine()

	buf := make([]byte, 0, len(lengths)*4)
	for _, l := range lengths {
		buf = engine.AppendUint32(buf, l)
	}

	return adler32.Checksum(buf)
}
