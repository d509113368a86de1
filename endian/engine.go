// Package endian provides the byte order used by the profile container.
//
// Every integer and float in the container is little-endian. Payload transfer can skip
// per-element conversion when the host is little-endian too; CompareNativeEndian tells
// callers when that zero-copy path is safe.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, totalLength)
//
// All functions are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. On a little-endian host the low byte (0x00) comes first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// AppendFloat32s appends the IEEE-754 bits of each value in src to dst using engine.
func AppendFloat32s(engine EndianEngine, dst []byte, src []float32) []byte {
	for _, v := range src {
		dst = engine.AppendUint32(dst, math.Float32bits(v))
	}

	return dst
}

// DecodeFloat32s fills dst from src, which must hold at least 4*len(dst) bytes.
func DecodeFloat32s(engine EndianEngine, dst []float32, src []byte) {
	for i := range dst {
		dst[i] = math.Float32frombits(engine.Uint32(src[i*4:]))
	}
}

// Float32Bytes returns the memory of values as a byte slice without copying.
//
// The result aliases values; its byte order is the host's. It is nil for an empty slice.
func Float32Bytes(values []float32) []byte {
	if len(values) == 0 {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*4)
}
