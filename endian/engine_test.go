package endian

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	require := require.New(t)

	result := CheckEndianness()

	var testValue uint16 = 0x0102
	testBytes := (*[2]byte)(unsafe.Pointer(&testValue))

	switch testBytes[0] {
	case 0x01:
		require.Equal(binary.BigEndian, result, "CheckEndianness() should return BigEndian")
	case 0x02:
		require.Equal(binary.LittleEndian, result, "CheckEndianness() should return LittleEndian")
	default:
		require.Failf("Unexpected byte value", "got: %v", testBytes[0])
	}
}

func TestCompareNativeEndian(t *testing.T) {
	native := CheckEndianness()

	require.Equal(t, native == binary.LittleEndian, CompareNativeEndian(GetLittleEndianEngine()))
	require.Equal(t, native == binary.BigEndian, CompareNativeEndian(binary.BigEndian))
}

func TestFloat32Conversion(t *testing.T) {
	values := []float32{0, 1.5, -2.25, float32(math.Inf(1)), math.MaxFloat32, math.SmallestNonzeroFloat32}

	for _, tc := range []struct {
		name   string
		engine EndianEngine
	}{
		{"LittleEndian", GetLittleEndianEngine()},
		{"BigEndian", binary.BigEndian},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := AppendFloat32s(tc.engine, nil, values)
			require.Len(t, buf, len(values)*4)

			decoded := make([]float32, len(values))
			DecodeFloat32s(tc.engine, decoded, buf)
			require.Equal(t, values, decoded)
		})
	}
}

func TestAppendFloat32s_LittleEndianLayout(t *testing.T) {
	buf := AppendFloat32s(GetLittleEndianEngine(), []byte{0xAA}, []float32{1.0})

	// 1.0f is 0x3F800000.
	require.Equal(t, []byte{0xAA, 0x00, 0x00, 0x80, 0x3F}, buf)
}

func TestFloat32Bytes(t *testing.T) {
	require.Nil(t, Float32Bytes(nil))

	values := []float32{1.0, 2.0}
	raw := Float32Bytes(values)
	require.Len(t, raw, 8)

	if CompareNativeEndian(GetLittleEndianEngine()) {
		require.Equal(t, AppendFloat32s(GetLittleEndianEngine(), nil, values), raw)
	}

	// The byte view aliases the float memory.
	for i := range raw[:4] {
		raw[i] = 0
	}
	require.Equal(t, float32(0), values[0])
	require.Equal(t, float32(2.0), values[1])
}
