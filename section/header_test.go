package section

import (
	"bytes"
	"errors"
	"testing"

	"github.com/arloliu/profio/errs"
	"github.com/stretchr/testify/require"
)

func TestNewHeader(t *testing.T) {
	header := NewHeader(8, 0x00340009)

	require.Equal(t, Version, header.Version)
	require.Equal(t, uint32(8), header.TotalLength)
	require.Equal(t, uint32(0x00340009), header.Checksum)
	require.Equal(t, int64(32), header.PayloadSize())
	require.NoError(t, header.Validate())
}

func TestHeader_Bytes(t *testing.T) {
	header := NewHeader(8, 0x00340009)

	require.Equal(t, []byte{
		0x03,
		0x08, 0x00, 0x00, 0x00,
		0x09, 0x00, 0x34, 0x00,
	}, header.Bytes())

	require.Equal(t, []byte{0xFF, 0x03}, header.AppendTo([]byte{0xFF})[:2])
}

func TestHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := NewHeader(123456, 0xDEADBEEF)

		parsed := &Header{}
		require.NoError(t, parsed.Parse(original.Bytes()))
		require.Equal(t, original, *parsed)
	})

	t.Run("Invalid size", func(t *testing.T) {
		header := &Header{}
		err := header.Parse([]byte{3, 0, 0})

		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("Unsupported version", func(t *testing.T) {
		for _, version := range []uint8{0, 1, 2, 4, 0xFF} {
			data := NewHeader(8, 1).Bytes()
			data[0] = version

			header := &Header{}
			err := header.Parse(data)
			require.ErrorIs(t, err, errs.ErrUnsupportedVersion)

			var fe *errs.FormatError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, uint64(3), fe.Expected)
			require.Equal(t, uint64(version), fe.Actual)

			// Fields are still populated for diagnostics.
			require.Equal(t, version, header.Version)
			require.Equal(t, uint32(8), header.TotalLength)
		}
	})
}

func TestParseHeader(t *testing.T) {
	data := append(NewHeader(2, 7).Bytes(), 0, 0, 0x80, 0x3F)

	header, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, uint32(2), header.TotalLength)
	require.Equal(t, uint32(7), header.Checksum)

	_, err = ParseHeader(data[:HeaderSize-1])
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestReadHeader(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		r := bytes.NewReader(append(NewHeader(5, 9).Bytes(), 1, 2, 3))
		header, err := ReadHeader(r)
		require.NoError(t, err)
		require.Equal(t, NewHeader(5, 9), header)
		require.Equal(t, 3, r.Len())
	})

	t.Run("Empty stream", func(t *testing.T) {
		_, err := ReadHeader(bytes.NewReader(nil))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := ReadHeader(bytes.NewReader([]byte{3, 1, 0}))

		var fe *errs.FormatError
		require.True(t, errors.As(err, &fe))
		require.Equal(t, uint64(3), fe.Actual)
	})

	t.Run("Read error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := ReadHeader(failingReader{err: boom})
		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, errs.ErrFormat)
	})
}

func TestHeader_String(t *testing.T) {
	header := NewHeader(8, 0x00340009)
	require.Equal(t, "version=3 total_length=8 checksum=0x00340009", header.String())
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }
