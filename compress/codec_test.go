package compress

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/arloliu/profio/errs"
	"github.com/arloliu/profio/format"
	"github.com/stretchr/testify/require"
)

// closeTracker records whether Close reached the underlying stream.
type closeTracker struct {
	bytes.Buffer
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func testPayload(size int) []byte {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, size)
	for i := range data {
		// Mostly-repeating bytes so every codec actually compresses.
		if rng.Intn(4) == 0 {
			data[i] = byte(rng.Intn(256))
		} else {
			data[i] = byte(i % 7)
		}
	}

	return data
}

func allTypes() []format.CompressionType {
	return []format.CompressionType{
		format.CompressionNone,
		format.CompressionLZ4,
		format.CompressionZstd,
		format.CompressionS2,
	}
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			require.Equal(t, ct, codec.Type())
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		codec, err := GetCodec(format.CompressionType(0x7F))
		require.Nil(t, codec)
		require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
	})
}

func TestStreamCodec_RoundTrip(t *testing.T) {
	sizes := []int{1, 9, 4096, 1 << 20}

	for _, ct := range allTypes() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for _, size := range sizes {
			t.Run(ct.String(), func(t *testing.T) {
				data := testPayload(size)

				var buf bytes.Buffer
				w, err := codec.NewWriter(&buf)
				require.NoError(t, err)
				_, err = w.Write(data)
				require.NoError(t, err)
				require.NoError(t, w.Close())

				r, err := codec.NewReader(bytes.NewReader(buf.Bytes()))
				require.NoError(t, err)
				got, err := io.ReadAll(r)
				require.NoError(t, err)
				require.NoError(t, r.Close())

				require.Equal(t, len(data), len(got))
				require.True(t, bytes.Equal(data, got))
			})
		}
	}
}

func TestStreamCodec_CloseKeepsUnderlyingOpen(t *testing.T) {
	for _, ct := range allTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			sink := &closeTracker{}
			w, err := codec.NewWriter(sink)
			require.NoError(t, err)
			_, err = w.Write([]byte("ENST01\t12\n"))
			require.NoError(t, err)
			require.NoError(t, w.Close())
			require.False(t, sink.closed)

			r, err := codec.NewReader(sink)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			require.False(t, sink.closed)
		})
	}
}

func TestStreamCodec_Compresses(t *testing.T) {
	data := bytes.Repeat([]byte{0, 0, 128, 63}, 1<<16)

	for _, ct := range []format.CompressionType{format.CompressionLZ4, format.CompressionZstd, format.CompressionS2} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			var buf bytes.Buffer
			w, err := codec.NewWriter(&buf)
			require.NoError(t, err)
			_, err = w.Write(data)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			require.Less(t, buf.Len(), len(data)/10)
		})
	}
}

func TestLZ4Codec_RejectsGarbage(t *testing.T) {
	r, err := NewLZ4Codec().NewReader(bytes.NewReader([]byte{3, 0, 0, 0, 0, 1, 2, 3, 4}))
	require.NoError(t, err)
	defer r.Close()

	_, err = io.ReadAll(r)
	require.Error(t, err)
}

func TestLZ4Codec_ReaderReuse(t *testing.T) {
	codec := NewLZ4Codec()
	for i := range 3 {
		var buf bytes.Buffer
		w, err := codec.NewWriter(&buf)
		require.NoError(t, err)
		payload := bytes.Repeat([]byte{byte(i)}, 100+i)
		_, err = w.Write(payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		r, err := codec.NewReader(&buf)
		require.NoError(t, err)
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		require.Equal(t, payload, got)
	}
}
