// Package compress provides the streaming codecs that wrap profile containers.
//
// A container file is either written as-is or wrapped in a compressed stream. File level
// APIs select the codec from the path suffix ("*.lz4" selects the LZ4 frame format); stream
// level APIs accept any format.CompressionType:
//   - None: passthrough
//   - LZ4: LZ4 frame format (github.com/pierrec/lz4/v4), the on-disk "*.lz4" variant
//   - Zstd: Zstandard stream (github.com/klauspost/compress/zstd, or
//     github.com/valyala/gozstd when built with cgo and the "gozstd" tag)
//   - S2: S2 stream (github.com/klauspost/compress/s2)
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionLZ4)
//	if err != nil {
//	    return err
//	}
//	w, err := codec.NewWriter(file)
//	if err != nil {
//	    return err
//	}
//	// write container bytes to w, then:
//	if err := w.Close(); err != nil { // flushes the final frame
//	    return err
//	}
//
// Closing a reader or writer returned by a codec never closes the underlying stream.
//
// # Thread Safety
//
// Codecs are stateless and safe for concurrent use. Each reader or writer they return
// must be used by a single goroutine.
package compress
