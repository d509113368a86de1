package section

import (
	"fmt"
	"io"

	"github.com/arloliu/profio/endian"
	"github.com/arloliu/profio/errs"
)

const (
	// Version is the only container version this package reads and writes.
	Version uint8 = 3
	// HeaderSize is the fixed header size in bytes.
	HeaderSize = 9
	// ValueSize is the size in bytes of one payload value.
	ValueSize = 4

	totalLengthOffset = 1
	checksumOffset    = 5
)

// Header is the fixed-size header at the start of a profile container.
type Header struct {
	Version     uint8  // byte offset 0
	TotalLength uint32 // byte offset 1-4
	Checksum    uint32 // byte offset 5-8
}

// NewHeader creates a current-version header for a payload of totalLength values.
func NewHeader(totalLength, checksum uint32) Header {
	return Header{
		Version:     Version,
		TotalLength: totalLength,
		Checksum:    checksum,
	}
}

// Parse parses the header from a byte slice.
//
// The fields are populated even when the version is rejected, so callers can report it.
//
// Returns:
//   - error: *errs.FormatError wrapping ErrInvalidHeaderSize if data is not HeaderSize bytes,
//     or ErrUnsupportedVersion if the version is not Version
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.NewFormatError(errs.ErrInvalidHeaderSize, "header", HeaderSize, uint64(len(data)))
	}

	engine := endian.GetLittleEndianEngine()

	h.Version = data[0]
	h.TotalLength = engine.Uint32(data[totalLengthOffset:checksumOffset])
	h.Checksum = engine.Uint32(data[checksumOffset:HeaderSize])

	return h.Validate()
}

// Validate checks the version byte.
func (h Header) Validate() error {
	if h.Version != Version {
		return errs.NewFormatError(errs.ErrUnsupportedVersion, "version", uint64(Version), uint64(h.Version))
	}

	return nil
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h Header) AppendTo(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = append(dst, h.Version)
	dst = engine.AppendUint32(dst, h.TotalLength)
	dst = engine.AppendUint32(dst, h.Checksum)

	return dst
}

// PayloadSize returns the payload size in bytes.
func (h Header) PayloadSize() int64 {
	return int64(h.TotalLength) * ValueSize
}

func (h Header) String() string {
	return fmt.Sprintf("version=%d total_length=%d checksum=0x%08x", h.Version, h.TotalLength, h.Checksum)
}

// ParseHeader parses a Header from the first HeaderSize bytes of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.NewFormatError(errs.ErrInvalidHeaderSize, "header", HeaderSize, uint64(len(data)))
	}

	h := Header{}
	err := h.Parse(data[:HeaderSize])

	return h, err
}

// ReadHeader reads and parses exactly HeaderSize bytes from r.
//
// A stream ending before HeaderSize bytes yields ErrInvalidHeaderSize; other read errors
// are returned wrapped.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte

	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF { //nolint:errorlint
			return Header{}, errs.NewFormatError(errs.ErrInvalidHeaderSize, "header", HeaderSize, uint64(n))
		}

		return Header{}, fmt.Errorf("read header: %w", err)
	}

	return ParseHeader(buf[:])
}
