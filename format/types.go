package format

import "strings"

type (
	CompressionType uint8
	Format          uint8
	ContainerKind   uint8
	CatalogKind     uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.

	Binary Format = 0x1 // Binary represents the versioned, checksummed profile container.
	Text   Format = 0x2 // Text represents the one-way delimited text export.

	ContainerUnsupported ContainerKind = 0x0 // ContainerUnsupported represents an unrecognized extension.
	ContainerBinaryRaw   ContainerKind = 0x1 // ContainerBinaryRaw represents "*.bin".
	ContainerBinaryLZ4   ContainerKind = 0x2 // ContainerBinaryLZ4 represents "*.bin.lz4".
	ContainerTextRaw     ContainerKind = 0x3 // ContainerTextRaw represents "*.csv".
	ContainerTextLZ4     ContainerKind = 0x4 // ContainerTextLZ4 represents "*.csv.lz4".

	CatalogUnsupported CatalogKind = 0x0 // CatalogUnsupported represents an unrecognized extension.
	CatalogStructured  CatalogKind = 0x1 // CatalogStructured represents a JSON feature document ("*.json", "*.fon1.json").
	CatalogTabular     CatalogKind = 0x2 // CatalogTabular represents a name<TAB>length table ("*.tab").
)

// File name suffixes recognized by DetectContainer and DetectCatalog.
const (
	ExtBinary    = ".bin"
	ExtBinaryLZ4 = ".bin.lz4"
	ExtText      = ".csv"
	ExtTextLZ4   = ".csv.lz4"
	ExtJSON      = ".json"
	ExtTab       = ".tab"
)

// DetectContainer maps a container path to its kind purely by suffix.
// Matching is case-sensitive; anything else is ContainerUnsupported.
func DetectContainer(path string) ContainerKind {
	switch {
	case strings.HasSuffix(path, ExtBinaryLZ4):
		return ContainerBinaryLZ4
	case strings.HasSuffix(path, ExtBinary):
		return ContainerBinaryRaw
	case strings.HasSuffix(path, ExtTextLZ4):
		return ContainerTextLZ4
	case strings.HasSuffix(path, ExtText):
		return ContainerTextRaw
	default:
		return ContainerUnsupported
	}
}

// DetectCatalog maps a catalog path to its kind purely by suffix.
func DetectCatalog(path string) CatalogKind {
	switch {
	case strings.HasSuffix(path, ExtJSON):
		return CatalogStructured
	case strings.HasSuffix(path, ExtTab):
		return CatalogTabular
	default:
		return CatalogUnsupported
	}
}

// Format returns the record format stored in the container, or 0 for ContainerUnsupported.
func (k ContainerKind) Format() Format {
	switch k {
	case ContainerBinaryRaw, ContainerBinaryLZ4:
		return Binary
	case ContainerTextRaw, ContainerTextLZ4:
		return Text
	default:
		return 0
	}
}

// Compression returns the stream compression of the container.
func (k ContainerKind) Compression() CompressionType {
	switch k {
	case ContainerBinaryLZ4, ContainerTextLZ4:
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Supported reports whether k is a recognized container kind.
func (k ContainerKind) Supported() bool {
	return k != ContainerUnsupported
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (f Format) String() string {
	switch f {
	case Binary:
		return "Binary"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

func (k ContainerKind) String() string {
	switch k {
	case ContainerBinaryRaw:
		return "BinaryRaw"
	case ContainerBinaryLZ4:
		return "BinaryLZ4"
	case ContainerTextRaw:
		return "TextRaw"
	case ContainerTextLZ4:
		return "TextLZ4"
	default:
		return "Unsupported"
	}
}

func (k CatalogKind) String() string {
	switch k {
	case CatalogStructured:
		return "Structured"
	case CatalogTabular:
		return "Tabular"
	default:
		return "Unsupported"
	}
}
