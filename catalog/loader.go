package catalog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/profio/errs"
	"github.com/arloliu/profio/format"
	"github.com/arloliu/profio/internal/options"
)

const (
	// DefaultNameField is the feature name field of structured catalogs.
	DefaultNameField = "transcript_stable_id"
	// DefaultCoordsField is the coordinate list field of structured catalogs.
	DefaultCoordsField = "exons"

	maxLineSize = 1024 * 1024
)

// LoaderConfig holds the catalog loader settings.
type LoaderConfig struct {
	nameField   string
	coordsField string
}

// LoaderOption represents a functional option for configuring the LoaderConfig.
type LoaderOption = options.Option[*LoaderConfig]

// WithNameField sets the field holding the feature name in structured catalogs.
func WithNameField(name string) LoaderOption {
	return options.New(func(c *LoaderConfig) error {
		if name == "" {
			return fmt.Errorf("%w: empty name field", errs.ErrInvalidCatalog)
		}
		c.nameField = name

		return nil
	})
}

// WithCoordsField sets the field holding the [start, end) coordinate pairs in structured catalogs.
func WithCoordsField(name string) LoaderOption {
	return options.New(func(c *LoaderConfig) error {
		if name == "" {
			return fmt.Errorf("%w: empty coordinates field", errs.ErrInvalidCatalog)
		}
		c.coordsField = name

		return nil
	})
}

func newLoaderConfig(opts []LoaderOption) (*LoaderConfig, error) {
	cfg := &LoaderConfig{
		nameField:   DefaultNameField,
		coordsField: DefaultCoordsField,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads the catalog at path, choosing the parser by extension:
// "*.json" (including "*.fon1.json") is structured, "*.tab" is tabular.
//
// Returns:
//   - errs.ErrPathNotFound if path does not exist
//   - errs.ErrUnsupportedFormat for any other extension
//   - errs.ErrInvalidCatalog, errs.ErrDuplicateFeature for malformed content
func Load(path string, opts ...LoaderOption) (*Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrPathNotFound, path)
		}

		return nil, fmt.Errorf("stat catalog %s: %w", path, err)
	}

	kind := format.DetectCatalog(path)
	if kind == format.CatalogUnsupported {
		return nil, fmt.Errorf("%w: catalog %s", errs.ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	cat, err := Parse(f, kind, opts...)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}

	return cat, nil
}

// Parse reads a catalog of the given kind from r.
func Parse(r io.Reader, kind format.CatalogKind, opts ...LoaderOption) (*Catalog, error) {
	cfg, err := newLoaderConfig(opts)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	switch kind {
	case format.CatalogStructured:
		entries, err = parseStructured(r, cfg)
	case format.CatalogTabular:
		entries, err = parseTabular(r)
	default:
		return nil, fmt.Errorf("%w: catalog kind %s", errs.ErrUnsupportedFormat, kind)
	}
	if err != nil {
		return nil, err
	}

	return New(entries)
}

// parseStructured decodes {"features": [{<name>: "...", <coords>: [[start, end], ...]}, ...]}.
func parseStructured(r io.Reader, cfg *LoaderConfig) ([]Entry, error) {
	var doc map[string]gojson.RawMessage
	if err := gojson.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCatalog, err)
	}

	raw, ok := doc["features"]
	if !ok || isNull(raw) {
		return nil, fmt.Errorf("%w: missing \"features\" list", errs.ErrInvalidCatalog)
	}

	var features []map[string]gojson.RawMessage
	if err := gojson.Unmarshal(raw, &features); err != nil {
		return nil, fmt.Errorf("%w: features: %w", errs.ErrInvalidCatalog, err)
	}

	entries := make([]Entry, 0, len(features))
	for i, ft := range features {
		entry, err := structuredEntry(ft, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %d: %w", errs.ErrInvalidCatalog, i, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func structuredEntry(ft map[string]gojson.RawMessage, cfg *LoaderConfig) (Entry, error) {
	rawName, ok := ft[cfg.nameField]
	if !ok {
		return Entry{}, fmt.Errorf("missing field %q", cfg.nameField)
	}
	var name string
	if err := gojson.Unmarshal(rawName, &name); err != nil {
		return Entry{}, fmt.Errorf("field %q: %w", cfg.nameField, err)
	}

	rawCoords, ok := ft[cfg.coordsField]
	if !ok || isNull(rawCoords) {
		return Entry{}, fmt.Errorf("%q: missing field %q", name, cfg.coordsField)
	}
	var coords [][]int64
	if err := gojson.Unmarshal(rawCoords, &coords); err != nil {
		return Entry{}, fmt.Errorf("%q: field %q: %w", name, cfg.coordsField, err)
	}

	length, err := coordsLength(coords)
	if err != nil {
		return Entry{}, fmt.Errorf("%q: %w", name, err)
	}

	return Entry{Name: name, Length: length}, nil
}

// isNull reports whether raw is the JSON literal null.
func isNull(raw gojson.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// coordsLength returns the sum of end-start over [start, end) pairs.
func coordsLength(coords [][]int64) (uint32, error) {
	var total int64
	for _, pair := range coords {
		if len(pair) != 2 {
			return 0, fmt.Errorf("coordinate %v is not a [start, end] pair", pair)
		}
		start, end := pair[0], pair[1]
		if end < start {
			return 0, fmt.Errorf("coordinate [%d, %d] ends before it starts", start, end)
		}
		total += end - start
		if total > math.MaxUint32 {
			return 0, fmt.Errorf("length exceeds %d", uint64(math.MaxUint32))
		}
	}

	return uint32(total), nil
}

// parseTabular reads one "name<TAB>length" feature per line.
func parseTabular(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")

		cells := strings.Split(line, "\t")
		if len(cells) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected name<TAB>length, got %q", errs.ErrInvalidCatalog, lineNo, line)
		}

		length, err := strconv.ParseUint(strings.TrimSpace(cells[1]), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid length %q: %w", errs.ErrInvalidCatalog, lineNo, cells[1], err)
		}

		entries = append(entries, Entry{Name: cells[0], Length: uint32(length)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", errs.ErrInvalidCatalog, lineNo+1, err)
	}

	return entries, nil
}
