package profile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/arloliu/profio/catalog"
	"github.com/arloliu/profio/compress"
	"github.com/arloliu/profio/errs"
	"github.com/arloliu/profio/format"
	"github.com/arloliu/profio/section"
)

const fileBufferSize = 256 * 1024

// ReadFile reads the binary container at path ("*.bin" or "*.bin.lz4").
//
// The catalog comes from WithCatalog or WithCatalogFile; without one ReadFile fails with
// errs.ErrNoCatalog. Text exports cannot be read back and fail with errs.ErrUnsupportedFormat.
func ReadFile(path string, opts ...Option) (*Set, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	var set *Set
	err = withContainer(path, cfg, func(r io.Reader, cat *catalog.Catalog) error {
		set, err = decode(r, cat, cfg)
		return err
	})
	if err != nil {
		return nil, err
	}

	return set, nil
}

// VerifyFile checks the binary container at path against its catalog without keeping values.
func VerifyFile(path string, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	return withContainer(path, cfg, func(r io.Reader, cat *catalog.Catalog) error {
		return verify(r, cat, cfg)
	})
}

// InspectFile reads the header of the binary container at path. No catalog is needed.
//
// The returned header is populated even when its version is unsupported.
func InspectFile(path string) (section.Header, error) {
	kind, err := binaryContainerKind(path)
	if err != nil {
		return section.Header{}, err
	}

	rc, err := openContainer(path, kind)
	if err != nil {
		return section.Header{}, err
	}
	defer rc.Close()

	header, err := section.ReadHeader(rc)
	if err != nil {
		return header, fmt.Errorf("%s: %w", path, err)
	}

	return header, nil
}

// WriteFile writes profiles to path. The path suffix selects the container:
// "*.bin", "*.bin.lz4" for format.Binary (the default) and "*.csv", "*.csv.lz4" for
// format.Text (WithFormat).
//
// The destination is checked, the catalog resolved and every profile validated before the
// file is created; a write failing midway removes the partial file.
//
// Returns:
//   - errs.ErrUnsupportedFormat for an unknown suffix or one that disagrees with the format
//   - errs.ErrNoCatalog when neither WithCatalog nor WithCatalogFile is given
//   - errs.ErrProfileNotFound, errs.ErrLengthMismatch as Encode
func WriteFile[T Float](path string, profiles map[string][]T, opts ...Option) error {
	return writeFile(path, mapLookup(profiles), opts)
}

// WriteSetFile writes a decoded set to path, as WriteFile.
func WriteSetFile(path string, set *Set, opts ...Option) error {
	return writeFile[float32](path, set.lookup, opts)
}

func writeFile[T Float](path string, lookup lookupFunc[T], opts []Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	kind := format.DetectContainer(path)
	if !kind.Supported() {
		return fmt.Errorf("%w: destination %s", errs.ErrUnsupportedFormat, path)
	}
	if kind.Format() != cfg.format {
		return fmt.Errorf("%w: destination %s holds %s, requested %s", errs.ErrUnsupportedFormat, path, kind.Format(), cfg.format)
	}

	cat, err := cfg.resolveCatalog()
	if err != nil {
		return err
	}
	if err := validateProfiles(lookup, cat); err != nil {
		return err
	}

	encode := encodeBinary[T]
	if cfg.format == format.Text {
		encode = encodeText[T]
	}

	if err := createContainer(path, kind, func(w io.Writer) error {
		return encode(w, lookup, cat)
	}); err != nil {
		return err
	}

	cfg.logger.Debug("Wrote profile container",
		zap.String("path", path),
		zap.Stringer("kind", kind),
		zap.Int("features", cat.Len()),
		zap.Uint32("total_length", cat.TotalLength()))

	return nil
}

// withContainer opens a binary container, resolves the catalog and hands both to fn.
// The container is closed on every path.
func withContainer(path string, cfg *Config, fn func(r io.Reader, cat *catalog.Catalog) error) error {
	kind, err := binaryContainerKind(path)
	if err != nil {
		return err
	}

	cat, err := cfg.resolveCatalog()
	if err != nil {
		return err
	}

	rc, err := openContainer(path, kind)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := fn(rc, cat); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

// binaryContainerKind checks that path exists and names a binary container.
func binaryContainerKind(path string) (format.ContainerKind, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return format.ContainerUnsupported, fmt.Errorf("%w: %s", errs.ErrPathNotFound, path)
		}

		return format.ContainerUnsupported, fmt.Errorf("stat %s: %w", path, err)
	}

	kind := format.DetectContainer(path)
	switch kind.Format() {
	case format.Binary:
		return kind, nil
	case format.Text:
		return kind, fmt.Errorf("%w: reading text export %s is not supported", errs.ErrUnsupportedFormat, path)
	default:
		return kind, fmt.Errorf("%w: container %s", errs.ErrUnsupportedFormat, path)
	}
}

// containerReader closes the decompressing reader, then the file.
type containerReader struct {
	io.Reader
	closers []io.Closer
}

func (c *containerReader) Close() error {
	var errList []error
	for _, cl := range c.closers {
		errList = append(errList, cl.Close())
	}

	return errors.Join(errList...)
}

func openContainer(path string, kind format.ContainerKind) (io.ReadCloser, error) {
	codec, err := compress.GetCodec(kind.Compression())
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	zr, err := codec.NewReader(bufio.NewReaderSize(f, fileBufferSize))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return &containerReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
}

// createContainer creates path, runs fn on the (compressing) writer and removes the file
// if anything fails.
func createContainer(path string, kind format.ContainerKind, fn func(w io.Writer) error) (err error) {
	codec, err := compress.GetCodec(kind.Compression())
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(path)
		}
	}()

	bw := bufio.NewWriterSize(f, fileBufferSize)
	zw, err := codec.NewWriter(bw)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err = fn(zw); err != nil {
		_ = zw.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = zw.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
