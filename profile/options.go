package profile

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/profio/catalog"
	"github.com/arloliu/profio/errs"
	"github.com/arloliu/profio/format"
	"github.com/arloliu/profio/internal/options"
)

// Config holds the settings of a read or write operation.
type Config struct {
	catalog     *catalog.Catalog
	catalogPath string
	loaderOpts  []catalog.LoaderOption
	writable    bool
	format      format.Format
	compression format.CompressionType
	logger      *zap.Logger
}

// Option represents a functional option for configuring the Config.
type Option = options.Option[*Config]

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{
		format:      format.Binary,
		compression: format.CompressionNone,
		logger:      zap.NewNop(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCatalog supplies a pre-built catalog. It replaces any earlier WithCatalogFile.
func WithCatalog(cat *catalog.Catalog) Option {
	return options.New(func(c *Config) error {
		if cat == nil {
			return errs.ErrNoCatalog
		}
		c.catalog = cat
		c.catalogPath = ""
		c.loaderOpts = nil

		return nil
	})
}

// WithCatalogFile loads the catalog from path when the operation starts.
// It replaces any earlier WithCatalog.
func WithCatalogFile(path string, opts ...catalog.LoaderOption) Option {
	return options.New(func(c *Config) error {
		if path == "" {
			return errs.ErrNoCatalog
		}
		c.catalog = nil
		c.catalogPath = path
		c.loaderOpts = opts

		return nil
	})
}

// WithWritable makes read operations return a Set whose profiles can be mutated in place
// through Set.Mutable. The mutable slices alias the Set's backing buffer.
func WithWritable() Option {
	return options.NoError(func(c *Config) {
		c.writable = true
	})
}

// WithFormat selects the output format of WriteFile. The default is format.Binary.
func WithFormat(f format.Format) Option {
	return options.New(func(c *Config) error {
		switch f {
		case format.Binary, format.Text:
			c.format = f
			return nil
		default:
			return fmt.Errorf("%w: output format %s", errs.ErrUnsupportedFormat, f)
		}
	})
}

// WithCompression wraps the streams of Decode, Encode and EncodeText in the given codec.
//
// File level functions ignore it: their compression is fixed by the path suffix.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		switch comp {
		case format.CompressionNone, format.CompressionLZ4, format.CompressionZstd, format.CompressionS2:
			c.compression = comp
			return nil
		default:
			return fmt.Errorf("%w: compression %s", errs.ErrUnsupportedFormat, comp)
		}
	})
}

// WithLogger sets the logger used for debug events. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}

// resolveCatalog returns the configured catalog, loading it from disk if needed.
func (c *Config) resolveCatalog() (*catalog.Catalog, error) {
	switch {
	case c.catalog != nil:
		return c.catalog, nil
	case c.catalogPath != "":
		cat, err := catalog.Load(c.catalogPath, c.loaderOpts...)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("Loaded feature catalog",
			zap.String("path", c.catalogPath),
			zap.Int("features", cat.Len()),
			zap.Uint32("total_length", cat.TotalLength()),
			zap.Bool("hash_collision", cat.HashCollision()))

		return cat, nil
	default:
		return nil, errs.ErrNoCatalog
	}
}
