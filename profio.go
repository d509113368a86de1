// Package profio persists per-feature numeric profiles as a single checksummed binary
// container, linked to a separately stored feature catalog.
//
// A profile is a float vector for one named genomic feature. The catalog fixes the order
// of the features and the length of each profile; the container stores every profile
// concatenated in catalog order behind a 9-byte header:
//
//	offset 0  u8   version (3)
//	offset 1  u32  total number of values
//	offset 5  u32  Adler-32 of the catalog lengths
//	offset 9  f32  values, little-endian
//
// Reading a container checks the version, the checksum and the total length against the
// catalog before the payload is split into named profiles.
//
// # Basic Usage
//
// Writing profiles:
//
//	cat, _ := profio.LoadCatalog("genes.fon1.json")
//	err := profio.Write("coverage.bin.lz4", map[string][]float64{
//	    "ENST00000456328": coverage1,
//	    "ENST00000450305": coverage2,
//	}, profile.WithCatalog(cat))
//
// Reading them back:
//
//	set, err := profio.Open("coverage.bin.lz4", profile.WithCatalogFile("genes.fon1.json"))
//	p, ok := set.Profile("ENST00000456328")
//	for i, v := range p.All() {
//	    fmt.Printf("%d=%f\n", i, v)
//	}
//
// # Package Structure
//
// This package provides top-level wrappers around the profile and catalog packages for
// the common file based workflow. Stream level encoding, header inspection and
// verification live in the profile package.
package profio

import (
	"github.com/arloliu/profio/catalog"
	"github.com/arloliu/profio/format"
	"github.com/arloliu/profio/internal/hash"
	"github.com/arloliu/profio/profile"
)

// LoadCatalog loads a feature catalog from path.
//
// The suffix selects the parser: "*.json" (including "*.fon1.json") is a structured feature
// document, "*.tab" a name<TAB>length table.
//
// Parameters:
//   - path: Catalog file
//   - opts: Optional loader options (catalog.WithNameField, catalog.WithCoordsField)
//
// Returns:
//   - *catalog.Catalog: The ordered, immutable catalog
//   - error: errs.ErrPathNotFound, errs.ErrUnsupportedFormat or errs.ErrInvalidCatalog
func LoadCatalog(path string, opts ...catalog.LoaderOption) (*catalog.Catalog, error) {
	return catalog.Load(path, opts...)
}

// Open reads the binary container at path ("*.bin" or "*.bin.lz4").
//
// The catalog is given with profile.WithCatalog or profile.WithCatalogFile. The returned set
// is read-only unless profile.WithWritable is given.
//
// Example:
//
//	set, err := profio.Open("coverage.bin", profile.WithCatalog(cat))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	values := set.ToMap()
func Open(path string, opts ...profile.Option) (*profile.Set, error) {
	return profile.ReadFile(path, opts...)
}

// Write writes profiles as a binary container to path ("*.bin" or "*.bin.lz4").
//
// Every catalog feature must be present with exactly its catalog length. Nothing is
// created when validation fails.
func Write[T profile.Float](path string, profiles map[string][]T, opts ...profile.Option) error {
	return profile.WriteFile(path, profiles, opts...)
}

// ExportText writes profiles as delimited text to path ("*.csv" or "*.csv.lz4").
//
// Each line holds <name>,<length>,<space separated values>. The export cannot be read back.
func ExportText[T profile.Float](path string, profiles map[string][]T, opts ...profile.Option) error {
	return profile.WriteFile(path, profiles, append(opts, profile.WithFormat(format.Text))...)
}

// FeatureID returns the 64-bit identifier the catalog index uses for a feature name.
func FeatureID(name string) uint64 {
	return hash.ID(name)
}
