// Package profile reads and writes profile containers: one float32 vector per feature of a
// catalog, stored as a single flat payload behind a 9-byte header.
//
// # Reading
//
// Decode and ReadFile validate the container against a catalog before touching the payload:
// the version must be 3, the embedded checksum must equal the catalog checksum, and the
// declared total length must equal the catalog total. The payload is then read into one
// buffer and split into per-feature views following catalog order.
//
//	set, err := profile.ReadFile("sample.bin.lz4", profile.WithCatalogFile("genes.fon1.json"))
//	if err != nil {
//	    return err
//	}
//	p, _ := set.Profile("ENST00000456328")
//	for i, v := range p.All() {
//	    fmt.Println(i, v)
//	}
//
// A Set is read-only by default. WithWritable opts into aliasing: Set.Mutable returns the
// window of the shared backing buffer itself, so writes through it are visible to every later
// Profile or Mutable call for that feature and to EncodeSet. No copy is ever made.
//
// # Writing
//
// Encode, EncodeText and WriteFile take a map from feature name to values (float32 or
// float64; float64 is narrowed) and emit features in catalog order. Every profile is
// checked against the catalog before the first byte is written, and WriteFile removes
// the destination if encoding fails midway.
//
// File paths select the container by suffix: "*.bin", "*.bin.lz4", "*.csv", "*.csv.lz4".
// Any other suffix fails with errs.ErrUnsupportedFormat before a file is created.
//
// # Thread Safety
//
// Functions in this package hold no shared state. A Set may be read concurrently; callers
// mutating a writable Set must synchronize themselves.
package profile
