// Package catalog loads feature catalogs: the ordered (name, length) pairs that segment a
// profile container's flat payload.
//
// A Catalog is immutable once built. Its order fixes each feature's offset in the payload,
// and its checksum (see package checksum) ties it to the containers written with it.
//
//	cat, err := catalog.Load("genes.fon1.json")
//	if err != nil {
//	    return err
//	}
//	for i, e := range cat.All() {
//	    fmt.Println(e.Name, cat.Offset(i), e.Length)
//	}
package catalog

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/profio/checksum"
	"github.com/arloliu/profio/errs"
	"github.com/arloliu/profio/internal/collision"
	"github.com/arloliu/profio/internal/hash"
)

// Entry is one feature of a catalog.
type Entry struct {
	Name   string
	Length uint32
}

// Catalog is an ordered, immutable sequence of features.
//
// Feature names are unique; the catalog is safe for concurrent use.
type Catalog struct {
	entries  []Entry
	offsets  []uint32 // offsets[i] is the payload offset of entries[i]; offsets[len] is the total
	lengths  []uint32
	checksum uint32
	index    *collision.Tracker
}

// New builds a catalog from entries, which are copied.
//
// Returns:
//   - errs.ErrInvalidCatalog for an empty name or a total length above math.MaxUint32
//   - errs.ErrDuplicateFeature when a name appears twice
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, len(entries)),
		offsets: make([]uint32, len(entries)+1),
		lengths: make([]uint32, len(entries)),
		index:   collision.NewTracker(len(entries)),
	}
	copy(c.entries, entries)

	var total uint64
	for i, e := range c.entries {
		if err := c.index.Track(e.Name, hash.ID(e.Name)); err != nil {
			return nil, err
		}

		c.offsets[i] = uint32(total)
		c.lengths[i] = e.Length
		total += uint64(e.Length)
		if total > math.MaxUint32 {
			return nil, fmt.Errorf("%w: total length exceeds %d at feature %q", errs.ErrInvalidCatalog, uint64(math.MaxUint32), e.Name)
		}
	}
	c.offsets[len(c.entries)] = uint32(total)
	c.checksum = checksum.Compute(c.lengths)

	return c, nil
}

// Len returns the number of features.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entry returns the i-th feature.
func (c *Catalog) Entry(i int) Entry {
	return c.entries[i]
}

// Entries returns a copy of the features in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)

	return out
}

// All iterates over the features in catalog order.
func (c *Catalog) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range c.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Lengths returns a copy of the feature lengths in catalog order.
func (c *Catalog) Lengths() []uint32 {
	out := make([]uint32, len(c.lengths))
	copy(out, c.lengths)

	return out
}

// Offset returns the payload offset, in values, of the i-th feature.
// Offset(Len()) is the total length.
func (c *Catalog) Offset(i int) uint32 {
	return c.offsets[i]
}

// TotalLength returns the sum of all feature lengths.
func (c *Catalog) TotalLength() uint32 {
	return c.offsets[len(c.entries)]
}

// Checksum returns the Adler-32 checksum over the packed feature lengths.
func (c *Catalog) Checksum() uint32 {
	return c.checksum
}

// HashCollision reports whether two feature names share a 64-bit name hash.
// Lookups stay exact either way; colliding names are resolved by string.
func (c *Catalog) HashCollision() bool {
	return c.index.HasCollision()
}

// Index returns the position of the named feature.
func (c *Catalog) Index(name string) (int, bool) {
	return c.index.Lookup(name, hash.ID(name))
}

// Lookup returns the named feature.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.Index(name)
	if !ok {
		return Entry{}, false
	}

	return c.entries[i], true
}
