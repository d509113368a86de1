package profile

import (
	"fmt"
	"iter"

	"github.com/arloliu/profio/catalog"
	"github.com/arloliu/profio/errs"
)

// span locates one feature inside the backing buffer.
type span struct {
	off uint32
	n   uint32
}

// Set is a decoded profile container: one backing buffer plus one span per catalog feature.
//
// Profiles returned by a Set are views into the backing buffer; the buffer stays alive as
// long as any view does.
type Set struct {
	cat      *catalog.Catalog
	values   []float32
	spans    []span
	writable bool
}

// segment splits values into one span per catalog feature, walking the catalog in order.
//
// Returns a *errs.FormatError if the walk does not end exactly at len(values).
func segment(cat *catalog.Catalog, values []float32, writable bool) (*Set, error) {
	s := &Set{
		cat:      cat,
		values:   values,
		spans:    make([]span, cat.Len()),
		writable: writable,
	}

	var offset uint64
	for i, e := range cat.All() {
		s.spans[i] = span{off: uint32(offset), n: e.Length}
		offset += uint64(e.Length)
	}
	if offset != uint64(len(values)) {
		return nil, errs.NewFormatError(errs.ErrLengthMismatch, "segmentation", uint64(len(values)), offset)
	}

	return s, nil
}

// Catalog returns the catalog the set was read with.
func (s *Set) Catalog() *catalog.Catalog {
	return s.cat
}

// Len returns the number of features.
func (s *Set) Len() int {
	return len(s.spans)
}

// TotalLength returns the number of values in the backing buffer.
func (s *Set) TotalLength() int {
	return len(s.values)
}

// Writable reports whether the set was read with WithWritable.
func (s *Set) Writable() bool {
	return s.writable
}

// Profile returns a read-only view of the named feature's values.
func (s *Set) Profile(name string) (Profile, bool) {
	i, ok := s.cat.Index(name)
	if !ok {
		return Profile{}, false
	}

	return Profile{values: s.window(i)}, true
}

// ProfileAt returns a read-only view of the i-th feature in catalog order.
func (s *Set) ProfileAt(i int) Profile {
	return Profile{values: s.window(i)}
}

// Mutable returns the named feature's window of the backing buffer.
//
// Writes through the returned slice change the set itself. Returns errs.ErrReadOnly unless
// the set was read with WithWritable, and errs.ErrProfileNotFound for an unknown name.
func (s *Set) Mutable(name string) ([]float32, error) {
	if !s.writable {
		return nil, errs.ErrReadOnly
	}

	i, ok := s.cat.Index(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrProfileNotFound, name)
	}

	return s.window(i), nil
}

// All iterates over features in catalog order.
func (s *Set) All() iter.Seq2[string, Profile] {
	return func(yield func(string, Profile) bool) {
		for i := range s.spans {
			if !yield(s.cat.Entry(i).Name, Profile{values: s.window(i)}) {
				return
			}
		}
	}
}

// ToMap returns a copy of every profile keyed by feature name.
func (s *Set) ToMap() map[string][]float32 {
	out := make(map[string][]float32, len(s.spans))
	for i := range s.spans {
		w := s.window(i)
		values := make([]float32, len(w))
		copy(values, w)
		out[s.cat.Entry(i).Name] = values
	}

	return out
}

// lookup exposes the set as an encoder source. The slices alias the backing buffer.
func (s *Set) lookup(name string) ([]float32, bool) {
	i, ok := s.cat.Index(name)
	if !ok {
		return nil, false
	}

	return s.window(i), true
}

// window returns the capacity-limited slice of feature i, so appends never spill into
// the next feature.
func (s *Set) window(i int) []float32 {
	sp := s.spans[i]
	end := sp.off + sp.n

	return s.values[sp.off:end:end]
}

// Profile is a read-only view of one feature's values.
type Profile struct {
	values []float32
}

// Len returns the number of values.
func (p Profile) Len() int {
	return len(p.values)
}

// At returns the i-th value.
func (p Profile) At(i int) float32 {
	return p.values[i]
}

// All iterates over the values with their index.
func (p Profile) All() iter.Seq2[int, float32] {
	return func(yield func(int, float32) bool) {
		for i, v := range p.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// AppendTo appends the values to dst.
func (p Profile) AppendTo(dst []float32) []float32 {
	return append(dst, p.values...)
}

// Float32s returns a copy of the values.
func (p Profile) Float32s() []float32 {
	return p.AppendTo(make([]float32, 0, len(p.values)))
}
