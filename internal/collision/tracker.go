package collision

import (
	"fmt"

	"github.com/arloliu/profio/errs"
)

// Tracker indexes feature names by their 64-bit hash and detects duplicates.
//
// Names are resolved through the hash map first. A name whose hash is already held by a
// different name is a collision: it is kept in an overflow map keyed by the name itself,
// so lookups stay exact without paying for string keys in the common case.
type Tracker struct {
	byID     map[uint64]int // hash → position of the first name with that hash
	overflow map[string]int // colliding names → position
	names    []string       // tracked names in insertion order
}

// NewTracker creates a tracker sized for n names.
func NewTracker(n int) *Tracker {
	return &Tracker{
		byID:  make(map[uint64]int, n),
		names: make([]string, 0, n),
	}
}

// Track records name at the next position.
//
// Returns ErrInvalidCatalog for an empty name and ErrDuplicateFeature when name was
// already tracked. Hash collisions between different names are not errors.
func (t *Tracker) Track(name string, hash uint64) error {
	if name == "" {
		return fmt.Errorf("%w: empty feature name at position %d", errs.ErrInvalidCatalog, len(t.names))
	}

	pos := len(t.names)
	if first, exists := t.byID[hash]; exists {
		if t.names[first] == name {
			return fmt.Errorf("%w: %q at positions %d and %d", errs.ErrDuplicateFeature, name, first, pos)
		}
		if prev, dup := t.overflow[name]; dup {
			return fmt.Errorf("%w: %q at positions %d and %d", errs.ErrDuplicateFeature, name, prev, pos)
		}
		if t.overflow == nil {
			t.overflow = make(map[string]int)
		}
		t.overflow[name] = pos
	} else {
		t.byID[hash] = pos
	}

	t.names = append(t.names, name)

	return nil
}

// Lookup returns the position of name, or false if it was never tracked.
func (t *Tracker) Lookup(name string, hash uint64) (int, bool) {
	if pos, ok := t.byID[hash]; ok && t.names[pos] == name {
		return pos, true
	}
	if pos, ok := t.overflow[name]; ok {
		return pos, true
	}

	return -1, false
}

// HasCollision returns true if two tracked names share a hash.
func (t *Tracker) HasCollision() bool {
	return len(t.overflow) > 0
}
